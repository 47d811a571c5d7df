package devserver

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/jobpilot/internal/types"
)

// userRecord is a registered account. The password hash never leaves the store.
type userRecord struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

func (u *userRecord) public() types.User {
	return types.User{ID: u.ID.String(), Name: u.Name, Email: u.Email}
}

// Store keeps every dev backend entity in memory. It is safe for concurrent use.
type Store struct {
	mu           sync.RWMutex
	users        map[uuid.UUID]*userRecord
	byEmail      map[string]uuid.UUID
	resumes      map[uuid.UUID]types.Resume
	jobs         []types.Job
	applications map[uuid.UUID][]types.Application
	now          func() time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		users:        make(map[uuid.UUID]*userRecord),
		byEmail:      make(map[string]uuid.UUID),
		resumes:      make(map[uuid.UUID]types.Resume),
		applications: make(map[uuid.UUID][]types.Application),
		now:          time.Now,
	}
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateUser adds an account. Emails are unique regardless of case.
func (s *Store) CreateUser(name, email, passwordHash string) (*userRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := emailKey(email)
	if _, exists := s.byEmail[key]; exists {
		return nil, &ErrEmailAlreadyExists{Email: email}
	}
	u := &userRecord{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(name),
		Email:        key,
		PasswordHash: passwordHash,
		CreatedAt:    s.now(),
	}
	s.users[u.ID] = u
	s.byEmail[key] = u.ID
	return u, nil
}

// UserByEmail returns the account for email, or nil.
func (s *Store) UserByEmail(email string) *userRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if id, ok := s.byEmail[emailKey(email)]; ok {
		return s.users[id]
	}
	return nil
}

// User returns the account with id.
func (s *Store) User(id uuid.UUID) (*userRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, &ErrNotFound{Entity: "user", ID: id.String()}
	}
	return u, nil
}

// PutResume replaces the user's résumé.
func (s *Store) PutResume(userID uuid.UUID, r types.Resume) types.Resume {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	r.ID = uuid.NewString()
	r.UserID = userID.String()
	r.CreatedAt = now
	r.UpdatedAt = now
	s.resumes[userID] = r
	return r
}

// Resume returns the user's current résumé.
func (s *Store) Resume(userID uuid.UUID) (types.Resume, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.resumes[userID]
	if !ok {
		return types.Resume{}, &ErrNotFound{Entity: "resume"}
	}
	return r, nil
}

// AddJob stores a posting and returns it with its ID and timestamps set.
func (s *Store) AddJob(in types.CreateJobInput) types.Job {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	source := in.Source
	if source == "" {
		source = "manual"
	}
	job := types.Job{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(in.Title),
		Company:     strings.TrimSpace(in.Company),
		Location:    strings.TrimSpace(in.Location),
		Description: in.Description,
		ApplyURL:    in.ApplyURL,
		Source:      source,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.jobs = append(s.jobs, job)
	return job
}

// Jobs returns postings matching filters, newest first.
// Each non-empty filter is a case-insensitive substring match; keyword also searches descriptions.
func (s *Store) Jobs(filters types.JobFilters) []types.Job {
	f := filters.Normalize()
	keyword := strings.ToLower(f.Keyword)
	location := strings.ToLower(f.Location)
	company := strings.ToLower(f.Company)

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.Job, 0, len(s.jobs))
	for i := len(s.jobs) - 1; i >= 0; i-- {
		job := s.jobs[i]
		if keyword != "" &&
			!strings.Contains(strings.ToLower(job.Title), keyword) &&
			!strings.Contains(strings.ToLower(job.Description), keyword) {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(job.Location), location) {
			continue
		}
		if company != "" && !strings.Contains(strings.ToLower(job.Company), company) {
			continue
		}
		out = append(out, job)
	}
	return out
}

// Job returns the posting with id.
func (s *Store) Job(id string) (types.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, job := range s.jobs {
		if job.ID == id {
			return job, nil
		}
	}
	return types.Job{}, &ErrNotFound{Entity: "job", ID: id}
}

// AddApplication records an application with status APPLIED.
// A user may apply to each job once.
func (s *Store) AddApplication(userID uuid.UUID, in types.CreateApplicationInput, score int, summary string) (types.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, app := range s.applications[userID] {
		if app.JobID == in.JobID {
			return types.Application{}, &ErrConflict{Message: "Already applied to this job"}
		}
	}

	now := s.now()
	app := types.Application{
		ID:           uuid.NewString(),
		JobID:        in.JobID,
		JobTitle:     in.JobTitle,
		Company:      in.Company,
		JobURL:       in.JobURL,
		ResumeID:     in.ResumeID,
		MatchScore:   score,
		MatchSummary: summary,
		Status:       types.StatusApplied,
		AppliedAt:    &now,
		CreatedAt:    now,
	}
	s.applications[userID] = append(s.applications[userID], app)
	return app, nil
}

// Applications returns the user's applications, newest first.
func (s *Store) Applications(userID uuid.UUID) []types.Application {
	s.mu.RLock()
	defer s.mu.RUnlock()

	apps := s.applications[userID]
	out := make([]types.Application, len(apps))
	copy(out, apps)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// UpdateApplicationStatus sets the status of one of the user's applications.
func (s *Store) UpdateApplicationStatus(userID uuid.UUID, id string, status types.ApplicationStatus) (types.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	apps := s.applications[userID]
	for i := range apps {
		if apps[i].ID != id {
			continue
		}
		now := s.now()
		apps[i].Status = status
		apps[i].UpdatedAt = &now
		if status == types.StatusApplied && apps[i].AppliedAt == nil {
			apps[i].AppliedAt = &now
		}
		return apps[i], nil
	}
	return types.Application{}, &ErrNotFound{Entity: "application", ID: id}
}

// StatsWindow is how far back "this week" reaches.
const StatsWindow = 7 * 24 * time.Hour

// Stats aggregates the user's applications.
// The average match score is rounded to the nearest integer and 0 without applications.
func (s *Store) Stats(userID uuid.UUID) types.ApplicationStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	apps := s.applications[userID]
	cutoff := s.now().Add(-StatsWindow)
	stats := types.ApplicationStats{TotalApplications: len(apps)}
	total := 0
	for _, app := range apps {
		total += app.MatchScore
		if app.Status == types.StatusInterview {
			stats.Interviews++
		}
		if app.CreatedAt.After(cutoff) {
			stats.ThisWeek++
		}
	}
	if len(apps) > 0 {
		stats.AvgMatchScore = (total + len(apps)/2) / len(apps)
	}
	return stats
}
