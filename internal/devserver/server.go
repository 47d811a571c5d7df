// Package devserver is an in-memory implementation of the JobPilot REST API for
// local development and end-to-end tests. Nothing survives a restart.
package devserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jonathan/jobpilot/internal/config"
	"github.com/jonathan/jobpilot/internal/devserver/middleware"
	"github.com/jonathan/jobpilot/internal/devserver/ratelimit"
	"github.com/jonathan/jobpilot/internal/logger"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	handler     http.Handler
	store       *Store
	jwt         *JWTService
	users       *UserService
	analyzer    Analyzer
	scorer      KeywordAnalyzer
	rateLimiter *ratelimit.Limiter
	log         logrus.FieldLogger
}

// Config holds server configuration
type Config struct {
	Port     int
	JWT      *config.JWTConfig
	Password *config.PasswordConfig
	// Analyzer defaults to KeywordAnalyzer.
	Analyzer Analyzer
	// RateLimit nil disables rate limiting.
	RateLimit *ratelimit.Config
	Logger    logrus.FieldLogger
	// Seed loads the sample job postings.
	Seed bool
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.JWT == nil {
		return nil, fmt.Errorf("JWT config is required")
	}
	if cfg.Password == nil {
		return nil, fmt.Errorf("password config is required")
	}

	s := &Server{
		store:    NewStore(),
		jwt:      NewJWTService(cfg.JWT),
		analyzer: cfg.Analyzer,
		log:      logger.OrDiscard(cfg.Logger),
	}
	if s.analyzer == nil {
		s.analyzer = KeywordAnalyzer{}
	}
	s.users = NewUserService(s.store, cfg.Password)

	rl := cfg.RateLimit
	if rl == nil {
		rl = &ratelimit.Config{Enabled: false}
	}
	s.rateLimiter = ratelimit.NewLimiter(rl)

	if cfg.Seed {
		SeedJobs(s.store)
	}

	auth := middleware.AuthMiddleware(s.jwt.AsTokenValidator())
	protected := func(h http.HandlerFunc) http.Handler { return auth(h) }

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("POST /auth/register", s.handleRegister)
	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.HandleFunc("POST /auth/refresh", s.handleRefresh)
	mux.Handle("GET /auth/profile", protected(s.handleProfile))

	mux.Handle("GET /jobs", protected(s.handleListJobs))
	mux.Handle("POST /jobs", protected(s.handleCreateJob))
	mux.Handle("GET /jobs/matched", protected(s.handleMatchedJobs))
	mux.Handle("POST /jobs/analyze", protected(s.handleAnalyze))

	mux.Handle("GET /resume", protected(s.handleGetResume))
	mux.Handle("POST /resume/upload", protected(s.handleUploadResume))

	mux.Handle("GET /applications", protected(s.handleListApplications))
	mux.Handle("POST /applications", protected(s.handleCreateApplication))
	mux.Handle("GET /applications/stats", protected(s.handleApplicationStats))
	mux.Handle("PATCH /applications/{id}/status", protected(s.handleUpdateStatus))

	s.handler = s.withRateLimit(s.withLogging(s.withCORS(s.withNotFound(mux))))
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // model analysis can be slow
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

// Handler returns the full middleware chain, for httptest servers.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Store exposes the backing store.
func (s *Server) Store() *Store {
	return s.store
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", s.httpServer.Addr).Info("dev server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.rateLimiter.Stop()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("shutting down dev server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	defer s.rateLimiter.Stop()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.log.Info("dev server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withNotFound answers unknown routes with an envelope instead of the mux's plain text.
func (s *Server) withNotFound(mux *http.ServeMux) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, pattern := mux.Handler(r); pattern == "" {
			s.errorResponse(w, http.StatusNotFound, "Route not found", r.Method+" "+r.URL.Path)
			return
		}
		mux.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		next.ServeHTTP(rec, r)

		s.log.WithFields(logrus.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     rec.status,
			"request_id": requestID,
			"duration":   time.Since(start).String(),
		}).Debug("request handled")
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(clientID(r), r.URL.Path, r.Method)
		if info.Limit > 0 {
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
		}
		if !allowed {
			retry := int(info.RetryAfter.Seconds())
			if retry < 1 {
				retry = 1
			}
			w.Header().Set("Retry-After", strconv.Itoa(retry))
			s.log.WithField("path", r.URL.Path).Warn("rate limit exceeded")
			s.errorResponse(w, http.StatusTooManyRequests, "Too many requests. Please try again later.", "rate_limit_exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientID is the remote IP address.
func clientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}
