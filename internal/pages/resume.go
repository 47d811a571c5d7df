package pages

import (
	"context"

	"github.com/jonathan/jobpilot/internal/types"
	"github.com/sirupsen/logrus"
)

// UploadSource is how the file reached the page.
type UploadSource string

// Upload sources. Both go through the same validation and upload path.
const (
	SourcePicker UploadSource = "picker"
	SourceDrop   UploadSource = "drop"
)

// MsgUploaded is shown after a successful upload.
const MsgUploaded = "Resume uploaded successfully!"

// ResumeView is a snapshot of the résumé screen.
type ResumeView struct {
	Status    Status
	Resume    *types.Resume
	Uploading bool
	Error     string
	Success   string
}

// Resume shows the current résumé and accepts a replacement PDF.
type Resume struct {
	lifecycle
	deps Deps

	status    Status
	resume    *types.Resume
	uploading bool
	errFlash  Flash
	okFlash   Flash
}

// NewResume creates a Resume controller.
func NewResume(deps Deps) *Resume {
	return &Resume{deps: deps.withDefaults()}
}

// Mount guards the session and loads the current résumé, if any.
func (r *Resume) Mount(parent context.Context) error {
	if err := Guard(r.deps.Store, r.deps.Navigator); err != nil {
		return err
	}
	ctx := r.mount(parent)
	r.update(ctx, func() { r.status = Loading() })

	env := r.deps.Services.Resume.GetResume(ctx)

	r.update(ctx, func() {
		switch {
		case env.HasData():
			r.resume = env.Data
			r.status = Ready()
		case notFound(env):
			r.resume = nil
			r.status = Ready()
		default:
			r.status = Failed(env.MessageOr("Failed to load resume"))
		}
	})
	return nil
}

// Upload validates and uploads a file from either source. Both outcomes are shown
// as transient messages; on success the displayed résumé is replaced in place.
func (r *Resume) Upload(source UploadSource, filename string, content []byte) error {
	ctx, err := r.active()
	if err != nil {
		return err
	}

	r.update(ctx, func() {
		r.uploading = true
		r.errFlash.Clear()
		r.okFlash.Clear()
	})

	env := r.deps.Services.Resume.UploadResume(ctx, filename, content)

	var failure error
	r.update(ctx, func() {
		r.uploading = false
		now := r.deps.Clock.Now()
		if !env.HasData() {
			msg := env.MessageOr("Failed to upload resume")
			r.errFlash.Set(msg, now, r.deps.FlashTTL)
			failure = &Failure{Message: msg, Local: env.IsLocal()}
			return
		}
		r.resume = env.Data
		r.okFlash.Set(MsgUploaded, now, r.deps.FlashTTL)
	})

	r.deps.Log.WithFields(logrus.Fields{
		"source":   source,
		"filename": filename,
		"bytes":    len(content),
		"ok":       env.Success,
	}).Debug("resume upload")
	return failure
}

// View returns a snapshot of the screen. Expired messages are omitted.
func (r *Resume) View() ResumeView {
	now := r.deps.Clock.Now()
	var v ResumeView
	r.withLock(func() {
		v = ResumeView{
			Status:    r.status,
			Resume:    r.resume,
			Uploading: r.uploading,
			Error:     r.errFlash.Text(now),
			Success:   r.okFlash.Text(now),
		}
	})
	return v
}
