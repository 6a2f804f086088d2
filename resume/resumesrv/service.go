package resumesrv

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hirewire/resumeparser/internal/ai/structurer"
	"github.com/hirewire/resumeparser/internal/extract"
	"github.com/hirewire/resumeparser/pkg/errx"
	"github.com/hirewire/resumeparser/pkg/kernel"
	"github.com/hirewire/resumeparser/pkg/logx"
	"github.com/hirewire/resumeparser/resume"
)

// Service runs the extraction, structuring, validation and upsert pipeline
// and fronts the stored records for the HTTP layer.
type Service struct {
	repo       resume.Repository
	structurer resume.Structurer
}

// NewService creates a new resume service
func NewService(repo resume.Repository, s resume.Structurer) *Service {
	return &Service{
		repo:       repo,
		structurer: s,
	}
}

// ParseAndStore runs the full pipeline for an uploaded document. Each stage
// failure short-circuits with its own error kind; nothing is persisted
// before validation succeeds, and no stage is retried here. The caller may
// resubmit, which is idempotent for records carrying an email.
func (s *Service) ParseAndStore(ctx context.Context, req resume.ParseResumeRequest) (*resume.Resume, error) {
	runID := uuid.NewString()

	format, err := extract.ParseFormat(req.Filename)
	if err != nil {
		return nil, resume.ErrUnsupportedFormat().WithDetail("filename", req.Filename)
	}

	text, err := extract.Text(req.Data, format)
	if err != nil {
		logx.Warnf("pipeline %s: extraction failed (%s): %v", runID, format, err)
		return nil, resume.ErrRegistry.NewWithCause(resume.CodeCorruptDocument, err).
			WithDetail("format", string(format))
	}
	if strings.TrimSpace(text) == "" {
		return nil, resume.ErrEmptyDocument().WithDetail("format", string(format))
	}
	logx.Infof("pipeline %s: extracted %d characters from %s document", runID, len(text), format)

	raw, err := s.structurer.Structure(ctx, text)
	if err != nil {
		if errors.Is(err, structurer.ErrEmptyResponse) {
			logx.Errorf("pipeline %s: structuring returned no usable text", runID)
			return nil, resume.ErrRegistry.NewWithCause(resume.CodeEmptyResponse, err)
		}
		logx.Errorf("pipeline %s: structuring failed: %v", runID, err)
		return nil, resume.ErrRegistry.NewWithCause(resume.CodeInferenceUnavailable, err)
	}
	logx.Infof("pipeline %s: structuring returned %d bytes", runID, len(raw))

	record, err := resume.ParseModelOutput(raw)
	if err != nil {
		logx.Errorf("pipeline %s: validation failed: %v", runID, err)
		return nil, err
	}

	now := time.Now()
	record.CreatedAt = now
	record.UpdatedAt = now

	id, err := s.repo.Upsert(ctx, record)
	if err != nil {
		logx.Errorf("pipeline %s: upsert failed: %v", runID, err)
		return nil, storageError(err)
	}

	stored, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storageError(err)
	}

	logx.Infof("pipeline %s: stored resume id=%s email_present=%t", runID, id, stored.HasEmail())
	return stored, nil
}

// GetResumeByID retrieves a stored resume by its id.
func (s *Service) GetResumeByID(ctx context.Context, id kernel.ResumeID) (*resume.Resume, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storageError(err)
	}
	return record, nil
}

// GetResumeByEmail retrieves a stored resume by candidate email. The email
// is normalized before lookup.
func (s *Service) GetResumeByEmail(ctx context.Context, email kernel.Email) (*resume.Resume, error) {
	record, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, storageError(err)
	}
	return record, nil
}

// ListResumes returns every stored resume.
func (s *Service) ListResumes(ctx context.Context) ([]*resume.Resume, error) {
	records, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, storageError(err)
	}
	return records, nil
}

// DeleteResume deletes a stored resume by id.
func (s *Service) DeleteResume(ctx context.Context, id kernel.ResumeID) (*resume.DeleteResumeResponse, error) {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return nil, storageError(err)
	}
	return &resume.DeleteResumeResponse{
		Message: "Resume with ID " + id.String() + " has been deleted successfully",
	}, nil
}

// storageError passes structured errors through untouched and wraps raw
// driver failures as storage errors.
func storageError(err error) error {
	var e *errx.Error
	if errors.As(err, &e) {
		return e
	}
	return resume.ErrRegistry.NewWithCause(resume.CodeStorageFailure, err)
}
