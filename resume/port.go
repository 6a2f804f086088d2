package resume

import (
	"context"

	"github.com/hirewire/resumeparser/pkg/kernel"
)

type Repository interface {
	// Upsert inserts the record, or replaces the fields of the existing
	// row with the same normalized email while keeping its id. Records
	// without an email are always inserted. Returns the row's id.
	Upsert(ctx context.Context, r *Resume) (kernel.ResumeID, error)

	// GetByID retrieves a resume by ID
	GetByID(ctx context.Context, id kernel.ResumeID) (*Resume, error)

	// GetByEmail retrieves a resume by normalized email
	GetByEmail(ctx context.Context, email kernel.Email) (*Resume, error)

	// ListAll retrieves all stored resumes
	ListAll(ctx context.Context) ([]*Resume, error)

	// DeleteByID deletes a resume by ID
	DeleteByID(ctx context.Context, id kernel.ResumeID) error
}

// Structurer asks the inference service to convert extracted text into the
// target JSON schema. Implemented by internal/ai/structurer; mocked in tests
// since the service is an external non-deterministic dependency.
type Structurer interface {
	Structure(ctx context.Context, text string) (string, error)
}
