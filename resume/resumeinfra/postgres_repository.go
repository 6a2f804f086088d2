package resumeinfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hirewire/resumeparser/pkg/kernel"
	"github.com/hirewire/resumeparser/resume"
	"github.com/jmoiron/sqlx"
)

type PostgresResumeRepository struct {
	db *sqlx.DB
}

func NewPostgresResumeRepository(db *sqlx.DB) resume.Repository {
	return &PostgresResumeRepository{db: db}
}

// resumeRow represents a row from the resumes table
type resumeRow struct {
	ID             int64          `db:"id"`
	Email          sql.NullString `db:"email"`
	PersonalInfo   []byte         `db:"personal_info"`
	Summary        sql.NullString `db:"summary"`
	Skills         []byte         `db:"skills"`
	WorkExperience []byte         `db:"work_experience"`
	Projects       []byte         `db:"projects"`
	Education      []byte         `db:"education"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

// ToDomain converts a resumeRow to a resume.Resume domain model
func (r *resumeRow) ToDomain() (*resume.Resume, error) {
	model := &resume.Resume{
		ID:        kernel.NewResumeID(r.ID),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}

	if err := json.Unmarshal(r.PersonalInfo, &model.PersonalInfo); err != nil {
		return nil, fmt.Errorf("failed to unmarshal personal_info: %w", err)
	}
	if err := json.Unmarshal(r.Skills, &model.Skills); err != nil {
		return nil, fmt.Errorf("failed to unmarshal skills: %w", err)
	}
	if err := json.Unmarshal(r.WorkExperience, &model.WorkExperience); err != nil {
		return nil, fmt.Errorf("failed to unmarshal work_experience: %w", err)
	}
	if err := json.Unmarshal(r.Projects, &model.Projects); err != nil {
		return nil, fmt.Errorf("failed to unmarshal projects: %w", err)
	}
	if err := json.Unmarshal(r.Education, &model.Education); err != nil {
		return nil, fmt.Errorf("failed to unmarshal education: %w", err)
	}

	if r.Summary.Valid {
		model.Summary = &r.Summary.String
	}

	return model, nil
}

type jsonbFields struct {
	personalInfo   []byte
	skills         []byte
	workExperience []byte
	projects       []byte
	education      []byte
}

func marshalFields(model *resume.Resume) (*jsonbFields, error) {
	var f jsonbFields
	var err error

	if f.personalInfo, err = json.Marshal(model.PersonalInfo); err != nil {
		return nil, fmt.Errorf("failed to marshal personal_info: %w", err)
	}
	if f.skills, err = json.Marshal(model.Skills); err != nil {
		return nil, fmt.Errorf("failed to marshal skills: %w", err)
	}
	if f.workExperience, err = json.Marshal(model.WorkExperience); err != nil {
		return nil, fmt.Errorf("failed to marshal work_experience: %w", err)
	}
	if f.projects, err = json.Marshal(model.Projects); err != nil {
		return nil, fmt.Errorf("failed to marshal projects: %w", err)
	}
	if f.education, err = json.Marshal(model.Education); err != nil {
		return nil, fmt.Errorf("failed to marshal education: %w", err)
	}

	return &f, nil
}

// Upsert inserts the record or replaces the row carrying the same normalized
// email, keeping its id. The conflict target is the partial unique index on
// email, so the insert-or-update is a single atomic statement and concurrent
// same-email uploads cannot produce two rows. Rows without an email never
// conflict and are always inserted.
func (r *PostgresResumeRepository) Upsert(ctx context.Context, model *resume.Resume) (kernel.ResumeID, error) {
	query := `
		INSERT INTO resumes (
			email, personal_info, summary, skills,
			work_experience, projects, education,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7,
			$8, $9
		)
		ON CONFLICT (email) WHERE email IS NOT NULL
		DO UPDATE SET
			personal_info = EXCLUDED.personal_info,
			summary = EXCLUDED.summary,
			skills = EXCLUDED.skills,
			work_experience = EXCLUDED.work_experience,
			projects = EXCLUDED.projects,
			education = EXCLUDED.education,
			updated_at = EXCLUDED.updated_at
		RETURNING id
	`

	fields, err := marshalFields(model)
	if err != nil {
		return 0, err
	}

	var email any
	if model.HasEmail() {
		email = model.DedupEmail().String()
	}

	var id int64
	err = r.db.QueryRowContext(ctx, query,
		email, fields.personalInfo, model.Summary, fields.skills,
		fields.workExperience, fields.projects, fields.education,
		model.CreatedAt, model.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return 0, err
	}

	return kernel.NewResumeID(id), nil
}

const selectColumns = `
	id, email, personal_info, summary, skills,
	work_experience, projects, education,
	created_at, updated_at
`

// GetByID retrieves a resume by ID
func (r *PostgresResumeRepository) GetByID(ctx context.Context, id kernel.ResumeID) (*resume.Resume, error) {
	query := `SELECT ` + selectColumns + ` FROM resumes WHERE id = $1`

	var row resumeRow
	err := r.db.GetContext(ctx, &row, query, id.Int64())
	if err == sql.ErrNoRows {
		return nil, resume.ErrResumeNotFound()
	}
	if err != nil {
		return nil, err
	}

	return row.ToDomain()
}

// GetByEmail retrieves a resume by email. The email is normalized before
// lookup, matching the stored form.
func (r *PostgresResumeRepository) GetByEmail(ctx context.Context, email kernel.Email) (*resume.Resume, error) {
	query := `SELECT ` + selectColumns + ` FROM resumes WHERE email = $1`

	var row resumeRow
	err := r.db.GetContext(ctx, &row, query, email.Normalize().String())
	if err == sql.ErrNoRows {
		return nil, resume.ErrEmailNotFound()
	}
	if err != nil {
		return nil, err
	}

	return row.ToDomain()
}

// ListAll retrieves all stored resumes ordered by id.
func (r *PostgresResumeRepository) ListAll(ctx context.Context) ([]*resume.Resume, error) {
	query := `SELECT ` + selectColumns + ` FROM resumes ORDER BY id`

	var rows []resumeRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}

	resumes := make([]*resume.Resume, 0, len(rows))
	for i := range rows {
		model, err := rows[i].ToDomain()
		if err != nil {
			return nil, err
		}
		resumes = append(resumes, model)
	}

	return resumes, nil
}

// DeleteByID deletes a resume by ID
func (r *PostgresResumeRepository) DeleteByID(ctx context.Context, id kernel.ResumeID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM resumes WHERE id = $1`, id.Int64())
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return resume.ErrResumeNotFound()
	}

	return nil
}
