package resume

import (
	"time"

	"github.com/hirewire/resumeparser/pkg/kernel"
)

// Resume is the persisted record produced by a successful parsing run.
type Resume struct {
	ID kernel.ResumeID `db:"id" json:"id"`

	// Personal Information (optional scalars; nil means absent)
	PersonalInfo PersonalInfo `db:"personal_info" json:"personal_info"`

	// Professional summary (optional)
	Summary *string `db:"summary" json:"summary"`

	// Ordered collections. Always present, possibly empty; order follows
	// the structuring step's output, no implicit sorting.
	Skills         []string         `db:"skills" json:"skills"`
	WorkExperience []WorkExperience `db:"work_experience" json:"work_experience"`
	Projects       []Project        `db:"projects" json:"projects"`
	Education      []Education      `db:"education" json:"education"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// PersonalInfo holds candidate contact details. Email, when present, is the
// dedup key for upserts; it is stored in normalized form.
type PersonalInfo struct {
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	LinkedInURL *string `json:"linkedin_url"`
	GitHubURL   *string `json:"github_url"`
	Address     *string `json:"address"`
}

// WorkExperience dates are free-form strings; the model is not guaranteed
// to return ISO-8601 and "Present" is a legal end date.
type WorkExperience struct {
	Company          *string  `json:"company"`
	JobTitle         *string  `json:"job_title"`
	StartDate        *string  `json:"start_date"`
	EndDate          *string  `json:"end_date"`
	Responsibilities []string `json:"responsibilities"`
}

type Project struct {
	Name         *string  `json:"name"`
	Description  *string  `json:"description"`
	Technologies []string `json:"technologies"`
}

type Education struct {
	Institution *string `json:"institution"`
	Degree      *string `json:"degree"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
}

// DedupEmail returns the normalized email key, or "" when the record has no
// email and can never be deduplicated.
func (r *Resume) DedupEmail() kernel.Email {
	if r.PersonalInfo.Email == nil {
		return ""
	}
	return kernel.Email(*r.PersonalInfo.Email).Normalize()
}

// HasEmail reports whether the record carries a non-empty dedup key.
func (r *Resume) HasEmail() bool {
	return !r.DedupEmail().IsEmpty()
}
