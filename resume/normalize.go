package resume

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/hirewire/resumeparser/pkg/errx"
)

// modelOutput defers per-field decoding so that a missing or null field can
// be told apart from one whose JSON type is wrong.
type modelOutput struct {
	PersonalInfo   json.RawMessage `json:"personal_info"`
	Summary        json.RawMessage `json:"summary"`
	Skills         json.RawMessage `json:"skills"`
	WorkExperience json.RawMessage `json:"work_experience"`
	Projects       json.RawMessage `json:"projects"`
	Education      json.RawMessage `json:"education"`
}

// ParseModelOutput validates and normalizes the raw JSON text returned by
// the structuring step. The model is not a guaranteed-conforming source, so
// the policy is default-fill over reject: unknown fields are ignored,
// missing optional scalars stay absent, and missing collections become empty
// sequences. Only an outright JSON type mismatch is rejected.
func ParseModelOutput(raw string) (*Resume, error) {
	var out modelOutput
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, ErrRegistry.NewWithCause(CodeSchemaViolation, err).
				WithDetail("got", typeErr.Value)
		}
		return nil, ErrRegistry.NewWithCause(CodeMalformedOutput, err)
	}

	r := &Resume{
		Skills:         []string{},
		WorkExperience: []WorkExperience{},
		Projects:       []Project{},
		Education:      []Education{},
	}

	if err := decodeField(out.PersonalInfo, "personal_info", &r.PersonalInfo); err != nil {
		return nil, err
	}
	if err := decodeField(out.Summary, "summary", &r.Summary); err != nil {
		return nil, err
	}
	if err := decodeField(out.Skills, "skills", &r.Skills); err != nil {
		return nil, err
	}
	if err := decodeField(out.WorkExperience, "work_experience", &r.WorkExperience); err != nil {
		return nil, err
	}
	if err := decodeField(out.Projects, "projects", &r.Projects); err != nil {
		return nil, err
	}
	if err := decodeField(out.Education, "education", &r.Education); err != nil {
		return nil, err
	}

	normalizeRecord(r)
	return r, nil
}

// decodeField unmarshals a single field, skipping absent and null values.
// A type mismatch that cannot be coerced is a schema violation.
func decodeField(raw json.RawMessage, field string, dst any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return ErrRegistry.NewWithCause(CodeSchemaViolation, err).
				WithDetail("field", field).
				WithDetail("got", typeErr.Value)
		}
		return errx.Wrap(err, "failed to decode model output field "+field, errx.TypeInternal)
	}
	return nil
}

// normalizeRecord applies the post-decode defaults: the dedup email is
// trimmed and lower-cased (the normalized value is also what gets stored),
// blank emails collapse to absent, and nested sequences are never nil.
func normalizeRecord(r *Resume) {
	if r.PersonalInfo.Email != nil {
		norm := strings.ToLower(strings.TrimSpace(*r.PersonalInfo.Email))
		if norm == "" {
			r.PersonalInfo.Email = nil
		} else {
			r.PersonalInfo.Email = &norm
		}
	}

	if r.Skills == nil {
		r.Skills = []string{}
	}
	if r.WorkExperience == nil {
		r.WorkExperience = []WorkExperience{}
	}
	if r.Projects == nil {
		r.Projects = []Project{}
	}
	if r.Education == nil {
		r.Education = []Education{}
	}

	for i := range r.WorkExperience {
		if r.WorkExperience[i].Responsibilities == nil {
			r.WorkExperience[i].Responsibilities = []string{}
		}
	}
	for i := range r.Projects {
		if r.Projects[i].Technologies == nil {
			r.Projects[i].Technologies = []string{}
		}
	}
}
