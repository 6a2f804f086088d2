package kernel

import (
	"strconv"
	"strings"
)

// ResumeID identifies a stored resume. Assigned by storage on first insert
// and never mutated afterwards.
type ResumeID int64

func NewResumeID(id int64) ResumeID { return ResumeID(id) }

func (r ResumeID) Int64() int64   { return int64(r) }
func (r ResumeID) String() string { return strconv.FormatInt(int64(r), 10) }
func (r ResumeID) IsZero() bool   { return int64(r) == 0 }

// ParseResumeID parses the decimal form used in URLs.
func ParseResumeID(s string) (ResumeID, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return ResumeID(id), nil
}

// Email is a candidate email address. The normalized form is the dedup key
// for upserts.
type Email string

func (e Email) String() string { return string(e) }
func (e Email) IsEmpty() bool  { return strings.TrimSpace(string(e)) == "" }

// Normalize trims whitespace and lower-cases the address so that case
// variants of the same mailbox map to one stored row.
func (e Email) Normalize() Email {
	return Email(strings.ToLower(strings.TrimSpace(string(e))))
}
