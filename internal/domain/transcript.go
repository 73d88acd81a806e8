package domain

import (
	"time"

	"github.com/google/uuid"
)

// Transcript is a stored lesson transcript: newline-delimited tagged lines
// containing zero or more "Key Phrases:" sections.
type Transcript struct {
	ID         uuid.UUID
	Name       string
	Content    string
	RepairedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsRepaired returns true if the transcript has been through a repair pass.
func (t *Transcript) IsRepaired() bool {
	return t.RepairedAt != nil
}

// Validate checks the fields required to persist a transcript.
func (t *Transcript) Validate() error {
	var errs []FieldError
	if t.Name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "required"})
	}
	if len(t.Name) > 255 {
		errs = append(errs, FieldError{Field: "name", Message: "must be at most 255 characters"})
	}
	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}
