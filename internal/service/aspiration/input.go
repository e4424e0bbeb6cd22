package aspiration

import (
	"strings"

	"github.com/mpmulbi/aspirasi-backend/internal/domain"
)

// SubmitInput holds the public submission payload.
type SubmitInput struct {
	Name        string
	Email       string
	Category    domain.AspirationCategory
	Subject     string
	Description string
}

// Validate checks all fields and collects all errors. An empty category is
// allowed and defaults to LAINNYA on submit.
func (i SubmitInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.Name) == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if strings.TrimSpace(i.Email) == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "required"})
	}
	if strings.TrimSpace(i.Subject) == "" {
		errs = append(errs, domain.FieldError{Field: "subject", Message: "required"})
	}
	if strings.TrimSpace(i.Description) == "" {
		errs = append(errs, domain.FieldError{Field: "description", Message: "required"})
	}
	if i.Category != "" && !i.Category.IsValid() {
		errs = append(errs, domain.FieldError{Field: "category", Message: "unknown category"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// StaffUpdateInput holds a partial staff update. Nil fields are left
// untouched on the record.
type StaffUpdateInput struct {
	Status        *domain.AspirationStatus
	AssignedTo    *domain.UserRole
	InternalNotes *string
	TanggapanKema *string
	TanggapanMPM  *string
}

// Validate checks all fields and collects all errors.
func (i StaffUpdateInput) Validate() error {
	var errs []domain.FieldError

	if i.Status != nil && !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "unknown status"})
	}
	if i.AssignedTo != nil && *i.AssignedTo != "" && !i.AssignedTo.IsValid() {
		errs = append(errs, domain.FieldError{Field: "assignedTo", Message: "unknown role"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ResponseInput holds an official response to append.
type ResponseInput struct {
	Content    string
	AuthorRole domain.UserRole
	AuthorName string
	FileURL    string
}

// Validate checks all fields and collects all errors.
func (i ResponseInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.Content) == "" {
		errs = append(errs, domain.FieldError{Field: "content", Message: "required"})
	}
	if strings.TrimSpace(i.AuthorName) == "" {
		errs = append(errs, domain.FieldError{Field: "authorName", Message: "required"})
	}
	if !i.AuthorRole.IsValid() {
		errs = append(errs, domain.FieldError{Field: "authorRole", Message: "unknown role"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
