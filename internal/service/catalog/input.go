package catalog

import (
	"strings"

	"github.com/mpmulbi/aspirasi-backend/internal/domain"
)

// LegislativeInput holds the payload for creating a legislative document.
type LegislativeInput struct {
	Title    string
	Category string
	URL      string
}

// Validate checks all fields and collects all errors.
func (i LegislativeInput) Validate() error {
	var errs []domain.FieldError
	if strings.TrimSpace(i.Title) == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	}
	if strings.TrimSpace(i.URL) == "" {
		errs = append(errs, domain.FieldError{Field: "url", Message: "required"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// StructureMemberInput holds the payload for creating a structure member.
type StructureMemberInput struct {
	Name     string
	Position string
	Order    int
	PhotoURL string
}

// Validate checks all fields and collects all errors.
func (i StructureMemberInput) Validate() error {
	var errs []domain.FieldError
	if strings.TrimSpace(i.Name) == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if strings.TrimSpace(i.Position) == "" {
		errs = append(errs, domain.FieldError{Field: "position", Message: "required"})
	}
	if i.Order < 0 {
		errs = append(errs, domain.FieldError{Field: "order", Message: "must be non-negative"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// SupervisionInput holds the payload for creating a supervision activity.
// A zero date defaults to the current time.
type SupervisionInput struct {
	Title       string
	Date        int64
	Description string
}

// Validate checks all fields and collects all errors.
func (i SupervisionInput) Validate() error {
	var errs []domain.FieldError
	if strings.TrimSpace(i.Title) == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	}
	if i.Date < 0 {
		errs = append(errs, domain.FieldError{Field: "date", Message: "must be non-negative"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
