package auth

import (
	"strings"

	"github.com/mpmulbi/aspirasi-backend/internal/domain"
)

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (in LoginInput) Validate() error {
	var errs []domain.FieldError
	if strings.TrimSpace(in.Username) == "" {
		errs = append(errs, domain.FieldError{Field: "username", Message: "is required"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
