// Package handler adapts HTTP requests to the service layer. Handlers return
// *errors.Error values and leave rendering to the central error handler.
package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"jobfair/internal/auth"
	apperrors "jobfair/internal/errors"
	"jobfair/internal/middleware"
)

// MessageResponse is the body of a successful mutation.
type MessageResponse struct {
	Message string `json:"message"`
}

// CreatedResponse is returned when a record is created.
type CreatedResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// bind decodes the request into req and runs struct validation.
func bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return apperrors.Validation(apperrors.MsgMissingFields)
	}
	if err := c.Validate(req); err != nil {
		return validationError(err)
	}
	return nil
}

// validationError reports missing fields with the generic message and
// malformed ones by JSON field name.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperrors.Validation(apperrors.MsgMissingFields)
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return apperrors.Validation(apperrors.MsgMissingFields)
		}
		fields = append(fields, fe.Field())
	}
	return apperrors.Validation(fmt.Sprintf("Datos no válidos: %s", strings.Join(fields, ", ")))
}

// caller returns the identity attached by the gate.
func caller(c echo.Context) (auth.Identity, error) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return auth.Identity{}, apperrors.Unauthenticated()
	}
	return id, nil
}
