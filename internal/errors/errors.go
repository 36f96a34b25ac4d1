package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// Kind classifies an error for transport mapping.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindDependency
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthentication:
		return "authentication"
	case KindAuthorization:
		return "authorization"
	case KindNotFound:
		return "not_found"
	case KindDependency:
		return "dependency"
	default:
		return "unknown"
	}
}

// StatusCode returns the HTTP status for the kind.
func (k Kind) StatusCode() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Client-facing messages.
const (
	MsgMissingFields      = "Faltan datos."
	MsgInvalidCredentials = "Credenciales incorrectas"
	MsgUnauthorized       = "No autorizado"
	MsgForbidden          = "Acceso denegado"
	MsgInternal           = "Error interno del servidor"
	MsgEmailInUse         = "El correo ya está en uso."
	MsgInvalidRole        = "El rol no es válido."
	MsgInvalidName        = "El nombre no puede contener '@'."
)

// Error is a classified application error. Message is safe to show to
// clients; Err carries the underlying cause and is only logged.
type Error struct {
	Kind    Kind
	Message string
	Code    string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation reports missing or malformed input.
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg, Code: "VALIDATION_ERROR"}
}

// Unauthenticated reports an absent or unusable token.
func Unauthenticated() *Error {
	return &Error{Kind: KindAuthentication, Message: MsgUnauthorized, Code: "UNAUTHENTICATED"}
}

// InvalidCredentials reports a failed login.
func InvalidCredentials() *Error {
	return &Error{Kind: KindAuthentication, Message: MsgInvalidCredentials, Code: "INVALID_CREDENTIALS"}
}

// Forbidden reports a valid identity lacking role or ownership.
func Forbidden() *Error {
	return &Error{Kind: KindAuthorization, Message: MsgForbidden, Code: "FORBIDDEN"}
}

// NotFound reports a missing referenced record.
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg, Code: "NOT_FOUND"}
}

// Dependency wraps a store, hasher, signer or blob store failure. The client
// only ever sees MsgInternal.
func Dependency(op string, err error) *Error {
	return &Error{Kind: KindDependency, Message: MsgInternal, Code: "INTERNAL_ERROR", Err: fmt.Errorf("%s: %w", op, err)}
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps any error to an HTTPError. Unclassified errors become
// an opaque 500.
func MapErrorToHTTP(err error) *HTTPError {
	var appErr *Error
	if errors.As(err, &appErr) {
		msg := appErr.Message
		if appErr.Kind == KindDependency || appErr.Kind == 0 {
			msg = MsgInternal
		}
		return NewHTTPError(appErr.Kind.StatusCode(), msg, appErr.Code)
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		if echoErr.Code >= http.StatusInternalServerError {
			return NewHTTPError(echoErr.Code, MsgInternal, "INTERNAL_ERROR")
		}
		switch m := echoErr.Message.(type) {
		case ErrorResponse:
			return NewHTTPError(echoErr.Code, m.Error, m.Code)
		case string:
			return NewHTTPError(echoErr.Code, m, "")
		default:
			return NewHTTPError(echoErr.Code, http.StatusText(echoErr.Code), "")
		}
	}

	return NewHTTPError(http.StatusInternalServerError, MsgInternal, "INTERNAL_ERROR")
}

// IsDependency reports whether err should be logged as a server fault.
func IsDependency(err error) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind == KindDependency || appErr.Kind == 0
	}
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		return echoErr.Code >= http.StatusInternalServerError
	}
	return true
}

// NewHTTPErrorHandler renders every handler error as an ErrorResponse and logs
// server faults with their full cause.
func NewHTTPErrorHandler(logger logrus.FieldLogger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		httpErr := MapErrorToHTTP(err)
		if IsDependency(err) {
			logger.WithFields(logrus.Fields{
				"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
				"method":     c.Request().Method,
				"path":       c.Path(),
				"status":     httpErr.StatusCode,
			}).WithError(err).Error("request failed")
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(httpErr.StatusCode)
		} else {
			writeErr = c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
		}
		if writeErr != nil {
			logger.WithError(writeErr).Warn("write error response")
		}
	}
}
