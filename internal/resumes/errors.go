package resumes

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/portfolio-api/internal/auth"
	"github.com/JaimeStill/portfolio-api/pkg/validation"
)

var ErrNotFound = errors.New("no resume uploaded")

// MapHTTPStatus converts domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if _, ok := validation.As(err); ok {
		return http.StatusUnprocessableEntity
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, auth.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
