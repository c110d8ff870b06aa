package documents

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound      = errors.New("document not found")
	ErrStorage       = errors.New("document storage failed")
	ErrInvalidFolder = errors.New("invalid document folder")
)

// MapHTTPStatus converts domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
