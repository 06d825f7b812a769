package util

import (
	"net/http"

	"github.com/pkg/errors"
)

// Error kinds surfaced by the catalog engine. Services wrap these with
// pkg/errors so controllers can translate them with errors.Is while the
// message keeps the full cause chain.
var (
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
	ErrNotFound   = errors.New("not found")
	ErrIntegrity  = errors.New("integrity violation")
)

// StatusForError maps an error kind to the HTTP status the API contract
// uses. Anything unrecognized is a server error.
func StatusForError(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
