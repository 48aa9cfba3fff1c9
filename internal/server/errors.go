package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/company-prep/internal/companies"
)

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var inputErr *companies.InputError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &inputErr):
		return http.StatusBadRequest
	case errors.Is(err, companies.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
