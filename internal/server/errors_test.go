package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jonathan/company-prep/internal/companies"
	"github.com/jonathan/company-prep/internal/research"
	"github.com/jonathan/company-prep/internal/schemas"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"input error", &companies.InputError{Message: "Company name is required"}, http.StatusBadRequest},
		{"wrapped input error", fmt.Errorf("lookup: %w", &companies.InputError{Message: "x"}), http.StatusBadRequest},
		{"not found", companies.ErrNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("get: %w", companies.ErrNotFound), http.StatusNotFound},
		{"provider error", &research.ProviderError{Company: "Acme", Message: "quota"}, http.StatusInternalServerError},
		{"invalid record", &schemas.ValidationError{}, http.StatusInternalServerError},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
