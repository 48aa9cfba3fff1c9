package client

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/company-prep/internal/types"
)

var validate = validator.New()

const (
	RatingHelpful    = "helpful"
	RatingNotHelpful = "not-helpful"

	// FeedbackAck is shown after feedback is submitted
	FeedbackAck = "Thank you for your feedback!"
)

// ErrExportNotImplemented is returned by Export
var ErrExportNotImplemented = errors.New("PDF export is not available yet")

// Feedback is a rating of a company page. It is acknowledged locally and never sent anywhere.
type Feedback struct {
	Company string `validate:"required"`
	Rating  string `validate:"required,oneof=helpful not-helpful"`
	Comment string `validate:"max=2000"`
}

// Submit validates the feedback and returns the acknowledgement
func (f Feedback) Submit() (string, error) {
	f.Comment = strings.TrimSpace(f.Comment)
	if err := validate.Struct(f); err != nil {
		return "", err
	}
	return FeedbackAck, nil
}

// Export would render a company report. It only exists as a placeholder.
func Export(_ *types.Company) error {
	return ErrExportNotImplemented
}
