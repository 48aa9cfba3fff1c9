package client

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedback_Submit(t *testing.T) {
	ack, err := Feedback{Company: "Acme", Rating: RatingHelpful}.Submit()
	require.NoError(t, err)
	assert.Equal(t, "Thank you for your feedback!", ack)

	ack, err = Feedback{Company: "Acme", Rating: RatingNotHelpful, Comment: "  missing funding data  "}.Submit()
	require.NoError(t, err)
	assert.Equal(t, FeedbackAck, ack)
}

func TestFeedback_Invalid(t *testing.T) {
	tests := map[string]Feedback{
		"no rating":    {Company: "Acme"},
		"bad rating":   {Company: "Acme", Rating: "meh"},
		"no company":   {Rating: RatingHelpful},
		"long comment": {Company: "Acme", Rating: RatingHelpful, Comment: strings.Repeat("x", 2001)},
	}
	for name, fb := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := fb.Submit()
			assert.Error(t, err)
		})
	}
}

func TestExport(t *testing.T) {
	assert.ErrorIs(t, Export(nil), ErrExportNotImplemented)
}
