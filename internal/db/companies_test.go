package db

import (
	"io/fs"
	"testing"

	"github.com/jonathan/company-prep/internal/db/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Affirm", "affirm"},
		{"Affirm, Inc.", "affirminc"},
		{"Acme Corp", "acmecorp"},
		{"ACME corp", "acmecorp"},
		{"open AI", "openai"},
		{"100 Thieves", "100thieves"},
		{"  Spaces Around  ", "spacesaround"},
		{"", ""},
		{"   ", ""},
		{"!!!", "!!!"},
		{"トヨタ", "トヨタ"},
		{"日本電気 株式会社", "日本電気株式会社"},
		{"Яндекс", "яндекс"},
		{"Škoda Auto", "škodaauto"},
		{"C++", "c++"},
		{"C#", "c#"},
		{"AT&T", "at&t"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeName(tt.input))
		})
	}
}

func TestNormalizeName_DistinctNamesStayDistinct(t *testing.T) {
	for _, pair := range [][2]string{
		{"トヨタ", "日本電気"},
		{"Яндекс", "Сбер"},
		{"C++", "C#"},
		{"C#", "C"},
	} {
		assert.NotEqual(t, NormalizeName(pair[0]), NormalizeName(pair[1]), pair)
		assert.NotEmpty(t, NormalizeName(pair[0]))
	}
}

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"acme", "acme"},
		{"100%", `100\%`},
		{"a_b", `a\_b`},
		{`back\slash`, `back\\slash`},
		{`%_\`, `\%\_\\`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, EscapeLike(tt.input))
		})
	}
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%acm%", containsPattern("acm"))
	assert.Equal(t, `%50\% off%`, containsPattern("50% off"))
}

func TestMigrationsEmbedded(t *testing.T) {
	files, err := fs.Glob(migrations.FS, "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	data, err := fs.ReadFile(migrations.FS, files[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "-- +goose Up")
	assert.Contains(t, string(data), "UNIQUE (name_normalized)")
	assert.Contains(t, string(data), "search_history")
}
