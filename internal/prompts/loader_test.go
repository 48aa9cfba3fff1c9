package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ResearchPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get(ResearchFile, ResearchCompanyKey)
	require.NoError(t, err)
	assert.Contains(t, prompt, "{{.CompanyName}}")
	assert.Contains(t, prompt, `"interviewConsiderations"`)
	assert.Contains(t, prompt, "omit isPositive")
}

func TestGet_InvalidFile(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	ClearCache()

	_, err := Get(ResearchFile, "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet_Panics(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() {
		MustGet("nonexistent.json", "some-key")
	})
}

func TestRender_EmbedsCompanyName(t *testing.T) {
	ClearCache()

	prompt, err := Render(ResearchFile, ResearchCompanyKey, map[string]string{"CompanyName": "Acme Corp"})
	require.NoError(t, err)
	assert.Contains(t, prompt, `Research the company "Acme Corp"`)
	assert.NotContains(t, prompt, "{{.CompanyName}}")
}

func TestFormat(t *testing.T) {
	template := "Hello {{.Name}}, welcome to {{.Company}}!"
	data := map[string]string{
		"Name":    "Alice",
		"Company": "Acme Corp",
	}

	assert.Equal(t, "Hello Alice, welcome to Acme Corp!", Format(template, data))
}

func TestFormat_EmptyData(t *testing.T) {
	template := "Hello {{.Name}}"

	assert.Equal(t, template, Format(template, map[string]string{}))
}

func TestList(t *testing.T) {
	ClearCache()

	keys, err := List(ResearchFile)
	require.NoError(t, err)
	assert.Equal(t, []string{ResearchCompanyKey}, keys)
}

func TestCaching(t *testing.T) {
	ClearCache()

	prompt1, err := Get(ResearchFile, ResearchCompanyKey)
	require.NoError(t, err)

	prompt2, err := Get(ResearchFile, ResearchCompanyKey)
	require.NoError(t, err)

	assert.Equal(t, prompt1, prompt2)
}
