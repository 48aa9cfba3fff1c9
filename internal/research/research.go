// Package research produces company records by asking a generative AI model and validating
// its answer, with a fixed placeholder record for deployments without an API key.
package research

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/company-prep/internal/llm"
	"github.com/jonathan/company-prep/internal/prompts"
	"github.com/jonathan/company-prep/internal/schemas"
	"github.com/jonathan/company-prep/internal/types"
	"github.com/rs/zerolog"
)

// Researcher handles AI-backed company research
type Researcher struct {
	client llm.Client
	tier   llm.ModelTier
	logger zerolog.Logger
}

// NewResearcher creates a Researcher around an existing client.
// A nil client makes every call fail with ErrMissingAPIKey.
func NewResearcher(client llm.Client, logger zerolog.Logger) *Researcher {
	return &Researcher{
		client: client,
		tier:   llm.TierStandard,
		logger: logger,
	}
}

// NewFromAPIKey builds the Gemini client when apiKey is set and returns a
// key-less Researcher otherwise.
func NewFromAPIKey(ctx context.Context, config *llm.Config, apiKey string, logger zerolog.Logger) (*Researcher, error) {
	if apiKey == "" {
		logger.Warn().Msg("GEMINI_API_KEY not set, research will return placeholder data")
		return NewResearcher(nil, logger), nil
	}

	client, err := llm.NewClient(ctx, config, apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return NewResearcher(client, logger), nil
}

// HasAPIKey reports whether research calls can reach the provider
func (r *Researcher) HasAPIKey() bool {
	return r.client != nil
}

// Close releases the underlying client
func (r *Researcher) Close() error {
	if r.client == nil {
		return nil
	}
	return r.client.Close()
}

// ResearchCompany asks the model about name and returns a validated record.
// The record carries the caller's name, never the model's. It is not persisted.
func (r *Researcher) ResearchCompany(ctx context.Context, name string) (*types.Company, error) {
	if r.client == nil {
		return nil, ErrMissingAPIKey
	}

	prompt, err := prompts.Render(prompts.ResearchFile, prompts.ResearchCompanyKey, map[string]string{
		"CompanyName": name,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build research prompt: %w", err)
	}

	r.logger.Info().
		Str("company", name).
		Str("model", r.client.GetModel(r.tier)).
		Msg("researching company")

	text, err := r.client.GenerateContent(ctx, prompt, r.tier)
	if err != nil {
		r.logger.Error().Err(err).Str("company", name).Msg("research call failed")
		return nil, &ProviderError{Company: name, Message: err.Error(), Cause: err}
	}

	fields, err := llm.ExtractObject(text)
	if err != nil {
		r.logger.Error().Err(err).Str("company", name).Msg("unusable research response")
		return nil, fmt.Errorf("failed to extract research for %s: %w", name, err)
	}

	assembled, err := assemble(name, fields)
	if err != nil {
		return nil, err
	}

	company, err := schemas.ValidateCompany(assembled)
	if err != nil {
		r.logger.Error().Err(err).Str("company", name).Msg("research response failed validation")
		return nil, fmt.Errorf("invalid research for %s: %w", name, err)
	}
	return company, nil
}

// assemble builds the record document from the caller's name, the model's optional
// website and the required sections. Other top-level keys from the model are dropped.
func assemble(name string, fields map[string]json.RawMessage) ([]byte, error) {
	doc := make(map[string]json.RawMessage, len(schemas.RequiredSections)+2)

	nameJSON, err := json.Marshal(name)
	if err != nil {
		return nil, fmt.Errorf("failed to encode company name: %w", err)
	}
	doc["name"] = nameJSON

	if raw, ok := fields["website"]; ok {
		var website string
		if json.Unmarshal(raw, &website) == nil && strings.TrimSpace(website) != "" {
			doc["website"] = raw
		}
	}

	for _, section := range schemas.RequiredSections {
		if raw, ok := fields[string(section)]; ok {
			doc[string(section)] = raw
		}
	}

	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble research record: %w", err)
	}
	return out, nil
}
