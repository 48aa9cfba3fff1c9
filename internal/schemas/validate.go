// Package schemas validates company records and their sections against embedded JSON Schemas.
package schemas

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/jonathan/company-prep/internal/types"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed sections/*.schema.json
var schemaFS embed.FS

// Section identifies one independently validated part of a company record by its wire name
type Section string

// Record sections
const (
	SectionCoreBusiness            Section = "coreBusiness"
	SectionFinancials              Section = "financials"
	SectionFunding                 Section = "funding"
	SectionJobStability            Section = "jobStability"
	SectionStability               Section = "stability"
	SectionInterviewConsiderations Section = "interviewConsiderations"
	SectionReferences              Section = "references"
	SectionOtherDetails            Section = "otherDetails"

	// sectionCompany is the top-level shape (name, website, logoUrl)
	sectionCompany Section = "company"
)

// RequiredSections lists the sections every record must carry, in display order
var RequiredSections = []Section{
	SectionCoreBusiness,
	SectionFinancials,
	SectionFunding,
	SectionJobStability,
	SectionStability,
	SectionInterviewConsiderations,
	SectionReferences,
}

var schemaFiles = map[Section]string{
	SectionCoreBusiness:            "sections/core_business.schema.json",
	SectionFinancials:              "sections/financials.schema.json",
	SectionFunding:                 "sections/funding.schema.json",
	SectionJobStability:            "sections/job_stability.schema.json",
	SectionStability:               "sections/stability.schema.json",
	SectionInterviewConsiderations: "sections/interview_considerations.schema.json",
	SectionReferences:              "sections/references.schema.json",
	SectionOtherDetails:            "sections/other_details.schema.json",
	sectionCompany:                 "sections/company.schema.json",
}

var (
	compiledMu sync.Mutex
	compiled   = make(map[Section]*gojsonschema.Schema)
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field of a section
type FieldError struct {
	Section Section
	Field   string
	Message string
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s.%s: %s\n", i+1, err.Section, err.Field, err.Message))
	}
	return sb.String()
}

// Sections returns the distinct sections that failed, in the order they were reported
func (ve *ValidationError) Sections() []Section {
	seen := make(map[Section]bool)
	var out []Section
	for _, e := range ve.Errors {
		if !seen[e.Section] {
			seen[e.Section] = true
			out = append(out, e.Section)
		}
	}
	return out
}

func loadSchema(section Section) (*gojsonschema.Schema, error) {
	compiledMu.Lock()
	defer compiledMu.Unlock()

	if s, ok := compiled[section]; ok {
		return s, nil
	}

	path, ok := schemaFiles[section]
	if !ok {
		return nil, &SchemaLoadError{Path: string(section), Message: "unknown section"}
	}

	data, err := schemaFS.ReadFile(path)
	if err != nil {
		return nil, &SchemaLoadError{Path: path, Message: "schema file not embedded", Cause: err}
	}

	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, &SchemaLoadError{Path: path, Message: "schema validation failed during load", Cause: err}
	}

	compiled[section] = s
	return s, nil
}

// ValidateSection checks one section's raw JSON against its schema.
// A missing or null section is reported as a single root-level error.
func ValidateSection(section Section, raw json.RawMessage) error {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return &ValidationError{Errors: []FieldError{{
			Section: section,
			Field:   "(root)",
			Message: "section is required",
		}}}
	}

	schema, err := loadSchema(section)
	if err != nil {
		return err
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader([]byte(trimmed)))
	if err != nil {
		return &ValidationError{Errors: []FieldError{{
			Section: section,
			Field:   "(root)",
			Message: fmt.Sprintf("invalid JSON: %v", err),
		}}}
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}

	for _, desc := range result.Errors() {
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Section: section,
			Field:   fieldPath(desc),
			Message: desc.Description(),
		})
	}

	return validationErr
}

// fieldPath names the offending field, including the missing property for required errors
func fieldPath(desc gojsonschema.ResultError) string {
	field := desc.Field()
	if field == "" {
		field = "(root)"
	}
	if desc.Type() != "required" {
		return field
	}
	prop, ok := desc.Details()["property"].(string)
	if !ok || prop == "" || strings.HasSuffix(field, prop) {
		return field
	}
	if field == "(root)" {
		return prop
	}
	return field + "." + prop
}

// DecodeSection validates a section and decodes it into its typed form
func DecodeSection[T any](section Section, raw json.RawMessage) (T, error) {
	var out T
	if err := ValidateSection(section, raw); err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("failed to decode section %s: %w", section, err)
	}
	return out, nil
}

// ValidateCompany validates a whole record: the top-level shape, every required section
// and otherDetails when present. Errors from all sections are collected into one ValidationError.
func ValidateCompany(raw []byte) (*types.Company, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, &ValidationError{Errors: []FieldError{{
			Section: sectionCompany,
			Field:   "(root)",
			Message: fmt.Sprintf("expected a JSON object: %v", err),
		}}}
	}

	all := &ValidationError{}
	collect := func(err error) error {
		if err == nil {
			return nil
		}
		if ve, ok := err.(*ValidationError); ok {
			all.Errors = append(all.Errors, ve.Errors...)
			return nil
		}
		return err
	}

	if err := collect(ValidateSection(sectionCompany, raw)); err != nil {
		return nil, err
	}

	for _, section := range RequiredSections {
		if err := collect(ValidateSection(section, fields[string(section)])); err != nil {
			return nil, err
		}
	}

	if other, ok := fields[string(SectionOtherDetails)]; ok && strings.TrimSpace(string(other)) != "null" {
		if err := collect(ValidateSection(SectionOtherDetails, other)); err != nil {
			return nil, err
		}
	}

	if len(all.Errors) > 0 {
		return nil, all
	}

	var company types.Company
	if err := json.Unmarshal(raw, &company); err != nil {
		return nil, fmt.Errorf("failed to decode company: %w", err)
	}
	return &company, nil
}

// ValidateRecord re-validates an already typed record. Validating a validated record
// returns an identical record.
func ValidateRecord(c *types.Company) (*types.Company, error) {
	if c == nil {
		return nil, &ValidationError{Errors: []FieldError{{
			Section: sectionCompany,
			Field:   "(root)",
			Message: "record is required",
		}}}
	}
	raw, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode company: %w", err)
	}
	return ValidateCompany(raw)
}
