// Package schemas provides JSON Schema validation for the analysis report
// shape. The schema is embedded so validation needs no filesystem access.
package schemas

import (
	"fmt"
	"strings"
	"sync"

	_ "embed"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed report_schema.json
var reportSchemaJSON string

var (
	reportSchema     *gojsonschema.Schema
	reportSchemaOnce sync.Once
	reportSchemaErr  error
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// ValidateReport validates serialized report JSON against the embedded
// report schema. Returns nil when valid, a *ValidationError describing each
// mismatch otherwise.
func ValidateReport(data []byte) error {
	reportSchemaOnce.Do(func() {
		reportSchema, reportSchemaErr = gojsonschema.NewSchema(
			gojsonschema.NewStringLoader(reportSchemaJSON))
	})
	if reportSchemaErr != nil {
		return fmt.Errorf("failed to load report schema: %w", reportSchemaErr)
	}

	result, err := reportSchema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("failed to validate document: %w", err)
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}
