package logger

import "context"

type contextKey string

const logFieldsKey contextKey = "log_fields"

// LogFields contains structured fields automatically added to all logs within
// a context. Fields flow through context enrichment, so business context
// (project, inspection id, request generation) shows up on every log
// statement without being threaded by hand.
type LogFields struct {
	Project       *string // Project whose timeline is being inspected
	InspectionID  *int64  // Snowflake ID of the inspection request
	Generation    *string // Lifecycle generation token of the fetch
	CatalogSource *string // Where the use-case catalog was loaded from
	Component     string  // Component name (e.g., "insight.timeline.inspection")
}

// WithLogFields enriches context with structured log fields.
// Multiple calls merge fields, with newer non-nil/non-empty values taking
// precedence. Context timeouts and cancellation are preserved.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	existing := GetLogFields(ctx)
	merged := mergeFields(existing, fields)
	return context.WithValue(ctx, logFieldsKey, merged)
}

// GetLogFields retrieves log fields from context.
// Returns empty LogFields if none are set.
func GetLogFields(ctx context.Context) LogFields {
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

func mergeFields(existing, next LogFields) LogFields {
	result := existing

	if next.Project != nil {
		result.Project = next.Project
	}
	if next.InspectionID != nil {
		result.InspectionID = next.InspectionID
	}
	if next.Generation != nil {
		result.Generation = next.Generation
	}
	if next.CatalogSource != nil {
		result.CatalogSource = next.CatalogSource
	}
	if next.Component != "" {
		result.Component = next.Component
	}

	return result
}

// Ptr is a helper to create a pointer from a value.
// Useful for setting LogFields inline: logger.WithLogFields(ctx, logger.LogFields{Project: logger.Ptr(name)})
func Ptr[T any](v T) *T {
	return &v
}

// Truncate truncates a string to maxLen characters, appending "..." if truncated.
// Useful for logging potentially long strings like summaries or citations.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
