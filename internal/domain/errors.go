package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for domain operations
var (
	// ErrServerOffline indicates the filmhub backend is unreachable
	ErrServerOffline = errors.New("server is unreachable")

	// ErrAuthFailed indicates the session is missing or no longer valid
	ErrAuthFailed = errors.New("authentication required")

	// ErrNotFound indicates the requested resource does not exist
	ErrNotFound = errors.New("not found")
)

// ValidationError carries field-level errors returned by the server
// on login, registration and profile updates. The fields are surfaced
// verbatim for presentation and never interpreted by the store layer.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("validation failed: ")
	for i, f := range names {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%s: %s", f, strings.Join(e.Fields[f], ", "))
	}
	return b.String()
}
