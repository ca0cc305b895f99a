package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrProviderUnavailable is returned when the external recipe provider
	// cannot be reached or answers with a non-success status. Discovery never
	// degrades to a partial result.
	ErrProviderUnavailable = errors.New("recipe provider unavailable")

	// ErrDishNotIdentified is returned when the vision model produced no
	// usable dish label for an uploaded photo. Distinct from provider and
	// configuration failures so handlers can report a content problem.
	ErrDishNotIdentified = errors.New("could not identify a dish")

	// ErrVisionNotConfigured is returned when dish detection is requested but
	// no vision API key is configured.
	ErrVisionNotConfigured = errors.New("vision API key not configured")

	// ErrUnsupportedMedia is returned for uploads that are not images. The
	// check happens before any storage or classification attempt.
	ErrUnsupportedMedia = errors.New("only image uploads are supported")
)

// ValidationError reports malformed recipe input with per-field detail.
// Recipes failing validation are never persisted.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		names = append(names, field)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, field := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", field, e.Fields[field]))
	}
	return "invalid recipe input: " + strings.Join(parts, "; ")
}

// Sides of a combined search, used to tell callers which lookup failed.
const (
	SideLocal  = "local"
	SideOnline = "online"
)

// SearchError wraps a failure from one side of a combined search so the
// caller can craft an appropriate message instead of returning a
// half-populated result as success.
type SearchError struct {
	Side string
	Err  error
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("%s search failed: %v", e.Side, e.Err)
}

func (e *SearchError) Unwrap() error {
	return e.Err
}
