package domain

import (
	"sort"
	"strings"
)

// ValidationError describes a single invalid profile field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors collects every violation found in one pass
type ValidationErrors []*ValidationError

func (ve ValidationErrors) Error() string {
	parts := make([]string, 0, len(ve))
	for _, e := range ve {
		parts = append(parts, e.Error())
	}
	return strings.Join(parts, "; ")
}

// Unwrap exposes the individual errors to errors.Is and errors.As
func (ve ValidationErrors) Unwrap() []error {
	errs := make([]error, 0, len(ve))
	for _, e := range ve {
		errs = append(errs, e)
	}
	return errs
}

func (ve *ValidationErrors) add(field, message string) {
	*ve = append(*ve, &ValidationError{Field: field, Message: message})
}

// sort orders errors by field so messages are stable across runs
func (ve ValidationErrors) sort() {
	sort.SliceStable(ve, func(i, j int) bool { return ve[i].Field < ve[j].Field })
}
