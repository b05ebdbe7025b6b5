// Package services defines the business logic for the listing feed, the
// contact pipeline, site content pages and the admin operations.
// This file centralizes common service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer and translation
// into user-facing messages or HTTP status codes should be performed at the
// handler/controller layer.
package services

import (
	"errors"
	"sort"
	"strings"
)

// Listing feed errors.
var (
	// ErrInvalidParameters is returned when offset or limit is not a
	// non-negative integer. No query is issued in that case.
	ErrInvalidParameters = errors.New("invalid parameters")
)

// Contact pipeline errors.
var (
	// ErrValidation is matched by every *ValidationError via errors.Is.
	ErrValidation = errors.New("validation failed")
)

// Content and admin errors.
var (
	// ErrPostNotFound indicates the blog post does not exist or is unpublished.
	ErrPostNotFound = errors.New("post not found")

	// ErrSubmissionNotFound indicates the contact submission does not exist.
	ErrSubmissionNotFound = errors.New("submission not found")

	// ErrNotFound is returned by admin operations on a missing row.
	ErrNotFound = errors.New("not found")

	// ErrProtected is returned when a currency or status is still referenced
	// by a listing and therefore cannot be deleted.
	ErrProtected = errors.New("record is in use")

	// ErrConflict is returned when a listing name is already taken.
	ErrConflict = errors.New("conflict")

	// ErrInvalidListing is returned when a new listing breaks a data rule
	// (negative price, inactive status or currency, missing name).
	ErrInvalidListing = errors.New("invalid listing")
)

// ValidationError carries field-level messages, keyed by field name.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "validation failed: " + strings.Join(keys, ", ")
}

// Is reports ErrValidation as a match.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], msg)
}
