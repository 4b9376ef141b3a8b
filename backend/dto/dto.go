// Package dto maps models to the wire JSON and validates incoming payloads.
//
// Every writable resource has an Input type (decoded from JSON or multipart
// form, checked with utils.Validate, copied onto the model with Apply) and a
// Response type. Nested collections are read-only and only appear in
// responses.
package dto

import "strings"

// URLFunc turns a stored object name into a public URL.
type URLFunc func(name string) string

func fileURL(name string, url URLFunc) *string {
	if name == "" {
		return nil
	}
	s := url(name)
	return &s
}

// nilIfBlank treats an empty optional string the same as an absent one.
func nilIfBlank(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }
