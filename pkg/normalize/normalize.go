// Package normalize holds the pure canonicalization rules applied to
// user-supplied event fields before persistence: slug derivation, calendar
// date and time-of-day canonical forms, and whitespace cleanup. Nothing in
// this package touches the store; entity services call these explicitly as
// pre-persist hooks.
package normalize

import (
	"strings"
	"unicode"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

// Clean trims the string and collapses internal whitespace runs to a
// single space.
func Clean(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

// CleanSlice cleans every element, dropping empties and duplicates while
// preserving first-seen order. Used for tags and agenda entries.
func CleanSlice(values []string) []string {
	seen := make(map[string]struct{})
	out := []string{}

	for _, v := range values {
		s := Clean(v)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	return out
}

// Email lowercases and trims an address. Format validation happens at the
// entity layer; this only fixes casing and stray whitespace.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
