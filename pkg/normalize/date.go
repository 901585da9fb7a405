package normalize

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidDateFormat = errors.New("invalid date format")

// dateLayouts are tried in order. The list mirrors what a general-purpose
// date parser accepts: ISO dates with and without time, long and short
// month names, and common slash forms.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	"January 2 2006",
	"2006/01/02",
	"01/02/2006",
	time.RFC1123,
	time.RFC1123Z,
	time.RFC822,
}

// Date parses input as a calendar date and returns only the date portion
// in ISO form (YYYY-MM-DD). Any time-of-day or zone offset picked up
// during parsing is discarded.
func Date(input string) (string, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return "", ErrInvalidDateFormat
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}

	return "", ErrInvalidDateFormat
}
