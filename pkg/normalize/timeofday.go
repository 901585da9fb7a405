package normalize

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	ErrInvalidTimeFormat = errors.New("invalid time format")
	ErrInvalidTimeValues = errors.New("invalid time values")
)

// reTimeOfDay accepts H:MM or HH:MM with an optional case-insensitive
// AM/PM suffix and tolerates surrounding whitespace. The hour alternation
// admits 0-23 so that plain 24-hour inputs like "25:00" fail the pattern,
// while "13:00 PM" still matches and is left to the range check below.
var reTimeOfDay = regexp.MustCompile(`^\s*([01]?[0-9]|2[0-3]):([0-5][0-9])\s*([AaPp][Mm])?\s*$`)

// TimeOfDay converts a time-of-day string to canonical 24-hour HH:MM.
// 12 AM maps to hour 00, 12 PM stays 12, and any other PM hour gains 12;
// a resulting hour outside [0,23] fails with ErrInvalidTimeValues rather
// than being rejected upfront.
func TimeOfDay(input string) (string, error) {
	m := reTimeOfDay.FindStringSubmatch(input)
	if m == nil {
		return "", ErrInvalidTimeFormat
	}

	hour, _ := strconv.Atoi(m[1])
	minuteStr := m[2]
	meridiem := strings.ToUpper(m[3])

	switch meridiem {
	case "AM":
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour != 12 {
			hour += 12
		}
	}

	minute, _ := strconv.Atoi(minuteStr)
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return "", ErrInvalidTimeValues
	}

	return fmt.Sprintf("%02d:%s", hour, minuteStr), nil
}
