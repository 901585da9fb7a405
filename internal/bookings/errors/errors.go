package errors

import "errors"

var (
	ErrEventNotFound = errors.New("referenced event does not exist")

	ErrDuplicateBooking = errors.New("booking already exists for this event and email")
)
