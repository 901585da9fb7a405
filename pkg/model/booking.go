package model

import (
	"time"
)

// Booking weakly references an Event by id only. The (event_id, email)
// pair is unique; the index enforces it at insert time.
type Booking struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	EventID   string    `json:"event_id" bson:"event_id" validate:"required,mongodb"`
	Email     string    `json:"email" bson:"email" validate:"required,email"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at" validate:"omitempty"`
}

// BookingRequest is the wire contract for booking creation. EventID is
// authoritative; when it is empty the event is resolved by Slug.
type BookingRequest struct {
	EventID string `json:"eventId"`
	Slug    string `json:"slug,omitempty"`
	Email   string `json:"email"`
}
