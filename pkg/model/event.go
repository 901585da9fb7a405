package model

import (
	"time"
)

const (
	ModeOnline  = "online"
	ModeOffline = "offline"
	ModeHybrid  = "hybrid"
)

// Event is the stored document. Slug, Date and Time are always in
// canonical form by the time validation runs; the events service derives
// them in its pre-persist hooks and callers cannot set Slug directly.
type Event struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Title       string    `json:"title" bson:"title" validate:"required,max=100"`
	Slug        string    `json:"slug" bson:"slug" validate:"required,lowercase"`
	Description string    `json:"description" bson:"description" validate:"required,max=1000"`
	Overview    string    `json:"overview" bson:"overview" validate:"required,max=500"`
	Image       string    `json:"image" bson:"image" validate:"required,url"`
	Venue       string    `json:"venue" bson:"venue" validate:"required"`
	Location    string    `json:"location" bson:"location" validate:"required"`
	Date        string    `json:"date" bson:"date" validate:"required,datetime=2006-01-02"`
	Time        string    `json:"time" bson:"time" validate:"required"`
	Mode        string    `json:"mode" bson:"mode" validate:"required,oneof=online offline hybrid"`
	Audience    string    `json:"audience" bson:"audience" validate:"required"`
	Agenda      []string  `json:"agenda" bson:"agenda" validate:"required,min=1,dive,required"`
	Tags        []string  `json:"tags" bson:"tags" validate:"required,min=1,dive,required"`
	Organizer   string    `json:"organizer" bson:"organizer" validate:"required"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at" validate:"omitempty"`
}
