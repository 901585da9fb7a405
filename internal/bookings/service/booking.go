package service

import (
	"context"
	"errors"
	"fmt"

	bookingserrors "gatherly/internal/bookings/errors"
	"gatherly/internal/bookings/repository"
	"gatherly/internal/bookings/validator"
	eventserrors "gatherly/internal/events/errors"
	"gatherly/pkg/config"
	apperrors "gatherly/pkg/errors"
	"gatherly/pkg/kafka"
	"gatherly/pkg/model"
	"gatherly/pkg/normalize"
)

// EventResolver is the slice of the events repository the booking flow
// needs to check referential integrity. The bookings service never writes
// events.
type EventResolver interface {
	FindByID(ctx context.Context, id string) (*model.Event, error)
	FindBySlug(ctx context.Context, slug string) (*model.Event, error)
}

// Publisher is the notification capability; nil disables notifications.
type Publisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type BookingService interface {
	Create(ctx context.Context, req *model.BookingRequest) (*model.Booking, error)
	ListByEvent(ctx context.Context, eventID string, limit int, offset int64) ([]*model.Booking, int64, error)
	ListByEmail(ctx context.Context, email string, limit int, offset int64) ([]*model.Booking, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	events    EventResolver
	validator *validator.BookingValidator
	publisher Publisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	events EventResolver,
	validator *validator.BookingValidator,
	publisher Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		events:    events,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

// Create books a spot on an event. The request may carry the event ID,
// the event slug, or both; the ID wins when both are present. The event
// must exist before the booking is written, and the unique index on
// (event_id, email) keeps one booking per attendee per event.
func (s *bookingService) Create(ctx context.Context, req *model.BookingRequest) (*model.Booking, error) {
	email := normalize.Email(req.Email)
	if email == "" {
		return nil, apperrors.InvalidInput("Email is required")
	}

	event, err := s.resolveEvent(ctx, req)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrEventNotFound) {
			return nil, apperrors.NotFoundWithID("Event", eventRef(req))
		}
		return nil, err
	}

	booking := &model.Booking{
		EventID: event.ID,
		Email:   email,
	}
	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return nil, apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		if errors.Is(err, bookingserrors.ErrDuplicateBooking) {
			return nil, apperrors.Conflict("A booking already exists for this event and email")
		}
		s.cfg.Log.Error("Failed to create booking", "event_id", booking.EventID, "error", err)
		return nil, apperrors.Internal("Failed to create booking", err)
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"event_id", booking.EventID,
		"event_slug", event.Slug,
	)
	s.notifyCreated(ctx, booking)
	return booking, nil
}

// ListByEvent returns one page of an event's bookings plus the total
// count, so paginated callers see the attendance size in every page.
func (s *bookingService) ListByEvent(ctx context.Context, eventID string, limit int, offset int64) ([]*model.Booking, int64, error) {
	if eventID == "" {
		return nil, 0, apperrors.InvalidInput("Event ID cannot be empty")
	}

	bookings, err := s.repo.FindByEvent(ctx, eventID, config.NormalizePaginationLimit(limit), offset)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings by event", "event_id", eventID, "error", err)
		return nil, 0, apperrors.Internal("Failed to retrieve bookings", err)
	}

	total, err := s.repo.CountByEvent(ctx, eventID)
	if err != nil {
		s.cfg.Log.Error("Failed to count bookings by event", "event_id", eventID, "error", err)
		return nil, 0, apperrors.Internal("Failed to retrieve bookings", err)
	}

	return bookings, total, nil
}

func (s *bookingService) ListByEmail(ctx context.Context, email string, limit int, offset int64) ([]*model.Booking, error) {
	email = normalize.Email(email)
	if email == "" {
		return nil, apperrors.InvalidInput("Email cannot be empty")
	}

	bookings, err := s.repo.FindByEmail(ctx, email, config.NormalizePaginationLimit(limit), offset)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings by email", "email", email, "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}

	return bookings, nil
}

// resolveEvent looks up the referenced event by ID when present,
// otherwise by slug. A missing event is the caller's mistake, so both
// lookup misses and malformed IDs surface as ErrEventNotFound rather
// than internal failures.
func (s *bookingService) resolveEvent(ctx context.Context, req *model.BookingRequest) (*model.Event, error) {
	switch {
	case req.EventID != "":
		event, err := s.events.FindByID(ctx, req.EventID)
		if err != nil {
			return nil, s.mapResolveError(err, req.EventID)
		}
		return event, nil
	case req.Slug != "":
		slug := normalize.Slug(req.Slug)
		event, err := s.events.FindBySlug(ctx, slug)
		if err != nil {
			return nil, s.mapResolveError(err, slug)
		}
		return event, nil
	default:
		return nil, apperrors.InvalidInput("Either event ID or event slug is required")
	}
}

func (s *bookingService) mapResolveError(err error, ref string) error {
	if errors.Is(err, eventserrors.ErrNotFound) || errors.Is(err, eventserrors.ErrInvalidID) {
		return fmt.Errorf("%w: %s", bookingserrors.ErrEventNotFound, ref)
	}
	s.cfg.Log.Error("Failed to resolve event for booking", "ref", ref, "error", err)
	return apperrors.Internal("Failed to resolve event", err)
}

func eventRef(req *model.BookingRequest) string {
	if req.EventID != "" {
		return req.EventID
	}
	return normalize.Slug(req.Slug)
}

// notifyCreated publishes a creation notification. Failures are logged
// and never fail the request; the booking is already committed.
func (s *bookingService) notifyCreated(ctx context.Context, booking *model.Booking) {
	if s.publisher == nil {
		return
	}

	msg := kafka.NewMessage(booking.EventID, "booking.created", "bookings", booking)
	if err := s.publisher.Publish(ctx, msg); err != nil {
		s.cfg.Log.Warn("Failed to publish booking notification", "booking_id", booking.ID, "error", err)
	}
}
