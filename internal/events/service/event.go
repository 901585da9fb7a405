package service

import (
	"context"
	"errors"
	"strings"

	eventserrors "gatherly/internal/events/errors"
	"gatherly/internal/events/repository"
	"gatherly/internal/events/validator"
	"gatherly/pkg/assets"
	"gatherly/pkg/config"
	apperrors "gatherly/pkg/errors"
	"gatherly/pkg/kafka"
	"gatherly/pkg/model"
	"gatherly/pkg/normalize"
)

// Publisher is the notification capability; nil disables notifications.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
}

// Message aliases the kafka message so mocks do not need the broker package.
type Message = kafka.Message

type EventService interface {
	Create(ctx context.Context, event *model.Event) error
	CreateWithImage(ctx context.Context, event *model.Event, image []byte, filename string) error
	GetByID(ctx context.Context, id string) (*model.Event, error)
	GetBySlug(ctx context.Context, slug string) (*model.Event, error)
	List(ctx context.Context, limit int, offset int64) ([]*model.Event, error)
	Search(ctx context.Context, date string, mode string, limit int, offset int64) ([]*model.Event, error)
}

type eventService struct {
	repo      repository.EventRepository
	uploader  assets.Uploader
	validator *validator.EventValidator
	publisher Publisher
	cfg       *config.Config
}

func NewEventService(
	repo repository.EventRepository,
	uploader assets.Uploader,
	validator *validator.EventValidator,
	publisher Publisher,
	cfg *config.Config,
) EventService {
	return &eventService{
		repo:      repo,
		uploader:  uploader,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

// CreateWithImage runs the tail of the creation pipeline: upload the image
// to the asset host, then persist. The upload is awaited to completion and
// a failure aborts before any store write, so no event ever references an
// image that was never uploaded. A persist failure after a successful
// upload leaves an orphaned asset behind; there is no compensating delete.
func (s *eventService) CreateWithImage(ctx context.Context, event *model.Event, image []byte, filename string) error {
	url, err := s.uploader.Upload(ctx, image, filename, s.cfg.AssetUploadFolder)
	if err != nil {
		s.cfg.Log.Error("Event image upload failed", "filename", filename, "error", err)
		return apperrors.UploadFailed("Failed to upload event image", err)
	}

	event.Image = url
	return s.Create(ctx, event)
}

// Create cleans and normalizes the incoming fields, validates the result
// and persists it. Slug is always derived from the title here; callers
// cannot set it independently.
func (s *eventService) Create(ctx context.Context, event *model.Event) error {
	s.clean(event)
	if err := s.applyNormalization(event); err != nil {
		s.cfg.Log.Warn("Event normalization failed", "title", event.Title, "error", err)
		return apperrors.InvalidInput(err.Error())
	}
	if err := s.validate(event); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, event); err != nil {
		if errors.Is(err, eventserrors.ErrDuplicateSlug) {
			return apperrors.Conflict("An event with this title already exists")
		}
		s.cfg.Log.Error("Failed to create event", "slug", event.Slug, "error", err)
		return apperrors.Internal("Failed to create event", err)
	}

	s.cfg.Log.Info("Event created successfully",
		"id", event.ID,
		"slug", event.Slug,
		"date", event.Date,
		"mode", event.Mode,
	)
	s.notifyCreated(ctx, event)
	return nil
}

func (s *eventService) GetByID(ctx context.Context, id string) (*model.Event, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Event ID cannot be empty")
	}

	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapLookupError(err, id)
	}

	return event, nil
}

func (s *eventService) GetBySlug(ctx context.Context, slug string) (*model.Event, error) {
	if slug == "" {
		return nil, apperrors.InvalidInput("Event slug cannot be empty")
	}

	event, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, eventserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Event", slug)
		}
		return nil, apperrors.Internal("Failed to retrieve event", err)
	}

	return event, nil
}

func (s *eventService) List(ctx context.Context, limit int, offset int64) ([]*model.Event, error) {
	events, err := s.repo.FindAll(ctx, config.NormalizePaginationLimit(limit), offset)
	if err != nil {
		s.cfg.Log.Error("Failed to list events", "error", err)
		return nil, apperrors.Internal("Failed to retrieve events", err)
	}

	return events, nil
}

func (s *eventService) Search(ctx context.Context, date string, mode string, limit int, offset int64) ([]*model.Event, error) {
	if date == "" && mode == "" {
		return nil, apperrors.InvalidInput("At least one of date or mode is required")
	}

	if date != "" {
		normalized, err := normalize.Date(date)
		if err != nil {
			return nil, apperrors.InvalidInput("Invalid date filter")
		}
		date = normalized
	}

	if mode != "" && mode != model.ModeOnline && mode != model.ModeOffline && mode != model.ModeHybrid {
		return nil, apperrors.InvalidInput("Mode must be one of: online, offline, hybrid")
	}

	events, err := s.repo.FindByDateAndMode(ctx, date, mode, config.NormalizePaginationLimit(limit), offset)
	if err != nil {
		s.cfg.Log.Error("Failed to search events", "date", date, "mode", mode, "error", err)
		return nil, apperrors.Internal("Failed to search events", err)
	}

	return events, nil
}

// --- Helpers ---

func (s *eventService) clean(e *model.Event) {
	e.Title = normalize.Clean(e.Title)
	e.Description = normalize.Clean(e.Description)
	e.Overview = normalize.Clean(e.Overview)
	e.Venue = normalize.Clean(e.Venue)
	e.Location = normalize.Clean(e.Location)
	e.Audience = normalize.Clean(e.Audience)
	e.Organizer = normalize.Clean(e.Organizer)
	e.Mode = strings.ToLower(normalize.Clean(e.Mode))
	e.Agenda = normalize.CleanSlice(e.Agenda)
	e.Tags = normalize.CleanSlice(e.Tags)
}

// applyNormalization is the pre-persist hook set: slug from title, date
// and time to canonical stored form. Runs on every create since all three
// fields are newly set there.
func (s *eventService) applyNormalization(e *model.Event) error {
	e.Slug = normalize.Slug(e.Title)

	date, err := normalize.Date(e.Date)
	if err != nil {
		return err
	}
	e.Date = date

	timeOfDay, err := normalize.TimeOfDay(e.Time)
	if err != nil {
		return err
	}
	e.Time = timeOfDay

	return nil
}

func (s *eventService) validate(event *model.Event) error {
	if err := s.validator.Validate(event); err != nil {
		s.cfg.Log.Warn("Event validation failed", "error", err)
		return apperrors.Validation("Event validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

func (s *eventService) mapLookupError(err error, id string) error {
	if errors.Is(err, eventserrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Event", id)
	}
	if errors.Is(err, eventserrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid event ID format")
	}
	return apperrors.Internal("Failed to retrieve event", err)
}

// notifyCreated publishes a creation notification. Failures are logged
// and never fail the request; the event is already committed.
func (s *eventService) notifyCreated(ctx context.Context, event *model.Event) {
	if s.publisher == nil {
		return
	}

	msg := kafka.NewMessage(event.Slug, "event.created", "events", event)
	if err := s.publisher.Publish(ctx, msg); err != nil {
		s.cfg.Log.Warn("Failed to publish event notification", "slug", event.Slug, "error", err)
	}
}
