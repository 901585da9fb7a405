package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"gatherly/internal/events/service"
	apperrors "gatherly/pkg/errors"
	httputil "gatherly/pkg/http"
	"gatherly/pkg/logger"
	"gatherly/pkg/model"
)

type EventHandler struct {
	service       service.EventService
	log           *logger.Logger
	maxUploadSize int64
}

func NewEventHandler(service service.EventService, log *logger.Logger, maxUploadSize int64) *EventHandler {
	return &EventHandler{
		service:       service,
		log:           log,
		maxUploadSize: maxUploadSize,
	}
}

// Create is the multipart entry point of the event creation pipeline:
// parse the form, require the image part, decode tags and agenda, then
// hand image bytes and fields to the service for upload and persist.
// Every failure answers with a structured JSON body; nothing is rethrown.
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		h.log.Warn("Malformed multipart form", "error", err)
		h.writeFailure(w, "Create", apperrors.InvalidInput("Malformed form data"))
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		h.writeFailure(w, "Create", apperrors.InvalidInput("Event image is required"))
		return
	}
	defer file.Close()

	tags, agenda, err := parseStructuredFields(r)
	if err != nil {
		h.writeFailure(w, "Create", apperrors.InvalidInput("Invalid tags or agenda format"))
		return
	}

	image, err := io.ReadAll(file)
	if err != nil {
		h.log.Error("Failed to read image payload", "error", err)
		h.writeFailure(w, "Create", apperrors.InvalidInput("Could not read event image"))
		return
	}

	event := &model.Event{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Overview:    r.FormValue("overview"),
		Venue:       r.FormValue("venue"),
		Location:    r.FormValue("location"),
		Date:        r.FormValue("date"),
		Time:        r.FormValue("time"),
		Mode:        r.FormValue("mode"),
		Audience:    r.FormValue("audience"),
		Organizer:   r.FormValue("organizer"),
		Tags:        tags,
		Agenda:      agenda,
	}

	if err := h.service.CreateWithImage(r.Context(), event, image, header.Filename); err != nil {
		h.writeFailure(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, "Event created successfully", event); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *EventHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeFailure(w, "GetAll", err)
		return
	}

	events, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		h.writeFailure(w, "GetAll", err)
		return
	}

	if err := httputil.WriteEvents(w, "Events fetched successfully", events); err != nil {
		h.log.Error("failed to write events response", "handler", "GetAll", "error", err)
	}
}

func (h *EventHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	event, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeFailure(w, "GetByID", err)
		return
	}

	if err := httputil.WriteEvent(w, "Event fetched successfully", event); err != nil {
		h.log.Error("failed to write event response", "handler", "GetByID", "error", err)
	}
}

func (h *EventHandler) GetBySlug(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	event, err := h.service.GetBySlug(r.Context(), ps.ByName("slug"))
	if err != nil {
		h.writeFailure(w, "GetBySlug", err)
		return
	}

	if err := httputil.WriteEvent(w, "Event fetched successfully", event); err != nil {
		h.log.Error("failed to write event response", "handler", "GetBySlug", "error", err)
	}
}

func (h *EventHandler) Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()

	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeFailure(w, "Search", err)
		return
	}

	events, err := h.service.Search(r.Context(), query.Get("date"), query.Get("mode"), limit, offset)
	if err != nil {
		h.writeFailure(w, "Search", err)
		return
	}

	if err := httputil.WriteEvents(w, "Events fetched successfully", events); err != nil {
		h.log.Error("failed to write events response", "handler", "Search", "error", err)
	}
}

func (h *EventHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/events", h.Create)
	router.GET("/api/v1/events", h.GetAll)
	router.GET("/api/v1/events/search", h.Search)
	router.GET("/api/v1/events/id/:id", h.GetByID)
	router.GET("/api/v1/events/slug/:slug", h.GetBySlug)
}

func (h *EventHandler) writeFailure(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httputil.WriteFailure(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "error", writeErr)
	}
}

// parseStructuredFields decodes the tags and agenda form fields, which
// arrive as JSON array strings.
func parseStructuredFields(r *http.Request) (tags []string, agenda []string, err error) {
	if err = json.Unmarshal([]byte(r.FormValue("tags")), &tags); err != nil {
		return nil, nil, err
	}
	if err = json.Unmarshal([]byte(r.FormValue("agenda")), &agenda); err != nil {
		return nil, nil, err
	}
	return tags, agenda, nil
}
