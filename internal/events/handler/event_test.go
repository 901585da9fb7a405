package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"

	"gatherly/internal/events/service"
	apperrors "gatherly/pkg/errors"
	"gatherly/pkg/logger"
	"gatherly/pkg/model"
)

type mockEventService struct {
	createWithImageFunc func(ctx context.Context, event *model.Event, image []byte, filename string) error
	getByIDFunc         func(ctx context.Context, id string) (*model.Event, error)
	getBySlugFunc       func(ctx context.Context, slug string) (*model.Event, error)
	listFunc            func(ctx context.Context, limit int, offset int64) ([]*model.Event, error)
	searchFunc          func(ctx context.Context, date, mode string, limit int, offset int64) ([]*model.Event, error)
	createCalls         int
}

func (m *mockEventService) Create(ctx context.Context, event *model.Event) error {
	return nil
}

func (m *mockEventService) CreateWithImage(ctx context.Context, event *model.Event, image []byte, filename string) error {
	m.createCalls++
	return m.createWithImageFunc(ctx, event, image, filename)
}

func (m *mockEventService) GetByID(ctx context.Context, id string) (*model.Event, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockEventService) GetBySlug(ctx context.Context, slug string) (*model.Event, error) {
	return m.getBySlugFunc(ctx, slug)
}

func (m *mockEventService) List(ctx context.Context, limit int, offset int64) ([]*model.Event, error) {
	return m.listFunc(ctx, limit, offset)
}

func (m *mockEventService) Search(ctx context.Context, date, mode string, limit int, offset int64) ([]*model.Event, error) {
	return m.searchFunc(ctx, date, mode, limit, offset)
}

var _ service.EventService = (*mockEventService)(nil)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Service: "events-handler-test"})
}

type eventForm struct {
	title   string
	tags    string
	agenda  string
	image   []byte
	noImage bool
}

func defaultEventForm() eventForm {
	return eventForm{
		title:  "Go Meetup",
		tags:   `["go","meetup"]`,
		agenda: `["Doors open","Keynote"]`,
		image:  []byte("png-bytes"),
	}
}

func buildMultipartRequest(t *testing.T, form eventForm) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	fields := map[string]string{
		"title":       form.title,
		"description": "A community meetup for Go developers.",
		"overview":    "Talks and networking.",
		"venue":       "Main Hall",
		"location":    "Berlin",
		"date":        "2024-03-05",
		"time":        "14:30",
		"mode":        "offline",
		"audience":    "developers",
		"organizer":   "Gatherly Team",
		"tags":        form.tags,
		"agenda":      form.agenda,
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			t.Fatalf("failed to write form field %s: %v", name, err)
		}
	}

	if !form.noImage {
		part, err := writer.CreateFormFile("image", "banner.png")
		if err != nil {
			t.Fatalf("failed to create image part: %v", err)
		}
		if _, err := part.Write(form.image); err != nil {
			t.Fatalf("failed to write image payload: %v", err)
		}
	}

	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/events", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func decodeMessageResponse(t *testing.T, body io.Reader) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return resp
}

func TestCreate_Success(t *testing.T) {
	var gotEvent *model.Event
	var gotImage []byte
	var gotFilename string

	svc := &mockEventService{
		createWithImageFunc: func(ctx context.Context, event *model.Event, image []byte, filename string) error {
			gotEvent = event
			gotImage = image
			gotFilename = filename
			event.ID = "507f1f77bcf86cd799439011"
			return nil
		},
	}
	h := NewEventHandler(svc, testLogger(), 10<<20)

	rec := httptest.NewRecorder()
	h.Create(rec, buildMultipartRequest(t, defaultEventForm()), nil)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	resp := decodeMessageResponse(t, rec.Body)
	if resp["message"] != "Event created successfully" {
		t.Errorf("unexpected message %v", resp["message"])
	}
	if resp["event"] == nil {
		t.Error("expected event payload in response")
	}
	if gotEvent.Title != "Go Meetup" {
		t.Errorf("unexpected title %q", gotEvent.Title)
	}
	if len(gotEvent.Tags) != 2 || gotEvent.Tags[0] != "go" {
		t.Errorf("unexpected tags %v", gotEvent.Tags)
	}
	if string(gotImage) != "png-bytes" {
		t.Errorf("unexpected image payload %q", gotImage)
	}
	if gotFilename != "banner.png" {
		t.Errorf("unexpected filename %q", gotFilename)
	}
}

func TestCreate_MissingImage(t *testing.T) {
	svc := &mockEventService{
		createWithImageFunc: func(ctx context.Context, event *model.Event, image []byte, filename string) error {
			return nil
		},
	}
	h := NewEventHandler(svc, testLogger(), 10<<20)

	form := defaultEventForm()
	form.noImage = true

	rec := httptest.NewRecorder()
	h.Create(rec, buildMultipartRequest(t, form), nil)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	if svc.createCalls != 0 {
		t.Errorf("service must not be called without an image, got %d calls", svc.createCalls)
	}
	resp := decodeMessageResponse(t, rec.Body)
	if resp["message"] != "Event image is required" {
		t.Errorf("unexpected message %v", resp["message"])
	}
}

func TestCreate_MalformedStructuredFields(t *testing.T) {
	svc := &mockEventService{
		createWithImageFunc: func(ctx context.Context, event *model.Event, image []byte, filename string) error {
			return nil
		},
	}
	h := NewEventHandler(svc, testLogger(), 10<<20)

	form := defaultEventForm()
	form.tags = "go,meetup"

	rec := httptest.NewRecorder()
	h.Create(rec, buildMultipartRequest(t, form), nil)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	if svc.createCalls != 0 {
		t.Errorf("service must not be called with malformed fields, got %d calls", svc.createCalls)
	}
}

func TestCreate_UploadFailureIsServerError(t *testing.T) {
	svc := &mockEventService{
		createWithImageFunc: func(ctx context.Context, event *model.Event, image []byte, filename string) error {
			return apperrors.UploadFailed("Failed to upload event image", io.ErrUnexpectedEOF)
		},
	}
	h := NewEventHandler(svc, testLogger(), 10<<20)

	rec := httptest.NewRecorder()
	h.Create(rec, buildMultipartRequest(t, defaultEventForm()), nil)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	resp := decodeMessageResponse(t, rec.Body)
	if resp["error"] != apperrors.CodeUploadFailed {
		t.Errorf("expected error code %s in body, got %v", apperrors.CodeUploadFailed, resp["error"])
	}
}

func TestCreate_DuplicateTitleConflict(t *testing.T) {
	svc := &mockEventService{
		createWithImageFunc: func(ctx context.Context, event *model.Event, image []byte, filename string) error {
			return apperrors.Conflict("An event with this title already exists")
		},
	}
	h := NewEventHandler(svc, testLogger(), 10<<20)

	rec := httptest.NewRecorder()
	h.Create(rec, buildMultipartRequest(t, defaultEventForm()), nil)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", rec.Code)
	}
	resp := decodeMessageResponse(t, rec.Body)
	if resp["error"] != nil {
		t.Errorf("client errors must not leak an error code, got %v", resp["error"])
	}
}

func TestGetByID(t *testing.T) {
	svc := &mockEventService{
		getByIDFunc: func(ctx context.Context, id string) (*model.Event, error) {
			if id != "507f1f77bcf86cd799439011" {
				t.Errorf("unexpected id %q", id)
			}
			return &model.Event{ID: id, Title: "Go Meetup", Slug: "go-meetup"}, nil
		},
	}
	h := NewEventHandler(svc, testLogger(), 10<<20)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/events/id/507f1f77bcf86cd799439011", nil)
	h.GetByID(rec, req, httprouter.Params{{Key: "id", Value: "507f1f77bcf86cd799439011"}})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	resp := decodeMessageResponse(t, rec.Body)
	if resp["event"] == nil {
		t.Error("expected event payload in response")
	}
}

func TestGetBySlug_NotFound(t *testing.T) {
	svc := &mockEventService{
		getBySlugFunc: func(ctx context.Context, slug string) (*model.Event, error) {
			return nil, apperrors.NotFoundWithID("Event", slug)
		},
	}
	h := NewEventHandler(svc, testLogger(), 10<<20)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/events/slug/missing", nil)
	h.GetBySlug(rec, req, httprouter.Params{{Key: "slug", Value: "missing"}})

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestGetAll_InvalidPagination(t *testing.T) {
	svc := &mockEventService{
		listFunc: func(ctx context.Context, limit int, offset int64) ([]*model.Event, error) {
			t.Fatal("service must not be called with invalid pagination")
			return nil, nil
		},
	}
	h := NewEventHandler(svc, testLogger(), 10<<20)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/events?limit=abc", nil)
	h.GetAll(rec, req, nil)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestSearch(t *testing.T) {
	svc := &mockEventService{
		searchFunc: func(ctx context.Context, date, mode string, limit int, offset int64) ([]*model.Event, error) {
			if date != "2024-03-05" || mode != "online" {
				t.Errorf("unexpected filters date=%q mode=%q", date, mode)
			}
			return []*model.Event{{Title: "Go Meetup", Slug: "go-meetup"}}, nil
		},
	}
	h := NewEventHandler(svc, testLogger(), 10<<20)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/events/search?date=2024-03-05&mode=online", nil)
	h.Search(rec, req, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	resp := decodeMessageResponse(t, rec.Body)
	if resp["events"] == nil {
		t.Error("expected events payload in response")
	}
}
