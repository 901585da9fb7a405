package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"

	"gatherly/internal/bookings/service"
	apperrors "gatherly/pkg/errors"
	"gatherly/pkg/logger"
	"gatherly/pkg/model"
)

type mockBookingService struct {
	createFunc      func(ctx context.Context, req *model.BookingRequest) (*model.Booking, error)
	listByEventFunc func(ctx context.Context, eventID string, limit int, offset int64) ([]*model.Booking, int64, error)
	listByEmailFunc func(ctx context.Context, email string, limit int, offset int64) ([]*model.Booking, error)
	createCalls     int
}

func (m *mockBookingService) Create(ctx context.Context, req *model.BookingRequest) (*model.Booking, error) {
	m.createCalls++
	return m.createFunc(ctx, req)
}

func (m *mockBookingService) ListByEvent(ctx context.Context, eventID string, limit int, offset int64) ([]*model.Booking, int64, error) {
	return m.listByEventFunc(ctx, eventID, limit, offset)
}

func (m *mockBookingService) ListByEmail(ctx context.Context, email string, limit int, offset int64) ([]*model.Booking, error) {
	return m.listByEmailFunc(ctx, email, limit, offset)
}

var _ service.BookingService = (*mockBookingService)(nil)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Service: "bookings-handler-test"})
}

type resultBody struct {
	Success bool            `json:"success"`
	Booking *model.Booking  `json:"booking"`
	Data    json.RawMessage `json:"data"`
	Count   *int64          `json:"count"`
	Error   string          `json:"error"`
}

func decodeResult(t *testing.T, rec *httptest.ResponseRecorder) resultBody {
	t.Helper()
	var body resultBody
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return body
}

func TestCreate_Success(t *testing.T) {
	svc := &mockBookingService{
		createFunc: func(ctx context.Context, req *model.BookingRequest) (*model.Booking, error) {
			if req.EventID != "507f1f77bcf86cd799439011" {
				t.Errorf("unexpected event id %q", req.EventID)
			}
			return &model.Booking{
				ID:      "64f000000000000000000001",
				EventID: req.EventID,
				Email:   req.Email,
			}, nil
		},
	}
	h := NewBookingHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings",
		strings.NewReader(`{"eventId":"507f1f77bcf86cd799439011","email":"alice@example.com"}`))
	rec := httptest.NewRecorder()
	h.Create(rec, req, nil)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rec.Code)
	}
	body := decodeResult(t, rec)
	if !body.Success {
		t.Error("expected success true")
	}
	if body.Booking == nil || body.Booking.ID != "64f000000000000000000001" {
		t.Errorf("unexpected booking payload %+v", body.Booking)
	}
	if body.Error != "" {
		t.Errorf("unexpected error %q", body.Error)
	}
}

// Booking failures are reported in-band with a 2xx status so that simple
// form frontends can branch on the success flag.
func TestCreate_ServiceFailureIsInBand(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		message string
	}{
		{"event missing", apperrors.NotFoundWithID("Event", "507f1f77bcf86cd799439099"), "Event not found"},
		{"duplicate booking", apperrors.Conflict("A booking already exists for this event and email"), "A booking already exists for this event and email"},
		{"store failure", apperrors.Internal("Failed to create booking", context.DeadlineExceeded), "Failed to create booking"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockBookingService{
				createFunc: func(ctx context.Context, req *model.BookingRequest) (*model.Booking, error) {
					return nil, tt.err
				},
			}
			h := NewBookingHandler(svc, testLogger())

			req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings",
				strings.NewReader(`{"eventId":"507f1f77bcf86cd799439099","email":"alice@example.com"}`))
			rec := httptest.NewRecorder()
			h.Create(rec, req, nil)

			if rec.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", rec.Code)
			}
			body := decodeResult(t, rec)
			if body.Success {
				t.Error("expected success false")
			}
			if body.Error != tt.message {
				t.Errorf("expected error %q, got %q", tt.message, body.Error)
			}
			if body.Booking != nil {
				t.Errorf("unexpected booking payload %+v", body.Booking)
			}
		})
	}
}

func TestCreate_MalformedBody(t *testing.T) {
	svc := &mockBookingService{
		createFunc: func(ctx context.Context, req *model.BookingRequest) (*model.Booking, error) {
			return nil, nil
		},
	}
	h := NewBookingHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()
	h.Create(rec, req, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if svc.createCalls != 0 {
		t.Errorf("service must not be called for a malformed body, got %d calls", svc.createCalls)
	}
	body := decodeResult(t, rec)
	if body.Success {
		t.Error("expected success false")
	}
	if body.Error != "Malformed request body" {
		t.Errorf("unexpected error %q", body.Error)
	}
}

func TestGetByEvent(t *testing.T) {
	svc := &mockBookingService{
		listByEventFunc: func(ctx context.Context, eventID string, limit int, offset int64) ([]*model.Booking, int64, error) {
			if eventID != "507f1f77bcf86cd799439011" {
				t.Errorf("unexpected event id %q", eventID)
			}
			return []*model.Booking{
				{ID: "64f000000000000000000001", EventID: eventID, Email: "alice@example.com"},
			}, 7, nil
		},
	}
	h := NewBookingHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/event/507f1f77bcf86cd799439011", nil)
	rec := httptest.NewRecorder()
	h.GetByEvent(rec, req, httprouter.Params{{Key: "id", Value: "507f1f77bcf86cd799439011"}})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := decodeResult(t, rec)
	if !body.Success {
		t.Error("expected success true")
	}
	if len(body.Data) == 0 {
		t.Error("expected bookings payload in response")
	}
	if body.Count == nil || *body.Count != 7 {
		t.Errorf("expected total count 7, got %v", body.Count)
	}
}

// Read endpoints keep conventional status semantics; only creation uses
// the in-band contract.
func TestGetByEmail_ServiceFailure(t *testing.T) {
	svc := &mockBookingService{
		listByEmailFunc: func(ctx context.Context, email string, limit int, offset int64) ([]*model.Booking, error) {
			return nil, apperrors.Internal("Failed to retrieve bookings", context.DeadlineExceeded)
		},
	}
	h := NewBookingHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/email/alice@example.com", nil)
	rec := httptest.NewRecorder()
	h.GetByEmail(rec, req, httprouter.Params{{Key: "email", Value: "alice@example.com"}})

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
}

func TestGetByEvent_InvalidPagination(t *testing.T) {
	svc := &mockBookingService{
		listByEventFunc: func(ctx context.Context, eventID string, limit int, offset int64) ([]*model.Booking, int64, error) {
			t.Fatal("service must not be called with invalid pagination")
			return nil, 0, nil
		},
	}
	h := NewBookingHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/event/507f1f77bcf86cd799439011?offset=abc", nil)
	rec := httptest.NewRecorder()
	h.GetByEvent(rec, req, httprouter.Params{{Key: "id", Value: "507f1f77bcf86cd799439011"}})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}
