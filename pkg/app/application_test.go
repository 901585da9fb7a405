package app

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"

	"gatherly/pkg/config"
	"gatherly/pkg/logger"
)

type stubHandler struct {
	method string
	path   string
	handle httprouter.Handle
}

func (s *stubHandler) RegisterRoutes(router *httprouter.Router) {
	router.Handle(s.method, s.path, s.handle)
}

func testAppConfig() *config.Config {
	return &config.Config{
		Port:              "8080",
		RateLimitRequests: 100,
		RateLimitWindow:   time.Minute,
		RequestTimeout:    5 * time.Second,
		IdempotencyTTL:    time.Minute,
		MaxRequestSize:    1 << 20,
		MaxUploadSize:     10 << 20,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      5 * time.Second,
		IdleTimeout:       time.Minute,
		Log:               logger.New(logger.Config{Level: "error", Service: "app-test"}),
	}
}

func buildApp(t *testing.T, cfg *config.Config, appHandler *stubHandler, allowed ...string) *Application {
	t.Helper()

	a := NewApplication(cfg)
	health := &stubHandler{
		method: http.MethodGet,
		path:   "/health",
		handle: func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
			w.WriteHeader(http.StatusOK)
		},
	}
	a.SetApp(appHandler, health, allowed...)
	t.Cleanup(func() {
		a.idempotencyStore.Stop()
		a.rateLimiter.Stop()
	})
	return a
}

func largeMultipartRequest(t *testing.T, path string, imageSize int) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("title", "Go Meetup"); err != nil {
		t.Fatalf("failed to write form field: %v", err)
	}
	part, err := writer.CreateFormFile("image", "banner.png")
	if err != nil {
		t.Fatalf("failed to create image part: %v", err)
	}
	if _, err := part.Write(bytes.Repeat([]byte{0x42}, imageSize)); err != nil {
		t.Fatalf("failed to write image payload: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.RemoteAddr = "10.0.0.1:54321"
	return req
}

// A multipart-admitting service must accept uploads up to the upload cap,
// not the smaller JSON body cap, through the full middleware stack.
func TestSetApp_MultipartServiceAcceptsLargeUpload(t *testing.T) {
	calls := 0
	events := &stubHandler{
		method: http.MethodPost,
		path:   "/api/v1/events",
		handle: func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
			if err := r.ParseMultipartForm(10 << 20); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			calls++
			w.WriteHeader(http.StatusCreated)
		},
	}

	a := buildApp(t, testAppConfig(), events, "application/json", "multipart/form-data")

	rec := httptest.NewRecorder()
	a.appHTTPHandler.ServeHTTP(rec, largeMultipartRequest(t, "/api/v1/events", 2<<20))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201 for a 2 MB upload, got %d: %s", rec.Code, rec.Body.String())
	}
	if calls != 1 {
		t.Errorf("expected the handler to run once, got %d calls", calls)
	}
}

func TestSetApp_JSONServiceKeepsRequestCap(t *testing.T) {
	cfg := testAppConfig()

	bookings := &stubHandler{
		method: http.MethodPost,
		path:   "/api/v1/bookings",
		handle: func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
			w.WriteHeader(http.StatusCreated)
		},
	}
	a := buildApp(t, cfg, bookings)

	if got := a.bodyLimit(nil); got != int64(cfg.MaxRequestSize) {
		t.Errorf("expected JSON cap %d, got %d", cfg.MaxRequestSize, got)
	}
	if got := a.bodyLimit([]string{"application/json", "multipart/form-data"}); got != int64(cfg.MaxUploadSize) {
		t.Errorf("expected upload cap %d for multipart services, got %d", cfg.MaxUploadSize, got)
	}
}
