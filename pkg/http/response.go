package http

import (
	"encoding/json"
	"net/http"

	apperrors "gatherly/pkg/errors"
)

// MessageResponse is the envelope for event-facing endpoints: a human
// readable message plus an optional payload. Server-side failures carry
// the underlying error string; client-side failures carry the message only.
type MessageResponse struct {
	Message string `json:"message"`
	Event   any    `json:"event,omitempty"`
	Events  any    `json:"events,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ResultResponse is the in-band envelope for the bookings boundary. It is
// always written with a 2xx status; failures are reported in the body.
// Count carries the total matching bookings on listing endpoints, so
// paginated callers know the full size without a second request.
type ResultResponse struct {
	Success bool   `json:"success"`
	Booking any    `json:"booking,omitempty"`
	Data    any    `json:"data,omitempty"`
	Count   *int64 `json:"count,omitempty"`
	Error   string `json:"error,omitempty"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteFailure writes an event-endpoint failure using the AppError's HTTP
// status. 5xx responses include the classified error code so operators can
// distinguish upload failures from persistence failures.
func WriteFailure(w http.ResponseWriter, err error) error {
	appErr := apperrors.AsAppError(err)

	resp := MessageResponse{Message: appErr.Message}
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		resp.Error = appErr.Code
	}

	return WriteJSON(w, appErr.HTTPStatus, resp)
}

func WriteCreated(w http.ResponseWriter, message string, event any) error {
	return WriteJSON(w, http.StatusCreated, MessageResponse{
		Message: message,
		Event:   event,
	})
}

func WriteEvents(w http.ResponseWriter, message string, events any) error {
	return WriteJSON(w, http.StatusOK, MessageResponse{
		Message: message,
		Events:  events,
	})
}

func WriteEvent(w http.ResponseWriter, message string, event any) error {
	return WriteJSON(w, http.StatusOK, MessageResponse{
		Message: message,
		Event:   event,
	})
}

// WriteResult reports a booking outcome in-band. The HTTP status is 201 for
// a created booking and 200 otherwise; errors never surface as HTTP-level
// failure statuses at this boundary.
func WriteResult(w http.ResponseWriter, statusCode int, resp ResultResponse) error {
	return WriteJSON(w, statusCode, resp)
}

func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
