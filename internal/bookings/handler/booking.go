package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"gatherly/internal/bookings/service"
	apperrors "gatherly/pkg/errors"
	httputil "gatherly/pkg/http"
	"gatherly/pkg/logger"
	"gatherly/pkg/model"
)

type BookingHandler struct {
	service service.BookingService
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log,
	}
}

// Create books a spot on an event. This boundary reports outcomes in-band:
// the response body is always {success, booking|error} and the status is
// always 2xx, so form frontends can branch on the success flag instead of
// catching transport errors. Infrastructure failures above the handler
// (panics, timeouts) still surface as HTTP-level errors.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warn("Malformed booking request body", "error", err)
		h.writeResult(w, "Create", http.StatusOK, httputil.ResultResponse{
			Success: false,
			Error:   "Malformed request body",
		})
		return
	}

	booking, err := h.service.Create(r.Context(), &req)
	if err != nil {
		appErr := apperrors.AsAppError(err)
		h.writeResult(w, "Create", http.StatusOK, httputil.ResultResponse{
			Success: false,
			Error:   appErr.Message,
		})
		return
	}

	h.writeResult(w, "Create", http.StatusCreated, httputil.ResultResponse{
		Success: true,
		Booking: booking,
	})
}

func (h *BookingHandler) GetByEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeFailure(w, "GetByEvent", err)
		return
	}

	bookings, total, err := h.service.ListByEvent(r.Context(), ps.ByName("id"), limit, offset)
	if err != nil {
		h.writeFailure(w, "GetByEvent", err)
		return
	}

	h.writeResult(w, "GetByEvent", http.StatusOK, httputil.ResultResponse{
		Success: true,
		Data:    bookings,
		Count:   &total,
	})
}

func (h *BookingHandler) GetByEmail(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeFailure(w, "GetByEmail", err)
		return
	}

	bookings, err := h.service.ListByEmail(r.Context(), ps.ByName("email"), limit, offset)
	if err != nil {
		h.writeFailure(w, "GetByEmail", err)
		return
	}

	h.writeResult(w, "GetByEmail", http.StatusOK, httputil.ResultResponse{
		Success: true,
		Data:    bookings,
	})
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/bookings", h.Create)
	router.GET("/api/v1/bookings/event/:id", h.GetByEvent)
	router.GET("/api/v1/bookings/email/:email", h.GetByEmail)
}

func (h *BookingHandler) writeResult(w http.ResponseWriter, handlerName string, statusCode int, resp httputil.ResultResponse) {
	if err := httputil.WriteResult(w, statusCode, resp); err != nil {
		h.log.Error("failed to write result response", "handler", handlerName, "error", err)
	}
}

// writeFailure is for the read endpoints, which keep conventional HTTP
// status semantics. Only Create uses the in-band contract.
func (h *BookingHandler) writeFailure(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httputil.WriteFailure(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "error", writeErr)
	}
}
