package handlers

import (
	"log/slog"
	"net/http"

	"github.com/torneolink/backend/middleware"
	"github.com/torneolink/backend/services"
)

type PaymentHandler struct {
	paymentService services.PaymentService
	logger         *slog.Logger
}

func NewPaymentHandler(paymentService services.PaymentService, logger *slog.Logger) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		logger:         logger,
	}
}

func (h *PaymentHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var input services.RecordPaymentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	payment, err := h.paymentService.RecordPayment(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, payment, nil); err != nil {
		serverErrorResponse(w, r, h.logger, err)
	}
}

func (h *PaymentHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		errorResponse(w, r, http.StatusUnauthorized, "authentication required")
		return
	}

	payments, err := h.paymentService.ListByUser(r.Context(), callerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, payments, nil); err != nil {
		serverErrorResponse(w, r, h.logger, err)
	}
}

func (h *PaymentHandler) ListByTournament(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	payments, err := h.paymentService.ListByTournament(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, payments, nil); err != nil {
		serverErrorResponse(w, r, h.logger, err)
	}
}
