package handlers

import (
	"log/slog"
	"net/http"

	"github.com/torneolink/backend/middleware"
	"github.com/torneolink/backend/services"
)

type NotificationHandler struct {
	notificationService services.NotificationService
	logger              *slog.Logger
}

func NewNotificationHandler(notificationService services.NotificationService, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		logger:              logger,
	}
}

func (h *NotificationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		errorResponse(w, r, http.StatusUnauthorized, "authentication required")
		return
	}

	notifications, err := h.notificationService.ListMine(r.Context(), callerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, notifications, nil); err != nil {
		serverErrorResponse(w, r, h.logger, err)
	}
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		errorResponse(w, r, http.StatusUnauthorized, "authentication required")
		return
	}
	id, err := idParam(r, "notificationID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.notificationService.MarkRead(r.Context(), id, callerID); err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, map[string]string{"status": "marked read"}, nil); err != nil {
		serverErrorResponse(w, r, h.logger, err)
	}
}

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		errorResponse(w, r, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.notificationService.MarkAllRead(r.Context(), callerID); err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, map[string]string{"status": "all marked read"}, nil); err != nil {
		serverErrorResponse(w, r, h.logger, err)
	}
}
