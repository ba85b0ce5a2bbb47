package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/torneolink/backend/middleware"
	"github.com/torneolink/backend/services"
)

type InviteHandler struct {
	inviteService services.InviteService
	logger        *slog.Logger
}

func NewInviteHandler(inviteService services.InviteService, logger *slog.Logger) *InviteHandler {
	return &InviteHandler{
		inviteService: inviteService,
		logger:        logger,
	}
}

// GenerateToken mints an invitation token (admin only). Query params: kind
// (CAPITAN | JUGADOR | ARBITRO) and team_id (JUGADOR only).
func (h *InviteHandler) GenerateToken(w http.ResponseWriter, r *http.Request) {
	kind, teamID, err := inviteParams(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	token, err := h.inviteService.GenerateToken(r.Context(), kind, teamID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, map[string]string{"token": token}, nil); err != nil {
		serverErrorResponse(w, r, h.logger, err)
	}
}

// GenerateQR renders the same token as a PNG QR code.
func (h *InviteHandler) GenerateQR(w http.ResponseWriter, r *http.Request) {
	kind, teamID, err := inviteParams(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	png, err := h.inviteService.GenerateQR(r.Context(), kind, teamID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	writePNG(w, png)
}

// GeneratePlayerToken lets a captain mint a player invitation for their own
// team.
func (h *InviteHandler) GeneratePlayerToken(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		errorResponse(w, r, http.StatusUnauthorized, "authentication required")
		return
	}
	teamID, err := idParam(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	token, err := h.inviteService.GeneratePlayerToken(r.Context(), callerID, teamID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, map[string]string{"token": token}, nil); err != nil {
		serverErrorResponse(w, r, h.logger, err)
	}
}

func (h *InviteHandler) GeneratePlayerQR(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		errorResponse(w, r, http.StatusUnauthorized, "authentication required")
		return
	}
	teamID, err := idParam(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	png, err := h.inviteService.GeneratePlayerQR(r.Context(), callerID, teamID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	writePNG(w, png)
}

// ValidateToken decodes a token and reports its contents without consuming
// it; registration clients use it to prefill forms.
func (h *InviteHandler) ValidateToken(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		badRequestResponse(w, r, errors.New("token query parameter is required"))
		return
	}

	decoded, err := h.inviteService.ValidateToken(r.Context(), token)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, decoded, nil); err != nil {
		serverErrorResponse(w, r, h.logger, err)
	}
}

func inviteParams(r *http.Request) (services.InviteKind, int, error) {
	kind := services.InviteKind(r.URL.Query().Get("kind"))
	if kind == "" {
		return "", 0, errors.New("kind query parameter is required")
	}

	teamID := 0
	if raw := r.URL.Query().Get("team_id"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return "", 0, errors.New("invalid team_id query parameter")
		}
		teamID = parsed
	}
	return kind, teamID, nil
}
