package handlers

import (
	"log/slog"
	"net/http"

	"github.com/torneolink/backend/services"
)

type VenueHandler struct {
	venueService services.VenueService
	logger       *slog.Logger
}

func NewVenueHandler(venueService services.VenueService, logger *slog.Logger) *VenueHandler {
	return &VenueHandler{
		venueService: venueService,
		logger:       logger,
	}
}

func (h *VenueHandler) CreateVenue(w http.ResponseWriter, r *http.Request) {
	var input services.VenueInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	venue, err := h.venueService.CreateVenue(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, venue, nil); err != nil {
		serverErrorResponse(w, r, h.logger, err)
	}
}

func (h *VenueHandler) GetVenue(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "venueID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	venue, err := h.venueService.GetVenue(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, venue, nil); err != nil {
		serverErrorResponse(w, r, h.logger, err)
	}
}

func (h *VenueHandler) UpdateVenue(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "venueID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.VenueInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	venue, err := h.venueService.UpdateVenue(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, venue, nil); err != nil {
		serverErrorResponse(w, r, h.logger, err)
	}
}

func (h *VenueHandler) ListVenues(w http.ResponseWriter, r *http.Request) {
	venues, err := h.venueService.ListVenues(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, venues, nil); err != nil {
		serverErrorResponse(w, r, h.logger, err)
	}
}
