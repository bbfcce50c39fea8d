package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	h "guestlist/internal/delivery/http/helpers"
	"guestlist/internal/delivery/http/middleware"
	"guestlist/internal/domain"
)

// SeedGuestRequest is the optional seed guest in POST /events. The guest
// is written in the same transaction as the event.
type SeedGuestRequest struct {
	Name      string  `json:"name"`
	Contact   *string `json:"contact"`
	PartySize int     `json:"party_size"`
	Note      *string `json:"note"`
}

// CreateEventRequest is the request body for POST /events.
type CreateEventRequest struct {
	Name        string            `json:"name"`
	Date        *time.Time        `json:"date"`
	Venue       *string           `json:"venue"`
	Description *string           `json:"description"`
	SeedGuest   *SeedGuestRequest `json:"seed_guest"`
}

// Validate implements Validator.
func (c CreateEventRequest) Validate() *h.Problem {
	if strings.TrimSpace(c.Name) == "" {
		return &h.Problem{Code: h.CodeMissingFields, Message: "name is required"}
	}
	if c.SeedGuest != nil && strings.TrimSpace(c.SeedGuest.Name) == "" {
		return &h.Problem{Code: h.CodeMissingFields, Message: "seed_guest.name is required"}
	}
	return nil
}

// UpdateEventRequest is the request body for PATCH /events/{eventID}.
// All fields optional; omitted fields are unchanged.
type UpdateEventRequest struct {
	Date        *time.Time `json:"date"`
	Venue       *string    `json:"venue"`
	Description *string    `json:"description"`
}

// EventResponse is the response body for single-event operations.
type EventResponse struct {
	h.Envelope
	Event *domain.Event `json:"event"`
}

// EventListResponse is the response body for GET /events.
type EventListResponse struct {
	h.Envelope
	Events []*domain.Event `json:"events"`
}

// PublicEventResponse is the response body for GET /public/events/{linkToken}.
// The projection never includes the owner id or the link token.
type PublicEventResponse struct {
	h.Envelope
	Event *domain.PublicEventView `json:"event"`
}

// StatusResponse is the response body for delete operations.
type StatusResponse struct {
	h.Envelope
	Status string `json:"status"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateEvent godoc
// @Summary Create an event
// @Description Create an event owned by the authenticated account. A fresh unguessable link token is generated server-side. If seed_guest is present, event and guest are written in one transaction; neither persists if either write fails.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateEventRequest true "Event data, optionally with a seed guest"
// @Success 200 {object} controllers.EventResponse "return_code SUCCESS with the created event"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	ownerID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		h.WriteCode(w, h.CodeUnauthorized, "unauthorized")
		return
	}
	now := time.Now()
	event := domain.NewEvent(req.Name, ownerID, now, now)
	event.Date = req.Date
	event.Venue = req.Venue
	event.Description = req.Description

	var seed *domain.Guest
	if req.SeedGuest != nil {
		seed = domain.NewGuest("", req.SeedGuest.Name, req.SeedGuest.PartySize, now)
		seed.Contact = req.SeedGuest.Contact
		seed.Note = req.SeedGuest.Note
	}

	created, err := c.Service.CreateEvent(r.Context(), ownerID, event, seed)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	h.WriteJSON(w, EventResponse{Envelope: h.OK(), Event: created})
}

// GetEvent godoc
// @Summary Get an owned event
// @Description Returns the full projection of an event, including its link token. Only the owner may access; another authenticated account gets return_code FORBIDDEN, never NOT_FOUND.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.EventResponse "return_code SUCCESS with the event"
// @Router /events/{eventID} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		h.WriteCode(w, h.CodeMissingFields, "missing eventID")
		return
	}
	ownerID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		h.WriteCode(w, h.CodeUnauthorized, "unauthorized")
		return
	}
	event, err := c.Service.GetEventByOwner(r.Context(), eventID, ownerID)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	h.WriteJSON(w, EventResponse{Envelope: h.OK(), Event: event})
}

// ListEvents godoc
// @Summary List owned events
// @Description Returns the authenticated account's events, newest first.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.EventListResponse "return_code SUCCESS with events"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		h.WriteCode(w, h.CodeUnauthorized, "unauthorized")
		return
	}
	events, err := c.Service.ListEventsByOwner(r.Context(), ownerID)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	if events == nil {
		events = []*domain.Event{}
	}
	h.WriteJSON(w, EventListResponse{Envelope: h.OK(), Events: events})
}

// UpdateEvent godoc
// @Summary Update event details
// @Description Updates date, venue, and description. Omitted fields are unchanged. Owner-only.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body UpdateEventRequest true "Fields to update (all optional)"
// @Success 200 {object} controllers.EventResponse "return_code SUCCESS with the updated event"
// @Router /events/{eventID} [patch]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		h.WriteCode(w, h.CodeMissingFields, "missing eventID")
		return
	}
	var req UpdateEventRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	ownerID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		h.WriteCode(w, h.CodeUnauthorized, "unauthorized")
		return
	}
	event, err := c.Service.UpdateEvent(r.Context(), eventID, ownerID, req.Date, req.Venue, req.Description)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	h.WriteJSON(w, EventResponse{Envelope: h.OK(), Event: event})
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Deletes an event and all its guests. Owner-only.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.StatusResponse "return_code SUCCESS"
// @Router /events/{eventID} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		h.WriteCode(w, h.CodeMissingFields, "missing eventID")
		return
	}
	ownerID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		h.WriteCode(w, h.CodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.DeleteEvent(r.Context(), eventID, ownerID); err != nil {
		c.writeError(w, r, err)
		return
	}
	h.WriteJSON(w, StatusResponse{Envelope: h.OK(), Status: "deleted"})
}

// GetPublicEvent godoc
// @Summary Get the public view of an event
// @Description Resolves the link token to the restricted event projection (name, date, venue, description). No authentication required; an unknown token yields return_code NOT_FOUND.
// @Tags public
// @Produce json
// @Param linkToken path string true "Event link token"
// @Success 200 {object} controllers.PublicEventResponse "return_code SUCCESS with the public projection"
// @Router /public/events/{linkToken} [get]
func (c *EventController) GetPublicEvent(w http.ResponseWriter, r *http.Request) {
	linkToken := r.PathValue("linkToken")
	if linkToken == "" {
		h.WriteCode(w, h.CodeNotFound, "not found")
		return
	}
	view, err := c.Service.GetEventByLinkToken(r.Context(), linkToken)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	h.WriteJSON(w, PublicEventResponse{Envelope: h.OK(), Event: view})
}

func (c *EventController) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := h.CodeForError(err)
	if code == h.CodeServerError {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	}
	h.WriteCode(w, code, h.MessageForCode(code))
}
