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

// AddGuestRequest is the request body for POST /public/events/{linkToken}/guests.
type AddGuestRequest struct {
	Name      string  `json:"name"`
	Contact   *string `json:"contact"`
	PartySize int     `json:"party_size"`
	Note      *string `json:"note"`
}

// Validate implements Validator.
func (a AddGuestRequest) Validate() *h.Problem {
	if strings.TrimSpace(a.Name) == "" {
		return &h.Problem{Code: h.CodeMissingFields, Message: "name is required"}
	}
	return nil
}

// GuestResponse is the response body for POST /public/events/{linkToken}/guests.
type GuestResponse struct {
	h.Envelope
	Guest *domain.Guest `json:"guest"`
}

// GuestListResponse is the response body for GET /events/{eventID}/guests.
type GuestListResponse struct {
	h.Envelope
	Guests     []*domain.Guest  `json:"guests"`
	Pagination h.PaginationMeta `json:"pagination"`
}

type GuestController struct {
	Logger  *slog.Logger
	Service domain.GuestService
}

func NewGuestController(logger *slog.Logger, svc domain.GuestService) *GuestController {
	return &GuestController{
		Logger:  logger,
		Service: svc,
	}
}

// AddGuest godoc
// @Summary Sign up a guest
// @Description Adds a guest to the event behind the link token. No authentication required; the token alone grants write access to the guest list. An unknown token yields return_code NOT_FOUND. party_size below 1 is recorded as 1.
// @Tags public
// @Accept json
// @Produce json
// @Param linkToken path string true "Event link token"
// @Param body body AddGuestRequest true "Guest data"
// @Success 200 {object} controllers.GuestResponse "return_code SUCCESS with the created guest"
// @Router /public/events/{linkToken}/guests [post]
func (c *GuestController) AddGuest(w http.ResponseWriter, r *http.Request) {
	linkToken := r.PathValue("linkToken")
	if linkToken == "" {
		h.WriteCode(w, h.CodeNotFound, "not found")
		return
	}
	var req AddGuestRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	guest := domain.NewGuest("", req.Name, req.PartySize, time.Now())
	guest.Contact = req.Contact
	guest.Note = req.Note

	created, err := c.Service.AddGuest(r.Context(), linkToken, guest)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	h.WriteJSON(w, GuestResponse{Envelope: h.OK(), Guest: created})
}

// ListGuests godoc
// @Summary List guests for an owned event
// @Description Returns the event's guests, oldest first, with pagination metadata. Owner-only; another authenticated account gets return_code FORBIDDEN.
// @Tags guests
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.GuestListResponse "return_code SUCCESS with guests and pagination"
// @Router /events/{eventID}/guests [get]
func (c *GuestController) ListGuests(w http.ResponseWriter, r *http.Request) {
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
	params := h.ParsePagination(r)
	guests, total, err := c.Service.ListGuestsByEvent(r.Context(), eventID, ownerID, params)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	if guests == nil {
		guests = []*domain.Guest{}
	}
	meta := h.NewPaginationMeta(params.Page, params.PageSize, total)
	h.WriteJSON(w, GuestListResponse{Envelope: h.OK(), Guests: guests, Pagination: meta})
}

// DeleteGuest godoc
// @Summary Remove a guest
// @Description Removes a guest from an owned event. Owner-only; a guest id that does not belong to the event yields return_code NOT_FOUND.
// @Tags guests
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param guestID path string true "Guest ID"
// @Success 200 {object} controllers.StatusResponse "return_code SUCCESS"
// @Router /events/{eventID}/guests/{guestID} [delete]
func (c *GuestController) DeleteGuest(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	guestID := r.PathValue("guestID")
	if eventID == "" || guestID == "" {
		h.WriteCode(w, h.CodeMissingFields, "missing eventID or guestID")
		return
	}
	ownerID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		h.WriteCode(w, h.CodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.DeleteGuest(r.Context(), eventID, guestID, ownerID); err != nil {
		c.writeError(w, r, err)
		return
	}
	h.WriteJSON(w, StatusResponse{Envelope: h.OK(), Status: "deleted"})
}

func (c *GuestController) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := h.CodeForError(err)
	if code == h.CodeServerError {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	}
	h.WriteCode(w, code, h.MessageForCode(code))
}
