package domain

import (
	"context"
	"time"
)

// Guest represents one entry on an event's guest list. Guests are created
// by unauthenticated visitors holding the event's link token and are never
// modified afterwards.
// swagger:model Guest
type Guest struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Name      string    `json:"name"`
	Contact   *string   `json:"contact,omitempty"`
	PartySize int       `json:"party_size"`
	Note      *string   `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewGuest returns a new Guest. ID is set by the repository on create.
func NewGuest(eventID, name string, partySize int, createdAt time.Time) *Guest {
	return &Guest{
		EventID:   eventID,
		Name:      name,
		PartySize: partySize,
		CreatedAt: createdAt,
	}
}

// GuestRepository defines the interface for guest storage
type GuestRepository interface {
	Create(ctx context.Context, guest *Guest) error
	GetByID(ctx context.Context, id string) (*Guest, error)
	ListByEventID(ctx context.Context, eventID string, limit, offset int) ([]*Guest, error)
	CountByEventID(ctx context.Context, eventID string) (int, error)
	Delete(ctx context.Context, id string) error
}

// GuestService defines guest-list operations. AddGuest is addressed by link
// token and requires no identity; list and delete are owner-scoped.
type GuestService interface {
	AddGuest(ctx context.Context, linkToken string, guest *Guest) (*Guest, error)
	ListGuestsByEvent(ctx context.Context, eventID, ownerID string, params PaginationParams) ([]*Guest, int, error)
	DeleteGuest(ctx context.Context, eventID, guestID, ownerID string) error
}
