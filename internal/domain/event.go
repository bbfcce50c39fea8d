package domain

import (
	"context"
	"time"
)

// Event represents a group booking owned by exactly one account. LinkToken
// is an unguessable string that grants capability-based access to the
// event's public surface (restricted view plus guest signup).
// swagger:model Event
type Event struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"owner_id"`
	LinkToken   string     `json:"link_token"`
	Name        string     `json:"name"`
	Date        *time.Time `json:"date,omitempty"`
	Venue       *string    `json:"venue,omitempty"`
	Description *string    `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewEvent returns a new Event with the given fields. ID and LinkToken are
// set by the service/repository on create.
func NewEvent(name, ownerID string, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Name:      name,
		OwnerID:   ownerID,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// PublicEventView is the restricted projection served to anyone holding the
// link token. It must never carry the owner identity or internal ids.
// swagger:model PublicEventView
type PublicEventView struct {
	Name        string     `json:"name"`
	Date        *time.Time `json:"date,omitempty"`
	Venue       *string    `json:"venue,omitempty"`
	Description *string    `json:"description,omitempty"`
}

// PublicView returns the restricted projection of the event.
func (e *Event) PublicView() *PublicEventView {
	return &PublicEventView{
		Name:        e.Name,
		Date:        e.Date,
		Venue:       e.Venue,
		Description: e.Description,
	}
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	GetByLinkToken(ctx context.Context, linkToken string) (*Event, error)
	ListByOwnerID(ctx context.Context, ownerID string) ([]*Event, error)
	Update(ctx context.Context, eventID string, date *time.Time, venue, description *string) (*Event, error)
	Delete(ctx context.Context, id string) error
}

// EventService defines the business logic for events. Owner-scoped
// operations compare the fetched row's owner to the caller and return
// ErrForbidden on mismatch; the check is never inferred from the request.
type EventService interface {
	// CreateEvent creates the event for ownerID with a fresh link token.
	// If seedGuest is non-nil, the event and the guest are written in one
	// transaction: either both rows commit or neither does.
	CreateEvent(ctx context.Context, ownerID string, event *Event, seedGuest *Guest) (*Event, error)
	GetEventByOwner(ctx context.Context, eventID, ownerID string) (*Event, error)
	GetEventByLinkToken(ctx context.Context, linkToken string) (*PublicEventView, error)
	ListEventsByOwner(ctx context.Context, ownerID string) ([]*Event, error)
	UpdateEvent(ctx context.Context, eventID, ownerID string, date *time.Time, venue, description *string) (*Event, error)
	DeleteEvent(ctx context.Context, eventID, ownerID string) error
}
