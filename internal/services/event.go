package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"guestlist/internal/domain"
)

// linkTokenBytes sizes the capability token at 128 bits of entropy.
const linkTokenBytes = 16

type eventService struct {
	eventRepo      domain.EventRepository
	tx             domain.TxRunner
	contextTimeout time.Duration
}

// NewEventService creates an EventService with the given repository and
// transaction runner.
func NewEventService(eventRepo domain.EventRepository, tx domain.TxRunner, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		tx:             tx,
		contextTimeout: timeout,
	}
}

func generateLinkToken() (string, error) {
	b := make([]byte, linkTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func (s *eventService) CreateEvent(ctx context.Context, ownerID string, event *domain.Event, seedGuest *domain.Guest) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if ownerID == "" {
		return nil, domain.ErrMissingFields
	}
	event.Name = strings.TrimSpace(event.Name)
	if event.Name == "" {
		return nil, domain.ErrMissingFields
	}

	token, err := generateLinkToken()
	if err != nil {
		return nil, fmt.Errorf("generate link token: %w", err)
	}

	now := time.Now()
	event.OwnerID = ownerID
	event.LinkToken = token
	event.CreatedAt = now
	event.UpdatedAt = now

	if seedGuest == nil {
		if err := s.eventRepo.Create(ctx, event); err != nil {
			return nil, fmt.Errorf("create event: %w", err)
		}
		return event, nil
	}

	seedGuest.Name = strings.TrimSpace(seedGuest.Name)
	if seedGuest.Name == "" {
		return nil, domain.ErrMissingFields
	}
	if seedGuest.PartySize < 1 {
		seedGuest.PartySize = 1
	}
	seedGuest.CreatedAt = now

	// Event plus first guest is a single unit of work: either both rows
	// commit or neither does.
	err = s.tx.WithinTx(ctx, func(repos domain.Repositories) error {
		if err := repos.Events.Create(ctx, event); err != nil {
			return fmt.Errorf("create event: %w", err)
		}
		seedGuest.EventID = event.ID
		if err := repos.Guests.Create(ctx, seedGuest); err != nil {
			return fmt.Errorf("create seed guest: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return event, nil
}

// getOwnedEvent fetches the event and verifies ownership after the fetch, so
// a wrong owner sees ErrForbidden rather than ErrNotFound.
func (s *eventService) getOwnedEvent(ctx context.Context, eventID, ownerID string) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}
	return event, nil
}

func (s *eventService) GetEventByOwner(ctx context.Context, eventID, ownerID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	return s.getOwnedEvent(ctx, eventID, ownerID)
}

func (s *eventService) GetEventByLinkToken(ctx context.Context, linkToken string) (*domain.PublicEventView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByLinkToken(ctx, linkToken)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event by link token: %w", err)
	}
	return event.PublicView(), nil
}

func (s *eventService) ListEventsByOwner(ctx context.Context, ownerID string) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, eventID, ownerID string, date *time.Time, venue, description *string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.getOwnedEvent(ctx, eventID, ownerID); err != nil {
		return nil, err
	}
	event, err := s.eventRepo.Update(ctx, eventID, date, venue, description)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return event, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, eventID, ownerID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.getOwnedEvent(ctx, eventID, ownerID); err != nil {
		return err
	}
	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}
