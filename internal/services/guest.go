package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"guestlist/internal/domain"
)

type guestService struct {
	eventRepo      domain.EventRepository
	guestRepo      domain.GuestRepository
	accountRepo    domain.AccountRepository
	emailService   domain.EmailService
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewGuestService creates a GuestService. emailService may be nil; the
// owner notification mail is then skipped.
func NewGuestService(
	eventRepo domain.EventRepository,
	guestRepo domain.GuestRepository,
	accountRepo domain.AccountRepository,
	emailService domain.EmailService,
	logger *slog.Logger,
	timeout time.Duration,
) domain.GuestService {
	return &guestService{
		eventRepo:      eventRepo,
		guestRepo:      guestRepo,
		accountRepo:    accountRepo,
		emailService:   emailService,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *guestService) AddGuest(ctx context.Context, linkToken string, guest *domain.Guest) (*domain.Guest, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	// Resolve the capability first; a dangling token is NotFound, regardless
	// of the payload.
	event, err := s.eventRepo.GetByLinkToken(ctx, linkToken)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event by link token: %w", err)
	}

	guest.Name = strings.TrimSpace(guest.Name)
	if guest.Name == "" {
		return nil, domain.ErrMissingFields
	}
	if guest.PartySize < 1 {
		guest.PartySize = 1
	}
	guest.EventID = event.ID
	guest.CreatedAt = time.Now()

	if err := s.guestRepo.Create(ctx, guest); err != nil {
		return nil, fmt.Errorf("create guest: %w", err)
	}

	s.notifyOwner(ctx, event, guest)
	return guest, nil
}

// notifyOwner emails the event owner about the signup. Best effort: the
// guest row is already committed, so failures are only logged.
func (s *guestService) notifyOwner(ctx context.Context, event *domain.Event, guest *domain.Guest) {
	if s.emailService == nil {
		return
	}
	owner, err := s.accountRepo.GetByID(ctx, event.OwnerID)
	if err != nil {
		s.logger.WarnContext(ctx, "guest signup notice: owner lookup failed", "event_id", event.ID, "err", err)
		return
	}
	data := &domain.GuestSignupEmailData{
		OwnerEmail: owner.Email,
		OwnerName:  owner.DisplayName,
		EventName:  event.Name,
		GuestName:  guest.Name,
		PartySize:  guest.PartySize,
	}
	if err := s.emailService.SendGuestSignupNotice(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "guest signup notice failed", "event_id", event.ID, "err", err)
	}
}

func (s *guestService) ListGuestsByEvent(ctx context.Context, eventID, ownerID string, params domain.PaginationParams) ([]*domain.Guest, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.checkOwner(ctx, eventID, ownerID); err != nil {
		return nil, 0, err
	}

	total, err := s.guestRepo.CountByEventID(ctx, eventID)
	if err != nil {
		return nil, 0, fmt.Errorf("count guests: %w", err)
	}
	guests, err := s.guestRepo.ListByEventID(ctx, eventID, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list guests: %w", err)
	}
	return guests, total, nil
}

func (s *guestService) DeleteGuest(ctx context.Context, eventID, guestID, ownerID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.checkOwner(ctx, eventID, ownerID); err != nil {
		return err
	}

	guest, err := s.guestRepo.GetByID(ctx, guestID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get guest: %w", err)
	}
	if guest.EventID != eventID {
		return domain.ErrNotFound
	}
	if err := s.guestRepo.Delete(ctx, guestID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete guest: %w", err)
	}
	return nil
}

// checkOwner fetches the event and compares its owner to the caller after
// the fetch. Wrong owner yields ErrForbidden, missing event ErrNotFound.
func (s *guestService) checkOwner(ctx context.Context, eventID, ownerID string) error {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if event.OwnerID != ownerID {
		return domain.ErrForbidden
	}
	return nil
}
