package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"guestlist/internal/domain"
)

// In-memory fakes shared by the service tests.

type fakeAccountRepo struct {
	byID      map[string]*domain.Account
	nextID    int
	createErr error
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{byID: make(map[string]*domain.Account), nextID: 1}
}

func (f *fakeAccountRepo) Create(_ context.Context, a *domain.Account) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.byID {
		if existing.Email == a.Email {
			return domain.ErrDuplicateEmail
		}
	}
	a.ID = fmt.Sprintf("acct-%d", f.nextID)
	f.nextID++
	f.byID[a.ID] = a
	return nil
}

func (f *fakeAccountRepo) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	for _, a := range f.byID {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeAccountRepo) GetByID(_ context.Context, id string) (*domain.Account, error) {
	if a, ok := f.byID[id]; ok {
		return a, nil
	}
	return nil, domain.ErrNotFound
}

type fakeEventRepo struct {
	byID      map[string]*domain.Event
	nextID    int
	createErr error
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{byID: make(map[string]*domain.Event), nextID: 1}
}

func (f *fakeEventRepo) Create(_ context.Context, e *domain.Event) error {
	if f.createErr != nil {
		return f.createErr
	}
	e.ID = fmt.Sprintf("ev-%d", f.nextID)
	f.nextID++
	copied := *e
	f.byID[e.ID] = &copied
	return nil
}

func (f *fakeEventRepo) GetByID(_ context.Context, id string) (*domain.Event, error) {
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) GetByLinkToken(_ context.Context, linkToken string) (*domain.Event, error) {
	token := strings.TrimSpace(linkToken)
	for _, e := range f.byID {
		if e.LinkToken == token {
			return e, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) ListByOwnerID(_ context.Context, ownerID string) ([]*domain.Event, error) {
	out := make([]*domain.Event, 0)
	for _, e := range f.byID {
		if e.OwnerID == ownerID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeEventRepo) Update(_ context.Context, eventID string, date *time.Time, venue, description *string) (*domain.Event, error) {
	e, ok := f.byID[eventID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if date != nil {
		e.Date = date
	}
	if venue != nil {
		e.Venue = venue
	}
	if description != nil {
		e.Description = description
	}
	e.UpdatedAt = time.Now()
	return e, nil
}

func (f *fakeEventRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeGuestRepo struct {
	byID      map[string]*domain.Guest
	nextID    int
	createErr error
}

func newFakeGuestRepo() *fakeGuestRepo {
	return &fakeGuestRepo{byID: make(map[string]*domain.Guest), nextID: 1}
}

func (f *fakeGuestRepo) Create(_ context.Context, g *domain.Guest) error {
	if f.createErr != nil {
		return f.createErr
	}
	g.ID = fmt.Sprintf("guest-%d", f.nextID)
	f.nextID++
	copied := *g
	f.byID[g.ID] = &copied
	return nil
}

func (f *fakeGuestRepo) GetByID(_ context.Context, id string) (*domain.Guest, error) {
	if g, ok := f.byID[id]; ok {
		return g, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeGuestRepo) ListByEventID(_ context.Context, eventID string, limit, offset int) ([]*domain.Guest, error) {
	all := make([]*domain.Guest, 0)
	for _, g := range f.byID {
		if g.EventID == eventID {
			all = append(all, g)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })
	if offset >= len(all) {
		return []*domain.Guest{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (f *fakeGuestRepo) CountByEventID(_ context.Context, eventID string) (int, error) {
	count := 0
	for _, g := range f.byID {
		if g.EventID == eventID {
			count++
		}
	}
	return count, nil
}

func (f *fakeGuestRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeTxRunner satisfies domain.TxRunner over the in-memory fakes. Writes are
// applied directly; if fn fails, changes made before the failure are reverted
// to mirror a rollback.
type fakeTxRunner struct {
	events *fakeEventRepo
	guests *fakeGuestRepo
}

func (f *fakeTxRunner) WithinTx(_ context.Context, fn func(domain.Repositories) error) error {
	eventsBefore := make(map[string]*domain.Event, len(f.events.byID))
	for k, v := range f.events.byID {
		eventsBefore[k] = v
	}
	guestsBefore := make(map[string]*domain.Guest, len(f.guests.byID))
	for k, v := range f.guests.byID {
		guestsBefore[k] = v
	}
	err := fn(domain.Repositories{Events: f.events, Guests: f.guests})
	if err != nil {
		f.events.byID = eventsBefore
		f.guests.byID = guestsBefore
	}
	return err
}

// fakeHasher is a deterministic PasswordHasher for tests.
type fakeHasher struct{}

func (fakeHasher) GenerateSalt() (string, error) { return "salt", nil }

func (fakeHasher) Hash(salt, password string) (string, error) {
	return "hashed:" + salt + ":" + password, nil
}

func (fakeHasher) Compare(hash, salt, password string) error {
	if hash != "hashed:"+salt+":"+password {
		return fmt.Errorf("password mismatch")
	}
	return nil
}

// fakeTokenIssuer records issued ids and returns distinct token strings.
type fakeTokenIssuer struct {
	issued int
}

func (f *fakeTokenIssuer) Issue(accountID string, _ time.Duration) (string, error) {
	f.issued++
	return fmt.Sprintf("token-%s-%d", accountID, f.issued), nil
}

// fakeEmailService records sent mail.
type fakeEmailService struct {
	welcomes []*domain.WelcomeEmailData
	notices  []*domain.GuestSignupEmailData
	err      error
}

func (f *fakeEmailService) SendWelcome(_ context.Context, data *domain.WelcomeEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.welcomes = append(f.welcomes, data)
	return nil
}

func (f *fakeEmailService) SendGuestSignupNotice(_ context.Context, data *domain.GuestSignupEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.notices = append(f.notices, data)
	return nil
}
