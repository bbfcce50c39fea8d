package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"guestlist/internal/domain"
)

const minPasswordLen = 6

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type authService struct {
	accountRepo    domain.AccountRepository
	hasher         domain.PasswordHasher
	tokenIssuer    domain.TokenIssuer
	tokenExpiry    time.Duration
	emailService   domain.EmailService
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewAuthService creates an AuthService with the given repository and auth ports.
// emailService may be nil; the welcome mail is then skipped.
func NewAuthService(accountRepo domain.AccountRepository, hasher domain.PasswordHasher, tokenIssuer domain.TokenIssuer, tokenExpiry time.Duration, emailService domain.EmailService, logger *slog.Logger, timeout time.Duration) domain.AuthService {
	return &authService{
		accountRepo:    accountRepo,
		hasher:         hasher,
		tokenIssuer:    tokenIssuer,
		tokenExpiry:    tokenExpiry,
		emailService:   emailService,
		logger:         logger,
		contextTimeout: timeout,
	}
}

// normalizeEmail trims whitespace and lowercases so that " User@X.com " and
// "user@x.com" are the same stored identity.
func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

func (s *authService) Register(ctx context.Context, email, password, displayName string) (*domain.Account, string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	email = normalizeEmail(email)
	displayName = strings.TrimSpace(displayName)
	if email == "" || password == "" || displayName == "" {
		return nil, "", domain.ErrMissingFields
	}
	if !emailRegexp.MatchString(email) {
		return nil, "", domain.ErrInvalidEmail
	}
	if len(password) < minPasswordLen {
		return nil, "", domain.ErrInvalidPassword
	}

	// Friendly pre-check before any hashing work. Racy by nature; the unique
	// index on accounts.email is the authoritative guard, surfaced below.
	if _, err := s.accountRepo.GetByEmail(ctx, email); err == nil {
		return nil, "", domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, "", fmt.Errorf("check existing email: %w", err)
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return nil, "", fmt.Errorf("generate salt: %w", err)
	}
	hash, err := s.hasher.Hash(salt, password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	account := domain.NewAccount(email, displayName, now, now)
	account.PasswordHash = hash
	account.Salt = salt
	if err := s.accountRepo.Create(ctx, account); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, "", domain.ErrDuplicateEmail
		}
		return nil, "", fmt.Errorf("create account: %w", err)
	}

	token, err := s.tokenIssuer.Issue(account.ID, s.tokenExpiry)
	if err != nil {
		return nil, "", fmt.Errorf("sign token: %w", err)
	}

	if s.emailService != nil {
		data := &domain.WelcomeEmailData{Email: account.Email, DisplayName: account.DisplayName}
		if err := s.emailService.SendWelcome(ctx, data); err != nil {
			// Best effort; registration already committed.
			s.logger.WarnContext(ctx, "welcome email failed", "email", account.Email, "err", err)
		}
	}

	return account, token, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.Account, string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	account, err := s.accountRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("get account: %w", err)
	}
	if err := s.hasher.Compare(account.PasswordHash, account.Salt, password); err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.tokenIssuer.Issue(account.ID, s.tokenExpiry)
	if err != nil {
		return nil, "", fmt.Errorf("sign token: %w", err)
	}
	return account, token, nil
}

func (s *authService) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return account, nil
}
