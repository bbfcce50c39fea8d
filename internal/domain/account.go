package domain

import (
	"context"
	"time"
)

// Account represents a registered restaurant account
// swagger:model Account
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewAccount returns a new Account with the given fields. ID is typically set by the repository on create.
func NewAccount(email, displayName string, createdAt, updatedAt time.Time) *Account {
	return &Account{
		Email:       email,
		DisplayName: displayName,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// PasswordHasher handles salt generation, hashing, and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated account.
// Tokens carry only the account identifier and an expiration; all other
// account attributes are re-fetched from storage on each use.
type TokenIssuer interface {
	Issue(accountID string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated account ID.
// Returns ErrTokenExpired for expired tokens and ErrInvalidToken otherwise.
type TokenVerifier interface {
	Verify(token string) (accountID string, err error)
}

// AccountRepository defines the interface for account storage
type AccountRepository interface {
	Create(ctx context.Context, account *Account) error
	GetByEmail(ctx context.Context, email string) (*Account, error)
	GetByID(ctx context.Context, id string) (*Account, error)
}

// AuthService defines registration, login, and account lookup.
type AuthService interface {
	// Register creates an account and returns it with a freshly issued token.
	Register(ctx context.Context, email, password, displayName string) (*Account, string, error)
	// Login verifies credentials and returns the account with a fresh token.
	Login(ctx context.Context, email, password string) (*Account, string, error)
	GetAccount(ctx context.Context, id string) (*Account, error)
}
