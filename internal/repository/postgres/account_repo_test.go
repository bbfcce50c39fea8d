package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"guestlist/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func TestAccountRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		account *domain.Account
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		wantErr error
	}{
		{
			name: "success",
			account: &domain.Account{
				Email:        "owner@cafex.com",
				PasswordHash: "hash",
				Salt:         "salt",
				DisplayName:  "Cafe X",
				CreatedAt:    now,
				UpdatedAt:    now,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO accounts \(email, password_hash, salt, display_name, created_at, updated_at\)`).
					WithArgs("owner@cafex.com", "hash", "salt", "Cafe X", now, now).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("acct-uuid-1"))
			},
			wantID: "acct-uuid-1",
		},
		{
			name: "unique violation maps to duplicate email",
			account: &domain.Account{
				Email:     "owner@cafex.com",
				CreatedAt: now,
				UpdatedAt: now,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO accounts`).
					WillReturnError(&pq.Error{Code: "23505", Constraint: "accounts_email_key"})
			},
			wantErr: domain.ErrDuplicateEmail,
		},
		{
			name: "db error",
			account: &domain.Account{
				Email:     "owner@cafex.com",
				CreatedAt: now,
				UpdatedAt: now,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO accounts`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewAccountRepository(db)
			err = repo.Create(ctx, tt.account)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, tt.account.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAccountRepository_GetByEmail(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	cols := []string{"id", "email", "password_hash", "salt", "display_name", "created_at", "updated_at"}

	tests := []struct {
		name    string
		email   string
		mock    func(mock sqlmock.Sqlmock)
		want    *domain.Account
		wantErr error
	}{
		{
			name:  "success",
			email: "owner@cafex.com",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, email, password_hash, salt, display_name, created_at, updated_at`).
					WithArgs("owner@cafex.com").
					WillReturnRows(sqlmock.NewRows(cols).
						AddRow("acct-1", "owner@cafex.com", "hash", "salt", "Cafe X", now, now))
			},
			want: &domain.Account{
				ID:           "acct-1",
				Email:        "owner@cafex.com",
				PasswordHash: "hash",
				Salt:         "salt",
				DisplayName:  "Cafe X",
				CreatedAt:    now,
				UpdatedAt:    now,
			},
		},
		{
			name:  "not found",
			email: "missing@cafex.com",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, email, password_hash, salt, display_name, created_at, updated_at`).
					WithArgs("missing@cafex.com").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewAccountRepository(db)
			got, err := repo.GetByEmail(ctx, tt.email)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAccountRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, email, password_hash, salt, display_name, created_at, updated_at`).
		WithArgs("acct-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "salt", "display_name", "created_at", "updated_at"}).
			AddRow("acct-1", "owner@cafex.com", "hash", "salt", "Cafe X", now, now))

	repo := NewAccountRepository(db)
	got, err := repo.GetByID(ctx, "acct-1")
	require.NoError(t, err)
	require.Equal(t, "owner@cafex.com", got.Email)
	require.NoError(t, mock.ExpectationsWereMet())
}
