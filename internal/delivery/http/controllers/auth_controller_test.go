package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	h "guestlist/internal/delivery/http/helpers"
	"guestlist/internal/delivery/http/middleware"
	"guestlist/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// fakeAuthService implements domain.AuthService for controller tests.
type fakeAuthService struct {
	account *domain.Account
	token   string
	err     error
}

func (f *fakeAuthService) Register(context.Context, string, string, string) (*domain.Account, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}
	return f.account, f.token, nil
}

func (f *fakeAuthService) Login(context.Context, string, string) (*domain.Account, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}
	return f.account, f.token, nil
}

func (f *fakeAuthService) GetAccount(context.Context, string) (*domain.Account, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.account, nil
}

func testAccount() *domain.Account {
	return &domain.Account{
		ID:          "acct-1",
		Email:       "owner@cafex.com",
		DisplayName: "Cafe X",
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}

func TestAuthController_Register(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		svc      *fakeAuthService
		wantCode string
	}{
		{
			name:     "success",
			body:     `{"email":"owner@cafex.com","password":"secret1","display_name":"Cafe X"}`,
			svc:      &fakeAuthService{account: testAccount(), token: "tok"},
			wantCode: h.CodeSuccess,
		},
		{
			name:     "malformed body",
			body:     `{"email":`,
			svc:      &fakeAuthService{},
			wantCode: h.CodeMissingFields,
		},
		{
			name:     "unknown field rejected",
			body:     `{"email":"a@b.com","password":"secret1","role":"admin"}`,
			svc:      &fakeAuthService{},
			wantCode: h.CodeMissingFields,
		},
		{
			name:     "missing fields",
			body:     `{"email":"","password":""}`,
			svc:      &fakeAuthService{err: domain.ErrMissingFields},
			wantCode: h.CodeMissingFields,
		},
		{
			name:     "invalid email",
			body:     `{"email":"not-an-email","password":"secret1"}`,
			svc:      &fakeAuthService{err: domain.ErrInvalidEmail},
			wantCode: h.CodeInvalidEmail,
		},
		{
			name:     "short password",
			body:     `{"email":"a@b.com","password":"abc"}`,
			svc:      &fakeAuthService{err: domain.ErrInvalidPassword},
			wantCode: h.CodeInvalidPassword,
		},
		{
			name:     "duplicate email",
			body:     `{"email":"owner@cafex.com","password":"secret1"}`,
			svc:      &fakeAuthService{err: domain.ErrDuplicateEmail},
			wantCode: h.CodeEmailExists,
		},
		{
			name:     "service error",
			body:     `{"email":"a@b.com","password":"secret1"}`,
			svc:      &fakeAuthService{err: assert.AnError},
			wantCode: h.CodeServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewAuthController(testLogger(), tt.svc)
			req := httptest.NewRequest(http.MethodPost, "http://test/auth/register", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()

			ctrl.Register(rr, req)

			require.Equal(t, http.StatusOK, rr.Code)
			var resp AuthResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.Equal(t, tt.wantCode, resp.ReturnCode)
			if tt.wantCode == h.CodeSuccess {
				require.NotNil(t, resp.Account)
				assert.Equal(t, "acct-1", resp.Account.ID)
				assert.Equal(t, "tok", resp.Token)
				assert.Equal(t, "Bearer", resp.TokenType)
			}
		})
	}
}

func TestAuthController_Register_NeverLeaksCredentials(t *testing.T) {
	acct := testAccount()
	acct.PasswordHash = "bcrypt-hash"
	acct.Salt = "salt"
	ctrl := NewAuthController(testLogger(), &fakeAuthService{account: acct, token: "tok"})

	body := `{"email":"owner@cafex.com","password":"secret1","display_name":"Cafe X"}`
	req := httptest.NewRequest(http.MethodPost, "http://test/auth/register", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()

	ctrl.Register(rr, req)

	raw := rr.Body.String()
	assert.NotContains(t, raw, "bcrypt-hash")
	assert.NotContains(t, raw, "password_hash")
	assert.NotContains(t, raw, "salt")
}

func TestAuthController_Login(t *testing.T) {
	tests := []struct {
		name     string
		svc      *fakeAuthService
		wantCode string
	}{
		{
			name:     "success",
			svc:      &fakeAuthService{account: testAccount(), token: "tok"},
			wantCode: h.CodeSuccess,
		},
		{
			name:     "invalid credentials",
			svc:      &fakeAuthService{err: domain.ErrInvalidCredentials},
			wantCode: h.CodeUnauthorized,
		},
		{
			name:     "unknown email looks identical",
			svc:      &fakeAuthService{err: domain.ErrInvalidCredentials},
			wantCode: h.CodeUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewAuthController(testLogger(), tt.svc)
			body := `{"email":"owner@cafex.com","password":"secret1"}`
			req := httptest.NewRequest(http.MethodPost, "http://test/auth/login", bytes.NewBufferString(body))
			rr := httptest.NewRecorder()

			ctrl.Login(rr, req)

			require.Equal(t, http.StatusOK, rr.Code)
			var resp AuthResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.Equal(t, tt.wantCode, resp.ReturnCode)
		})
	}
}

func TestAuthController_Me(t *testing.T) {
	tests := []struct {
		name      string
		accountID string
		svc       *fakeAuthService
		wantCode  string
	}{
		{
			name:      "success",
			accountID: "acct-1",
			svc:       &fakeAuthService{account: testAccount()},
			wantCode:  h.CodeSuccess,
		},
		{
			name:     "no account in context",
			svc:      &fakeAuthService{},
			wantCode: h.CodeUnauthorized,
		},
		{
			name:      "account deleted since token issued",
			accountID: "acct-1",
			svc:       &fakeAuthService{err: domain.ErrNotFound},
			wantCode:  h.CodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewAuthController(testLogger(), tt.svc)
			req := httptest.NewRequest(http.MethodGet, "http://test/auth/me", nil)
			if tt.accountID != "" {
				req = req.WithContext(middleware.SetAccountID(req.Context(), tt.accountID))
			}
			rr := httptest.NewRecorder()

			ctrl.Me(rr, req)

			require.Equal(t, http.StatusOK, rr.Code)
			var resp AccountResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.Equal(t, tt.wantCode, resp.ReturnCode)
			if tt.wantCode == h.CodeSuccess {
				require.NotNil(t, resp.Account)
				assert.Equal(t, "owner@cafex.com", resp.Account.Email)
			}
		})
	}
}
