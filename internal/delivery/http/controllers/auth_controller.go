package controllers

import (
	"log/slog"
	"net/http"

	h "guestlist/internal/delivery/http/helpers"
	"guestlist/internal/delivery/http/middleware"
	"guestlist/internal/domain"
)

// RegisterRequest is the request body for POST /auth/register.
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// LoginRequest is the request body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is the response body for register and login.
type AuthResponse struct {
	h.Envelope
	Account   *domain.Account `json:"account"`
	Token     string          `json:"token"`
	TokenType string          `json:"token_type"`
}

// AccountResponse is the response body for GET /auth/me.
type AccountResponse struct {
	h.Envelope
	Account *domain.Account `json:"account"`
}

type AuthController struct {
	Logger  *slog.Logger
	Service domain.AuthService
}

func NewAuthController(logger *slog.Logger, svc domain.AuthService) *AuthController {
	return &AuthController{
		Logger:  logger,
		Service: svc,
	}
}

// Register godoc
// @Summary Register a new account
// @Description Create an account with email, password, and display name. Email is normalized (trimmed, lowercased). Returns the account's public fields and a fresh Bearer token. Outcome is in return_code: MISSING_FIELDS, INVALID_EMAIL, INVALID_PASSWORD, or EMAIL_EXISTS on rejection.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Registration data"
// @Success 200 {object} controllers.AuthResponse "return_code SUCCESS with account and token"
// @Router /auth/register [post]
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	account, token, err := c.Service.Register(r.Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	h.WriteJSON(w, AuthResponse{Envelope: h.OK(), Account: account, Token: token, TokenType: "Bearer"})
}

// Login godoc
// @Summary Log in
// @Description Authenticate with email and password. Returns the account and a fresh Bearer token. Wrong email and wrong password are indistinguishable: both yield return_code UNAUTHORIZED.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} controllers.AuthResponse "return_code SUCCESS with account and token"
// @Router /auth/login [post]
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	account, token, err := c.Service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	h.WriteJSON(w, AuthResponse{Envelope: h.OK(), Account: account, Token: token, TokenType: "Bearer"})
}

// Me godoc
// @Summary Get the authenticated account
// @Description Re-fetches the account for the token's subject. Tokens carry only the account id; all other fields come from the store.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.AccountResponse "return_code SUCCESS with account"
// @Router /auth/me [get]
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		h.WriteCode(w, h.CodeUnauthorized, "unauthorized")
		return
	}
	account, err := c.Service.GetAccount(r.Context(), accountID)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	h.WriteJSON(w, AccountResponse{Envelope: h.OK(), Account: account})
}

func (c *AuthController) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := h.CodeForError(err)
	if code == h.CodeServerError {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	}
	h.WriteCode(w, code, h.MessageForCode(code))
}
