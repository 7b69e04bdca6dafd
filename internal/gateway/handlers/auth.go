package handlers

import (
	"net/http"

	"github.com/dmitrijs2005/blogmesh/internal/gateway/httpx"
	"github.com/dmitrijs2005/blogmesh/internal/logging"
	"github.com/go-playground/validator/v10"
)

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	AccessToken string `json:"accessToken,omitempty"`
	UserID      string `json:"userId,omitempty"`
}

type AuthHandler struct {
	identity IdentityAPI
	validate *validator.Validate
	logger   logging.Logger
}

func NewAuthHandler(identity IdentityAPI, v *validator.Validate, l logging.Logger) *AuthHandler {
	return &AuthHandler{identity: identity, validate: v, logger: l.With("module", "auth_handler")}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decode(w, r, &req); err != nil {
		writeValidation(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeValidation(w, err)
		return
	}

	resp, err := h.identity.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeRPCError(r.Context(), w, h.logger, "register", err)
		return
	}
	if !resp.Success {
		writeEnvelopeFailure(w, resp.Code, resp.Message)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, AuthResponse{Success: true, Message: resp.Message, UserID: resp.UserID})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decode(w, r, &req); err != nil {
		writeValidation(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeValidation(w, err)
		return
	}

	resp, err := h.identity.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeRPCError(r.Context(), w, h.logger, "login", err)
		return
	}
	if !resp.Success {
		writeEnvelopeFailure(w, resp.Code, resp.Message)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, AuthResponse{
		Success:     true,
		Message:     resp.Message,
		AccessToken: resp.AccessToken,
		UserID:      resp.UserID,
	})
}
