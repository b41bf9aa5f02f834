package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"credvault-backend/internal/core"
	"credvault-backend/internal/middleware"
	"credvault-backend/internal/models"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	authService core.AuthService
	authMW      *middleware.AuthMiddleware
	logger      *zap.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as core.AuthService, authMW *middleware.AuthMiddleware, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{authService: as, authMW: authMW, logger: logger}
}

// Register handles POST /auth/register. A successful registration logs
// the owner straight in and returns a session token.
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	owner, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateEmail) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Email already registered"})
			return
		}
		h.logger.Error("registration failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to register"})
		return
	}

	token, err := h.authMW.IssueToken(owner.ID)
	if err != nil {
		h.logger.Error("token issuance failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create session"})
		return
	}
	c.JSON(http.StatusCreated, AuthResponse{Token: token, Owner: owner})
}

// Login handles POST /auth/login. The error body is the same whether the
// email or the password was wrong.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	owner, err := h.authService.ValidateCredentials(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, core.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid email or password"})
			return
		}
		h.logger.Error("login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to log in"})
		return
	}

	token, err := h.authMW.IssueToken(owner.ID)
	if err != nil {
		h.logger.Error("token issuance failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create session"})
		return
	}
	c.JSON(http.StatusOK, AuthResponse{Token: token, Owner: owner})
}
