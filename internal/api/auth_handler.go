package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/quotes/internal/auth"
	apperrors "github.com/skillsenselab/quotes/internal/errors"
	"github.com/skillsenselab/quotes/internal/logger"
	"github.com/skillsenselab/quotes/internal/server"
	"github.com/skillsenselab/quotes/internal/validation"
)

// LoginRequest is the login payload.
type LoginRequest struct {
	Username string `json:"username" validate:"required,min=1,max=64"`
	Password string `json:"password" validate:"required,min=1,max=72"`
}

// LoginResponse carries the minted access token.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

// AuthHandler exposes the login endpoint.
type AuthHandler struct {
	svc *auth.Service
	log *logger.Logger
}

// NewAuthHandler creates the auth HTTP handler.
func NewAuthHandler(svc *auth.Service, log *logger.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: log.WithComponent("auth")}
}

// Login handles POST /api/auth/login. Credential rejections surface as a
// generic 401; user-store infrastructure failures surface as a 5xx instead of
// masquerading as bad credentials.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, apperrors.Validation("request body must be valid JSON"))
		return
	}
	if err := validation.Validate(req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	token, err := h.svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.log.Debug("Login rejected", map[string]interface{}{"username": req.Username})
			server.RespondWithError(c, apperrors.InvalidCredentials())
			return
		}
		server.RespondWithError(c, apperrors.DatabaseError(err))
		return
	}

	c.JSON(http.StatusOK, LoginResponse{AccessToken: token})
}
