package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/garmentix/marketplace/internal/domain/errors"
	"github.com/garmentix/marketplace/internal/domain/model"
	"github.com/garmentix/marketplace/internal/server/http/dto"
	"github.com/garmentix/marketplace/internal/server/http/middleware"
)

// AuthHandler processes registration and login.
type AuthHandler struct {
	facade AuthFacade
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade) *AuthHandler {
	return &AuthHandler{facade: facade}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	token, err := h.facade.Register(c.Request.Context(), req.Email, req.Password, req.DisplayName, req.LoginMethod)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidCredentials):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrAlreadyExists):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	middleware.SetAuthCookie(c, token)
	c.Status(http.StatusOK)
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	token, err := h.facade.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidCredentials):
			c.Status(http.StatusUnauthorized)
		case errors.Is(err, domainErrors.ErrAccountSuspended):
			c.Status(http.StatusForbidden)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	middleware.SetAuthCookie(c, token)
	c.Status(http.StatusOK)
}

// Profile handles GET /users/:email. Buyers may only read their own record.
func (h *AuthHandler) Profile(c *gin.Context) {
	actor := CurrentActor(c)
	email := c.Param("email")
	if actor.Role == model.RoleBuyer && actor.Email != email {
		c.Status(http.StatusForbidden)
		return
	}

	user, err := h.facade.UserByEmail(c.Request.Context(), email)
	if err != nil {
		c.Status(statusFromError(err))
		return
	}

	c.JSON(http.StatusOK, toUserResponse(*user))
}

func toUserResponse(user model.User) dto.UserResponse {
	return dto.UserResponse{
		Email:       user.Email,
		Role:        string(user.Role),
		Status:      string(user.Status),
		DisplayName: user.DisplayName,
		PhotoURL:    user.PhotoURL,
		LoginMethod: user.LoginMethod,
		CreatedAt:   user.CreatedAt,
	}
}
