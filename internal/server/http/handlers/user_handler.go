package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/garmentix/marketplace/internal/domain/model"
	"github.com/garmentix/marketplace/internal/server/http/dto"
)

// UserHandler provides admin account management.
type UserHandler struct {
	facade UserFacade
}

// NewUserHandler constructs UserHandler.
func NewUserHandler(facade UserFacade) *UserHandler {
	return &UserHandler{facade: facade}
}

// List handles GET /users.
func (h *UserHandler) List(c *gin.Context) {
	actor := CurrentActor(c)
	users, err := h.facade.Users(c.Request.Context(), actor)
	if err != nil {
		c.Status(statusFromError(err))
		return
	}

	response := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		response = append(response, toUserResponse(u))
	}
	c.JSON(http.StatusOK, response)
}

// Update handles PUT /users/:email.
func (h *UserHandler) Update(c *gin.Context) {
	actor := CurrentActor(c)

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	err := h.facade.SetUserRoleStatus(c.Request.Context(), actor, c.Param("email"),
		model.Role(req.Role), model.UserStatus(req.Status))
	if err != nil {
		c.Status(statusFromError(err))
		return
	}
	c.Status(http.StatusOK)
}

// Delete handles DELETE /users/:email.
func (h *UserHandler) Delete(c *gin.Context) {
	actor := CurrentActor(c)
	if err := h.facade.DeleteUser(c.Request.Context(), actor, c.Param("email")); err != nil {
		c.Status(statusFromError(err))
		return
	}
	c.Status(http.StatusNoContent)
}
