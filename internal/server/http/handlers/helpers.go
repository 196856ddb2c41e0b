package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/garmentix/marketplace/internal/domain/errors"
	"github.com/garmentix/marketplace/internal/domain/lifecycle"
	"github.com/garmentix/marketplace/internal/server/http/middleware"
)

// CurrentActor extracts the authenticated actor from context.
func CurrentActor(c *gin.Context) lifecycle.Actor {
	val, ok := c.Get(middleware.ActorContextKey)
	if !ok {
		return lifecycle.Actor{}
	}
	actor, _ := val.(lifecycle.Actor)
	return actor
}

// statusFromError maps domain errors onto HTTP status codes. Handlers share
// the mapping so the same failure always answers the same way.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainErrors.ErrRoleNotAllowed),
		errors.Is(err, domainErrors.ErrNotOrderOwner),
		errors.Is(err, domainErrors.ErrAccountSuspended):
		return http.StatusForbidden
	case errors.Is(err, domainErrors.ErrInvalidTransition),
		errors.Is(err, domainErrors.ErrOrderAlreadyPaid),
		errors.Is(err, domainErrors.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, domainErrors.ErrQuantityOutOfRange),
		errors.Is(err, domainErrors.ErrPriceMismatch),
		errors.Is(err, domainErrors.ErrPaymentOptionNotOffered):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
