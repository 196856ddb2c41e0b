package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/garmentix/marketplace/internal/adapter/checkout"
	"github.com/garmentix/marketplace/internal/server/http/dto"
)

// PaymentHandler bridges orders to the external checkout provider.
type PaymentHandler struct {
	facade PaymentFacade
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(facade PaymentFacade) *PaymentHandler {
	return &PaymentHandler{facade: facade}
}

// CreateSession handles POST /create-checkout-session.
func (h *PaymentHandler) CreateSession(c *gin.Context) {
	actor := CurrentActor(c)

	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ParcelID == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	url, err := h.facade.InitiateCheckout(c.Request.Context(), actor, req.ParcelID)
	if err != nil {
		var tooMany checkout.TooManyRequestsError
		if errors.As(err, &tooMany) {
			c.Status(http.StatusTooManyRequests)
			return
		}
		c.Status(statusFromError(err))
		return
	}

	c.JSON(http.StatusOK, dto.CheckoutResponse{URL: url})
}

// Success handles PATCH /payment-success?session_id=...
//
// A confirmed charge is never reported as a failure: if the provider says
// the session settled but local bookkeeping cannot be completed, the
// response carries a support notice instead of an error status.
func (h *PaymentHandler) Success(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	receipt, err := h.facade.ConfirmPayment(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, checkout.ErrSessionNotSettled) {
			c.Status(http.StatusPaymentRequired)
			return
		}
		c.Status(statusFromError(err))
		return
	}

	c.JSON(http.StatusOK, dto.PaymentSuccessResponse{
		TransactionID: receipt.TransactionID,
		TrackingID:    receipt.TrackingID,
		SupportNotice: receipt.SupportNotice,
	})
}
