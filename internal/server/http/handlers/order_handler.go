package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/garmentix/marketplace/internal/domain/model"
	"github.com/garmentix/marketplace/internal/domain/repository"
	"github.com/garmentix/marketplace/internal/server/http/dto"
	"github.com/garmentix/marketplace/internal/usecase"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Place handles POST /orders.
func (h *OrderHandler) Place(c *gin.Context) {
	actor := CurrentActor(c)

	var req dto.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	if req.ProductID == "" || req.OrderQuantity <= 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.PlaceOrder(c.Request.Context(), actor, usecase.OrderDraft{
		ProductID:       req.ProductID,
		OrderQuantity:   req.OrderQuantity,
		TotalPrice:      req.TotalPrice,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		ContactNumber:   req.ContactNumber,
		DeliveryAddress: req.DeliveryAddress,
		AdditionalNotes: req.AdditionalNotes,
	})
	if err != nil {
		c.Status(statusFromError(err))
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(*order))
}

// List handles GET /orders. The facade narrows the result to the actor's
// scope: buyers see their own orders, managers see orders on their products,
// admins see everything.
func (h *OrderHandler) List(c *gin.Context) {
	actor := CurrentActor(c)
	filter := repository.OrderFilter{
		Email:        c.Query("email"),
		ManagerEmail: c.Query("managerEmail"),
		Status:       model.OrderStatus(c.Query("status")),
	}

	orders, err := h.facade.Orders(c.Request.Context(), actor, filter)
	if err != nil {
		c.Status(statusFromError(err))
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}
	c.JSON(http.StatusOK, response)
}

// Get handles GET /orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	actor := CurrentActor(c)
	order, err := h.facade.Order(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		c.Status(statusFromError(err))
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// Patch handles PATCH /orders/:id. The same endpoint serves three callers:
// buyers selecting cash on delivery, managers approving or rejecting, and
// admins setting any status. Which action runs is decided here from the
// actor's role and the populated fields; whether it is legal is decided by
// the lifecycle table.
func (h *OrderHandler) Patch(c *gin.Context) {
	actor := CurrentActor(c)
	id := c.Param("id")

	var req dto.PatchOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	var (
		order *model.Order
		err   error
	)
	switch {
	case strings.EqualFold(req.PaymentMethod, model.PaymentMethodCashOnDelivery):
		order, err = h.facade.SelectCashOnDelivery(c.Request.Context(), actor, id)
	case req.Status != "":
		switch actor.Role {
		case model.RoleManager:
			switch model.OrderStatus(req.Status) {
			case model.OrderStatusApproved:
				order, err = h.facade.ApproveOrder(c.Request.Context(), actor, id)
			case model.OrderStatusRejected:
				order, err = h.facade.RejectOrder(c.Request.Context(), actor, id)
			default:
				c.Status(http.StatusUnprocessableEntity)
				return
			}
		case model.RoleAdmin:
			order, err = h.facade.AdminSetOrderStatus(c.Request.Context(), actor, id, model.OrderStatus(req.Status))
		default:
			c.Status(http.StatusForbidden)
			return
		}
	default:
		c.Status(http.StatusBadRequest)
		return
	}
	if err != nil {
		c.Status(statusFromError(err))
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// Delete handles DELETE /orders/:id. Buyers may only cancel their own
// pending unpaid orders.
func (h *OrderHandler) Delete(c *gin.Context) {
	actor := CurrentActor(c)
	deleted, err := h.facade.CancelOrder(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		c.Status(statusFromError(err))
		return
	}
	c.JSON(http.StatusOK, dto.DeleteOrderResponse{DeletedCount: deleted})
}

// Tracking handles GET /orders/:id/tracking. Access follows order access:
// fetching the order first enforces ownership for buyers.
func (h *OrderHandler) Tracking(c *gin.Context) {
	actor := CurrentActor(c)
	id := c.Param("id")
	if _, err := h.facade.Order(c.Request.Context(), actor, id); err != nil {
		c.Status(statusFromError(err))
		return
	}

	events, err := h.facade.OrderTracking(c.Request.Context(), id)
	if err != nil {
		c.Status(statusFromError(err))
		return
	}

	response := make([]dto.TrackingResponse, 0, len(events))
	for _, e := range events {
		response = append(response, dto.TrackingResponse{
			Status:    e.Status,
			Location:  e.Location,
			Note:      e.Note,
			Timestamp: e.Timestamp,
			UpdatedBy: e.UpdatedBy,
		})
	}
	c.JSON(http.StatusOK, response)
}

// AppendTracking handles POST /orders/:id/tracking.
func (h *OrderHandler) AppendTracking(c *gin.Context) {
	actor := CurrentActor(c)

	var req dto.TrackingRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	event, err := h.facade.AppendTracking(c.Request.Context(), actor, c.Param("id"), usecase.TrackingDraft{
		Status:   req.Status,
		Location: req.Location,
		Note:     req.Note,
	})
	if err != nil {
		c.Status(statusFromError(err))
		return
	}

	c.JSON(http.StatusCreated, dto.TrackingResponse{
		Status:    event.Status,
		Location:  event.Location,
		Note:      event.Note,
		Timestamp: event.Timestamp,
		UpdatedBy: event.UpdatedBy,
	})
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:                order.ID,
		Email:             order.Email,
		ProductID:         order.ProductID,
		ProductName:       order.ProductName,
		ProductImage:      order.ProductImage,
		Category:          order.Category,
		PricePerUnit:      order.PricePerUnit,
		OrderQuantity:     order.OrderQuantity,
		TotalPrice:        order.TotalPrice,
		FirstName:         order.FirstName,
		LastName:          order.LastName,
		ContactNumber:     order.ContactNumber,
		DeliveryAddress:   order.DeliveryAddress,
		AdditionalNotes:   order.AdditionalNotes,
		PaymentOptions:    order.PaymentOptions,
		OrderDate:         order.OrderDate,
		Status:            string(order.Status),
		PaymentStatus:     string(order.PaymentStatus),
		PaymentMethod:     order.PaymentMethod,
		ApprovedAt:        order.ApprovedAt,
		RejectedAt:        order.RejectedAt,
		TransactionID:     order.TransactionID,
		TrackingID:        order.TrackingID,
		CheckoutSessionID: order.CheckoutSessionID,
	}
}
