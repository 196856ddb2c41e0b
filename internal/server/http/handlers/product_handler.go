package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/garmentix/marketplace/internal/domain/model"
	"github.com/garmentix/marketplace/internal/domain/repository"
	"github.com/garmentix/marketplace/internal/server/http/dto"
	"github.com/garmentix/marketplace/internal/usecase"
)

// ProductHandler manages catalog endpoints.
type ProductHandler struct {
	facade ProductFacade
}

// NewProductHandler constructs ProductHandler.
func NewProductHandler(facade ProductFacade) *ProductHandler {
	return &ProductHandler{facade: facade}
}

// Create handles POST /products.
func (h *ProductHandler) Create(c *gin.Context) {
	actor := CurrentActor(c)

	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ProductName == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	product, err := h.facade.CreateProduct(c.Request.Context(), actor, usecase.ProductDraft{
		ProductName:       req.ProductName,
		Category:          req.Category,
		Description:       req.Description,
		Price:             req.Price,
		AvailableQuantity: req.AvailableQuantity,
		MinimumOrder:      req.MinimumOrder,
		PaymentOptions:    req.PaymentOptions,
		ShowOnHome:        req.ShowOnHome,
		ImageURL:          req.Image,
		ImageData:         req.ImageData,
		ImageName:         req.ImageName,
	})
	if err != nil {
		c.Status(statusFromError(err))
		return
	}

	c.JSON(http.StatusCreated, toProductResponse(*product))
}

// Get handles GET /products/:id.
func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.facade.Product(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Status(statusFromError(err))
		return
	}
	c.JSON(http.StatusOK, toProductResponse(*product))
}

// List handles GET /products. Supports ?managerEmail= and ?showOnHome=
// filters for the storefront and the manager dashboard.
func (h *ProductHandler) List(c *gin.Context) {
	filter := repository.ProductFilter{ManagerEmail: c.Query("managerEmail")}
	if raw := c.Query("showOnHome"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			filter.ShowOnHome = &v
		}
	}

	products, err := h.facade.Products(c.Request.Context(), filter)
	if err != nil {
		c.Status(statusFromError(err))
		return
	}

	response := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		response = append(response, toProductResponse(p))
	}
	c.JSON(http.StatusOK, response)
}

// Update handles PUT /products/:id.
func (h *ProductHandler) Update(c *gin.Context) {
	actor := CurrentActor(c)

	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	product := &model.Product{
		ID:                c.Param("id"),
		ProductName:       req.ProductName,
		Image:             req.Image,
		Category:          req.Category,
		Description:       req.Description,
		Price:             req.Price,
		AvailableQuantity: req.AvailableQuantity,
		MinimumOrder:      req.MinimumOrder,
		PaymentOptions:    req.PaymentOptions,
		ShowOnHome:        req.ShowOnHome,
	}
	if err := h.facade.UpdateProduct(c.Request.Context(), actor, product); err != nil {
		c.Status(statusFromError(err))
		return
	}
	c.Status(http.StatusOK)
}

// Delete handles DELETE /products/:id.
func (h *ProductHandler) Delete(c *gin.Context) {
	actor := CurrentActor(c)
	if err := h.facade.DeleteProduct(c.Request.Context(), actor, c.Param("id")); err != nil {
		c.Status(statusFromError(err))
		return
	}
	c.Status(http.StatusNoContent)
}

func toProductResponse(product model.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:                product.ID,
		ManagerEmail:      product.ManagerEmail,
		ProductName:       product.ProductName,
		Image:             product.Image,
		Category:          product.Category,
		Description:       product.Description,
		Price:             product.Price,
		AvailableQuantity: product.AvailableQuantity,
		MinimumOrder:      product.MinimumOrder,
		PaymentOptions:    product.PaymentOptions,
		ShowOnHome:        product.ShowOnHome,
		CreatedAt:         product.CreatedAt,
	}
}
