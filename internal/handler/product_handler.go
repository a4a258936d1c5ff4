package handler

import (
	"net/http"
	"strconv"

	"store-admin-service/internal/apperror"
	"store-admin-service/internal/service"
	"store-admin-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ListProducts handles retrieving the products of a store with optional filtering
func (h *Handler) ListProducts(c echo.Context) error {
	log := logger.FromEcho(c)

	query := service.ProductQuery{
		CategoryID: c.QueryParam("category_id"),
		SizeID:     c.QueryParam("size_id"),
		ColorID:    c.QueryParam("color_id"),
	}

	// Filter by featured status if specified
	if isFeatured := c.QueryParam("is_featured"); isFeatured != "" {
		featured, err := strconv.ParseBool(isFeatured)
		if err != nil {
			log.Warn("Invalid is_featured parameter", zap.String("value", isFeatured), zap.Error(err))
			return respondError(c, apperror.Validation("is_featured", "is_featured must be true or false"))
		}
		query.OnlyFeatured = featured
	}

	products, err := h.svc.Catalog.ListProducts(c.Request().Context(), c.Param("storeId"), query)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, products)
}

// GetProduct handles retrieving a single product with its relations
func (h *Handler) GetProduct(c echo.Context) error {
	product, err := h.svc.Catalog.GetProduct(c.Request().Context(), c.Param("storeId"), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

// CreateProduct handles creating a new product with its images
func (h *Handler) CreateProduct(c echo.Context) error {
	log := logger.FromEcho(c)
	storeID := c.Param("storeId")
	log.Info("Creating new product", zap.String("store_id", storeID))

	var req service.ProductInput
	if err := bindBody(c, &req); err != nil {
		return respondError(c, err)
	}

	log.Info("Product creation request",
		zap.String("name", req.Name),
		zap.Float64("price", req.Price),
		zap.String("category_id", req.CategoryID),
		zap.Int("images", len(req.Images)))

	product, err := h.svc.Products.Create(c.Request().Context(), callerID(c), storeID, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, product)
}

// UpdateProduct handles replacing a product's fields and images
func (h *Handler) UpdateProduct(c echo.Context) error {
	var req service.ProductInput
	if err := bindBody(c, &req); err != nil {
		return respondError(c, err)
	}

	effect, err := h.svc.Products.Update(c.Request().Context(), callerID(c), c.Param("storeId"), c.Param("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, effect)
}

// DeleteProduct handles deleting a product and its images
func (h *Handler) DeleteProduct(c echo.Context) error {
	effect, err := h.svc.Products.Delete(c.Request().Context(), callerID(c), c.Param("storeId"), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, effect)
}
