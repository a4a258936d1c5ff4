package handler

import (
	"net/http"

	"store-admin-service/internal/service"
	"store-admin-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ListCategories lists the categories of a store, newest first
func (h *Handler) ListCategories(c echo.Context) error {
	categories, err := h.svc.Catalog.ListCategories(c.Request().Context(), c.Param("storeId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, categories)
}

// GetCategory retrieves a category of a store
func (h *Handler) GetCategory(c echo.Context) error {
	category, err := h.svc.Catalog.GetCategory(c.Request().Context(), c.Param("storeId"), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, category)
}

// CreateCategory handles creating a new category
func (h *Handler) CreateCategory(c echo.Context) error {
	log := logger.FromEcho(c)
	storeID := c.Param("storeId")
	log.Info("Creating new category", zap.String("store_id", storeID))

	var req service.CategoryInput
	if err := bindBody(c, &req); err != nil {
		return respondError(c, err)
	}

	category, err := h.svc.Categories.Create(c.Request().Context(), callerID(c), storeID, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, category)
}

// UpdateCategory handles updating an existing category
func (h *Handler) UpdateCategory(c echo.Context) error {
	var req service.CategoryInput
	if err := bindBody(c, &req); err != nil {
		return respondError(c, err)
	}

	effect, err := h.svc.Categories.Update(c.Request().Context(), callerID(c), c.Param("storeId"), c.Param("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, effect)
}

// DeleteCategory handles deleting a category no product uses
func (h *Handler) DeleteCategory(c echo.Context) error {
	effect, err := h.svc.Categories.Delete(c.Request().Context(), callerID(c), c.Param("storeId"), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, effect)
}
