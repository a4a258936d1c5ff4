package handler

import (
	"net/http"

	"store-admin-service/internal/service"
	"store-admin-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ListSizes lists the sizes of a store, newest first
func (h *Handler) ListSizes(c echo.Context) error {
	sizes, err := h.svc.Catalog.ListSizes(c.Request().Context(), c.Param("storeId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, sizes)
}

// GetSize retrieves a size of a store
func (h *Handler) GetSize(c echo.Context) error {
	size, err := h.svc.Catalog.GetSize(c.Request().Context(), c.Param("storeId"), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, size)
}

// CreateSize handles creating a new size
func (h *Handler) CreateSize(c echo.Context) error {
	log := logger.FromEcho(c)
	storeID := c.Param("storeId")
	log.Info("Creating new size", zap.String("store_id", storeID))

	var req service.SizeInput
	if err := bindBody(c, &req); err != nil {
		return respondError(c, err)
	}

	size, err := h.svc.Sizes.Create(c.Request().Context(), callerID(c), storeID, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, size)
}

// UpdateSize handles updating an existing size
func (h *Handler) UpdateSize(c echo.Context) error {
	var req service.SizeInput
	if err := bindBody(c, &req); err != nil {
		return respondError(c, err)
	}

	effect, err := h.svc.Sizes.Update(c.Request().Context(), callerID(c), c.Param("storeId"), c.Param("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, effect)
}

// DeleteSize handles deleting a size no product uses
func (h *Handler) DeleteSize(c echo.Context) error {
	effect, err := h.svc.Sizes.Delete(c.Request().Context(), callerID(c), c.Param("storeId"), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, effect)
}
