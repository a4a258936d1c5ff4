package handler

import (
	"net/http"

	"store-admin-service/internal/service"
	"store-admin-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ListColors lists the colors of a store, newest first
func (h *Handler) ListColors(c echo.Context) error {
	colors, err := h.svc.Catalog.ListColors(c.Request().Context(), c.Param("storeId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, colors)
}

// GetColor retrieves a color of a store
func (h *Handler) GetColor(c echo.Context) error {
	color, err := h.svc.Catalog.GetColor(c.Request().Context(), c.Param("storeId"), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, color)
}

// CreateColor handles creating a new color
func (h *Handler) CreateColor(c echo.Context) error {
	log := logger.FromEcho(c)
	storeID := c.Param("storeId")
	log.Info("Creating new color", zap.String("store_id", storeID))

	var req service.ColorInput
	if err := bindBody(c, &req); err != nil {
		return respondError(c, err)
	}

	color, err := h.svc.Colors.Create(c.Request().Context(), callerID(c), storeID, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, color)
}

// UpdateColor handles updating an existing color
func (h *Handler) UpdateColor(c echo.Context) error {
	var req service.ColorInput
	if err := bindBody(c, &req); err != nil {
		return respondError(c, err)
	}

	effect, err := h.svc.Colors.Update(c.Request().Context(), callerID(c), c.Param("storeId"), c.Param("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, effect)
}

// DeleteColor handles deleting a color no product uses
func (h *Handler) DeleteColor(c echo.Context) error {
	effect, err := h.svc.Colors.Delete(c.Request().Context(), callerID(c), c.Param("storeId"), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, effect)
}
