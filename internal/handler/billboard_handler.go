package handler

import (
	"net/http"

	"store-admin-service/internal/service"
	"store-admin-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ListBillboards lists the billboards of a store, newest first
func (h *Handler) ListBillboards(c echo.Context) error {
	billboards, err := h.svc.Catalog.ListBillboards(c.Request().Context(), c.Param("storeId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, billboards)
}

// GetBillboard retrieves a billboard of a store
func (h *Handler) GetBillboard(c echo.Context) error {
	billboard, err := h.svc.Catalog.GetBillboard(c.Request().Context(), c.Param("storeId"), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, billboard)
}

// CreateBillboard handles creating a new billboard
func (h *Handler) CreateBillboard(c echo.Context) error {
	log := logger.FromEcho(c)
	storeID := c.Param("storeId")
	log.Info("Creating new billboard", zap.String("store_id", storeID))

	var req service.BillboardInput
	if err := bindBody(c, &req); err != nil {
		return respondError(c, err)
	}

	billboard, err := h.svc.Billboards.Create(c.Request().Context(), callerID(c), storeID, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, billboard)
}

// UpdateBillboard handles updating an existing billboard
func (h *Handler) UpdateBillboard(c echo.Context) error {
	var req service.BillboardInput
	if err := bindBody(c, &req); err != nil {
		return respondError(c, err)
	}

	effect, err := h.svc.Billboards.Update(c.Request().Context(), callerID(c), c.Param("storeId"), c.Param("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, effect)
}

// DeleteBillboard handles deleting a billboard no category uses
func (h *Handler) DeleteBillboard(c echo.Context) error {
	effect, err := h.svc.Billboards.Delete(c.Request().Context(), callerID(c), c.Param("storeId"), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, effect)
}
