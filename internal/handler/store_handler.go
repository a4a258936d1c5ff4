package handler

import (
	"net/http"

	"store-admin-service/internal/service"
	"store-admin-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ListStores returns the stores owned by the caller
func (h *Handler) ListStores(c echo.Context) error {
	stores, err := h.svc.Catalog.ListStores(c.Request().Context(), callerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, stores)
}

// GetStore returns one store of the caller
func (h *Handler) GetStore(c echo.Context) error {
	store, err := h.svc.Catalog.GetStore(c.Request().Context(), callerID(c), c.Param("storeId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, store)
}

// CreateStore creates a store owned by the caller
func (h *Handler) CreateStore(c echo.Context) error {
	log := logger.FromEcho(c)
	log.Info("Creating new store")

	var req service.StoreInput
	if err := bindBody(c, &req); err != nil {
		return respondError(c, err)
	}

	store, err := h.svc.Stores.Create(c.Request().Context(), callerID(c), req)
	if err != nil {
		return respondError(c, err)
	}

	log.Info("Store created successfully", zap.String("store_id", store.ID))
	return c.JSON(http.StatusCreated, store)
}

// UpdateStore renames a store of the caller
func (h *Handler) UpdateStore(c echo.Context) error {
	var req service.StoreInput
	if err := bindBody(c, &req); err != nil {
		return respondError(c, err)
	}

	effect, err := h.svc.Stores.Update(c.Request().Context(), callerID(c), c.Param("storeId"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, effect)
}

// DeleteStore deletes an empty store of the caller
func (h *Handler) DeleteStore(c echo.Context) error {
	effect, err := h.svc.Stores.Delete(c.Request().Context(), callerID(c), c.Param("storeId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, effect)
}
