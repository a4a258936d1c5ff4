package handler

import (
	"net/http"

	"store-admin-service/internal/apperror"
	mid "store-admin-service/internal/middleware"
	"store-admin-service/internal/service"
	"store-admin-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// Handler exposes the catalog services over HTTP
type Handler struct {
	svc *service.Services
}

func New(svc *service.Services) *Handler {
	return &Handler{svc: svc}
}

// Register mounts every API route on g
func (h *Handler) Register(g *echo.Group) {
	// Store routes
	g.GET("/stores", h.ListStores)
	g.POST("/stores", h.CreateStore)
	g.GET("/stores/:storeId", h.GetStore)
	g.PATCH("/stores/:storeId", h.UpdateStore)
	g.DELETE("/stores/:storeId", h.DeleteStore)

	// Billboard routes
	g.GET("/:storeId/billboards", h.ListBillboards)
	g.POST("/:storeId/billboards", h.CreateBillboard)
	g.GET("/:storeId/billboards/:id", h.GetBillboard)
	g.PATCH("/:storeId/billboards/:id", h.UpdateBillboard)
	g.DELETE("/:storeId/billboards/:id", h.DeleteBillboard)

	// Category routes
	g.GET("/:storeId/categories", h.ListCategories)
	g.POST("/:storeId/categories", h.CreateCategory)
	g.GET("/:storeId/categories/:id", h.GetCategory)
	g.PATCH("/:storeId/categories/:id", h.UpdateCategory)
	g.DELETE("/:storeId/categories/:id", h.DeleteCategory)

	// Size routes
	g.GET("/:storeId/sizes", h.ListSizes)
	g.POST("/:storeId/sizes", h.CreateSize)
	g.GET("/:storeId/sizes/:id", h.GetSize)
	g.PATCH("/:storeId/sizes/:id", h.UpdateSize)
	g.DELETE("/:storeId/sizes/:id", h.DeleteSize)

	// Color routes
	g.GET("/:storeId/colors", h.ListColors)
	g.POST("/:storeId/colors", h.CreateColor)
	g.GET("/:storeId/colors/:id", h.GetColor)
	g.PATCH("/:storeId/colors/:id", h.UpdateColor)
	g.DELETE("/:storeId/colors/:id", h.DeleteColor)

	// Product routes
	g.GET("/:storeId/products", h.ListProducts)
	g.POST("/:storeId/products", h.CreateProduct)
	g.GET("/:storeId/products/:id", h.GetProduct)
	g.PATCH("/:storeId/products/:id", h.UpdateProduct)
	g.DELETE("/:storeId/products/:id", h.DeleteProduct)
}

// respondError writes err with the status of its kind. Internal failures
// are logged and answered with a generic message.
func respondError(c echo.Context, err error) error {
	log := logger.FromEcho(c)
	appErr := apperror.As(err)

	if appErr.Kind == apperror.KindInternal {
		log.Error("Request failed",
			zap.String("path", c.Path()),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}

	log.Info("Request rejected",
		zap.String("kind", appErr.Kind.String()),
		zap.String("field", appErr.Field),
		zap.String("reason", appErr.Message))
	return c.JSON(appErr.Kind.HTTPStatus(), ErrorResponse{Error: appErr.Message, Field: appErr.Field})
}

// bindBody decodes the JSON request body into v. A body that does not decode
// is a validation failure; the caller must not use v then.
func bindBody(c echo.Context, v any) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, v); err != nil {
		logger.FromEcho(c).Warn("Invalid request data", zap.Error(err))
		return apperror.Validation("", "Invalid request data")
	}
	return nil
}

func callerID(c echo.Context) string {
	return mid.CallerID(c)
}
