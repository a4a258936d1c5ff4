package middleware

import (
	"store-admin-service/pkg/logger"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

// RequestIDMiddleware adds a unique request ID to each request and a logger
// carrying it to both the echo and the request context
func RequestIDMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		// Keep an id forwarded by a proxy, otherwise generate one
		requestID := c.Request().Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
			c.Request().Header.Set(requestIDHeader, requestID)
		}
		c.Response().Header().Set(requestIDHeader, requestID)

		// Add the request ID to the context
		c.Set("request_id", requestID)

		// Add request ID to logger context
		log := logger.GetLogger().With(zap.String("request_id", requestID))
		logger.Attach(c, log)

		// Pass to the next middleware/handler
		return next(c)
	}
}
