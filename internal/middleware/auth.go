package middleware

import (
	"net/http"
	"strings"

	"store-admin-service/pkg/jwtutil"
	"store-admin-service/pkg/logger"
	"store-admin-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const callerIDKey = "caller_id"

// TokenValidator verifies bearer tokens
type TokenValidator interface {
	ValidateToken(tokenString string) (*jwtutil.UserClaims, error)
}

// AuthMiddleware extracts the caller identity from the bearer token. Requests
// without an Authorization header pass through anonymously; the services
// decide whether identity is required. A header that is present but invalid
// is rejected.
func AuthMiddleware(tokens TokenValidator, metrics *prometheus.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromEcho(c)

			// Get the Authorization header
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return next(c)
			}

			// Check if it's a Bearer token
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				log.Warn("Invalid Authorization header format")
				metrics.RecordAuthError("malformed_header")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authorization format, expected Bearer token"})
			}

			// Validate the token
			claims, err := tokens.ValidateToken(parts[1])
			if err != nil {
				log.Warn("Invalid JWT token", zap.Error(err))
				metrics.RecordAuthError("invalid_token")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
			}

			// Store user info in context for later use
			c.Set(callerIDKey, claims.UserID())
			log = log.With(zap.String("caller_id", claims.UserID()))
			logger.Attach(c, log)

			return next(c)
		}
	}
}

// CallerID returns the authenticated user id, empty for anonymous requests
func CallerID(c echo.Context) string {
	id, _ := c.Get(callerIDKey).(string)
	return id
}
