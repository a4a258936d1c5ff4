package logger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromContextFallsBackToGlobal(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))
}

func TestWithContextRoundTrip(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	log := zap.New(core)

	ctx := WithContext(context.Background(), log)
	FromContext(ctx).Info("hello")

	assert.Equal(t, 1, logs.Len())
}

func TestFromEchoUsesRequestContext(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithContext(req.Context(), zap.New(core)))

	c := echo.New().NewContext(req, httptest.NewRecorder())
	FromEcho(c).Info("from request context")

	assert.Equal(t, 1, logs.Len())
}

func TestAttachSetsBothContexts(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	log := zap.New(core)

	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	Attach(c, log)

	FromEcho(c).Info("handler")
	FromContext(c.Request().Context()).Info("service")
	assert.Equal(t, 2, logs.Len())
}
