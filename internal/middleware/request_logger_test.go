package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestLoggerRecordsFinalStatus(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	app := fiber.New()
	app.Use(requestid.New())
	app.Use(RequestLogger(zap.New(core)))
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/missing", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusNotFound, "Article not found") })
	app.Get("/boom", func(c *fiber.Ctx) error { return assert.AnError })

	for _, path := range []string{"/ok", "/missing", "/boom"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
		require.NoError(t, err)
		resp.Body.Close()
	}

	entries := logs.All()
	require.Len(t, entries, 3)

	want := []struct {
		path   string
		status int64
		level  string
	}{
		{"/ok", 200, "info"},
		{"/missing", 404, "info"},
		{"/boom", 500, "warn"},
	}
	for i, w := range want {
		fields := entries[i].ContextMap()
		assert.Equal(t, w.path, fields["path"])
		assert.Equal(t, http.MethodGet, fields["method"])
		assert.Equal(t, w.status, fields["status"])
		assert.Equal(t, w.level, entries[i].Level.String())
		assert.NotEmpty(t, fields["request_id"])
	}
}
