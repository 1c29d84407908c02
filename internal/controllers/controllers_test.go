package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pllus/articles-server/internal/repository"
	"github.com/pllus/articles-server/internal/services"
)

func TestStoreError(t *testing.T) {
	other := errors.New("boom")
	tests := []struct {
		in   error
		code int
		msg  string
	}{
		{fmt.Errorf("create comment: %w", repository.ErrNotFound), fiber.StatusNotFound, "Article not found"},
		{context.DeadlineExceeded, fiber.StatusGatewayTimeout, "request timed out"},
		{services.ErrToggleConflict, fiber.StatusConflict, "too many concurrent updates, please retry"},
	}
	for _, tt := range tests {
		var fe *fiber.Error
		if assert.ErrorAs(t, storeError(tt.in, "Article not found"), &fe) {
			assert.Equal(t, tt.code, fe.Code)
			assert.Equal(t, tt.msg, fe.Message)
		}
	}
	assert.Same(t, other, storeError(other, "x"))
}

func TestParseID(t *testing.T) {
	_, err := parseID("", "articleId")
	assert.EqualError(t, err, "articleId is required")

	_, err = parseID("zzz", "articleId")
	assert.EqualError(t, err, "invalid articleId")

	id, err := parseID(" 64b7f0c2a1b2c3d4e5f60718 ", "articleId")
	assert.NoError(t, err)
	assert.Equal(t, "64b7f0c2a1b2c3d4e5f60718", id.Hex())
}

func TestErrorHandlerLogsInternalErrors(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(zap.New(core).Sugar())})
	app.Get("/first", func(c *fiber.Ctx) error { return errors.New("db down") })
	app.Get("/second-longer-path", func(c *fiber.Ctx) error { return errors.New("db down") })
	app.Get("/missing", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusNotFound, "Article not found") })

	for _, path := range []string{"/first", "/second-longer-path", "/missing"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
		require.NoError(t, err)
		resp.Body.Close()
	}

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "/first", entries[0].ContextMap()["path"])
	assert.Equal(t, "/second-longer-path", entries[1].ContextMap()["path"])
}
