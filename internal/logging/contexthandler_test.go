package logging_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/myrjola/soverain/internal/logging"
	"github.com/stretchr/testify/assert"
)

func TestContextHandler(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(&buf, nil))).With(slog.String("app", "soverain"))

	parent := logging.WithAttrs(context.Background(), slog.String("profile", "Ruth"))
	first := logging.WithAttrs(parent, slog.String("route", "/"))
	second := logging.WithAttrs(parent, slog.String("route", "/search"))

	logger.InfoContext(first, "first")
	assert.Contains(t, buf.String(), "app=soverain")
	assert.Contains(t, buf.String(), "profile=Ruth")
	assert.Contains(t, buf.String(), "route=/")
	buf.Reset()

	logger.InfoContext(second, "second")
	assert.Contains(t, buf.String(), "route=/search")
	assert.NotContains(t, buf.String(), "route=/ ")
}
