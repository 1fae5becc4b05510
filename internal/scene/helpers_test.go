package scene

import (
	"bytes"
	"log/slog"
	"testing"

	"solar-system-server/internal/catalog"
	"solar-system-server/internal/shared/random"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func newTestGenerator(t *testing.T, src random.Source) *Generator {
	t.Helper()
	return NewGenerator(DefaultLayout(), catalog.NewStore(catalog.Default()), src, discardLogger())
}

func newTestInspector(src random.Source) *Inspector {
	return NewInspector(catalog.NewStore(catalog.Default()), src)
}
