// Package web serves the single page that hosts the scene surface and controls.
package web

import (
	_ "embed"
	"log/slog"
	"net/http"

	"solar-system-server/internal/shared/errors"
	"solar-system-server/internal/shared/response"
)

//go:embed index.html
var indexHTML []byte

type IndexHandler struct{}

func NewIndexHandler() *IndexHandler {
	return &IndexHandler{}
}

func (h *IndexHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "index")

	if r.URL.Path != "/" {
		response.Error(w, r, logger, errors.NotFoundf("no page at %s", r.URL.Path))
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(indexHTML)
}
