package handlers

import (
	"log/slog"
	"net/http"

	"solar-system-server/internal/catalog"
	"solar-system-server/internal/shared/errors"
	"solar-system-server/internal/shared/response"
)

// AnimationCounter reports how many sessions are animating.
type AnimationCounter interface {
	Backend() string
	ActiveAnimations() int
}

type StatusResponse struct {
	Server           string `json:"server"`
	Store            string `json:"store"`
	ActiveAnimations int    `json:"active_animations"`
	PlanetNames      int    `json:"planet_names"`
	SystemNames      int    `json:"system_names"`
	PaletteColors    int    `json:"palette_colors"`
}

type StatusHandler struct {
	scenes   AnimationCounter
	catalogs *catalog.Store
}

func NewStatusHandler(scenes AnimationCounter, catalogs *catalog.Store) *StatusHandler {
	return &StatusHandler{scenes: scenes, catalogs: catalogs}
}

func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "server_status")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	cat := h.catalogs.Get()
	resp := StatusResponse{
		Server:           "Solar System",
		Store:            h.scenes.Backend(),
		ActiveAnimations: h.scenes.ActiveAnimations(),
		PlanetNames:      len(cat.PlanetNames),
		SystemNames:      len(cat.SystemNames),
		PaletteColors:    len(cat.Palette),
	}

	response.Success(w, http.StatusOK, resp)
}
