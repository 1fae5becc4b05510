package handlers

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"solar-system-server/internal/scene"
	"solar-system-server/internal/session"
	"solar-system-server/internal/shared/errors"
	"solar-system-server/internal/shared/response"
)

// Pointer coordinates beyond this are rejected rather than hit-tested.
const maxCoordinate = 1e9

type SceneHandler struct {
	service *scene.Service
}

func NewSceneHandler(service *scene.Service) *SceneHandler {
	return &SceneHandler{service: service}
}

// Generate handles POST /api/scene/generate
func (h *SceneHandler) Generate(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "generate_scene")

	sessionID, ok := h.begin(w, r, logger, http.MethodPost)
	if !ok {
		return
	}

	generated, err := h.service.Generate(r.Context(), sessionID)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusCreated, generated.Summary())
}

// Get handles GET /api/scene
func (h *SceneHandler) Get(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "get_scene")

	sessionID, ok := h.begin(w, r, logger, http.MethodGet)
	if !ok {
		return
	}

	current, err := h.service.Current(r.Context(), sessionID)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, current.Summary())
}

// Image handles GET /api/scene/image
func (h *SceneHandler) Image(w http.ResponseWriter, r *http.Request) {
	h.writePNG(w, r, "scene_image", "")
}

// Export handles GET /api/scene/export
func (h *SceneHandler) Export(w http.ResponseWriter, r *http.Request) {
	h.writePNG(w, r, "export_scene", scene.ExportFilename)
}

func (h *SceneHandler) writePNG(w http.ResponseWriter, r *http.Request, name, filename string) {
	logger := slog.With("handler", name)

	sessionID, ok := h.begin(w, r, logger, http.MethodGet)
	if !ok {
		return
	}

	data, err := h.service.Export(r.Context(), sessionID)
	if err != nil {
		response.ErrorWithMessage(w, r, logger, err, "failed to export image")
		return
	}

	response.PNG(w, data, filename)
}

// Inspect handles GET /api/scene/inspect?client_x=&client_y=&offset_x=&offset_y=
func (h *SceneHandler) Inspect(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "inspect_scene")

	sessionID, ok := h.begin(w, r, logger, http.MethodGet)
	if !ok {
		return
	}

	pointer, err := parsePointer(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	tooltip, err := h.service.Inspect(r.Context(), sessionID, pointer)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, tooltip)
}

// Leave handles POST /api/scene/leave
func (h *SceneHandler) Leave(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "leave_scene")

	if _, ok := h.begin(w, r, logger, http.MethodPost); !ok {
		return
	}

	response.Success(w, http.StatusOK, h.service.Leave())
}

// StartAnimation handles POST /api/scene/animation/start
func (h *SceneHandler) StartAnimation(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "start_animation")

	sessionID, ok := h.begin(w, r, logger, http.MethodPost)
	if !ok {
		return
	}

	response.Success(w, http.StatusOK, h.service.StartAnimation(sessionID))
}

// StopAnimation handles POST /api/scene/animation/stop
func (h *SceneHandler) StopAnimation(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "stop_animation")

	sessionID, ok := h.begin(w, r, logger, http.MethodPost)
	if !ok {
		return
	}

	response.Success(w, http.StatusOK, h.service.StopAnimation(sessionID))
}

// AnimationStatus handles GET /api/scene/animation
func (h *SceneHandler) AnimationStatus(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "animation_status")

	sessionID, ok := h.begin(w, r, logger, http.MethodGet)
	if !ok {
		return
	}

	response.Success(w, http.StatusOK, h.service.Animating(sessionID))
}

// begin checks the method and resolves the session. On failure the error
// response has already been written.
func (h *SceneHandler) begin(w http.ResponseWriter, r *http.Request, logger *slog.Logger, method string) (string, bool) {
	if r.Method != method {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return "", false
	}

	sessionID, ok := session.FromContext(r.Context())
	if !ok {
		response.Error(w, r, logger, errors.Unauthorized("session required"))
		return "", false
	}
	return sessionID, true
}

func parsePointer(r *http.Request) (scene.Pointer, error) {
	query := r.URL.Query()

	clientX, err := parseCoordinate(query.Get("client_x"), "client_x", true)
	if err != nil {
		return scene.Pointer{}, err
	}
	clientY, err := parseCoordinate(query.Get("client_y"), "client_y", true)
	if err != nil {
		return scene.Pointer{}, err
	}
	offsetX, err := parseCoordinate(query.Get("offset_x"), "offset_x", false)
	if err != nil {
		return scene.Pointer{}, err
	}
	offsetY, err := parseCoordinate(query.Get("offset_y"), "offset_y", false)
	if err != nil {
		return scene.Pointer{}, err
	}

	return scene.Pointer{ClientX: clientX, ClientY: clientY, OffsetX: offsetX, OffsetY: offsetY}, nil
}

func parseCoordinate(raw, name string, required bool) (float64, error) {
	if raw == "" {
		if required {
			return 0, errors.Validationf("%s is required", name)
		}
		return 0, nil
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.WrapValidation("invalid "+name+" format", err)
	}
	if math.IsNaN(value) || math.Abs(value) > maxCoordinate {
		return 0, errors.Validationf("%s out of range", name)
	}
	return value, nil
}
