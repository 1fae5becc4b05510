package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"solar-system-server/internal/catalog"
	"solar-system-server/internal/scene"
	"solar-system-server/internal/session"
	"solar-system-server/internal/shared/random"
	"solar-system-server/internal/shared/response"
)

func newTestHandler(t *testing.T) (*SceneHandler, *scene.Service) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	catalogs := catalog.NewStore(catalog.Default())
	src := random.New(42)

	svc := scene.NewService(
		scene.NewGenerator(scene.DefaultLayout(), catalogs, src, logger),
		scene.NewInspector(catalogs, src),
		scene.NewMemoryRepository(ctx, time.Hour, logger),
		scene.NewAnimator(30, time.Minute, logger),
		logger,
	)
	t.Cleanup(svc.Shutdown)

	return NewSceneHandler(svc), svc
}

func withSession(r *http.Request, id string) *http.Request {
	return r.WithContext(session.WithID(r.Context(), id))
}

func TestGenerate(t *testing.T) {
	h, _ := newTestHandler(t)

	req := withSession(httptest.NewRequest(http.MethodPost, "/api/scene/generate", nil), "sid")
	rec := httptest.NewRecorder()
	h.Generate(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var summary scene.Summary
	if err := json.NewDecoder(rec.Body).Decode(&summary); err != nil {
		t.Fatal(err)
	}
	if summary.Width != 800 || summary.Height != 600 {
		t.Errorf("Expected 800x600, got %dx%d", summary.Width, summary.Height)
	}
	if summary.Placed != len(summary.Bodies) || summary.Placed == 0 {
		t.Errorf("Unexpected placed count %d for %d bodies", summary.Placed, len(summary.Bodies))
	}
	if summary.Title != "Solar System: "+summary.SystemName {
		t.Errorf("Unexpected title %q", summary.Title)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	h, _ := newTestHandler(t)

	tests := []struct {
		name    string
		method  string
		handler http.HandlerFunc
	}{
		{"generate", http.MethodGet, h.Generate},
		{"get", http.MethodPost, h.Get},
		{"image", http.MethodPost, h.Image},
		{"export", http.MethodDelete, h.Export},
		{"inspect", http.MethodPost, h.Inspect},
		{"leave", http.MethodGet, h.Leave},
		{"start", http.MethodGet, h.StartAnimation},
		{"stop", http.MethodGet, h.StopAnimation},
		{"status", http.MethodPost, h.AnimationStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.handler(rec, withSession(httptest.NewRequest(tt.method, "/", nil), "sid"))

			if rec.Code != http.StatusMethodNotAllowed {
				t.Errorf("Expected 405, got %d", rec.Code)
			}
		})
	}
}

func TestMissingSession(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.Get(rec, httptest.NewRequest(http.MethodGet, "/api/scene", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401, got %d", rec.Code)
	}

	var body response.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Code != http.StatusUnauthorized || body.Error != "unauthorized" {
		t.Errorf("Unexpected error body %+v", body)
	}
}

func TestGetIsStable(t *testing.T) {
	h, _ := newTestHandler(t)

	get := func() scene.Summary {
		rec := httptest.NewRecorder()
		h.Get(rec, withSession(httptest.NewRequest(http.MethodGet, "/api/scene", nil), "sid"))
		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", rec.Code)
		}
		var s scene.Summary
		if err := json.NewDecoder(rec.Body).Decode(&s); err != nil {
			t.Fatal(err)
		}
		return s
	}

	first, second := get(), get()
	if first.SystemName != second.SystemName || !first.GeneratedAt.Equal(second.GeneratedAt) {
		t.Error("Expected repeated reads to return the same scene")
	}
}

func TestImageAndExport(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.Image(rec, withSession(httptest.NewRequest(http.MethodGet, "/api/scene/image", nil), "sid"))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Expected image/png, got %s", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); cd != "" {
		t.Errorf("Expected inline image, got Content-Disposition %q", cd)
	}
	inline := rec.Body.Bytes()

	rec = httptest.NewRecorder()
	h.Export(rec, withSession(httptest.NewRequest(http.MethodGet, "/api/scene/export", nil), "sid"))

	if cd := rec.Header().Get("Content-Disposition"); cd != `attachment; filename="solar_system.png"` {
		t.Errorf("Unexpected Content-Disposition %q", cd)
	}
	if !bytes.Equal(inline, rec.Body.Bytes()) {
		t.Error("Expected the export to match the displayed surface")
	}

	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 800 || b.Dy() != 600 {
		t.Errorf("Expected 800x600, got %dx%d", b.Dx(), b.Dy())
	}
}

func inspectURL(clientX, clientY, offsetX, offsetY float64) string {
	q := url.Values{}
	q.Set("client_x", strconv.FormatFloat(clientX, 'f', -1, 64))
	q.Set("client_y", strconv.FormatFloat(clientY, 'f', -1, 64))
	q.Set("offset_x", strconv.FormatFloat(offsetX, 'f', -1, 64))
	q.Set("offset_y", strconv.FormatFloat(offsetY, 'f', -1, 64))
	return "/api/scene/inspect?" + q.Encode()
}

func TestInspect(t *testing.T) {
	h, svc := newTestHandler(t)

	generated, err := svc.Generate(context.Background(), "sid")
	if err != nil {
		t.Fatal(err)
	}
	body := generated.Bodies[0]

	rec := httptest.NewRecorder()
	h.Inspect(rec, withSession(httptest.NewRequest(http.MethodGet, inspectURL(body.X+10, body.Y+20, 10, 20), nil), "sid"))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var tip scene.Tooltip
	if err := json.NewDecoder(rec.Body).Decode(&tip); err != nil {
		t.Fatal(err)
	}
	if !tip.Visible || tip.Name != body.Name {
		t.Errorf("Expected %s, got %+v", body.Name, tip)
	}
	if tip.Left != body.X+10 || tip.Top != body.Y+20 {
		t.Errorf("Expected tooltip at client coordinates, got (%v, %v)", tip.Left, tip.Top)
	}

	rec = httptest.NewRecorder()
	h.Inspect(rec, withSession(httptest.NewRequest(http.MethodGet, inspectURL(0, 0, 0, 0), nil), "sid"))

	tip = scene.Tooltip{}
	if err := json.NewDecoder(rec.Body).Decode(&tip); err != nil {
		t.Fatal(err)
	}
	if tip.Visible {
		t.Errorf("Expected a hidden tooltip in the corner, got %+v", tip)
	}
}

func TestInspectValidation(t *testing.T) {
	h, _ := newTestHandler(t)

	tests := map[string]string{
		"missing client_x": "/api/scene/inspect?client_y=1",
		"missing client_y": "/api/scene/inspect?client_x=1",
		"not a number":     "/api/scene/inspect?client_x=abc&client_y=1",
		"bad offset":       "/api/scene/inspect?client_x=1&client_y=1&offset_x=left",
		"nan":              "/api/scene/inspect?client_x=NaN&client_y=1",
		"out of range":     "/api/scene/inspect?client_x=1e12&client_y=1",
	}

	for name, target := range tests {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.Inspect(rec, withSession(httptest.NewRequest(http.MethodGet, target, nil), "sid"))

			if rec.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestInspectWithoutScene(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.Inspect(rec, withSession(httptest.NewRequest(http.MethodGet, inspectURL(400, 300, 0, 0), nil), "fresh"))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var tip scene.Tooltip
	if err := json.NewDecoder(rec.Body).Decode(&tip); err != nil {
		t.Fatal(err)
	}
	if tip.Visible {
		t.Error("Expected a hidden tooltip before any scene exists")
	}
}

func TestLeave(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.Leave(rec, withSession(httptest.NewRequest(http.MethodPost, "/api/scene/leave", nil), "sid"))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var tip scene.Tooltip
	if err := json.NewDecoder(rec.Body).Decode(&tip); err != nil {
		t.Fatal(err)
	}
	if tip.Visible {
		t.Error("Expected a hidden tooltip")
	}
}

func TestAnimationEndpoints(t *testing.T) {
	h, _ := newTestHandler(t)

	call := func(handler http.HandlerFunc, method string) scene.AnimationStatus {
		rec := httptest.NewRecorder()
		handler(rec, withSession(httptest.NewRequest(method, "/", nil), "sid"))
		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", rec.Code)
		}
		var status scene.AnimationStatus
		if err := json.NewDecoder(rec.Body).Decode(&status); err != nil {
			t.Fatal(err)
		}
		return status
	}

	if s := call(h.AnimationStatus, http.MethodGet); s.Animating {
		t.Error("Expected no animation initially")
	}
	if s := call(h.StartAnimation, http.MethodPost); !s.Animating || !s.Changed {
		t.Errorf("Expected animation to start, got %+v", s)
	}
	if s := call(h.StartAnimation, http.MethodPost); !s.Animating || s.Changed {
		t.Errorf("Expected repeated start to change nothing, got %+v", s)
	}
	if s := call(h.AnimationStatus, http.MethodGet); !s.Animating {
		t.Error("Expected animation to be reported")
	}
	if s := call(h.StopAnimation, http.MethodPost); s.Animating || !s.Changed {
		t.Errorf("Expected animation to stop, got %+v", s)
	}
}

func TestParseCoordinate(t *testing.T) {
	if v, err := parseCoordinate("", "offset_x", false); err != nil || v != 0 {
		t.Errorf("Expected optional empty value to default to 0, got %v, %v", v, err)
	}
	if _, err := parseCoordinate("", "client_x", true); err == nil {
		t.Error("Expected required empty value to fail")
	}
	if v, err := parseCoordinate("-12.5", "client_x", true); err != nil || v != -12.5 {
		t.Errorf("Expected -12.5, got %v, %v", v, err)
	}
}
