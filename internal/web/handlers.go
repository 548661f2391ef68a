package web

import (
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"strconv"
	"time"

	"github.com/cjeanneret/PanCam/internal/debug"
	"github.com/cjeanneret/PanCam/internal/logic/geometry"
	"github.com/cjeanneret/PanCam/internal/logic/instrument"
	"github.com/cjeanneret/PanCam/internal/logic/planner"
	"github.com/cjeanneret/PanCam/internal/logic/ptu"
	"github.com/cjeanneret/PanCam/internal/logic/session"
	"github.com/cjeanneret/PanCam/internal/preview"
	"github.com/cjeanneret/PanCam/internal/scene"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// PTUMove is the body of POST /ptu. Missing axes are left where they are.
type PTUMove struct {
	PanDeg  *float64 `json:"pan_deg"`
	TiltDeg *float64 `json:"tilt_deg"`
}

// ConfigView is what the UI needs to build its controls.
type ConfigView struct {
	Limits         LimitsView        `json:"limits"`
	Presets        []ptu.Preset      `json:"presets"`
	Instruments    []InstrumentInfo  `json:"instruments"`
	OverlapPercent float64           `json:"overlap_percent"`
	Assets         map[string]string `json:"assets"`
}

// LimitsView mirrors session.Limits for JSON.
type LimitsView struct {
	MinSamples int     `json:"min_samples"`
	MaxSamples int     `json:"max_samples"`
	MinFar     float64 `json:"min_far"`
	MaxFar     float64 `json:"max_far"`
	PanMinDeg  float64 `json:"pan_min_deg"`
	PanMaxDeg  float64 `json:"pan_max_deg"`
	TiltMinDeg float64 `json:"tilt_min_deg"`
	TiltMaxDeg float64 `json:"tilt_max_deg"`
}

// InstrumentInfo is the static description of an instrument.
type InstrumentInfo struct {
	ID    string `json:"id"`
	Stage string `json:"stage"`
	Color string `json:"color"`
	Asset string `json:"asset,omitempty"`
}

// StateView is the body of GET /state: the session snapshot plus the
// derived geometry the renderer draws.
type StateView struct {
	session.Snapshot
	Quads  []scene.Quad             `json:"quads"`
	Frusta map[string]scene.Frustum `json:"frusta"`
}

// PlanResult is the body of POST /plan.
type PlanResult struct {
	Tiles []planner.Tile `json:"tiles"`
	Total int            `json:"total"`
}

// Handlers holds dependencies for HTTP handlers.
type Handlers struct {
	Session      *session.State
	Assets       *scene.Assets
	Broadcaster  *StatusBroadcaster
	OverlapRatio float64
	staticFS     fs.FS
}

// NewHandlers creates handlers with the given dependencies.
// assets may be nil when no asset tracking is in use.
func NewHandlers(s *session.State, assets *scene.Assets, broadcaster *StatusBroadcaster, overlapRatio float64, staticFS fs.FS) *Handlers {
	return &Handlers{
		Session:      s,
		Assets:       assets,
		Broadcaster:  broadcaster,
		OverlapRatio: overlapRatio,
		staticFS:     staticFS,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		debug.Error(err)
	}
}

// decodeJSON reads a bounded JSON body into v. An empty body leaves v as is.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return false
	}
	return true
}

func (h *Handlers) notify(what string, v any) {
	if h.Broadcaster != nil {
		h.Broadcaster.BroadcastState(what, v)
	}
}

// ServeIndex serves the main HTML page (root path only).
func (h *Handlers) ServeIndex(w http.ResponseWriter, r *http.Request) {
	data, err := fs.ReadFile(h.staticFS, "index.html")
	if err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(data)
}

// HandleConfig returns the limits, presets and instruments as JSON.
func (h *Handlers) HandleConfig(w http.ResponseWriter, r *http.Request) {
	lim := h.Session.Limits()
	cv := ConfigView{
		Limits: LimitsView{
			MinSamples: planner.MinSamples,
			MaxSamples: h.Session.MaxSamples(),
			MinFar:     lim.MinFar,
			MaxFar:     lim.MaxFar,
			PanMinDeg:  geometry.PanMinDeg,
			PanMaxDeg:  geometry.PanMaxDeg,
			TiltMinDeg: geometry.TiltMinDeg,
			TiltMaxDeg: geometry.TiltMaxDeg,
		},
		Presets:        h.Session.Presets(),
		OverlapPercent: h.OverlapRatio * 100,
	}
	for _, spec := range h.Session.Model().Registry().All() {
		cv.Instruments = append(cv.Instruments, InstrumentInfo{
			ID:    spec.ID,
			Stage: spec.Stage.String(),
			Color: spec.Style.Hex(),
			Asset: spec.Asset,
		})
	}
	if h.Assets != nil {
		cv.Assets = h.Assets.Status()
	}
	writeJSON(w, http.StatusOK, cv)
}

// HandleState returns the session snapshot with tile quads and the frusta
// of the instruments that have them switched on.
func (h *Handlers) HandleState(w http.ResponseWriter, r *http.Request) {
	snap := h.Session.Snapshot()
	view := StateView{
		Snapshot: snap,
		Quads:    make([]scene.Quad, 0, len(snap.Tiles)),
		Frusta:   make(map[string]scene.Frustum),
	}
	for _, t := range snap.Tiles {
		view.Quads = append(view.Quads, scene.TileQuad(t))
	}
	model := h.Session.Model()
	for _, iv := range snap.Instruments {
		if !iv.Settings.ShowFrustum || !iv.Available {
			continue
		}
		spec, err := model.Registry().Get(iv.ID)
		if err != nil {
			continue
		}
		pose := model.Rig().WorldPoseOf(spec, snap.PTU)
		view.Frusta[iv.ID] = scene.FrustumOf(pose, spec, iv.Settings.FarDistance)
	}
	writeJSON(w, http.StatusOK, view)
}

// HandlePTU handles POST /ptu. Angles are clamped, never rejected.
func (h *Handlers) HandlePTU(w http.ResponseWriter, r *http.Request) {
	var m PTUMove
	if !decodeJSON(w, r, &m) {
		return
	}
	st := h.Session.MovePTU(m.PanDeg, m.TiltDeg)
	h.notify("ptu", st)
	writeJSON(w, http.StatusOK, st)
}

// HandlePreset handles POST /ptu/preset/{name}.
func (h *Handlers) HandlePreset(w http.ResponseWriter, r *http.Request) {
	st, err := h.Session.ApplyPreset(r.PathValue("name"))
	if errors.Is(err, ptu.ErrUnknownPreset) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.notify("ptu", st)
	writeJSON(w, http.StatusOK, st)
}

// HandleRequest handles POST /request, a partial request update.
func (h *Handlers) HandleRequest(w http.ResponseWriter, r *http.Request) {
	var c session.RequestChange
	if !decodeJSON(w, r, &c) {
		return
	}
	req := h.Session.ApplyRequestChange(c)
	h.notify("request", req)
	writeJSON(w, http.StatusOK, req)
}

// HandleInstrument handles POST /instrument/{id}.
func (h *Handlers) HandleInstrument(w http.ResponseWriter, r *http.Request) {
	var c session.SettingsChange
	if !decodeJSON(w, r, &c) {
		return
	}
	st, err := h.Session.ApplySettingsChange(r.PathValue("id"), c)
	if errors.Is(err, instrument.ErrUnknownInstrument) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.notify("instrument", map[string]any{"id": r.PathValue("id"), "settings": st})
	writeJSON(w, http.StatusOK, st)
}

// HandlePlan handles POST /plan: one pass with the current request.
func (h *Handlers) HandlePlan(w http.ResponseWriter, r *http.Request) {
	tiles, total := h.Session.Plan()
	h.notify("plan", map[string]int{"added": len(tiles), "total": total})
	writeJSON(w, http.StatusOK, PlanResult{Tiles: tiles, Total: total})
}

// HandleClear handles POST /clear.
func (h *Handlers) HandleClear(w http.ResponseWriter, r *http.Request) {
	h.Session.ClearPlan()
	h.notify("clear", nil)
	writeJSON(w, http.StatusOK, h.Session.Request())
}

func (h *Handlers) previewOptions(snap session.Snapshot) preview.Options {
	o := preview.Options{
		Title:  "Panorama coverage",
		Origin: snap.RigOrigin,
		Colors: make(map[string]string, len(snap.Instruments)),
	}
	for _, iv := range snap.Instruments {
		o.Colors[iv.ID] = iv.Color
	}
	return o
}

// HandleChart handles GET /plan/chart, an HTML chart of the tiles.
func (h *Handlers) HandleChart(w http.ResponseWriter, r *http.Request) {
	snap := h.Session.Snapshot()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := preview.WriteHTML(w, snap.Tiles, h.previewOptions(snap)); err != nil {
		debug.Error(err)
	}
}

// HandlePreviewPNG handles GET /plan/preview.png.
func (h *Handlers) HandlePreviewPNG(w http.ResponseWriter, r *http.Request) {
	snap := h.Session.Snapshot()
	w.Header().Set("Content-Type", "image/png")
	if err := preview.WritePNG(w, snap.Tiles, h.previewOptions(snap)); err != nil {
		debug.Error(err)
	}
}

// HandleSuggest handles GET /plan/suggest?overlap=<percent>: the sample
// count per active instrument for the current sweep. The configured
// overlap is used when the parameter is absent or invalid.
func (h *Handlers) HandleSuggest(w http.ResponseWriter, r *http.Request) {
	ratio := h.OverlapRatio
	if v := r.URL.Query().Get("overlap"); v != "" {
		if pct, err := strconv.ParseFloat(v, 64); err == nil && pct >= 0 && pct < 100 {
			ratio = pct / 100
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"overlap_percent": ratio * 100,
		"samples":         h.Session.SuggestSamples(ratio),
	})
}

// HandleStatusStream handles GET /status/stream for SSE.
func (h *Handlers) HandleStatusStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // nginx

	ch, unsub := h.Broadcaster.Subscribe()
	defer unsub()

	w.Write([]byte(": connected\n\n"))
	flusher.Flush()

	// Heartbeat while idle
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			w.Write([]byte("data: " + msg + "\n\n"))
			flusher.Flush()

		case <-ticker.C:
			w.Write([]byte(": heartbeat\n\n"))
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
