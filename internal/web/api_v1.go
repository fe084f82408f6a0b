package web

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"net/http"
	"strconv"
	"strings"
	"sync"

	xdraw "golang.org/x/image/draw"

	"github.com/rook-computer/scoreboard/internal/diag"
	"github.com/rook-computer/scoreboard/internal/feed"
	"github.com/rook-computer/scoreboard/internal/layout"
	"github.com/rook-computer/scoreboard/internal/logging"
	"github.com/rook-computer/scoreboard/internal/render"
	"github.com/rook-computer/scoreboard/internal/state"
)

const maxFrameScale = 16

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

type stateResponse struct {
	State state.GameState `json:"state"`
	Feed  feed.Status     `json:"feed"`
}

type violationResponse struct {
	Element string `json:"element"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
}

type reloadFailure struct {
	apiError
	Violations []violationResponse `json:"violations,omitempty"`
}

type apiV1 struct {
	source Source
	logger logging.Logger

	// The preview canvas is shared by concurrent frame requests.
	canvasMu sync.Mutex
	canvas   *render.Canvas
}

func apiV1Router(source Source, canvas *render.Canvas, logger logging.Logger) http.Handler {
	api := &apiV1{source: source, canvas: canvas, logger: logging.OrNoop(logger)}
	mux := http.NewServeMux()
	mux.HandleFunc("/scene", api.handleScene)
	mux.HandleFunc("/frame.png", api.handleFramePNG)
	mux.HandleFunc("/state", api.handleState)
	mux.HandleFunc("/layout", api.handleLayout)
	mux.HandleFunc("/layout/reload", api.handleLayoutReload)
	return mux
}

func (api *apiV1) handleScene(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	frame, ok := api.source.Frame()
	if !ok {
		writeAPIError(w, http.StatusServiceUnavailable, "no_frame", "no frame published yet")
		return
	}
	writeJSON(w, http.StatusOK, frame)
}

func (api *apiV1) handleFramePNG(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	frame, ok := api.source.Frame()
	if !ok {
		writeAPIError(w, http.StatusServiceUnavailable, "no_frame", "no frame published yet")
		return
	}
	scale := 1
	if raw := r.URL.Query().Get("scale"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxFrameScale {
			writeAPIError(w, http.StatusBadRequest, "bad_scale", "scale must be between 1 and 16")
			return
		}
		scale = n
	}

	var buf bytes.Buffer
	api.canvasMu.Lock()
	// Unresolved bitmaps stay blank; the rest of the preview is still served.
	if err := api.canvas.Paint(frame.Scene); err != nil {
		api.logger.Warnf("web", "frame %s preview: %v", frame.ID, err)
	}
	src := api.canvas.Image()
	var out image.Image = src
	if scale > 1 {
		b := src.Bounds()
		dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
		xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
		out = dst
	}
	err := png.Encode(&buf, out)
	api.canvasMu.Unlock()
	if err != nil {
		writeAPIError(w, http.StatusInternalServerError, "encode_failed", err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("X-Frame-Id", frame.ID)
	_, _ = w.Write(buf.Bytes())
}

func (api *apiV1) handleState(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, stateResponse{State: api.source.State(), Feed: api.source.FeedStatus()})
}

func (api *apiV1) handleLayout(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	schema := api.source.Layout()
	if schema == nil {
		writeAPIError(w, http.StatusServiceUnavailable, "no_layout", "no layout loaded")
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if name := r.URL.Query().Get("element"); name != "" {
		desc, err := diag.Describe(schema, name)
		if err != nil {
			writeAPIError(w, http.StatusNotFound, "element_not_found", err.Error())
			return
		}
		_, _ = w.Write([]byte(name + " " + desc + "\n"))
		return
	}
	if strings.EqualFold(r.URL.Query().Get("format"), "listing") {
		_ = diag.WriteListing(w, schema)
		return
	}
	_, _ = w.Write([]byte(diag.Grid(schema)))
}

func (api *apiV1) handleLayoutReload(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	err := api.source.ReloadLayout(r.Context())
	if err == nil {
		writeJSON(w, http.StatusOK, okResponse{OK: true})
		return
	}
	if verr, ok := layout.AsValidationError(err); ok {
		resp := reloadFailure{apiError: apiError{Error: "invalid_layout", Message: err.Error()}}
		for _, v := range verr.Violations {
			resp.Violations = append(resp.Violations, violationResponse{
				Element: v.Element,
				Kind:    string(v.Kind),
				Message: v.Message,
				Line:    v.Line,
			})
		}
		writeJSON(w, http.StatusUnprocessableEntity, resp)
		return
	}
	writeAPIError(w, http.StatusInternalServerError, "reload_failed", err.Error())
}

func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{Error: code, Message: message})
}
