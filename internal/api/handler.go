package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/prometheus/common/expfmt"

	"github.com/numbercruncher/numbercruncher/internal/cruncher"
	"github.com/numbercruncher/numbercruncher/internal/runner"
)

// Handler is the HTTP handler for /api/v1/* and /metrics.
type Handler struct {
	runner *runner.Runner
	mux    *http.ServeMux
}

// New creates a Handler wired to the given runner and registers all routes.
func New(r *runner.Runner) http.Handler {
	h := &Handler{runner: r, mux: http.NewServeMux()}

	h.mux.HandleFunc("/api/v1/health", h.health)
	h.mux.HandleFunc("/api/v1/tummy", h.tummy)
	h.mux.HandleFunc("/api/v1/log", h.requestLog)
	h.mux.HandleFunc("/api/v1/crunch", h.crunch)
	h.mux.HandleFunc("/metrics", h.metrics)

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// --- route handlers ---------------------------------------------------------

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	jsonResp(w, http.StatusOK, HealthResponse{
		Status:        "ok",
		TummySize:     len(h.runner.Tummy()),
		TummyCapacity: h.runner.Capacity(),
	})
}

func (h *Handler) tummy(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	jsonResp(w, http.StatusOK, h.runner.Tummy())
}

func (h *Handler) requestLog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	jsonResp(w, http.StatusOK, h.runner.Log())
}

// crunch returns POST /api/v1/crunch. A failed crunch maps to 502 because
// the numbers API, not the client, is at fault.
func (h *Handler) crunch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	v, err := h.runner.Crunch(r.Context())
	if err != nil {
		if !errors.Is(err, cruncher.ErrUnexpected) {
			slog.Error("api: crunch failed", "err", err)
		}
		jsonErr(w, http.StatusBadGateway, err.Error())
		return
	}
	jsonResp(w, http.StatusOK, CrunchResponse{
		Verdict: v.String(),
		Kind:    string(v.Kind),
		Number:  v.Number,
	})
}

func (h *Handler) metrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	w.Header().Set("Content-Type", string(expfmt.NewFormat(expfmt.TypeTextPlain)))
	if err := h.runner.Metrics().WriteText(w); err != nil {
		slog.Error("api: write metrics", "err", err)
	}
}

// --- helpers ----------------------------------------------------------------

func jsonResp(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func jsonErr(w http.ResponseWriter, code int, msg string) {
	jsonResp(w, code, errorResponse{Error: msg})
}
