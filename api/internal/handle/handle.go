package handle

import (
	"encoding/json"
	"net/http"
	"time"

	"food-analyzer/api/internal/nutrition"
	"food-analyzer/api/internal/oracle"
)

type Handle struct {
	engs      *oracle.Engines
	x         *nutrition.Extractor
	timeout   time.Duration
	maxUpload int64
}

// New wires the analyze handler. timeout bounds each oracle call, maxUpload
// caps the request body in bytes.
func New(engs *oracle.Engines, x *nutrition.Extractor, timeout time.Duration, maxUpload int64) *Handle {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	if maxUpload <= 0 {
		maxUpload = 10 << 20
	}
	return &Handle{
		engs:      engs,
		x:         x,
		timeout:   timeout,
		maxUpload: maxUpload,
	}
}

func (h *Handle) Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
