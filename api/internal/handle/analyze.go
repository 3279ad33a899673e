package handle

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/google/uuid"

	"food-analyzer/api/internal/imaging"
	"food-analyzer/api/internal/metrics"
	"food-analyzer/api/internal/nutrition"
	"food-analyzer/api/internal/util"
)

const (
	msgExtraction = "Unable to analyze food image"
	msgDecode     = "Unable to decode image: "
	msgOracle     = "Food model request failed: "
)

// AnalyzeFood: POST /analyze-food, multipart field "file", optional llm_name.
func (h *Handle) AnalyzeFood(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	metrics.InFlight.Inc()
	defer metrics.InFlight.Dec()

	reqID := strings.TrimSpace(r.Header.Get("X-Request-ID"))
	if reqID == "" {
		reqID = uuid.NewString()
	}
	w.Header().Set("X-Request-ID", reqID)
	ctxLog := log.WithField("request_id", reqID)

	fail := func(code int, result, msg string, err error) {
		metrics.RequestsTotal.WithLabelValues(result).Inc()
		e := ctxLog.WithFields(log.Fields{
			"status":      code,
			"result":      result,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		if err != nil {
			e = e.WithError(err)
		}
		e.Warn("analyze failed")
		writeError(w, code, msg)
	}

	if r.Method != http.MethodPost {
		fail(http.StatusMethodNotAllowed, metrics.ResultBadRequest, "POST only", nil)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			fail(http.StatusRequestEntityTooLarge, metrics.ResultBadRequest, "file too large", err)
			return
		}
		fail(http.StatusBadRequest, metrics.ResultBadRequest, "bad multipart form: "+err.Error(), err)
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	f, fh, err := r.FormFile("file")
	if err != nil {
		fail(http.StatusBadRequest, metrics.ResultBadRequest, "file is required", err)
		return
	}
	defer f.Close()
	raw, err := io.ReadAll(f)
	if err != nil {
		fail(http.StatusBadRequest, metrics.ResultBadRequest, "read file: "+err.Error(), err)
		return
	}

	eng, err := h.engs.GetEngine(r.FormValue("llm_name"))
	if err != nil {
		fail(http.StatusBadRequest, metrics.ResultBadRequest, err.Error(), err)
		return
	}
	ctxLog = ctxLog.WithFields(log.Fields{
		"oracle":   eng.Name(),
		"model":    eng.GetModel(),
		"filename": fh.Filename,
		"mime":     util.SniffMimeHTTP(raw),
		"size":     len(raw),
	})

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	rec, err := h.x.Analyze(ctx, eng, raw)
	if err != nil {
		code, result, msg := classify(err)
		fail(code, result, msg, err)
		return
	}

	metrics.RequestsTotal.WithLabelValues(metrics.ResultOK).Inc()
	ctxLog.WithFields(log.Fields{
		"duration_ms": time.Since(start).Milliseconds(),
		"food_name":   rec.FoodName,
	}).Info("analyzed")
	writeJSON(w, http.StatusOK, rec)
}

// classify maps a pipeline error to status, metric result and client message.
func classify(err error) (int, string, string) {
	switch {
	case errors.Is(err, imaging.ErrDecode):
		detail := strings.TrimPrefix(err.Error(), imaging.ErrDecode.Error()+": ")
		return http.StatusBadRequest, metrics.ResultDecodeError, msgDecode + detail
	case errors.Is(err, nutrition.ErrOracle):
		if errors.Is(err, context.DeadlineExceeded) {
			return http.StatusGatewayTimeout, metrics.ResultOracleError, msgOracle + err.Error()
		}
		return http.StatusBadGateway, metrics.ResultOracleError, msgOracle + err.Error()
	case errors.Is(err, nutrition.ErrExtraction):
		return http.StatusBadRequest, metrics.ResultExtractionFailed, msgExtraction
	default:
		return http.StatusInternalServerError, metrics.ResultInternalError, "internal error: " + err.Error()
	}
}
