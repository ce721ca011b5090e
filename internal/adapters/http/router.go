package httpadapter

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/kirillkom/doclens/internal/config"
	"github.com/kirillkom/doclens/internal/core/language"
	"github.com/kirillkom/doclens/internal/core/ports"
	"github.com/kirillkom/doclens/internal/observability/metrics"
)

const serviceName = "api"

// Services are the inbound ports the API exposes. Nil entries disable their routes.
type Services struct {
	Translator ports.DocumentTranslator
	Analyzer   ports.DocumentAnalyzer
	Ingestor   ports.DocumentIngestor
	Documents  ports.DocumentReader
	Languages  []language.Language
	Metrics    *metrics.HTTPServerMetrics
}

type Router struct {
	cfg      config.Config
	services Services
	now      func() time.Time
}

func NewRouter(cfg config.Config, services Services) *Router {
	return &Router{
		cfg:      cfg,
		services: services,
		now:      time.Now,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", rt.healthz)
	mux.HandleFunc("GET /v1/languages", rt.listLanguages)
	if rt.services.Metrics != nil {
		mux.Handle("GET /metrics", rt.services.Metrics.Handler())
	}
	if rt.services.Translator != nil {
		mux.HandleFunc("POST /v1/translations", rt.translate)
	}
	if rt.services.Analyzer != nil {
		mux.HandleFunc("POST /v1/intelligence", rt.analyze)
	}
	mux.HandleFunc("POST /v1/exports/glossary", rt.exportGlossary)
	mux.HandleFunc("POST /v1/exports/intelligence", rt.exportIntelligence)
	if rt.services.Ingestor != nil {
		mux.HandleFunc("POST /v1/documents", rt.uploadDocument)
	}
	if rt.services.Documents != nil {
		mux.HandleFunc("GET /v1/documents/{id}", rt.getDocumentByID)
		mux.HandleFunc("GET /v1/documents/{id}/translation", rt.getDocumentTranslation)
		mux.HandleFunc("GET /v1/documents/{id}/intelligence", rt.getDocumentIntelligence)
	}

	maxInFlight := rt.cfg.APIMaxInFlight
	wait := time.Duration(rt.cfg.APIBackpressureWaitMS) * time.Millisecond

	var handler http.Handler = mux
	handler = backpressureMiddleware(handler, maxInFlight, wait)
	handler = rateLimitMiddleware(handler, rt.cfg.APIRateLimitRPS, rt.cfg.APIRateLimitBurst)
	if rt.services.Metrics != nil {
		handler = rt.services.Metrics.Middleware(serviceName, handler)
	}
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	if len(rt.cfg.CORSAllowedOrigins) > 0 {
		handler = CORS(rt.cfg.CORSAllowedOrigins, handler)
	}
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) listLanguages(w http.ResponseWriter, _ *http.Request) {
	languages := rt.services.Languages
	if languages == nil {
		languages = []language.Language{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"languages": languages})
}

// decodeJSON caps the body at the configured upload size.
func (rt *Router) decodeJSON(w http.ResponseWriter, r *http.Request, out any) bool {
	limit := rt.cfg.APIMaxUploadBytes
	if limit <= 0 {
		limit = 32 << 20
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": fmt.Sprintf("request body exceeds %d bytes", limit)})
			return false
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Warn("http_response_encode_failed", "error", err)
	}
}

func writeAttachment(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
