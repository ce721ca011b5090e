// Package proxy relays browser translation requests to the configured provider.
package proxy

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/kirillkom/doclens/internal/core/ports"
	"github.com/kirillkom/doclens/internal/infrastructure/translator"
)

const (
	defaultSource = "en"
	maxBodyBytes  = 1 << 20
)

type Handler struct {
	translator ports.RemoteTranslator
	logger     *slog.Logger
}

func NewHandler(remote ports.RemoteTranslator, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{translator: remote, logger: logger}
}

type translateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
}

func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /translate", h.translate)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return mux
}

func (h *Handler) translate(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	// A malformed body is treated like an empty one.
	_ = json.NewDecoder(r.Body).Decode(&req)

	if req.Q == "" || strings.TrimSpace(req.Target) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing text or target lang"})
		return
	}
	source := strings.TrimSpace(req.Source)
	if source == "" {
		source = defaultSource
	}

	out, err := h.translator.Translate(r.Context(), req.Q, source, strings.TrimSpace(req.Target))
	if err != nil {
		if errors.Is(err, translator.ErrEmptyTranslation) {
			writeJSON(w, http.StatusOK, map[string]string{"translatedText": ""})
			return
		}
		h.logger.Error("proxy_translate_failed", "source", source, "target", req.Target, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Translation failed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"translatedText": out})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
