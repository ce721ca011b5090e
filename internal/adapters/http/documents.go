package httpadapter

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/kirillkom/doclens/internal/core/domain"
)

func (rt *Router) uploadDocument(w http.ResponseWriter, r *http.Request) {
	limit := rt.cfg.APIMaxUploadBytes
	if limit <= 0 {
		limit = 32 << 20
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "file is too large"})
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'file' is required"})
		return
	}
	defer file.Close()

	confidential := false
	if raw := strings.TrimSpace(r.FormValue("confidentialMode")); raw != "" {
		confidential, err = strconv.ParseBool(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "confidentialMode must be a boolean"})
			return
		}
	}

	doc, err := rt.services.Ingestor.Upload(r.Context(), domain.UploadRequest{
		Filename: fileHeader.Filename,
		MimeType: fileHeader.Header.Get("Content-Type"),
		Body:     file,
		Settings: domain.TranslationSettings{
			SourceLanguage:   r.FormValue("sourceLanguage"),
			TargetLanguage:   r.FormValue("targetLanguage"),
			DocumentType:     domain.DocumentType(r.FormValue("documentType")),
			ConfidentialMode: confidential,
		},
		DomainOverride: r.FormValue("domain"),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusAccepted, doc)
}

func (rt *Router) getDocumentByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "document id is required"})
		return
	}

	doc, err := rt.services.Documents.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (rt *Router) getDocumentTranslation(w http.ResponseWriter, r *http.Request) {
	analysis, ok := rt.loadAnalysis(w, r)
	if !ok {
		return
	}
	if analysis.Translation == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "translation not available"})
		return
	}
	writeJSON(w, http.StatusOK, analysis.Translation)
}

func (rt *Router) getDocumentIntelligence(w http.ResponseWriter, r *http.Request) {
	analysis, ok := rt.loadAnalysis(w, r)
	if !ok {
		return
	}
	if analysis.Intelligence == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "intelligence not available"})
		return
	}
	writeJSON(w, http.StatusOK, analysis.Intelligence)
}

func (rt *Router) loadAnalysis(w http.ResponseWriter, r *http.Request) (*domain.DocumentAnalysis, bool) {
	id := strings.TrimSpace(r.PathValue("id"))
	analysis, err := rt.services.Documents.GetAnalysis(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	return analysis, true
}
