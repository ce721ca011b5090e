package httpadapter

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/kirillkom/doclens/internal/core/domain"
	"github.com/kirillkom/doclens/internal/core/intelligence"
	"github.com/kirillkom/doclens/internal/core/translation"
	"github.com/kirillkom/doclens/internal/infrastructure/export"
)

type glossaryExportRequest struct {
	KeyTerms []domain.KeyTerm `json:"keyTerms"`
}

func (rt *Router) exportGlossary(w http.ResponseWriter, r *http.Request) {
	var req glossaryExportRequest
	if !rt.decodeJSON(w, r, &req) {
		return
	}

	query := r.URL.Query()
	terms := translation.FilterGlossary(req.KeyTerms, translation.GlossaryFilter{
		Search:   query.Get("search"),
		Category: query.Get("category"),
		SortBy:   query.Get("sort"),
	})

	switch format := strings.ToLower(query.Get("format")); format {
	case "", "json":
		body, err := export.GlossaryJSON(terms)
		if err != nil {
			slog.Error("glossary_export_failed", "format", "json", "error", err)
			writeError(w, err)
			return
		}
		writeAttachment(w, export.JSONContentType, export.GlossaryJSONFilename, body)
	case "xlsx":
		body, err := export.GlossaryXLSX(terms)
		if err != nil {
			slog.Error("glossary_export_failed", "format", "xlsx", "error", err)
			writeError(w, err)
			return
		}
		writeAttachment(w, export.XLSXContentType, export.GlossaryXLSXFilename, body)
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "format must be json or xlsx"})
	}
}

func (rt *Router) exportIntelligence(w http.ResponseWriter, r *http.Request) {
	var result domain.CaseIntelligenceResult
	if !rt.decodeJSON(w, r, &result) {
		return
	}

	query := r.URL.Query()
	filter := intelligence.CaseFilter{
		Search:     query.Get("search"),
		Confidence: query.Get("confidence"),
		SortBy:     query.Get("sort"),
	}
	if !intelligence.ValidCaseFilter(filter) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid confidence or sort filter"})
		return
	}

	now := rt.now()
	body, err := export.IntelligenceJSON(result, intelligence.FilterCases(result.SimilarCases, filter), now)
	if err != nil {
		slog.Error("intelligence_export_failed", "error", err)
		writeError(w, err)
		return
	}
	writeAttachment(w, export.JSONContentType, export.IntelligenceFilename(now), body)
}
