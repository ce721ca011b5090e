package httpadapter

import (
	"net/http"

	"github.com/kirillkom/doclens/internal/core/domain"
	"github.com/kirillkom/doclens/internal/core/intelligence"
)

type translateRequest struct {
	Text     string                     `json:"text"`
	Settings domain.TranslationSettings `json:"settings"`
}

func (rt *Router) translate(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if !rt.decodeJSON(w, r, &req) {
		return
	}
	settings, err := req.Settings.Validate()
	if err != nil {
		writeError(w, err)
		return
	}

	result := rt.services.Translator.Translate(r.Context(), req.Text, settings, nil)
	writeJSON(w, http.StatusOK, result)
}

type analyzeRequest struct {
	Text   string `json:"text"`
	Domain string `json:"domain"`
}

func (rt *Router) analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !rt.decodeJSON(w, r, &req) {
		return
	}
	override, err := domain.ParseDomainOverride(req.Domain)
	if err != nil {
		writeError(w, err)
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

	result, err := rt.services.Analyzer.Analyze(r.Context(), req.Text, override)
	if err != nil {
		writeError(w, err)
		return
	}
	result.SimilarCases = intelligence.FilterCases(result.SimilarCases, filter)
	result.ExtractedEntities = intelligence.FilterEntities(result.ExtractedEntities, query.Get("entity_type"))
	writeJSON(w, http.StatusOK, result)
}
