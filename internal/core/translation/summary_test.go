package translation

import (
	"strings"
	"testing"

	"github.com/kirillkom/doclens/internal/core/domain"
)

type namerStub map[string]string

func (n namerStub) Name(code string) string {
	if v, ok := n[code]; ok {
		return v
	}
	return strings.ToUpper(code)
}

func newSummaryGenerator() *SummaryGenerator {
	return NewSummaryGenerator(namerStub{"en": "English", "es": "Spanish"})
}

func TestDocumentTypeLabel(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{text: "The court granted the petition.", want: labelLegal},
		{text: "The patient needs treatment.", want: labelMedical},
		{text: "System architecture overview", want: labelTechnical},
		{text: "Quarterly revenue and budget", want: labelFinancial},
		{text: "A letter to a friend", want: labelGeneral},
		{text: "Legal review of the patient chart", want: labelLegal},
	}
	for _, tt := range tests {
		if got := DocumentTypeLabel(tt.text); got != tt.want {
			t.Fatalf("DocumentTypeLabel(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestGenerateLegalSummary(t *testing.T) {
	g := newSummaryGenerator()
	settings := domain.TranslationSettings{SourceLanguage: "en", TargetLanguage: "es", DocumentType: domain.DocumentTypeLegal}
	terms := []domain.KeyTerm{{Term: "court"}, {Term: "rights"}}

	summary := g.Generate("The court set a hearing date to review constitutional rights", "", settings, terms, 97)

	if summary.Title != "Legal Document Translation Summary" {
		t.Fatalf("unexpected title %q", summary.Title)
	}
	if summary.WordCount != 10 {
		t.Fatalf("expected 10 words, got %d", summary.WordCount)
	}
	if summary.KeyPoints[0] != "Document successfully translated from English to Spanish with 97% confidence" {
		t.Fatalf("unexpected first key point %q", summary.KeyPoints[0])
	}
	if summary.KeyPoints[3] != "Translation completed using standard processing mode" {
		t.Fatalf("unexpected mode key point %q", summary.KeyPoints[3])
	}

	types := make([]string, 0, len(summary.CriticalClauses))
	for _, c := range summary.CriticalClauses {
		types = append(types, c.Type)
	}
	if strings.Join(types, ",") != "deadline,rights,quality" {
		t.Fatalf("unexpected clauses %v", types)
	}
	if summary.CriticalClauses[2].Text != "2 key terms professionally translated and explained" {
		t.Fatalf("unexpected quality clause %q", summary.CriticalClauses[2].Text)
	}

	if summary.RiskAssessment.Overall != domain.RiskMedium {
		t.Fatalf("legal documents never rate low risk, got %s", summary.RiskAssessment.Overall)
	}
	if summary.TranslationQuality != "Excellent" {
		t.Fatalf("unexpected quality %q", summary.TranslationQuality)
	}
	if len(summary.NextActions) != 6 || summary.NextActions[5] != "Share with authorized parties using secure links" {
		t.Fatalf("unexpected next actions %v", summary.NextActions)
	}
}

func TestGenerateConfidentialGeneralSummary(t *testing.T) {
	g := newSummaryGenerator()
	settings := domain.TranslationSettings{SourceLanguage: "en", TargetLanguage: "ta", ConfidentialMode: true}

	summary := g.Generate("Hello there friend", "", settings, nil, 96)

	if summary.DocumentType != labelGeneral {
		t.Fatalf("unexpected type %q", summary.DocumentType)
	}
	if !strings.Contains(summary.KeyPoints[0], "to TA with 96%") {
		t.Fatalf("expected upper-cased fallback name, got %q", summary.KeyPoints[0])
	}
	if summary.KeyPoints[3] != "Translation completed using confidential processing mode" {
		t.Fatalf("unexpected mode key point %q", summary.KeyPoints[3])
	}
	if summary.RiskAssessment.Overall != domain.RiskLow {
		t.Fatalf("expected low risk, got %s", summary.RiskAssessment.Overall)
	}
	if len(summary.CriticalClauses) != 1 {
		t.Fatalf("expected only the quality clause, got %+v", summary.CriticalClauses)
	}
	last := summary.NextActions[len(summary.NextActions)-1]
	if last != "Confidential processing completed - no data retained" {
		t.Fatalf("unexpected final action %q", last)
	}
	if len(summary.NextActions) != 4 {
		t.Fatalf("expected base actions plus confidential notice, got %v", summary.NextActions)
	}
}

func TestAssessRisk(t *testing.T) {
	tests := []struct {
		confidence int
		docType    string
		want       domain.RiskLevel
	}{
		{confidence: 99, docType: labelGeneral, want: domain.RiskLow},
		{confidence: 95, docType: labelMedical, want: domain.RiskMedium},
		{confidence: 90, docType: labelTechnical, want: domain.RiskMedium},
		{confidence: 84, docType: labelLegal, want: domain.RiskHigh},
	}
	for _, tt := range tests {
		got := assessRisk(tt.confidence, 3, tt.docType)
		if got.Overall != tt.want {
			t.Fatalf("assessRisk(%d, %s) = %s, want %s", tt.confidence, tt.docType, got.Overall, tt.want)
		}
		if len(got.Factors) != 4 {
			t.Fatalf("expected four factors, got %v", got.Factors)
		}
	}
}

func TestFilterGlossary(t *testing.T) {
	terms := []domain.KeyTerm{
		{Term: "patient", Translation: "paciente", Category: "medical", Explanation: "Persona que recibe"},
		{Term: "court", Translation: "tribunal", Category: "legal", Explanation: "Judicial body"},
		{Term: "document", Translation: "documento", Category: "general"},
	}

	if got := FilterGlossary(terms, GlossaryFilter{Category: "all"}); len(got) != 3 {
		t.Fatalf("expected all terms, got %d", len(got))
	}
	got := FilterGlossary(terms, GlossaryFilter{Search: "TRIBUNAL"})
	if len(got) != 1 || got[0].Term != "court" {
		t.Fatalf("expected search on translation, got %+v", got)
	}
	got = FilterGlossary(terms, GlossaryFilter{Search: "persona", Category: "medical"})
	if len(got) != 1 || got[0].Term != "patient" {
		t.Fatalf("expected search on explanation, got %+v", got)
	}
	if got := FilterGlossary(terms, GlossaryFilter{Search: "court", Category: "medical"}); len(got) != 0 {
		t.Fatalf("expected no matches, got %+v", got)
	}
}

func TestFilterGlossarySorts(t *testing.T) {
	terms := []domain.KeyTerm{
		{Term: "patient", Category: "medical", Confidence: 91},
		{Term: "court", Category: "legal", Confidence: 97},
		{Term: "appeal", Category: "legal", Confidence: 93},
	}
	order := func(got []domain.KeyTerm) string {
		names := make([]string, 0, len(got))
		for _, term := range got {
			names = append(names, term.Term)
		}
		return strings.Join(names, ",")
	}

	if got := order(FilterGlossary(terms, GlossaryFilter{})); got != "patient,court,appeal" {
		t.Fatalf("expected input order, got %s", got)
	}
	if got := order(FilterGlossary(terms, GlossaryFilter{SortBy: GlossarySortAlphabetical})); got != "appeal,court,patient" {
		t.Fatalf("unexpected alphabetical order %s", got)
	}
	if got := order(FilterGlossary(terms, GlossaryFilter{SortBy: GlossarySortConfidence})); got != "court,appeal,patient" {
		t.Fatalf("unexpected confidence order %s", got)
	}
	if got := order(FilterGlossary(terms, GlossaryFilter{SortBy: GlossarySortCategory})); got != "appeal,court,patient" {
		t.Fatalf("unexpected category order %s", got)
	}
}
