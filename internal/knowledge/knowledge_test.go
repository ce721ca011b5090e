package knowledge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kirillkom/doclens/internal/core/domain"
)

func TestLoadEmbedded(t *testing.T) {
	base, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("LoadEmbedded() error = %v", err)
	}

	if got := base.Dictionaries["en-es"].Terms["patient"]; got != "paciente" {
		t.Fatalf("expected en-es patient=paciente, got %q", got)
	}
	if got := base.Dictionaries["en-es"].Common["the"]; got != "el" {
		t.Fatalf("expected en-es common the=el, got %q", got)
	}
	if len(base.Cases) != 60 {
		t.Fatalf("expected 60 reference cases, got %d", len(base.Cases))
	}
	if len(base.Vocabularies.Domains["legal"]) == 0 {
		t.Fatalf("expected legal vocabulary")
	}
	if len(base.Vocabularies.Entities.LegalTerms) == 0 {
		t.Fatalf("expected legal entity terms")
	}
	if base.Glossary.Explanations["patient"]["en"] == "" {
		t.Fatalf("expected english explanation for patient")
	}
	if len(base.Languages) == 0 || base.Languages[0].Code != "auto" {
		t.Fatalf("unexpected languages: %+v", base.Languages)
	}
}

func TestLoadDirOverridesSingleFile(t *testing.T) {
	dir := t.TempDir()
	cases := `version: 1
cases:
- id: custom-1
  title: Custom precedent
  summary: Only case in the corpus.
  date: '2020-01-01'
  domain: legal
  confidence: 80
  source: Test
  keyTerms: [due process]
`
	if err := os.WriteFile(filepath.Join(dir, "cases.yaml"), []byte(cases), 0o644); err != nil {
		t.Fatalf("write cases: %v", err)
	}

	base, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}
	if len(base.Cases) != 1 || base.Cases[0].ID != "custom-1" {
		t.Fatalf("expected overridden corpus, got %+v", base.Cases)
	}
	if base.Dictionaries["en-es"].Terms["patient"] != "paciente" {
		t.Fatalf("expected embedded dictionaries to remain")
	}
}

func TestLoadDirRejectsUnsupportedVersion(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "languages.yaml"), []byte("version: 2\nlanguages: []\n"), 0o644); err != nil {
		t.Fatalf("write languages: %v", err)
	}

	_, err := LoadDir(dir)
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestLoadDirRejectsDuplicateCaseIDs(t *testing.T) {
	dir := t.TempDir()
	cases := `version: 1
cases:
- {id: a, title: A, domain: legal}
- {id: a, title: B, domain: medical}
`
	if err := os.WriteFile(filepath.Join(dir, "cases.yaml"), []byte(cases), 0o644); err != nil {
		t.Fatalf("write cases: %v", err)
	}

	_, err := LoadDir(dir)
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
