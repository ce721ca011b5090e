package translation

import (
	"strings"
	"testing"

	"github.com/kirillkom/doclens/internal/knowledge"
)

func loadDictionary(t *testing.T) *Dictionary {
	t.Helper()
	base, err := knowledge.LoadEmbedded()
	if err != nil {
		t.Fatalf("LoadEmbedded() error = %v", err)
	}
	return NewDictionary(base.Dictionaries)
}

func TestTranslateSubstitutesTermsAndCommonWords(t *testing.T) {
	dict := loadDictionary(t)

	got := dict.Translate("The patient was diagnosed with diabetes and given medication.", "en", "es")
	for _, want := range []string{"paciente", "diabetes", "medicamento", "el ", " con ", " y "} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in %q", want, got)
		}
	}
	if strings.Contains(got, "patient") {
		t.Fatalf("untranslated term left in %q", got)
	}
}

func TestTranslatePrefersLongestMatch(t *testing.T) {
	dict := loadDictionary(t)

	got := dict.Translate("Constitutional rights and rights", "en", "es")
	if got != "derechos constitucionales y derechos" {
		t.Fatalf("unexpected translation %q", got)
	}
}

func TestTranslateRespectsWordBoundaries(t *testing.T) {
	dict := loadDictionary(t)

	got := dict.Translate("Outpatients lawful casework", "en", "es")
	if got != "Outpatients lawful casework" {
		t.Fatalf("expected no partial-word substitution, got %q", got)
	}

	got = dict.Translate("PATIENT, Court.", "en", "es")
	if got != "paciente, tribunal." {
		t.Fatalf("expected case-insensitive match, got %q", got)
	}
}

func TestTranslateIsIdempotentOnCoveredVocabulary(t *testing.T) {
	dict := loadDictionary(t)

	input := "The patient has constitutional rights and due process"
	once := dict.Translate(input, "en", "es")
	twice := dict.Translate(once, "en", "es")
	if once != twice {
		t.Fatalf("second pass changed output: %q -> %q", once, twice)
	}
	if left := dict.Occurrences(once, "en", "es"); len(left) != 0 {
		t.Fatalf("dictionary keys still matchable in output: %v", left)
	}
}

func TestTranslateUnknownPairReturnsInput(t *testing.T) {
	dict := loadDictionary(t)

	input := "The patient was admitted."
	if got := dict.Translate(input, "en", "de"); got != input {
		t.Fatalf("expected identity for unknown pair, got %q", got)
	}
	if got := dict.Translate(input, "en", "en"); got != input {
		t.Fatalf("expected identity for same-language pair, got %q", got)
	}
}

func TestOccurrencesIncludesNestedTermsLongestFirst(t *testing.T) {
	dict := loadDictionary(t)

	got := dict.Occurrences("A habeas corpus petition about constitutional rights.", "en", "es")
	want := []string{"habeas corpus petition", "constitutional rights", "constitutional", "habeas corpus", "petition", "rights"}
	if len(got) != len(want) {
		t.Fatalf("Occurrences() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Occurrences()[%d] = %q, want %q (all: %v)", i, got[i], want[i], got)
		}
	}
}

func TestLexiconHandlesNonLatinText(t *testing.T) {
	lex := newLexicon(map[string]string{"डॉक्टर": "doctor"})
	text := []rune("मरीज़ डॉक्टर से मिला")
	start := strings.Index(string(text), "डॉक्टर")
	runeStart := len([]rune(string(text)[:start]))

	end, match := lex.longestAt(text, runeStart)
	if match == nil || match.value != "doctor" {
		t.Fatalf("expected match for devanagari key")
	}
	if string(text[runeStart:end]) != "डॉक्टर" {
		t.Fatalf("unexpected match span %q", string(text[runeStart:end]))
	}
}
