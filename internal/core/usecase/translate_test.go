package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/kirillkom/doclens/internal/core/domain"
	"github.com/kirillkom/doclens/internal/core/language"
	"github.com/kirillkom/doclens/internal/core/ports"
	"github.com/kirillkom/doclens/internal/core/simulated"
	"github.com/kirillkom/doclens/internal/core/translation"
	"github.com/kirillkom/doclens/internal/knowledge"
)

type chunkerFake struct {
	chunks []string
}

func (f *chunkerFake) Split(text string) []string {
	if f.chunks == nil {
		return []string{text}
	}
	return f.chunks
}

type remoteFake struct {
	calls  []string
	errFor map[string]error
	blank  bool
}

func (f *remoteFake) Translate(_ context.Context, text, _, target string) (string, error) {
	f.calls = append(f.calls, text)
	if err, ok := f.errFor[text]; ok {
		return "", err
	}
	if f.blank {
		return "  ", nil
	}
	return "[" + target + "] " + text, nil
}

type pacerFake struct {
	waits int
}

func (f *pacerFake) Wait(ctx context.Context) error {
	f.waits++
	return ctx.Err()
}

type chunkOutcome struct {
	index  int
	remote bool
	err    error
}

type translationObserverFake struct {
	chunks    []chunkOutcome
	completed int
	fallbacks int
}

func (f *translationObserverFake) ChunkTranslated(_ context.Context, index int, remote bool, err error) {
	f.chunks = append(f.chunks, chunkOutcome{index: index, remote: remote, err: err})
}

func (f *translationObserverFake) TranslationCompleted(_ context.Context, _ int, fallbacks int, _ time.Duration) {
	f.completed++
	f.fallbacks = fallbacks
}

func newTranslateUseCase(t *testing.T, chunker ports.Chunker, remote ports.RemoteTranslator, pacer ports.Pacer, observer ports.TranslationObserver) *TranslateDocumentUseCase {
	t.Helper()
	base, err := knowledge.LoadEmbedded()
	if err != nil {
		t.Fatalf("LoadEmbedded() error = %v", err)
	}
	languages := make([]language.Language, 0, len(base.Languages))
	for _, l := range base.Languages {
		languages = append(languages, language.Language{Code: l.Code, Name: l.Name})
	}
	dict := translation.NewDictionary(base.Dictionaries)
	scorer := simulated.Fixed(95)
	return NewTranslateDocumentUseCase(
		language.NewDetector(),
		chunker,
		remote,
		pacer,
		dict,
		translation.NewKeyTermExtractor(dict, base.Glossary, scorer),
		translation.NewSummaryGenerator(language.NewCatalog(languages)),
		scorer,
		observer,
	)
}

func enToEs() domain.TranslationSettings {
	return domain.TranslationSettings{SourceLanguage: "en", TargetLanguage: "es", DocumentType: domain.DocumentTypeMedical}
}

func TestTranslateDictionaryOnlyScenario(t *testing.T) {
	uc := newTranslateUseCase(t, &chunkerFake{}, nil, nil, nil)

	result := uc.Translate(context.Background(), "The patient was diagnosed with diabetes and given medication.", enToEs(), nil)

	for _, want := range []string{"paciente", "medicamento"} {
		if !strings.Contains(result.TranslatedText, want) {
			t.Fatalf("expected %q in %q", want, result.TranslatedText)
		}
	}
	terms := map[string]bool{}
	for _, term := range result.KeyTerms {
		terms[term.Term] = true
	}
	for _, want := range []string{"patient", "diabetes", "medication"} {
		if !terms[want] {
			t.Fatalf("expected key term %q, got %+v", want, result.KeyTerms)
		}
	}
	if result.Confidence != 95 {
		t.Fatalf("expected simulated confidence 95, got %d", result.Confidence)
	}
	if result.Summary == nil || result.Summary.DocumentType != "Medical Report" {
		t.Fatalf("expected medical summary, got %+v", result.Summary)
	}
	if result.DetectedLanguage != "" {
		t.Fatalf("expected no detection for explicit source, got %q", result.DetectedLanguage)
	}
}

func TestTranslateEmptyInputShortCircuits(t *testing.T) {
	remote := &remoteFake{}
	observer := &translationObserverFake{}
	uc := newTranslateUseCase(t, &chunkerFake{}, remote, &pacerFake{}, observer)

	var progress []int
	result := uc.Translate(context.Background(), "   ", enToEs(), func(p int) { progress = append(progress, p) })

	if result.TranslatedText != "" {
		t.Fatalf("expected empty translation, got %q", result.TranslatedText)
	}
	if len(remote.calls) != 0 {
		t.Fatalf("expected no remote calls, got %d", len(remote.calls))
	}
	if len(result.KeyTerms) != 0 || result.Summary != nil {
		t.Fatalf("expected empty result, got %+v", result)
	}
	if len(progress) != 1 || progress[0] != 100 {
		t.Fatalf("expected single 100 progress report, got %v", progress)
	}
	if observer.completed != 0 {
		t.Fatalf("expected no observed run")
	}
}

func TestTranslateProgressIsMonotonic(t *testing.T) {
	remote := &remoteFake{}
	pacer := &pacerFake{}
	uc := newTranslateUseCase(t, &chunkerFake{chunks: []string{"one", "two", "three"}}, remote, pacer, nil)

	var progress []int
	result := uc.Translate(context.Background(), "one two three", enToEs(), func(p int) { progress = append(progress, p) })

	want := []int{0, 30, 60, 90, 100}
	if len(progress) != len(want) {
		t.Fatalf("progress = %v, want %v", progress, want)
	}
	for i := range want {
		if progress[i] != want[i] {
			t.Fatalf("progress = %v, want %v", progress, want)
		}
	}
	if result.TranslatedText != "[es] one [es] two [es] three" {
		t.Fatalf("unexpected joined output %q", result.TranslatedText)
	}
	if pacer.waits != 3 {
		t.Fatalf("expected a pacer wait per chunk, got %d", pacer.waits)
	}
}

func TestTranslateFallsBackPerChunk(t *testing.T) {
	remote := &remoteFake{errFor: map[string]error{"The patient": errors.New("upstream 503")}}
	observer := &translationObserverFake{}
	uc := newTranslateUseCase(t, &chunkerFake{chunks: []string{"The patient", "is stable"}}, remote, nil, observer)

	result := uc.Translate(context.Background(), "The patient is stable", enToEs(), nil)

	if result.TranslatedText != "el paciente [es] is stable" {
		t.Fatalf("unexpected output %q", result.TranslatedText)
	}
	if len(observer.chunks) != 2 || observer.chunks[0].remote || !observer.chunks[1].remote {
		t.Fatalf("unexpected chunk outcomes %+v", observer.chunks)
	}
	if observer.chunks[0].err == nil {
		t.Fatalf("expected remote error to be observed")
	}
	if observer.fallbacks != 1 {
		t.Fatalf("expected one fallback, got %d", observer.fallbacks)
	}
}

func TestTranslateBlankRemoteResultFallsBack(t *testing.T) {
	uc := newTranslateUseCase(t, &chunkerFake{}, &remoteFake{blank: true}, nil, nil)

	result := uc.Translate(context.Background(), "The court", enToEs(), nil)
	if result.TranslatedText != "el tribunal" {
		t.Fatalf("expected dictionary output, got %q", result.TranslatedText)
	}
}

func TestTranslateCancelledContextUsesDictionary(t *testing.T) {
	remote := &remoteFake{}
	uc := newTranslateUseCase(t, &chunkerFake{chunks: []string{"The court", "The patient"}}, remote, &pacerFake{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var last int
	result := uc.Translate(ctx, "The court The patient", enToEs(), func(p int) { last = p })
	if len(remote.calls) != 0 {
		t.Fatalf("expected no remote calls after cancellation, got %v", remote.calls)
	}
	if result.TranslatedText != "el tribunal el paciente" {
		t.Fatalf("unexpected output %q", result.TranslatedText)
	}
	if last != 100 {
		t.Fatalf("expected run to complete, last progress %d", last)
	}
}

func TestTranslateDetectsSourceLanguage(t *testing.T) {
	remote := &remoteFake{}
	uc := newTranslateUseCase(t, &chunkerFake{}, remote, nil, nil)

	settings := domain.TranslationSettings{SourceLanguage: domain.AutoLanguage, TargetLanguage: "en"}
	result := uc.Translate(context.Background(), "¿Dónde está el niño?", settings, nil)

	if result.DetectedLanguage != "es" {
		t.Fatalf("expected es detection, got %q", result.DetectedLanguage)
	}
	if !strings.Contains(result.Summary.KeyPoints[0], "from Spanish to English") {
		t.Fatalf("expected resolved source in summary, got %q", result.Summary.KeyPoints[0])
	}
}

func TestTranslateSameLanguageSkipsRemote(t *testing.T) {
	remote := &remoteFake{}
	uc := newTranslateUseCase(t, &chunkerFake{}, remote, nil, nil)

	settings := domain.TranslationSettings{SourceLanguage: "en", TargetLanguage: "en"}
	result := uc.Translate(context.Background(), "Hello world", settings, nil)
	if len(remote.calls) != 0 || result.TranslatedText != "Hello world" {
		t.Fatalf("expected identity without remote call, got %q (%d calls)", result.TranslatedText, len(remote.calls))
	}
}
