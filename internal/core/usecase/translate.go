package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/kirillkom/doclens/internal/core/domain"
	"github.com/kirillkom/doclens/internal/core/language"
	"github.com/kirillkom/doclens/internal/core/ports"
	"github.com/kirillkom/doclens/internal/core/simulated"
	"github.com/kirillkom/doclens/internal/core/translation"
)

const chunkProgressSpan = 90

var errBlankRemoteResult = errors.New("remote translator returned blank text")

// TranslateDocumentUseCase runs chunked remote translation with a per-chunk
// dictionary fallback, then builds the glossary and summary.
type TranslateDocumentUseCase struct {
	detector   *language.Detector
	chunker    ports.Chunker
	remote     ports.RemoteTranslator
	pacer      ports.Pacer
	dictionary *translation.Dictionary
	keyTerms   *translation.KeyTermExtractor
	summaries  *translation.SummaryGenerator
	scorer     simulated.Scorer
	observer   ports.TranslationObserver
}

// NewTranslateDocumentUseCase accepts a nil remote translator (dictionary only),
// a nil pacer and a nil observer.
func NewTranslateDocumentUseCase(
	detector *language.Detector,
	chunker ports.Chunker,
	remote ports.RemoteTranslator,
	pacer ports.Pacer,
	dictionary *translation.Dictionary,
	keyTerms *translation.KeyTermExtractor,
	summaries *translation.SummaryGenerator,
	scorer simulated.Scorer,
	observer ports.TranslationObserver,
) *TranslateDocumentUseCase {
	if observer == nil {
		observer = noopTranslationObserver{}
	}
	return &TranslateDocumentUseCase{
		detector:   detector,
		chunker:    chunker,
		remote:     remote,
		pacer:      pacer,
		dictionary: dictionary,
		keyTerms:   keyTerms,
		summaries:  summaries,
		scorer:     scorer,
		observer:   observer,
	}
}

func (uc *TranslateDocumentUseCase) Translate(
	ctx context.Context,
	text string,
	settings domain.TranslationSettings,
	onProgress ports.ProgressFunc,
) domain.TranslationResult {
	report := func(percent int) {
		if onProgress != nil {
			onProgress(percent)
		}
	}

	if strings.TrimSpace(text) == "" {
		report(100)
		return domain.TranslationResult{OriginalText: text, KeyTerms: []domain.KeyTerm{}}
	}

	resolved := settings
	var detected string
	if resolved.SourceLanguage == "" || resolved.SourceLanguage == domain.AutoLanguage {
		detected = uc.detector.Detect(text)
		resolved.SourceLanguage = detected
	}
	source, target := resolved.SourceLanguage, resolved.TargetLanguage

	chunks := uc.chunker.Split(text)
	if len(chunks) == 0 {
		chunks = []string{strings.TrimSpace(text)}
	}

	report(0)
	start := time.Now()
	parts := make([]string, 0, len(chunks))
	fallbacks := 0
	for i, chunk := range chunks {
		out, remote, err := uc.translateChunk(ctx, chunk, source, target)
		if !remote {
			fallbacks++
		}
		uc.observer.ChunkTranslated(ctx, i, remote, err)
		parts = append(parts, out)
		report((i + 1) * chunkProgressSpan / len(chunks))
	}
	uc.observer.TranslationCompleted(ctx, len(chunks), fallbacks, time.Since(start))

	translated := strings.Join(parts, " ")
	keyTerms := uc.keyTerms.Extract(text, source, target)
	confidence := uc.scorer.Between(90, 99)
	summary := uc.summaries.Generate(text, translated, resolved, keyTerms, confidence)

	report(100)
	return domain.TranslationResult{
		OriginalText:     text,
		TranslatedText:   translated,
		Confidence:       confidence,
		DetectedLanguage: detected,
		KeyTerms:         keyTerms,
		Summary:          &summary,
	}
}

// translateChunk reports whether the remote provider produced the output.
func (uc *TranslateDocumentUseCase) translateChunk(ctx context.Context, chunk, source, target string) (string, bool, error) {
	if uc.remote == nil || source == target {
		return uc.dictionary.Translate(chunk, source, target), false, nil
	}
	if err := ctx.Err(); err != nil {
		return uc.dictionary.Translate(chunk, source, target), false, err
	}
	if uc.pacer != nil {
		if err := uc.pacer.Wait(ctx); err != nil {
			return uc.dictionary.Translate(chunk, source, target), false, err
		}
	}

	out, err := uc.remote.Translate(ctx, chunk, source, target)
	if err != nil {
		return uc.dictionary.Translate(chunk, source, target), false, err
	}
	if strings.TrimSpace(out) == "" {
		return uc.dictionary.Translate(chunk, source, target), false, errBlankRemoteResult
	}
	return out, true, nil
}

type noopTranslationObserver struct{}

func (noopTranslationObserver) ChunkTranslated(context.Context, int, bool, error) {}

func (noopTranslationObserver) TranslationCompleted(context.Context, int, int, time.Duration) {}
