package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kirillkom/doclens/internal/config"
	"github.com/kirillkom/doclens/internal/core/intelligence"
	"github.com/kirillkom/doclens/internal/core/language"
	"github.com/kirillkom/doclens/internal/core/ports"
	"github.com/kirillkom/doclens/internal/core/simulated"
	"github.com/kirillkom/doclens/internal/core/translation"
	"github.com/kirillkom/doclens/internal/core/usecase"
	"github.com/kirillkom/doclens/internal/infrastructure/chunking"
	"github.com/kirillkom/doclens/internal/infrastructure/extractor"
	"github.com/kirillkom/doclens/internal/infrastructure/queue/nats"
	"github.com/kirillkom/doclens/internal/infrastructure/ratelimit"
	"github.com/kirillkom/doclens/internal/infrastructure/repository/postgres"
	"github.com/kirillkom/doclens/internal/infrastructure/resilience"
	"github.com/kirillkom/doclens/internal/infrastructure/storage/localfs"
	"github.com/kirillkom/doclens/internal/infrastructure/translator"
	"github.com/kirillkom/doclens/internal/infrastructure/translator/libre"
	"github.com/kirillkom/doclens/internal/infrastructure/translator/mymemory"
	"github.com/kirillkom/doclens/internal/knowledge"
	"github.com/kirillkom/doclens/internal/observability/metrics"
)

const (
	ProviderLibre    = "libre"
	ProviderMyMemory = "mymemory"
	ProviderNone     = "none"
)

// Pipeline is the in-process translation and intelligence stack. It needs no
// database or queue, so the proxy and MCP entrypoints use it directly.
type Pipeline struct {
	Languages  []language.Language
	// Executor retries queue publishes; remote translation runs on its own
	// single-attempt executor behind the pacer.
	Executor   *resilience.Executor
	Metrics    *metrics.PipelineMetrics
	Remote     ports.RemoteTranslator
	Translator *usecase.TranslateDocumentUseCase
	Analyzer   *usecase.AnalyzeDocumentUseCase
}

// Options names the entrypoint for metric labels. A nil Registerer keeps
// pipeline metrics on an unexposed registry.
type Options struct {
	Service    string
	Logger     *slog.Logger
	Registerer prometheus.Registerer
}

func (o Options) normalize() Options {
	out := o
	if out.Service == "" {
		out.Service = "doclens"
	}
	if out.Logger == nil {
		out.Logger = slog.Default()
	}
	if out.Registerer == nil {
		out.Registerer = prometheus.NewRegistry()
	}
	return out
}

func NewPipeline(cfg config.Config, opts Options) (*Pipeline, error) {
	opts = opts.normalize()
	logger := opts.Logger

	base, err := loadKnowledge(cfg.KnowledgeDir)
	if err != nil {
		return nil, err
	}

	pipelineMetrics := metrics.NewPipelineMetrics(opts.Service, opts.Registerer, logger)
	hooks := resilience.Hooks{
		OnRetry:       pipelineMetrics.RecordRetry,
		OnStateChange: pipelineMetrics.RecordBreakerTransition,
	}
	executor := resilience.NewExecutorWithHooks(resilienceConfig(cfg), logger, hooks)
	remoteExecutor := resilience.NewExecutorWithHooks(remoteResilienceConfig(cfg), logger, hooks)
	remote, err := NewRemoteTranslator(cfg, remoteExecutor)
	if err != nil {
		return nil, err
	}
	if op := remoteOperation(cfg.TranslatorProvider); op != "" {
		pipelineMetrics.WatchBreakers(remoteExecutor.State, op)
	}

	languages := make([]language.Language, 0, len(base.Languages))
	for _, lang := range base.Languages {
		languages = append(languages, language.Language{Code: lang.Code, Name: lang.Name})
	}
	catalog := language.NewCatalog(languages)
	scorer := simulated.NewRandom()
	dictionary := translation.NewDictionary(base.Dictionaries)

	translateUC := usecase.NewTranslateDocumentUseCase(
		language.NewDetector(),
		chunking.NewSplitter(cfg.TranslationChunkSize),
		remote,
		ratelimit.NewPacer(cfg.TranslationCallInterval),
		dictionary,
		translation.NewKeyTermExtractor(dictionary, base.Glossary, scorer),
		translation.NewSummaryGenerator(catalog),
		scorer,
		pipelineMetrics,
	)

	classifier := intelligence.NewClassifier(base.Vocabularies.Domains, intelligence.ClassifierConfig{
		ThresholdPercent: cfg.DomainThresholdPercent,
		BaseConfidence:   cfg.DomainConfidenceBase,
		Slope:            cfg.DomainConfidenceSlope,
		MaxConfidence:    cfg.DomainConfidenceCap,
	})
	matcher := intelligence.NewCaseMatcher(base.Cases, intelligence.MatcherConfig{
		Boost:    cfg.CaseSimilarityBoost,
		MaxScore: cfg.CaseSimilarityCap,
		MinScore: cfg.CaseMinRelevance,
		Limit:    cfg.CaseMaxResults,
	})
	analyzeUC := usecase.NewAnalyzeDocumentUseCase(
		classifier,
		intelligence.NewEntityExtractor(base.Vocabularies.Entities, scorer, cfg.EntityMaxResults),
		matcher,
		pipelineMetrics,
	)

	return &Pipeline{
		Languages:  catalog.Supported(),
		Executor:   executor,
		Metrics:    pipelineMetrics,
		Remote:     remote,
		Translator: translateUC,
		Analyzer:   analyzeUC,
	}, nil
}

// NewRemoteTranslator returns nil for the "none" provider: translation then runs
// on the dictionary only.
func NewRemoteTranslator(cfg config.Config, executor *resilience.Executor) (ports.RemoteTranslator, error) {
	opts := translator.Options{Timeout: cfg.TranslatorTimeout, Executor: executor}
	switch strings.ToLower(strings.TrimSpace(cfg.TranslatorProvider)) {
	case "", ProviderLibre:
		return libre.NewWithOptions(cfg.LibreTranslateURL, libre.Options{Options: opts, APIKey: cfg.LibreTranslateAPIKey}), nil
	case ProviderMyMemory:
		return mymemory.NewWithOptions(cfg.MyMemoryURL, opts), nil
	case ProviderNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown translator provider %q", cfg.TranslatorProvider)
	}
}

// NewProxyTranslator backs the translation relay, which has no dictionary fallback.
func NewProxyTranslator(cfg config.Config, opts Options) (ports.RemoteTranslator, error) {
	opts = opts.normalize()
	executor := resilience.NewExecutorWithHooks(remoteResilienceConfig(cfg), opts.Logger, resilience.Hooks{})
	remote, err := NewRemoteTranslator(cfg, executor)
	if err != nil {
		return nil, err
	}
	if remote == nil {
		return nil, fmt.Errorf("translation proxy requires a remote provider, got %q", cfg.TranslatorProvider)
	}
	return remote, nil
}

type App struct {
	Config   config.Config
	Pipeline *Pipeline

	Queue     ports.MessageQueue
	Repo      ports.DocumentRepository
	IngestUC  ports.DocumentIngestor
	ProcessUC *usecase.ProcessDocumentUseCase

	closeFn func()
}

// New wires the document pipeline: postgres, local storage and NATS around the
// in-process Pipeline.
func New(ctx context.Context, cfg config.Config, opts Options) (*App, error) {
	opts = opts.normalize()
	pipeline, err := NewPipeline(cfg, opts)
	if err != nil {
		return nil, err
	}

	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	repo := postgres.NewDocumentRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: pipeline.Executor,
		Logger:             opts.Logger,
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init message queue: %w", err)
	}
	pipeline.Metrics.WatchBreakers(pipeline.Executor.State, nats.PublishOperation)

	ingestUC := usecase.NewIngestDocumentUseCase(repo, storage, queue)
	processUC := usecase.NewProcessDocumentUseCase(
		repo,
		extractor.NewDispatcher(storage),
		pipeline.Translator,
		pipeline.Analyzer,
	)

	return &App{
		Config:   cfg,
		Pipeline: pipeline,
		Queue:    queue,
		Repo:     repo,

		IngestUC:  ingestUC,
		ProcessUC: processUC,

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}

func loadKnowledge(dir string) (*knowledge.Base, error) {
	if strings.TrimSpace(dir) == "" {
		base, err := knowledge.LoadEmbedded()
		if err != nil {
			return nil, fmt.Errorf("load embedded knowledge: %w", err)
		}
		return base, nil
	}
	base, err := knowledge.LoadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("load knowledge from %s: %w", dir, err)
	}
	return base, nil
}

// remoteSingleAttempt keeps one provider call per chunk: retries would bypass
// the pacer, and a failed chunk falls back to the dictionary anyway.
const remoteSingleAttempt = 1

func remoteResilienceConfig(cfg config.Config) resilience.Config {
	out := resilienceConfig(cfg)
	out.RetryMaxAttempts = remoteSingleAttempt
	return out
}

func remoteOperation(provider string) string {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case ProviderLibre, "":
		return libre.Operation
	case ProviderMyMemory:
		return mymemory.Operation
	}
	return ""
}

func resilienceConfig(cfg config.Config) resilience.Config {
	out := resilience.DefaultConfig()
	out.RetryMaxAttempts = cfg.ResilienceRetryMaxAttempts
	out.RetryInitialBackoff = cfg.ResilienceRetryInitialBackoff
	out.RetryMaxBackoff = cfg.ResilienceRetryMaxBackoff
	out.BreakerEnabled = cfg.ResilienceBreakerEnabled
	if cfg.ResilienceBreakerMinRequests > 0 {
		out.BreakerMinRequests = uint32(cfg.ResilienceBreakerMinRequests)
	}
	out.BreakerFailureRatio = cfg.ResilienceBreakerFailureRatio
	out.BreakerOpenTimeout = cfg.ResilienceBreakerOpenTimeout
	return out
}
