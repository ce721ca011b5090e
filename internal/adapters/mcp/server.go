// Package mcpadapter exposes the translation and intelligence pipelines as MCP tools.
package mcpadapter

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kirillkom/doclens/internal/core/domain"
	"github.com/kirillkom/doclens/internal/core/language"
	"github.com/kirillkom/doclens/internal/core/ports"
)

const (
	ServerName    = "doclens"
	ServerVersion = "1.0.0"

	toolTranslate     = "translate_document"
	toolAnalyze       = "analyze_document"
	toolListLanguages = "list_languages"
)

type Server struct {
	translator ports.DocumentTranslator
	analyzer   ports.DocumentAnalyzer
	languages  []language.Language
	logger     *slog.Logger
}

func New(translator ports.DocumentTranslator, analyzer ports.DocumentAnalyzer, languages []language.Language, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		translator: translator,
		analyzer:   analyzer,
		languages:  languages,
		logger:     logger,
	}
}

// MCPServer registers the tools on a new server ready for server.ServeStdio.
func (s *Server) MCPServer() *server.MCPServer {
	srv := server.NewMCPServer(ServerName, ServerVersion,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	srv.AddTool(mcp.NewTool(toolTranslate,
		mcp.WithDescription("Translate document text and return the translation with its key-term glossary and summary."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Document text to translate")),
		mcp.WithString("target_language", mcp.Required(), mcp.Description("Target language code, for example es")),
		mcp.WithString("source_language", mcp.Description("Source language code or auto")),
		mcp.WithString("document_type",
			mcp.Description("Document type used for the summary"),
			mcp.Enum(
				string(domain.DocumentTypeGeneral),
				string(domain.DocumentTypeLegal),
				string(domain.DocumentTypeMedical),
				string(domain.DocumentTypeTechnical),
				string(domain.DocumentTypeFinancial),
			),
		),
		mcp.WithBoolean("confidential", mcp.Description("Mark the document as confidential")),
	), s.translateDocument)

	srv.AddTool(mcp.NewTool(toolAnalyze,
		mcp.WithDescription("Classify the document domain, extract entities and find similar reference cases."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Document text to analyze")),
		mcp.WithString("domain",
			mcp.Description("Domain override; auto detects"),
			mcp.Enum("auto", string(domain.DomainLegal), string(domain.DomainMedical), string(domain.DomainTechnical)),
		),
	), s.analyzeDocument)

	srv.AddTool(mcp.NewTool(toolListLanguages,
		mcp.WithDescription("List the supported language codes and names."),
	), s.listLanguages)

	return srv
}

func (s *Server) translateDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	target, err := req.RequireString("target_language")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	settings, err := domain.TranslationSettings{
		SourceLanguage:   req.GetString("source_language", domain.AutoLanguage),
		TargetLanguage:   target,
		DocumentType:     domain.DocumentType(req.GetString("document_type", "")),
		ConfidentialMode: req.GetBool("confidential", false),
	}.Validate()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := s.translator.Translate(ctx, text, settings, nil)
	return jsonResult(result)
}

func (s *Server) analyzeDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	override, err := domain.ParseDomainOverride(req.GetString("domain", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.analyzer.Analyze(ctx, text, override)
	if err != nil {
		if domain.IsKind(err, domain.ErrInvalidInput) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		s.logger.Error("mcp_tool_failed", "tool", toolAnalyze, "error", err)
		return mcp.NewToolResultError("analysis failed"), nil
	}
	return jsonResult(result)
}

func (s *Server) listLanguages(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	languages := s.languages
	if languages == nil {
		languages = []language.Language{}
	}
	return jsonResult(map[string]any{"languages": languages})
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(body)), nil
}
