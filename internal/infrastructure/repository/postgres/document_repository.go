package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/kirillkom/doclens/internal/core/domain"
)

type DocumentRepository struct {
	db *sql.DB
}

func NewDocumentRepository(db *sql.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func (r *DocumentRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across api/worker startups.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026101401)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS documents (
	id TEXT PRIMARY KEY,
	filename TEXT NOT NULL,
	mime_type TEXT NOT NULL,
	storage_path TEXT NOT NULL,
	source_language TEXT NOT NULL DEFAULT 'auto',
	target_language TEXT NOT NULL,
	document_type TEXT NOT NULL DEFAULT 'general',
	confidential BOOLEAN NOT NULL DEFAULT FALSE,
	domain_override TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL,
	error_message TEXT,
	translation JSONB,
	intelligence JSONB,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_documents_status ON documents(status);
CREATE INDEX IF NOT EXISTS idx_documents_created_at ON documents(created_at DESC);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

func (r *DocumentRepository) Create(ctx context.Context, doc *domain.Document) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO documents (
	id, filename, mime_type, storage_path, source_language, target_language, document_type, confidential,
	domain_override, status, error_message, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
`,
		doc.ID, doc.Filename, doc.MimeType, doc.StoragePath,
		doc.Settings.SourceLanguage, doc.Settings.TargetLanguage, string(doc.Settings.DocumentType), doc.Settings.ConfidentialMode,
		doc.DomainOverride, string(doc.Status), doc.Error, doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

func (r *DocumentRepository) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, filename, mime_type, storage_path, source_language, target_language, document_type, confidential,
	domain_override, status, COALESCE(error_message, ''), created_at, updated_at
FROM documents
WHERE id = $1
`, id)

	var doc domain.Document
	var documentType string
	var status string

	err := row.Scan(
		&doc.ID, &doc.Filename, &doc.MimeType, &doc.StoragePath,
		&doc.Settings.SourceLanguage, &doc.Settings.TargetLanguage, &documentType, &doc.Settings.ConfidentialMode,
		&doc.DomainOverride, &status, &doc.Error, &doc.CreatedAt, &doc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrDocumentNotFound, "get document", fmt.Errorf("id=%s", id))
		}
		return nil, fmt.Errorf("scan document: %w", err)
	}

	doc.Settings.DocumentType = domain.DocumentType(documentType)
	doc.Status = domain.DocumentStatus(status)
	return &doc, nil
}

func (r *DocumentRepository) UpdateStatus(ctx context.Context, id string, status domain.DocumentStatus, errMessage string) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE documents
SET status = $2, error_message = $3, updated_at = $4
WHERE id = $1
`, id, string(status), errMessage, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update document status: %w", err)
	}
	return requireRow(res, "update document status", id)
}

func (r *DocumentRepository) SaveAnalysis(ctx context.Context, analysis domain.DocumentAnalysis) error {
	translationJSON, err := marshalNullable(analysis.Translation)
	if err != nil {
		return fmt.Errorf("marshal translation: %w", err)
	}
	intelligenceJSON, err := marshalNullable(analysis.Intelligence)
	if err != nil {
		return fmt.Errorf("marshal intelligence: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
UPDATE documents
SET translation = $2, intelligence = $3, updated_at = $4
WHERE id = $1
`, analysis.DocumentID, translationJSON, intelligenceJSON, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save analysis: %w", err)
	}
	return requireRow(res, "save analysis", analysis.DocumentID)
}

// GetAnalysis reports ErrDocumentNotFound until the pipeline has stored results.
func (r *DocumentRepository) GetAnalysis(ctx context.Context, id string) (*domain.DocumentAnalysis, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT translation, intelligence
FROM documents
WHERE id = $1
`, id)

	var translationRaw, intelligenceRaw []byte
	if err := row.Scan(&translationRaw, &intelligenceRaw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrDocumentNotFound, "get analysis", fmt.Errorf("id=%s", id))
		}
		return nil, fmt.Errorf("scan analysis: %w", err)
	}
	if translationRaw == nil && intelligenceRaw == nil {
		return nil, domain.WrapError(domain.ErrDocumentNotFound, "get analysis", fmt.Errorf("no results for id=%s", id))
	}

	analysis := &domain.DocumentAnalysis{DocumentID: id}
	if translationRaw != nil {
		analysis.Translation = &domain.TranslationResult{}
		if err := json.Unmarshal(translationRaw, analysis.Translation); err != nil {
			return nil, fmt.Errorf("unmarshal translation: %w", err)
		}
	}
	if intelligenceRaw != nil {
		analysis.Intelligence = &domain.CaseIntelligenceResult{}
		if err := json.Unmarshal(intelligenceRaw, analysis.Intelligence); err != nil {
			return nil, fmt.Errorf("unmarshal intelligence: %w", err)
		}
	}
	return analysis, nil
}

// marshalNullable yields an untyped nil for a missing result so the column is
// bound as SQL NULL rather than an empty bytea.
func marshalNullable[T any](v *T) (any, error) {
	if v == nil {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return raw, nil
}

func requireRow(res sql.Result, operation, id string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", operation, err)
	}
	if affected == 0 {
		return domain.WrapError(domain.ErrDocumentNotFound, operation, fmt.Errorf("id=%s", id))
	}
	return nil
}
