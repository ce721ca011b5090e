package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/kirillkom/doclens/internal/core/domain"
)

func newRepoWithMock(t *testing.T) (*DocumentRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	return &DocumentRepository{db: db}, mock, func() { _ = db.Close() }
}

func TestCreateStoresSettings(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	now := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	doc := &domain.Document{
		ID:          "doc-1",
		Filename:    "petition.txt",
		MimeType:    "text/plain",
		StoragePath: "doc-1_petition.txt",
		Settings: domain.TranslationSettings{
			SourceLanguage:   "auto",
			TargetLanguage:   "es",
			DocumentType:     domain.DocumentTypeLegal,
			ConfidentialMode: true,
		},
		DomainOverride: "legal",
		Status:         domain.StatusUploaded,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	mock.ExpectExec("INSERT INTO documents").
		WithArgs("doc-1", "petition.txt", "text/plain", "doc-1_petition.txt", "auto", "es", "legal", true,
			"legal", string(domain.StatusUploaded), "", now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Create(context.Background(), doc); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestGetByIDReturnsDomainNotFound(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	mock.ExpectQuery("SELECT id, filename, mime_type, storage_path").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestGetByIDScansSettings(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	now := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "filename", "mime_type", "storage_path", "source_language", "target_language", "document_type",
		"confidential", "domain_override", "status", "error_message", "created_at", "updated_at",
	}).AddRow("doc-1", "report.pdf", "application/pdf", "doc-1_report.pdf", "en", "hi", "medical",
		false, "", "ready", "", now, now)
	mock.ExpectQuery("SELECT id, filename, mime_type, storage_path").
		WithArgs("doc-1").
		WillReturnRows(rows)

	doc, err := repo.GetByID(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if doc.Settings.TargetLanguage != "hi" || doc.Settings.DocumentType != domain.DocumentTypeMedical {
		t.Fatalf("unexpected settings %+v", doc.Settings)
	}
	if doc.Status != domain.StatusReady {
		t.Fatalf("unexpected status %q", doc.Status)
	}
}

func TestUpdateStatusReturnsDomainNotFoundWhenNoRowsAffected(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	mock.ExpectExec("UPDATE documents").
		WithArgs("missing", string(domain.StatusProcessing), "", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), "missing", domain.StatusProcessing, "")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

type jsonArg struct {
	check func(map[string]any) bool
}

func (a jsonArg) Match(v driver.Value) bool {
	raw, ok := v.([]byte)
	if !ok {
		return false
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return false
	}
	return a.check(decoded)
}

func TestSaveAnalysisStoresJSON(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	analysis := domain.DocumentAnalysis{
		DocumentID:  "doc-1",
		Translation: &domain.TranslationResult{TranslatedText: "hola", Confidence: 93},
	}

	mock.ExpectExec("UPDATE documents").
		WithArgs("doc-1", jsonArg{check: func(m map[string]any) bool {
			return m["translatedText"] == "hola"
		}}, nil, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.SaveAnalysis(context.Background(), analysis); err != nil {
		t.Fatalf("SaveAnalysis() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestSaveAnalysisReturnsDomainNotFoundWhenNoRowsAffected(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	mock.ExpectExec("UPDATE documents").
		WithArgs("missing", nil, nil, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SaveAnalysis(context.Background(), domain.DocumentAnalysis{DocumentID: "missing"})
	if !domain.IsKind(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestGetAnalysisDecodesStoredResults(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	rows := sqlmock.NewRows([]string{"translation", "intelligence"}).
		AddRow([]byte(`{"translatedText":"hola","confidence":93}`), []byte(`{"detectedDomain":"legal","domainConfidence":95}`))
	mock.ExpectQuery("SELECT translation, intelligence").
		WithArgs("doc-1").
		WillReturnRows(rows)

	analysis, err := repo.GetAnalysis(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("GetAnalysis() error = %v", err)
	}
	if analysis.Translation == nil || analysis.Translation.TranslatedText != "hola" {
		t.Fatalf("unexpected translation %+v", analysis.Translation)
	}
	if analysis.Intelligence == nil || analysis.Intelligence.DetectedDomain != domain.DomainLegal {
		t.Fatalf("unexpected intelligence %+v", analysis.Intelligence)
	}
}

func TestGetAnalysisWithoutResultsIsNotFound(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	rows := sqlmock.NewRows([]string{"translation", "intelligence"}).AddRow(nil, nil)
	mock.ExpectQuery("SELECT translation, intelligence").
		WithArgs("doc-1").
		WillReturnRows(rows)

	_, err := repo.GetAnalysis(context.Background(), "doc-1")
	if !domain.IsKind(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestMarshalNullableBindsUntypedNil(t *testing.T) {
	v, err := marshalNullable[domain.TranslationResult](nil)
	if err != nil || v != nil {
		t.Fatalf("marshalNullable(nil) = %#v, %v; want untyped nil", v, err)
	}

	v, err = marshalNullable(&domain.TranslationResult{TranslatedText: "hola"})
	if err != nil {
		t.Fatalf("marshalNullable() error = %v", err)
	}
	if raw, ok := v.([]byte); !ok || !strings.Contains(string(raw), `"translatedText":"hola"`) {
		t.Fatalf("expected JSON bytes, got %#v", v)
	}
}
