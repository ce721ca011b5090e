package domain

import (
	"io"
	"time"
)

type DocumentStatus string

const (
	StatusUploaded   DocumentStatus = "uploaded"
	StatusProcessing DocumentStatus = "processing"
	StatusReady      DocumentStatus = "ready"
	StatusFailed     DocumentStatus = "failed"
)

// Document is an uploaded source file and the settings its pipeline run uses.
type Document struct {
	ID             string              `json:"id"`
	Filename       string              `json:"filename"`
	MimeType       string              `json:"mime_type"`
	StoragePath    string              `json:"storage_path"`
	Settings       TranslationSettings `json:"settings"`
	DomainOverride string              `json:"domain_override"`
	Status         DocumentStatus      `json:"status"`
	Error          string              `json:"error,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// DocumentAnalysis holds both pipeline outputs stored for a processed document.
type DocumentAnalysis struct {
	DocumentID   string                  `json:"document_id"`
	Translation  *TranslationResult      `json:"translation,omitempty"`
	Intelligence *CaseIntelligenceResult `json:"intelligence,omitempty"`
}

// UploadRequest carries an uploaded file and the settings its pipeline run will use.
type UploadRequest struct {
	Filename       string
	MimeType       string
	Body           io.Reader
	Settings       TranslationSettings
	DomainOverride string
}
