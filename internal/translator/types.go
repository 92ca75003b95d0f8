// Package translator defines the translation service boundary and the
// HTTP/SDK-backed implementations behind it. Services translate one chunk
// of plain text at a time; document structure never crosses this boundary.
package translator

import (
	"context"
	"time"
)

// ServiceConfig carries credentials and per-call settings shared by all
// services. Values resolve flag → environment → config file in cmd.
type ServiceConfig struct {
	Credentials string        `mapstructure:"credentials" json:"credentials"`
	APIKey      string        `mapstructure:"api_key" json:"api_key"`
	Model       string        `mapstructure:"model" json:"model"`
	BaseURL     string        `mapstructure:"base_url" json:"base_url"`
	Timeout     time.Duration `mapstructure:"timeout" json:"timeout"`
	ProjectID   string        `mapstructure:"project_id" json:"project_id"`
}

// TranslateRequest is one chunk of source-language text.
type TranslateRequest struct {
	Text       string `json:"text"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
}

// ServiceResult is the outcome of one service call. Error carries the
// failure message even when an error value is also returned, so callers
// that only log have something to log.
type ServiceResult struct {
	ServiceName    string            `json:"service_name"`
	TranslatedText string            `json:"translated_text"`
	Confidence     float64           `json:"confidence"`
	Metadata       map[string]string `json:"metadata"`
	Latency        time.Duration     `json:"latency"`
	Error          string            `json:"error,omitempty"`
}

// TranslationService is one translation backend.
type TranslationService interface {
	Name() string
	Translate(ctx context.Context, cfg ServiceConfig, req TranslateRequest) (*ServiceResult, error)
	IsAvailable(ctx context.Context) error
	// SupportedLanguages returns the language codes the service handles,
	// or nil when the service is unconstrained.
	SupportedLanguages(ctx context.Context) ([]string, error)
}
