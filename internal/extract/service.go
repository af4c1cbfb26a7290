package extract

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"hirescope/internal/config"
	hirescopeErrors "hirescope/internal/errors"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// SupportedExtensions lists the document formats Extract accepts
var SupportedExtensions = []string{".pdf", ".docx", ".doc", ".txt"}

// Service extracts plain text from uploaded documents
type Service struct {
	cfg         *config.ExtractConfig
	logger      *hirescopeErrors.Logger
	pdfBreaker  *ParserCircuitBreaker
	docxBreaker *ParserCircuitBreaker
}

// NewService creates a document extraction service with per-format circuit breakers
func NewService(cfg *config.ExtractConfig, logger *hirescopeErrors.Logger) *Service {
	return &Service{
		cfg:         cfg,
		logger:      logger,
		pdfBreaker:  NewParserCircuitBreaker("PDF", cfg, logger),
		docxBreaker: NewParserCircuitBreaker("DOCX", cfg, logger),
	}
}

// Supported reports whether the filename carries an extension Extract accepts
func Supported(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, supported := range SupportedExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}

// Extract returns the plain text of a document, dispatching on file extension.
// Legacy .doc files go through the DOCX reader, so failures there surface as
// extraction errors rather than unsupported-format errors.
func (s *Service) Extract(ctx context.Context, filename string, data []byte) (string, error) {
	tracer := otel.Tracer("hirescope.extract")
	ctx, span := tracer.Start(ctx, "extract.document")
	defer span.End()

	ext := strings.ToLower(filepath.Ext(filename))
	span.SetAttributes(
		attribute.String("document.extension", ext),
		attribute.Int("document.size_bytes", len(data)),
	)

	if err := ctx.Err(); err != nil {
		span.RecordError(err)
		return "", err
	}

	if s.cfg.MaxFileSize > 0 && int64(len(data)) > s.cfg.MaxFileSize {
		err := hirescopeErrors.NewValidationError(
			hirescopeErrors.ErrCodeFileTooLarge,
			fmt.Sprintf("document exceeds the %d byte size limit", s.cfg.MaxFileSize),
			nil,
		).WithContext("filename", filename).WithContext("size", len(data))
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return "", err
	}

	var (
		text string
		err  error
	)
	switch ext {
	case ".pdf":
		text, err = s.parse(s.pdfBreaker, filename, data, extractPDF)
	case ".docx", ".doc":
		text, err = s.parse(s.docxBreaker, filename, data, extractDOCX)
	case ".txt":
		text = string(data)
	default:
		err = hirescopeErrors.NewValidationError(
			hirescopeErrors.ErrCodeUnsupportedFormat,
			fmt.Sprintf("unsupported document format: %q", ext),
			nil,
		).WithContext("filename", filename)
	}

	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return "", err
	}

	span.SetAttributes(
		attribute.Bool("success", true),
		attribute.Int("document.text_length", len(text)),
	)
	return text, nil
}

// parse runs a parser under its circuit breaker and wraps failures in typed errors
func (s *Service) parse(breaker *ParserCircuitBreaker, filename string, data []byte, parser func([]byte) (string, error)) (string, error) {
	text, err := breaker.Execute(func() (string, error) {
		return parser(data)
	})
	if err == nil {
		return text, nil
	}

	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		return "", hirescopeErrors.NewProcessingError(
			hirescopeErrors.ErrCodeExtractorUnavailable,
			"document parsing is temporarily unavailable",
			err,
		).WithContext("filename", filename)
	}

	return "", hirescopeErrors.NewProcessingError(
		hirescopeErrors.ErrCodeExtractionFailed,
		"could not extract text from document",
		err,
	).WithContext("filename", filename)
}

// BreakerStats returns circuit breaker statistics for each parser format
func (s *Service) BreakerStats() map[string]any {
	return map[string]any{
		"pdf":  s.pdfBreaker.GetStats(),
		"docx": s.docxBreaker.GetStats(),
	}
}

// IsHealthy returns true when no parser breaker is open
func (s *Service) IsHealthy() bool {
	return s.pdfBreaker.IsHealthy() && s.docxBreaker.IsHealthy()
}
