package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"hirescope/internal/config"
	apperrors "hirescope/internal/errors"
)

func testExtractConfig() *config.ExtractConfig {
	return &config.ExtractConfig{
		MaxFileSize: 1024 * 1024,
		CircuitBreaker: config.CircuitBreakerConfig{
			Enabled: false,
		},
	}
}

func newTestService(t *testing.T, cfg *config.ExtractConfig) *Service {
	t.Helper()
	return NewService(cfg, apperrors.NewLogger(slog.LevelError))
}

// buildArchive assembles an in-memory zip with the given entries
func buildArchive(t *testing.T, entries map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close archive: %v", err)
	}
	return buf.Bytes()
}

const documentBodyOpen = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
	`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`
const documentBodyClose = `</w:body></w:document>`

func assertAppError(t *testing.T, err error, wantType apperrors.ErrorType, wantCode string) {
	t.Helper()

	if err == nil {
		t.Fatal("expected an error, got nil")
	}
	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}
	if appErr.Type != wantType {
		t.Errorf("error type = %q, want %q", appErr.Type, wantType)
	}
	if appErr.Code != wantCode {
		t.Errorf("error code = %q, want %q", appErr.Code, wantCode)
	}
}

func TestExtractTxt(t *testing.T) {
	svc := newTestService(t, testExtractConfig())

	content := "Senior Go developer.\nSkills: Python, SQL, Kubernetes."
	got, err := svc.Extract(context.Background(), "resume.txt", []byte(content))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if got != content {
		t.Errorf("Extract() = %q, want %q", got, content)
	}
}

func TestExtractDOCX(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "paragraphs joined with newlines",
			body: `<w:p><w:r><w:t>Senior Go developer</w:t></w:r></w:p>` +
				`<w:p><w:r><w:t>Skills: Python, SQL</w:t></w:r></w:p>`,
			want: "Senior Go developer\nSkills: Python, SQL",
		},
		{
			name: "empty paragraph preserved",
			body: `<w:p><w:r><w:t>First</w:t></w:r></w:p>` +
				`<w:p/>` +
				`<w:p><w:r><w:t>Last</w:t></w:r></w:p>`,
			want: "First\n\nLast",
		},
		{
			name: "runs within a paragraph concatenated",
			body: `<w:p><w:r><w:t>Hello </w:t></w:r><w:r><w:t>World</w:t></w:r></w:p>`,
			want: "Hello World",
		},
		{
			name: "formatting elements carry no text",
			body: `<w:p><w:pPr><w:jc w:val="center"/></w:pPr>` +
				`<w:r><w:rPr><w:b/></w:rPr><w:t>Bold title</w:t></w:r></w:p>`,
			want: "Bold title",
		},
	}

	svc := newTestService(t, testExtractConfig())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := buildArchive(t, map[string]string{
				"word/document.xml": documentBodyOpen + tt.body + documentBodyClose,
			})

			got, err := svc.Extract(context.Background(), "resume.docx", data)
			if err != nil {
				t.Fatalf("Extract() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Extract() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractDOCXMissingBody(t *testing.T) {
	svc := newTestService(t, testExtractConfig())

	data := buildArchive(t, map[string]string{
		"[Content_Types].xml": `<Types/>`,
	})

	_, err := svc.Extract(context.Background(), "resume.docx", data)
	assertAppError(t, err, apperrors.ErrorTypeProcessing, apperrors.ErrCodeExtractionFailed)
}

func TestExtractLegacyDocAttemptedAsArchive(t *testing.T) {
	// Legacy binary .doc is accepted by extension but cannot be opened as a
	// zip archive, so it fails as an extraction error rather than an
	// unsupported format.
	svc := newTestService(t, testExtractConfig())

	_, err := svc.Extract(context.Background(), "resume.doc", []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1})
	assertAppError(t, err, apperrors.ErrorTypeProcessing, apperrors.ErrCodeExtractionFailed)
}

func TestExtractMalformedPDF(t *testing.T) {
	svc := newTestService(t, testExtractConfig())

	_, err := svc.Extract(context.Background(), "resume.pdf", []byte("not a pdf at all"))
	assertAppError(t, err, apperrors.ErrorTypeProcessing, apperrors.ErrCodeExtractionFailed)
}

func TestExtractUnsupportedFormat(t *testing.T) {
	svc := newTestService(t, testExtractConfig())

	for _, filename := range []string{"resume.png", "resume.exe", "resume", "archive.tar.gz"} {
		t.Run(filename, func(t *testing.T) {
			_, err := svc.Extract(context.Background(), filename, []byte("data"))
			assertAppError(t, err, apperrors.ErrorTypeValidation, apperrors.ErrCodeUnsupportedFormat)
		})
	}
}

func TestExtractCaseInsensitiveExtension(t *testing.T) {
	svc := newTestService(t, testExtractConfig())

	got, err := svc.Extract(context.Background(), "RESUME.TXT", []byte("content"))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if got != "content" {
		t.Errorf("Extract() = %q, want %q", got, "content")
	}
}

func TestExtractSizeLimit(t *testing.T) {
	cfg := testExtractConfig()
	cfg.MaxFileSize = 8
	svc := newTestService(t, cfg)

	_, err := svc.Extract(context.Background(), "resume.txt", []byte("this is more than eight bytes"))
	assertAppError(t, err, apperrors.ErrorTypeValidation, apperrors.ErrCodeFileTooLarge)
}

func TestExtractCanceledContext(t *testing.T) {
	svc := newTestService(t, testExtractConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Extract(ctx, "resume.txt", []byte("content"))
	if err == nil {
		t.Fatal("expected an error for canceled context")
	}
	if err != context.Canceled {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestExtractBreakerOpens(t *testing.T) {
	cfg := testExtractConfig()
	cfg.CircuitBreaker = config.CircuitBreakerConfig{
		Enabled:          true,
		MaxRequests:      1,
		MinRequests:      2,
		FailureThreshold: 0.5,
	}
	svc := newTestService(t, cfg)

	garbage := []byte("not an archive")

	// Feed failures until the DOCX breaker trips
	for i := 0; i < 2; i++ {
		_, err := svc.Extract(context.Background(), "resume.docx", garbage)
		assertAppError(t, err, apperrors.ErrorTypeProcessing, apperrors.ErrCodeExtractionFailed)
	}

	_, err := svc.Extract(context.Background(), "resume.docx", garbage)
	assertAppError(t, err, apperrors.ErrorTypeProcessing, apperrors.ErrCodeExtractorUnavailable)

	if svc.IsHealthy() {
		t.Error("service should report unhealthy with an open breaker")
	}

	// The PDF breaker is independent and still closed
	stats := svc.BreakerStats()
	pdfStats, ok := stats["pdf"].(map[string]any)
	if !ok {
		t.Fatal("pdf breaker stats missing")
	}
	if state := pdfStats["state"]; state != "closed" {
		t.Errorf("pdf breaker state = %v, want closed", state)
	}
	docxStats, ok := stats["docx"].(map[string]any)
	if !ok {
		t.Fatal("docx breaker stats missing")
	}
	if state := docxStats["state"]; state != "open" {
		t.Errorf("docx breaker state = %v, want open", state)
	}
}

func TestSupported(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"resume.pdf", true},
		{"resume.PDF", true},
		{"resume.docx", true},
		{"resume.doc", true},
		{"resume.txt", true},
		{"resume.png", false},
		{"resume", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := Supported(tt.filename); got != tt.want {
			t.Errorf("Supported(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func BenchmarkExtractDOCX(b *testing.B) {
	var body strings.Builder
	body.WriteString(documentBodyOpen)
	for i := 0; i < 50; i++ {
		body.WriteString(`<w:p><w:r><w:t>Experienced engineer with Python, SQL and cloud skills.</w:t></w:r></w:p>`)
	}
	body.WriteString(documentBodyClose)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		b.Fatal(err)
	}
	if _, err := w.Write([]byte(body.String())); err != nil {
		b.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		b.Fatal(err)
	}
	data := buf.Bytes()

	svc := NewService(testExtractConfig(), apperrors.NewLogger(slog.LevelError))

	for b.Loop() {
		if _, err := svc.Extract(context.Background(), "resume.docx", data); err != nil {
			b.Fatal(err)
		}
	}
}
