package common

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "hirescope/internal/errors"
	"hirescope/internal/types"
)

func TestHandleOutputWritesTextFile(t *testing.T) {
	oh := NewOutputHandler(apperrors.NewLogger(slog.LevelError))
	path := filepath.Join(t.TempDir(), "prediction.txt")

	result := types.PredictionResult{
		Count:       120,
		Category:    "Medium",
		Difficulty:  "Medium",
		Explanation: "Mid-level Full-time position.",
	}

	err := oh.HandleOutput(result, CommandConfig{OutputFile: path, OutputFormat: "text"})
	if err != nil {
		t.Fatalf("HandleOutput() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	got := string(data)
	for _, want := range []string{
		"=== APPLICATION VOLUME PREDICTION ===",
		"Predicted applications: 120",
		"Volume category: Medium",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestHandleOutputWritesJSONFile(t *testing.T) {
	oh := NewOutputHandler(apperrors.NewLogger(slog.LevelError))
	path := filepath.Join(t.TempDir(), "match.json")

	result := types.MatchResult{
		Score:         88.5,
		Category:      "Excellent",
		Priority:      "High",
		MatchedSkills: []string{"Python", "Sql"},
	}

	err := oh.HandleOutput(result, CommandConfig{OutputFile: path, OutputFormat: "json"})
	if err != nil {
		t.Fatalf("HandleOutput() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}

	var decoded types.MatchResult
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Score != 88.5 {
		t.Errorf("decoded score = %v, want 88.5", decoded.Score)
	}
	if decoded.Category != "Excellent" {
		t.Errorf("decoded category = %q, want %q", decoded.Category, "Excellent")
	}
}

func TestHandleOutputUnknownFormat(t *testing.T) {
	oh := NewOutputHandler(apperrors.NewLogger(slog.LevelError))

	err := oh.HandleOutput(types.PredictionResult{}, CommandConfig{OutputFormat: "yaml"})
	wantAppErrorCode(t, err, apperrors.ErrCodeInvalidFormat)
}

func TestGetSupportedFormatsIncludesCore(t *testing.T) {
	oh := NewOutputHandler(nil)

	formats := oh.GetSupportedFormats()
	for _, want := range []string{"json", "text", "markdown"} {
		found := false
		for _, f := range formats {
			if f == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("supported formats %v missing %q", formats, want)
		}
	}
}
