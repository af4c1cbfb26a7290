package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"hirescope/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	// Register default formatters
	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "PredictionResult", &PredictionTextFormatter{})
	registry.RegisterFormatter("markdown", "PredictionResult", &PredictionMarkdownFormatter{})
	registry.RegisterFormatter("text", "MatchResult", &MatchTextFormatter{})
	registry.RegisterFormatter("markdown", "MatchResult", &MatchMarkdownFormatter{})
	registry.RegisterFormatter("text", "DashboardSnapshot", &DashboardTextFormatter{})
	registry.RegisterFormatter("markdown", "DashboardSnapshot", &DashboardMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.PredictionResult:
		return "PredictionResult"
	case types.MatchResult:
		return "MatchResult"
	case types.DashboardSnapshot:
		return "DashboardSnapshot"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// PredictionTextFormatter handles text formatting for application volume predictions
type PredictionTextFormatter struct{}

func (ptf *PredictionTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.PredictionResult)
	if !ok {
		return "", fmt.Errorf("expected PredictionResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== APPLICATION VOLUME PREDICTION ===\n\n")
	output.WriteString(fmt.Sprintf("Predicted applications: %d\n", result.Count))
	output.WriteString(fmt.Sprintf("Volume category: %s\n", result.Category))
	output.WriteString(fmt.Sprintf("Hiring difficulty: %s\n\n", result.Difficulty))

	output.WriteString("Explanation:\n")
	output.WriteString(result.Explanation)
	output.WriteString("\n")

	return output.String(), nil
}

func (ptf *PredictionTextFormatter) SupportedType() string {
	return "PredictionResult"
}

// PredictionMarkdownFormatter handles markdown formatting for application volume predictions
type PredictionMarkdownFormatter struct{}

func (pmf *PredictionMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.PredictionResult)
	if !ok {
		return "", fmt.Errorf("expected PredictionResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Application Volume Prediction\n\n")
	output.WriteString(fmt.Sprintf("**Predicted applications:** %d\n\n", result.Count))
	output.WriteString(fmt.Sprintf("**Volume category:** %s\n\n", result.Category))
	output.WriteString(fmt.Sprintf("**Hiring difficulty:** %s\n\n", result.Difficulty))

	output.WriteString("## Explanation\n\n")
	output.WriteString(result.Explanation)
	output.WriteString("\n")

	return output.String(), nil
}

func (pmf *PredictionMarkdownFormatter) SupportedType() string {
	return "PredictionResult"
}

// MatchTextFormatter handles text formatting for resume match results
type MatchTextFormatter struct{}

func (mtf *MatchTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.MatchResult)
	if !ok {
		return "", fmt.Errorf("expected MatchResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== RESUME MATCH ===\n\n")
	output.WriteString(fmt.Sprintf("Score: %.1f/100\n", result.Score))
	output.WriteString(fmt.Sprintf("Category: %s\n", result.Category))
	output.WriteString(fmt.Sprintf("Screening priority: %s\n\n", result.Priority))

	if len(result.MatchedSkills) > 0 {
		output.WriteString("Matched skills:\n")
		for _, skill := range result.MatchedSkills {
			output.WriteString(fmt.Sprintf("- %s\n", skill))
		}
		output.WriteString("\n")
	}
	if len(result.MissingSkills) > 0 {
		output.WriteString("Missing skills:\n")
		for _, skill := range result.MissingSkills {
			output.WriteString(fmt.Sprintf("- %s\n", skill))
		}
		output.WriteString("\n")
	}

	output.WriteString("Recommendation:\n")
	output.WriteString(result.Recommendation)
	output.WriteString("\n")

	return output.String(), nil
}

func (mtf *MatchTextFormatter) SupportedType() string {
	return "MatchResult"
}

// MatchMarkdownFormatter handles markdown formatting for resume match results
type MatchMarkdownFormatter struct{}

func (mmf *MatchMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.MatchResult)
	if !ok {
		return "", fmt.Errorf("expected MatchResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Resume Match\n\n")
	output.WriteString(fmt.Sprintf("**Score:** %.1f/100\n\n", result.Score))
	output.WriteString(fmt.Sprintf("**Category:** %s\n\n", result.Category))
	output.WriteString(fmt.Sprintf("**Screening priority:** %s\n\n", result.Priority))

	if len(result.MatchedSkills) > 0 {
		output.WriteString("## Matched Skills\n")
		for _, skill := range result.MatchedSkills {
			output.WriteString(fmt.Sprintf("- %s\n", skill))
		}
		output.WriteString("\n")
	}
	if len(result.MissingSkills) > 0 {
		output.WriteString("## Missing Skills\n")
		for _, skill := range result.MissingSkills {
			output.WriteString(fmt.Sprintf("- %s\n", skill))
		}
		output.WriteString("\n")
	}

	output.WriteString("## Recommendation\n\n")
	output.WriteString(result.Recommendation)
	output.WriteString("\n")

	return output.String(), nil
}

func (mmf *MatchMarkdownFormatter) SupportedType() string {
	return "MatchResult"
}

// DashboardTextFormatter handles text formatting for dashboard snapshots
type DashboardTextFormatter struct{}

func (dtf *DashboardTextFormatter) Format(data any) (string, error) {
	snapshot, ok := data.(types.DashboardSnapshot)
	if !ok {
		return "", fmt.Errorf("expected DashboardSnapshot, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== HIRING ANALYTICS ===\n\n")
	output.WriteString(fmt.Sprintf("Jobs analyzed: %d\n", snapshot.Summary.TotalJobs))
	output.WriteString(fmt.Sprintf("Average predicted applications: %.1f\n", snapshot.Summary.AvgPredictedApplications))
	output.WriteString(fmt.Sprintf("Resumes screened: %d\n", snapshot.Summary.TotalResumes))
	output.WriteString(fmt.Sprintf("Top match score: %.1f\n\n", snapshot.Summary.TopMatchScore))

	if len(snapshot.Jobs) > 0 {
		output.WriteString("=== RECENT JOBS ===\n")
		for i, job := range snapshot.Jobs {
			output.WriteString(fmt.Sprintf("%d. %s (%d applications, %s)\n",
				i+1, job.Title, job.PredictedApplications, job.Category))
		}
		output.WriteString("\n")
	}

	if len(snapshot.TopCandidates) > 0 {
		output.WriteString("=== TOP CANDIDATES ===\n")
		for i, candidate := range snapshot.TopCandidates {
			output.WriteString(fmt.Sprintf("%d. %.1f (%s)", i+1, candidate.Score, candidate.Category))
			if len(candidate.MatchedSkills) > 0 {
				output.WriteString(": ")
				output.WriteString(strings.Join(candidate.MatchedSkills, ", "))
			}
			output.WriteString("\n")
		}
	}

	return output.String(), nil
}

func (dtf *DashboardTextFormatter) SupportedType() string {
	return "DashboardSnapshot"
}

// DashboardMarkdownFormatter handles markdown formatting for dashboard snapshots
type DashboardMarkdownFormatter struct{}

func (dmf *DashboardMarkdownFormatter) Format(data any) (string, error) {
	snapshot, ok := data.(types.DashboardSnapshot)
	if !ok {
		return "", fmt.Errorf("expected DashboardSnapshot, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Hiring Analytics\n\n")
	output.WriteString(fmt.Sprintf("**Jobs analyzed:** %d\n\n", snapshot.Summary.TotalJobs))
	output.WriteString(fmt.Sprintf("**Average predicted applications:** %.1f\n\n", snapshot.Summary.AvgPredictedApplications))
	output.WriteString(fmt.Sprintf("**Resumes screened:** %d\n\n", snapshot.Summary.TotalResumes))
	output.WriteString(fmt.Sprintf("**Top match score:** %.1f\n\n", snapshot.Summary.TopMatchScore))

	if len(snapshot.Jobs) > 0 {
		output.WriteString("## Recent Jobs\n\n")
		for i, job := range snapshot.Jobs {
			output.WriteString(fmt.Sprintf("%d. %s (%d applications, %s)\n",
				i+1, job.Title, job.PredictedApplications, job.Category))
		}
		output.WriteString("\n")
	}

	if len(snapshot.TopCandidates) > 0 {
		output.WriteString("## Top Candidates\n\n")
		for i, candidate := range snapshot.TopCandidates {
			output.WriteString(fmt.Sprintf("%d. **%.1f** (%s)", i+1, candidate.Score, candidate.Category))
			if len(candidate.MatchedSkills) > 0 {
				output.WriteString(": ")
				output.WriteString(strings.Join(candidate.MatchedSkills, ", "))
			}
			output.WriteString("\n")
		}
	}

	return output.String(), nil
}

func (dmf *DashboardMarkdownFormatter) SupportedType() string {
	return "DashboardSnapshot"
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
