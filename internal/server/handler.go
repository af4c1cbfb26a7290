package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"hirescope/internal/extract"
	"hirescope/internal/observability"
	"hirescope/internal/textnorm"
	"hirescope/internal/types"

	"go.opentelemetry.io/otel/attribute"
)

// createPredictHandler wraps the application volume prediction handler with observability
func (s *Server) createPredictHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("hirescope.api")
		ctx, span := tracer.Start(ctx, "api.predict")
		defer span.End()

		if r.Method != http.MethodPost {
			writeErrorResponse(w, "Method not allowed. Use POST.", http.StatusMethodNotAllowed)
			return
		}

		// Parse request
		var job types.JobPosting
		if err := parseJSONRequest(r, &job); err != nil {
			span.RecordError(err)
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				writeErrorResponse(w, fmt.Sprintf("Request body too large (limit is %d bytes).", maxBytesErr.Limit), http.StatusRequestEntityTooLarge)
				return
			}
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
			return
		}

		// Absent fields fall back to the dashboard form's preselected values
		if job.ExperienceLevel == "" {
			job.ExperienceLevel = "Mid"
		}
		if job.JobType == "" {
			job.JobType = "Full-time"
		}
		if job.CompanySize == "" {
			job.CompanySize = "100-500"
		}
		if job.Industry == "" {
			job.Industry = "Technology"
		}

		// Add request attributes to span
		span.SetAttributes(
			attribute.String("job.experience_level", job.ExperienceLevel),
			attribute.String("job.type", job.JobType),
			attribute.Int("job.skill_count", len(job.Skills)),
			attribute.String("operation", "predict"),
		)

		result := s.Predictor.Predict(job)
		record := s.Store.AddJob(job.Title, result)

		// Record success metrics
		metrics := om.GetMetrics()
		metrics.RecordBusinessMetric(ctx, "job_predicted", true, om,
			attribute.Int("prediction.count", result.Count),
			attribute.String("prediction.category", result.Category))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("prediction.count", result.Count),
			attribute.String("prediction.category", result.Category),
			attribute.String("record.id", record.ID),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(PredictResponse{Success: true, Prediction: result}); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createMatchHandler wraps the resume matching handler with observability
func (s *Server) createMatchHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("hirescope.api")
		ctx, span := tracer.Start(ctx, "api.match")
		defer span.End()

		if r.Method != http.MethodPost {
			writeErrorResponse(w, "Method not allowed. Use POST.", http.StatusMethodNotAllowed)
			return
		}

		metrics := om.GetMetrics()

		// The resume file part is required
		resumeFile, resumeHeader, err := r.FormFile("resume")
		if err != nil {
			if errors.Is(err, http.ErrMissingFile) {
				span.SetAttributes(attribute.String("error.type", "validation"))
				writeErrorResponse(w, "Resume file is required.", http.StatusBadRequest)
				return
			}
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				span.RecordError(err)
				writeErrorResponse(w, fmt.Sprintf("Upload too large (limit is %d bytes).", maxBytesErr.Limit), http.StatusRequestEntityTooLarge)
				return
			}
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid multipart form data.", http.StatusBadRequest)
			return
		}
		defer closeQuietly(resumeFile, s)

		if !extract.Supported(resumeHeader.Filename) {
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Unsupported resume format. Please upload PDF or DOC/DOCX.", http.StatusBadRequest)
			return
		}

		resumeText, err := s.extractUpload(ctx, om, "resume", resumeHeader.Filename, resumeFile)
		if err != nil {
			span.RecordError(err)
			metrics.RecordBusinessMetric(ctx, "resume_matched", false, om,
				attribute.String("error", err.Error()))
			s.writeExtractionError(w, err)
			return
		}

		// Job description comes from an uploaded document or the form text field.
		// An uploaded document overrides the form text; an upload in an
		// unsupported format falls back to the form text.
		jdText := r.FormValue("jobDescriptionText")
		jdSource := "form"
		if jdFile, jdHeader, jdErr := r.FormFile("jobDescription"); jdErr == nil {
			defer closeQuietly(jdFile, s)
			if extract.Supported(jdHeader.Filename) {
				extracted, extractErr := s.extractUpload(ctx, om, "job_description", jdHeader.Filename, jdFile)
				if extractErr != nil {
					span.RecordError(extractErr)
					metrics.RecordBusinessMetric(ctx, "resume_matched", false, om,
						attribute.String("error", extractErr.Error()))
					s.writeExtractionError(w, extractErr)
					return
				}
				jdText = extracted
				jdSource = "file"
			}
		}

		if jdText == "" {
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Job description is required.", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.String("resume.format", strings.ToLower(filepath.Ext(resumeHeader.Filename))),
			attribute.String("job_description.source", jdSource),
			attribute.String("operation", "match"),
		)

		resumeText = textnorm.Normalize(resumeText)
		jdText = textnorm.Normalize(jdText)

		result := s.Matcher.Match(resumeText, jdText)
		record := s.Store.AddResume(result)

		// Record success metrics
		metrics.RecordBusinessMetric(ctx, "resume_matched", true, om,
			attribute.Float64("match.score", result.Score),
			attribute.String("match.category", result.Category))
		metrics.RecordMatchQuality(ctx, result.Score, len(result.MatchedSkills), om)

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Float64("match.score", result.Score),
			attribute.String("match.category", result.Category),
			attribute.String("record.id", record.ID),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(MatchResponse{Success: true, Result: result}); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createDashboardHandler wraps the dashboard snapshot handler with observability
func (s *Server) createDashboardHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, span := om.Tracer("hirescope.api").Start(r.Context(), "api.dashboard")
		defer span.End()

		if r.Method != http.MethodGet {
			writeErrorResponse(w, "Method not allowed. Use GET.", http.StatusMethodNotAllowed)
			return
		}

		snapshot := s.Store.Snapshot()

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("dashboard.jobs", len(snapshot.Jobs)),
			attribute.Int("dashboard.top_candidates", len(snapshot.TopCandidates)),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(DashboardResponse{Success: true, Data: snapshot}); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// extractUpload reads an uploaded document and extracts its text, tracked as
// an extraction operation in metrics and traces.
func (s *Server) extractUpload(ctx context.Context, om *observability.ObservabilityManager, document, filename string, file multipart.File) (string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read uploaded file: %w", err)
	}

	format := strings.ToLower(filepath.Ext(filename))
	metrics := om.GetMetrics()
	return metrics.TrackExtraction(ctx, document, format, int64(len(data)), func(ctx context.Context) *observability.ExtractionOutcome {
		text, extractErr := s.Extractor.Extract(ctx, filename, data)
		return &observability.ExtractionOutcome{Text: text, Error: extractErr}
	}, om)
}

// writeExtractionError translates extraction failures into API error responses
func (s *Server) writeExtractionError(w http.ResponseWriter, err error) {
	writeErrorResponse(w, userFacingError(err), statusForError(err))
}

// closeQuietly closes an uploaded file, logging close failures
func closeQuietly(file multipart.File, s *Server) {
	if err := file.Close(); err != nil && s.Logger != nil {
		s.Logger.Warn("Failed to close uploaded file", "error", err)
	}
}

// createRateLimitMiddleware adds observability to rate limiting
func (s *Server) createRateLimitMiddleware(om *observability.ObservabilityManager) func(http.HandlerFunc) http.HandlerFunc {
	originalMiddleware := s.rateLimitMiddleware()

	return func(next http.HandlerFunc) http.HandlerFunc {
		limited := originalMiddleware(next)
		return func(w http.ResponseWriter, r *http.Request) {
			// Wrap the ResponseWriter to detect rate limit rejections
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}

			limited(wrapper, r)

			// If rate limited, record metric
			if wrapper.statusCode == http.StatusTooManyRequests {
				metrics := om.GetMetrics()
				metrics.RecordBusinessMetric(r.Context(), "rate_limit_hit", true, om,
					attribute.String("endpoint", r.URL.Path),
					attribute.String("method", r.Method))
			}
		}
	}
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
