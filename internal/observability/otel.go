package observability

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"hirescope/internal/config"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// ObservabilityConfig holds configuration for observability
type ObservabilityConfig struct {
	ServiceName    string
	ServiceVersion string
	Enabled        bool
	ConsoleOutput  bool
	PrettyPrint    bool
	SampleRate     float64
	Prometheus     PrometheusConfig
}

// Metrics holds all custom metrics for HireScope
type Metrics struct {
	// Document extraction metrics
	ExtractionTime       metric.Float64Histogram
	ExtractionCount      metric.Int64Counter
	ExtractionErrorCount metric.Int64Counter
	DocumentSize         metric.Int64Histogram

	// Scoring metrics
	PredictionCount metric.Int64Counter
	MatchCount      metric.Int64Counter
	MatchScore      metric.Float64Histogram
	MatchedSkills   metric.Int64Histogram

	// Skill catalog metrics
	CatalogReloadCount metric.Int64Counter

	// Certificate metrics
	CertReloadCount metric.Int64Counter
	CertExpiryTime  metric.Float64Gauge

	// Rate limiting metrics
	RateLimitHits metric.Int64Counter
}

// ObservabilityManager manages OpenTelemetry setup
type ObservabilityManager struct {
	config           ObservabilityConfig
	fullConfig       *config.Config // Store full config for access to nested settings
	tracerProvider   *trace.TracerProvider
	meterProvider    *sdkmetric.MeterProvider
	metrics          *Metrics
	shutdownFuncs    []func(context.Context) error
	prometheusServer *http.ServeMux
}

// NewObservabilityManager creates a new observability manager
func NewObservabilityManager(obsConfig ObservabilityConfig, fullConfig *config.Config) (*ObservabilityManager, error) {
	if !obsConfig.Enabled {
		return &ObservabilityManager{config: obsConfig, fullConfig: fullConfig}, nil
	}

	om := &ObservabilityManager{
		config:        obsConfig,
		fullConfig:    fullConfig,
		shutdownFuncs: make([]func(context.Context) error, 0),
	}

	if err := om.initTracing(); err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	if err := om.initMetrics(); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	return om, nil
}

// initTracing sets up OpenTelemetry tracing
func (om *ObservabilityManager) initTracing() error {
	if om.fullConfig != nil && !om.fullConfig.Observability.Tracing.Enabled {
		return nil
	}

	var exporter trace.SpanExporter
	var err error

	if om.config.ConsoleOutput {
		// Console exporter for development
		opts := []stdouttrace.Option{}
		if om.config.PrettyPrint {
			opts = append(opts, stdouttrace.WithPrettyPrint())
		}
		exporter, err = stdouttrace.New(opts...)
	} else if om.fullConfig != nil && om.fullConfig.Observability.OTLP.Enabled {
		// OTLP exporter for production
		exporter, err = om.createOTLPExporter()
	} else {
		// No-op exporter when no production exporter is configured
		exporter = &noOpSpanExporter{}
	}

	if err != nil {
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}

	res, err := om.createResource()
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	// The nested tracing sample rate wins over the top-level one when set
	sampleRate := om.config.SampleRate
	if om.fullConfig != nil && om.fullConfig.Observability.Tracing.SampleRate > 0 {
		sampleRate = om.fullConfig.Observability.Tracing.SampleRate
	}

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(res),
		trace.WithSampler(trace.TraceIDRatioBased(sampleRate)),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	om.tracerProvider = tp
	om.shutdownFuncs = append(om.shutdownFuncs, tp.Shutdown)

	return nil
}

// initMetrics sets up OpenTelemetry metrics
func (om *ObservabilityManager) initMetrics() error {
	if om.fullConfig != nil && !om.fullConfig.Observability.Metrics.Enabled {
		return nil
	}

	readers, err := om.setupMetricReaders()
	if err != nil {
		return err
	}

	res, err := om.createResource()
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	// Create meter provider with all readers
	meterProviderOptions := []sdkmetric.Option{
		sdkmetric.WithResource(res),
	}
	for _, reader := range readers {
		meterProviderOptions = append(meterProviderOptions, sdkmetric.WithReader(reader))
	}

	mp := sdkmetric.NewMeterProvider(meterProviderOptions...)

	otel.SetMeterProvider(mp)
	om.meterProvider = mp
	om.shutdownFuncs = append(om.shutdownFuncs, mp.Shutdown)

	// Initialize custom metrics
	return om.initCustomMetrics()
}

// setupMetricReaders sets up all metric readers based on configuration
func (om *ObservabilityManager) setupMetricReaders() ([]sdkmetric.Reader, error) {
	var readers []sdkmetric.Reader

	// Console exporter for development
	if err := om.setupConsoleReader(&readers); err != nil {
		return nil, err
	}

	// OTLP exporter for production metrics
	if err := om.setupOTLPReader(&readers); err != nil {
		return nil, err
	}

	// Prometheus exporter for scrape-based collection
	if err := om.setupPrometheusReader(&readers); err != nil {
		return nil, err
	}

	// If no readers configured, use manual reader as fallback
	if len(readers) == 0 {
		readers = append(readers, sdkmetric.NewManualReader())
	}

	return readers, nil
}

// setupConsoleReader sets up console metric reader if enabled
func (om *ObservabilityManager) setupConsoleReader(readers *[]sdkmetric.Reader) error {
	if !om.config.ConsoleOutput {
		return nil
	}

	exporter, err := stdoutmetric.New()
	if err != nil {
		return fmt.Errorf("failed to create console metric exporter: %w", err)
	}

	// Use configurable collection interval
	interval := om.getMetricsCollectionInterval()
	*readers = append(*readers, sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(interval)))
	return nil
}

// setupOTLPReader sets up OTLP metric reader if enabled
func (om *ObservabilityManager) setupOTLPReader(readers *[]sdkmetric.Reader) error {
	if om.fullConfig == nil || !om.fullConfig.Observability.OTLP.Enabled {
		return nil
	}

	otlpReader, err := om.createOTLPMetricsReader()
	if err != nil {
		return fmt.Errorf("failed to create OTLP metrics reader: %w", err)
	}
	if otlpReader != nil {
		*readers = append(*readers, otlpReader)
	}
	return nil
}

// setupPrometheusReader sets up Prometheus metric reader if enabled
func (om *ObservabilityManager) setupPrometheusReader(readers *[]sdkmetric.Reader) error {
	if !om.config.Prometheus.Enabled {
		return nil
	}

	prometheusReader, prometheusMux, err := SetupPrometheusExporter(om.config.Prometheus)
	if err != nil {
		return fmt.Errorf("failed to create Prometheus exporter: %w", err)
	}
	if prometheusReader != nil {
		*readers = append(*readers, prometheusReader)
		om.prometheusServer = prometheusMux

		// Start Prometheus server
		if err := StartPrometheusServer(prometheusMux, om.config.Prometheus.Port); err != nil {
			return fmt.Errorf("failed to start Prometheus server: %w", err)
		}
	}
	return nil
}

// createResource creates the OpenTelemetry resource describing this service instance
func (om *ObservabilityManager) createResource() (*resource.Resource, error) {
	return resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(om.config.ServiceName),
			semconv.ServiceVersion(om.config.ServiceVersion),
			attribute.String("service.instance.id", om.getServiceInstanceID()),
		),
	)
}

// initCustomMetrics creates all custom metrics for HireScope
func (om *ObservabilityManager) initCustomMetrics() error {
	meter := om.meterProvider.Meter(om.config.ServiceName)
	om.metrics = &Metrics{}

	if err := om.createExtractionMetrics(meter); err != nil {
		return err
	}

	if err := om.createScoringMetrics(meter); err != nil {
		return err
	}

	if err := om.createCatalogMetrics(meter); err != nil {
		return err
	}

	if err := om.createCertificateMetrics(meter); err != nil {
		return err
	}

	if err := om.createRateLimitMetrics(meter); err != nil {
		return err
	}

	return nil
}

// createExtractionMetrics creates document extraction metrics
func (om *ObservabilityManager) createExtractionMetrics(meter metric.Meter) error {
	var err error

	om.metrics.ExtractionTime, err = meter.Float64Histogram(
		"hirescope_extraction_duration_seconds",
		metric.WithDescription("Time spent extracting text from uploaded documents"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("failed to create extraction time metric: %w", err)
	}

	om.metrics.ExtractionCount, err = meter.Int64Counter(
		"hirescope_extractions_total",
		metric.WithDescription("Total number of document extractions"),
	)
	if err != nil {
		return fmt.Errorf("failed to create extraction count metric: %w", err)
	}

	om.metrics.ExtractionErrorCount, err = meter.Int64Counter(
		"hirescope_extraction_errors_total",
		metric.WithDescription("Total number of failed document extractions"),
	)
	if err != nil {
		return fmt.Errorf("failed to create extraction error count metric: %w", err)
	}

	om.metrics.DocumentSize, err = meter.Int64Histogram(
		"hirescope_document_size_bytes",
		metric.WithDescription("Size of uploaded documents"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return fmt.Errorf("failed to create document size metric: %w", err)
	}

	return nil
}

// createScoringMetrics creates prediction and matching metrics
func (om *ObservabilityManager) createScoringMetrics(meter metric.Meter) error {
	var err error

	om.metrics.PredictionCount, err = meter.Int64Counter(
		"hirescope_predictions_total",
		metric.WithDescription("Total number of application volume predictions"),
	)
	if err != nil {
		return fmt.Errorf("failed to create prediction count metric: %w", err)
	}

	om.metrics.MatchCount, err = meter.Int64Counter(
		"hirescope_matches_total",
		metric.WithDescription("Total number of resume match evaluations"),
	)
	if err != nil {
		return fmt.Errorf("failed to create match count metric: %w", err)
	}

	om.metrics.MatchScore, err = meter.Float64Histogram(
		"hirescope_match_score",
		metric.WithDescription("Distribution of resume match scores"),
		metric.WithUnit("%"),
	)
	if err != nil {
		return fmt.Errorf("failed to create match score metric: %w", err)
	}

	om.metrics.MatchedSkills, err = meter.Int64Histogram(
		"hirescope_matched_skills",
		metric.WithDescription("Number of catalog skills matched per resume"),
	)
	if err != nil {
		return fmt.Errorf("failed to create matched skills metric: %w", err)
	}

	return nil
}

// createCatalogMetrics creates skill catalog metrics
func (om *ObservabilityManager) createCatalogMetrics(meter metric.Meter) error {
	var err error

	om.metrics.CatalogReloadCount, err = meter.Int64Counter(
		"hirescope_catalog_reloads_total",
		metric.WithDescription("Total number of skill catalog reloads"),
	)
	if err != nil {
		return fmt.Errorf("failed to create catalog reload count metric: %w", err)
	}

	return nil
}

// createCertificateMetrics creates certificate-related metrics
func (om *ObservabilityManager) createCertificateMetrics(meter metric.Meter) error {
	var err error

	om.metrics.CertReloadCount, err = meter.Int64Counter(
		"hirescope_cert_reloads_total",
		metric.WithDescription("Total number of certificate reloads"),
	)
	if err != nil {
		return fmt.Errorf("failed to create certificate reload count metric: %w", err)
	}

	// Certificate expiry time gauge (populated by CertificateManager)
	om.metrics.CertExpiryTime, err = meter.Float64Gauge(
		"hirescope_cert_expiry_seconds",
		metric.WithDescription("Seconds until certificate expiry"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("failed to create certificate expiry time metric: %w", err)
	}

	return nil
}

// createRateLimitMetrics creates rate limiting metrics
func (om *ObservabilityManager) createRateLimitMetrics(meter metric.Meter) error {
	var err error

	om.metrics.RateLimitHits, err = meter.Int64Counter(
		"hirescope_rate_limit_hits_total",
		metric.WithDescription("Total number of rate limit hits"),
	)
	if err != nil {
		return fmt.Errorf("failed to create rate limit hits metric: %w", err)
	}

	return nil
}

// GetMetrics returns the metrics instance
func (om *ObservabilityManager) GetMetrics() *Metrics {
	if om.metrics == nil {
		return &Metrics{} // Return empty metrics if not initialized
	}
	return om.metrics
}

// HTTPMiddleware returns HTTP middleware with OpenTelemetry instrumentation
func (om *ObservabilityManager) HTTPMiddleware() func(http.Handler) http.Handler {
	if !om.config.Enabled {
		return func(h http.Handler) http.Handler { return h }
	}

	opts := []otelhttp.Option{}
	if om.tracerProvider != nil {
		opts = append(opts, otelhttp.WithTracerProvider(om.tracerProvider))
	}
	if om.meterProvider != nil {
		opts = append(opts, otelhttp.WithMeterProvider(om.meterProvider))
	}

	return otelhttp.NewMiddleware(om.config.ServiceName, opts...)
}

// Tracer returns a tracer for the service
func (om *ObservabilityManager) Tracer(name string) oteltrace.Tracer {
	if !om.config.Enabled {
		return noop.NewTracerProvider().Tracer(name)
	}
	return otel.Tracer(name)
}

// Shutdown gracefully shuts down all observability components
func (om *ObservabilityManager) Shutdown(ctx context.Context) error {
	for _, shutdown := range om.shutdownFuncs {
		if err := shutdown(ctx); err != nil {
			return err
		}
	}
	return nil
}

// ExtractionOutcome holds the result of a tracked document extraction
type ExtractionOutcome struct {
	Text  string
	Error error
}

// TrackExtraction instruments a document extraction with tracing and metrics.
// The document argument names what is being extracted (resume, job_description)
// and becomes part of the span name.
func (m *Metrics) TrackExtraction(ctx context.Context, document, format string, sizeBytes int64, fn func(context.Context) *ExtractionOutcome, om *ObservabilityManager) (string, error) {
	if m.ExtractionTime == nil {
		// Metrics not initialized, just run the function
		result := fn(ctx)
		if result != nil {
			return result.Text, result.Error
		}
		return "", nil
	}

	// Check if extraction metrics are enabled
	extractionEnabled := m.isExtractionMetricsEnabled(om)

	tracer := otel.Tracer("hirescope.extract")
	ctx, span := tracer.Start(ctx, "extract."+document)
	defer span.End()

	start := time.Now()
	result := fn(ctx)
	duration := time.Since(start).Seconds()

	var text string
	var err error
	if result != nil {
		text = result.Text
		err = result.Error
	}

	// Record metrics only if extraction metrics are enabled
	if extractionEnabled {
		m.recordExtractionMetrics(ctx, document, format, err, duration, sizeBytes, len(text), om, span)
	}

	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("error", true))
	}

	return text, err
}

// isExtractionMetricsEnabled checks if extraction metrics are enabled in the configuration
func (m *Metrics) isExtractionMetricsEnabled(om *ObservabilityManager) bool {
	if om.fullConfig == nil {
		return true
	}
	return om.fullConfig.Observability.CustomMetrics.Extraction.Enabled
}

// recordExtractionMetrics records all extraction-related metrics
func (m *Metrics) recordExtractionMetrics(ctx context.Context, document, format string, err error, duration float64, sizeBytes int64, textLength int, om *ObservabilityManager, span oteltrace.Span) {
	attrs := []attribute.KeyValue{
		attribute.String("document", document),
		attribute.Bool("success", err == nil),
	}
	if om.fullConfig == nil || om.fullConfig.Observability.CustomMetrics.Extraction.TrackFormats {
		attrs = append(attrs, attribute.String("format", format))
	}

	m.recordExtractionDuration(ctx, duration, attrs, om)
	m.recordExtractionCount(ctx, attrs)
	m.recordDocumentSize(ctx, sizeBytes, textLength, attrs, om, span)
	m.recordExtractionError(ctx, err, attrs, om)

	span.SetAttributes(attrs...)
}

// recordExtractionDuration records extraction duration if enabled
func (m *Metrics) recordExtractionDuration(ctx context.Context, duration float64, attrs []attribute.KeyValue, om *ObservabilityManager) {
	if om.fullConfig == nil || om.fullConfig.Observability.CustomMetrics.Extraction.TrackDuration {
		m.ExtractionTime.Record(ctx, duration, metric.WithAttributes(attrs...))
	}
}

// recordExtractionCount records extraction request count
func (m *Metrics) recordExtractionCount(ctx context.Context, attrs []attribute.KeyValue) {
	m.ExtractionCount.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// recordDocumentSize records document size metrics and span attributes
func (m *Metrics) recordDocumentSize(ctx context.Context, sizeBytes int64, textLength int, attrs []attribute.KeyValue, om *ObservabilityManager, span oteltrace.Span) {
	if m.DocumentSize == nil {
		return
	}

	trackSizes := om.fullConfig == nil || om.fullConfig.Observability.CustomMetrics.Extraction.TrackSizes
	if trackSizes {
		m.DocumentSize.Record(ctx, sizeBytes, metric.WithAttributes(attrs...))
	}

	// Add sizes to span attributes (always add to traces for debugging)
	span.SetAttributes(
		attribute.Int64("document.size_bytes", sizeBytes),
		attribute.Int("document.text_length", textLength),
	)
}

// recordExtractionError records extraction error count if there was an error
func (m *Metrics) recordExtractionError(ctx context.Context, err error, attrs []attribute.KeyValue, om *ObservabilityManager) {
	if err == nil {
		return
	}
	if om.fullConfig == nil || om.fullConfig.Observability.CustomMetrics.Extraction.TrackFailures {
		m.ExtractionErrorCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// RecordMatchQuality records score and skill count distributions for a completed match
func (m *Metrics) RecordMatchQuality(ctx context.Context, score float64, matchedSkills int, om *ObservabilityManager, attributes ...attribute.KeyValue) {
	if om != nil && om.fullConfig != nil && !om.fullConfig.Observability.CustomMetrics.Scoring.Enabled {
		return
	}

	trackScores := om == nil || om.fullConfig == nil || om.fullConfig.Observability.CustomMetrics.Scoring.TrackScores
	if m.MatchScore != nil && trackScores {
		m.MatchScore.Record(ctx, score, metric.WithAttributes(attributes...))
	}

	trackSkillCounts := om == nil || om.fullConfig == nil || om.fullConfig.Observability.CustomMetrics.Scoring.TrackSkillCounts
	if m.MatchedSkills != nil && trackSkillCounts {
		m.MatchedSkills.Record(ctx, int64(matchedSkills), metric.WithAttributes(attributes...))
	}
}

// RecordBusinessMetric records domain-specific counters by metric type
func (m *Metrics) RecordBusinessMetric(ctx context.Context, metricType string, success bool, om *ObservabilityManager, attributes ...attribute.KeyValue) {
	attrs := append([]attribute.KeyValue{
		attribute.Bool("success", success),
	}, attributes...)

	m.recordMetricByType(ctx, metricType, attrs, om)
}

// recordMetricByType records the appropriate metric based on the metric type
func (m *Metrics) recordMetricByType(ctx context.Context, metricType string, attrs []attribute.KeyValue, om *ObservabilityManager) {
	switch metricType {
	case "job_predicted":
		m.recordJobPredicted(ctx, attrs, om)
	case "resume_matched":
		m.recordResumeMatched(ctx, attrs, om)
	case "rate_limit_hit":
		m.recordRateLimitHit(ctx, attrs, om)
	case "catalog_reload":
		m.recordCatalogReload(ctx, attrs, om)
	}
}

// recordJobPredicted records a completed application volume prediction
func (m *Metrics) recordJobPredicted(ctx context.Context, attrs []attribute.KeyValue, om *ObservabilityManager) {
	if om != nil && om.fullConfig != nil && !om.fullConfig.Observability.CustomMetrics.Scoring.Enabled {
		return
	}
	if m.PredictionCount != nil {
		m.PredictionCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// recordResumeMatched records a completed resume match
func (m *Metrics) recordResumeMatched(ctx context.Context, attrs []attribute.KeyValue, om *ObservabilityManager) {
	if om != nil && om.fullConfig != nil && !om.fullConfig.Observability.CustomMetrics.Scoring.Enabled {
		return
	}
	if m.MatchCount != nil {
		m.MatchCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// recordRateLimitHit records rate limit hit metric
func (m *Metrics) recordRateLimitHit(ctx context.Context, attrs []attribute.KeyValue, om *ObservabilityManager) {
	// Rate limiting is an infrastructure metric
	if om != nil && om.fullConfig != nil {
		infra := om.fullConfig.Observability.CustomMetrics.Infrastructure
		if !infra.Enabled || !infra.TrackRateLimits {
			return
		}
	}
	if m.RateLimitHits != nil {
		m.RateLimitHits.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// recordCatalogReload records a skill catalog reload event
func (m *Metrics) recordCatalogReload(ctx context.Context, attrs []attribute.KeyValue, om *ObservabilityManager) {
	if om != nil && om.fullConfig != nil {
		infra := om.fullConfig.Observability.CustomMetrics.Infrastructure
		if !infra.Enabled || !infra.TrackCatalogReload {
			return
		}
	}
	if m.CatalogReloadCount != nil {
		m.CatalogReloadCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// RecordCertReload records a certificate reload event
func (m *Metrics) RecordCertReload(ctx context.Context, om *ObservabilityManager, attributes ...attribute.KeyValue) {
	if !m.trackCertMetricsEnabled(om) {
		return
	}
	if m.CertReloadCount != nil {
		m.CertReloadCount.Add(ctx, 1, metric.WithAttributes(attributes...))
	}
}

// RecordCertExpiry records seconds until certificate expiry
func (m *Metrics) RecordCertExpiry(ctx context.Context, secondsToExpiry float64, om *ObservabilityManager, attributes ...attribute.KeyValue) {
	if !m.trackCertMetricsEnabled(om) {
		return
	}
	if m.CertExpiryTime != nil {
		m.CertExpiryTime.Record(ctx, secondsToExpiry, metric.WithAttributes(attributes...))
	}
}

// trackCertMetricsEnabled checks if certificate metrics are enabled in the configuration
func (m *Metrics) trackCertMetricsEnabled(om *ObservabilityManager) bool {
	if om == nil || om.fullConfig == nil {
		return true
	}
	infra := om.fullConfig.Observability.CustomMetrics.Infrastructure
	return infra.Enabled && infra.TrackCertExpiry
}

// No-op exporters for when console output is disabled
type noOpSpanExporter struct{}

func (n *noOpSpanExporter) ExportSpans(ctx context.Context, spans []trace.ReadOnlySpan) error {
	return nil
}

func (n *noOpSpanExporter) Shutdown(ctx context.Context) error {
	return nil
}

// createOTLPExporter creates an OTLP HTTP trace exporter
func (om *ObservabilityManager) createOTLPExporter() (trace.SpanExporter, error) {
	if om.fullConfig == nil {
		return nil, fmt.Errorf("config not available for OTLP configuration")
	}

	otlpConfig := om.fullConfig.Observability.OTLP

	// Prepare OTLP options
	opts := []otlptracehttp.Option{
		otlptracehttp.WithEndpointURL(otlpConfig.Endpoint),
	}

	// Configure TLS
	if otlpConfig.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	// Add custom headers if provided
	if len(otlpConfig.Headers) > 0 {
		opts = append(opts, otlptracehttp.WithHeaders(otlpConfig.Headers))
	}

	// Create the OTLP exporter
	exporter, err := otlptracehttp.New(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP trace exporter: %w", err)
	}

	return exporter, nil
}

// createOTLPMetricsReader creates an OTLP HTTP metrics reader
func (om *ObservabilityManager) createOTLPMetricsReader() (sdkmetric.Reader, error) {
	if om.fullConfig == nil {
		return nil, fmt.Errorf("config not available for OTLP configuration")
	}

	otlpConfig := om.fullConfig.Observability.OTLP

	// Prepare OTLP options
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpointURL(otlpConfig.Endpoint),
	}

	// Configure TLS
	if otlpConfig.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	// Add custom headers if provided
	if len(otlpConfig.Headers) > 0 {
		opts = append(opts, otlpmetrichttp.WithHeaders(otlpConfig.Headers))
	}

	// Create the OTLP metrics exporter
	exporter, err := otlpmetrichttp.New(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP metrics exporter: %w", err)
	}

	// Use configurable collection interval for OTLP metrics
	interval := om.getMetricsCollectionInterval()
	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(interval))

	return reader, nil
}

// getServiceInstanceID returns the service instance ID from config or generates one
func (om *ObservabilityManager) getServiceInstanceID() string {
	if om.fullConfig != nil && om.fullConfig.Observability.ServiceInstance != "" {
		return om.fullConfig.Observability.ServiceInstance
	}
	// Fallback to default if config not available
	return "hirescope-1"
}

// getMetricsCollectionInterval returns the configured metrics collection interval
func (om *ObservabilityManager) getMetricsCollectionInterval() time.Duration {
	if om.fullConfig != nil {
		return om.fullConfig.Observability.Metrics.CollectionInterval
	}
	// Fallback to default
	return 15 * time.Second
}
