package sink

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/global"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"github.com/codeready-toolchain/logshield/pkg/config"
	"github.com/codeready-toolchain/logshield/pkg/logging"
	"github.com/codeready-toolchain/logshield/pkg/masking"
	"github.com/codeready-toolchain/logshield/pkg/version"
)

// OTelSink emits entries as OpenTelemetry log records. The sink's category
// is the instrumentation scope of its logger.
type OTelSink struct {
	logger   log.Logger
	category string
	scopes   scopeStack
}

// NewOTelSink creates a sink for category emitting on logger.
func NewOTelSink(logger log.Logger, category string) *OTelSink {
	return &OTelSink{logger: logger, category: category}
}

// Enabled implements logging.Sink.
func (s *OTelSink) Enabled(ctx context.Context, level slog.Level) bool {
	return s.logger.Enabled(ctx, log.EnabledParameters{Severity: severity(level)})
}

// BeginScope implements logging.Sink.
func (s *OTelSink) BeginScope(state any) logging.Scope {
	return s.scopes.push(state)
}

// Emit implements logging.Sink.
func (s *OTelSink) Emit(ctx context.Context, e logging.Entry) {
	var record log.Record
	record.SetTimestamp(e.Time)
	record.SetObservedTimestamp(time.Now())
	record.SetSeverity(severity(e.Level))
	record.SetSeverityText(e.Level.String())
	record.SetBody(log.StringValue(e.Message))

	record.AddAttributes(log.String("logshield.category", s.category))
	if e.Masked {
		record.AddAttributes(log.Bool(logging.MaskedAttr, true))
	}
	if !e.EventID.IsZero() {
		record.AddAttributes(log.Int("event.id", e.EventID.ID))
		if e.EventID.Name != "" {
			record.AddAttributes(log.String("event.name", e.EventID.Name))
		}
	}
	if scopes := s.scopes.states(); len(scopes) > 0 {
		values := make([]log.Value, len(scopes))
		for i, sc := range scopes {
			values[i] = log.StringValue(sc)
		}
		record.AddAttributes(log.Slice("logshield.scopes", values...))
	}
	if e.Err != nil {
		record.AddAttributes(
			log.String("exception.type", fmt.Sprintf("%T", e.Err)),
			log.String("exception.message", e.Err.Error()),
		)
	}

	s.logger.Emit(ctx, record)
}

// severity maps slog levels onto the OpenTelemetry severity ranges.
func severity(level slog.Level) log.Severity {
	switch {
	case level >= slog.LevelError:
		return log.SeverityError
	case level >= slog.LevelWarn:
		return log.SeverityWarn
	case level >= slog.LevelInfo:
		return log.SeverityInfo
	case level >= slog.LevelDebug:
		return log.SeverityDebug
	default:
		return log.SeverityTrace
	}
}

// OTelProvider creates one OTelSink per category from a LoggerProvider.
type OTelProvider struct {
	provider log.LoggerProvider
}

// NewOTelProvider creates a provider over p.
func NewOTelProvider(p log.LoggerProvider) *OTelProvider {
	return &OTelProvider{provider: p}
}

// CreateSink implements logging.SinkProvider.
func (p *OTelProvider) CreateSink(category string) logging.Sink {
	return NewOTelSink(p.provider.Logger(category), category)
}

// OTelLogs owns the SDK logger provider and its exporter.
type OTelLogs struct {
	provider *sdklog.LoggerProvider
}

// InitOTelLogs builds an OTLP log pipeline from cfg and installs it as the
// global OpenTelemetry logger provider. Every record passes the masking
// processor before it is batched for export, including records emitted by
// code that logs to the global provider directly. It returns nil when the
// sink is disabled.
func InitOTelLogs(ctx context.Context, cfg *config.OTelSinkConfig, redactor masking.Redactor) (*OTelLogs, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}

	var (
		exporter sdklog.Exporter
		err      error
	)
	switch cfg.Exporter {
	case config.OTelExporterHTTP:
		exporter, err = createHTTPLogExporter(ctx, cfg)
	default:
		exporter, err = createGRPCLogExporter(ctx, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP log exporter: %w", err)
	}

	res, err := resource.Merge(
		resource.Default(),
		// Schemaless: resource.Default carries the SDK's own schema URL.
		resource.NewSchemaless(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(version.GitCommit),
			attribute.String("logshield.masking", "enabled"),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build OTel resource: %w", err)
	}

	provider := sdklog.NewLoggerProvider(
		sdklog.WithResource(res),
		sdklog.WithProcessor(logging.NewProcessor(sdklog.NewBatchProcessor(exporter), redactor)),
	)
	global.SetLoggerProvider(provider)

	return &OTelLogs{provider: provider}, nil
}

// LoggerProvider returns the SDK logger provider.
func (o *OTelLogs) LoggerProvider() log.LoggerProvider {
	return o.provider
}

// SinkProvider returns a sink provider emitting through the pipeline.
func (o *OTelLogs) SinkProvider() *OTelProvider {
	return NewOTelProvider(o.provider)
}

// Shutdown flushes pending records and shuts the pipeline down.
func (o *OTelLogs) Shutdown(ctx context.Context) error {
	if o == nil || o.provider == nil {
		return nil
	}
	return o.provider.Shutdown(ctx)
}

func createGRPCLogExporter(ctx context.Context, cfg *config.OTelSinkConfig) (sdklog.Exporter, error) {
	opts := []otlploggrpc.Option{
		otlploggrpc.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlploggrpc.WithInsecure())
	}
	if len(cfg.Headers) > 0 {
		opts = append(opts, otlploggrpc.WithHeaders(cfg.Headers))
	}
	return otlploggrpc.New(ctx, opts...)
}

func createHTTPLogExporter(ctx context.Context, cfg *config.OTelSinkConfig) (sdklog.Exporter, error) {
	opts := []otlploghttp.Option{
		otlploghttp.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlploghttp.WithInsecure())
	}
	if len(cfg.Headers) > 0 {
		opts = append(opts, otlploghttp.WithHeaders(cfg.Headers))
	}
	return otlploghttp.New(ctx, opts...)
}

var (
	_ logging.Sink         = (*OTelSink)(nil)
	_ logging.SinkProvider = (*OTelProvider)(nil)
)
