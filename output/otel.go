package output

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"veracity/config"
	"veracity/logger"

	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	otelLog "go.opentelemetry.io/otel/log"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.27.0"
)

type otelLogger struct {
	provider     *sdklog.LoggerProvider
	logger       otelLog.Logger
	timeout      time.Duration
	endpoint     string
	includePaths bool
}

// newOtelLogger builds the optional OTLP/HTTP log exporter. Returns
// nil when no endpoint is configured; export is strictly opt-in.
func newOtelLogger(cfg *config.Config) (*otelLogger, error) {
	if cfg == nil {
		return nil, nil
	}
	endpoint := strings.TrimSpace(cfg.OtelEndpoint)
	if endpoint == "" {
		return nil, nil
	}
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		return nil, fmt.Errorf("otel endpoint must include scheme (http or https)")
	}

	opts := []otlploghttp.Option{otlploghttp.WithEndpointURL(endpoint)}
	if len(cfg.OtelHeaders) > 0 {
		opts = append(opts, otlploghttp.WithHeaders(cfg.OtelHeaders))
	}
	if cfg.OtelTimeout > 0 {
		opts = append(opts, otlploghttp.WithTimeout(cfg.OtelTimeout))
	}

	exp, err := otlploghttp.New(context.Background(), opts...)
	if err != nil {
		return nil, err
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(cfg.OtelServiceName),
	)
	provider := sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewBatchProcessor(exp)),
		sdklog.WithResource(res),
	)

	return &otelLogger{
		provider:     provider,
		logger:       provider.Logger("veracity"),
		timeout:      cfg.OtelTimeout,
		endpoint:     endpoint,
		includePaths: cfg.OtelExportPaths,
	}, nil
}

func (o *otelLogger) Emit(recordType string, payload interface{}) {
	if o == nil || o.logger == nil {
		return
	}
	data := payloadToMap(payload)
	if recordType == "file" && !o.includePaths {
		delete(data, "path")
	}

	var record otelLog.Record
	record.SetTimestamp(time.Now())
	record.SetObservedTimestamp(time.Now())
	record.SetEventName("veracity.record")
	record.AddAttributes(
		otelLog.String("record_type", recordType),
		otelLog.String("schema_version", SchemaVersion),
	)
	if attrs := semanticAttributes(recordType, data, o.includePaths); len(attrs) > 0 {
		record.AddAttributes(attrs...)
	}
	record.SetBody(toLogValue(data))

	o.logger.Emit(context.Background(), record)
}

func (o *otelLogger) Shutdown() {
	if o == nil || o.provider == nil {
		return
	}
	timeout := o.timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := o.provider.Shutdown(ctx); err != nil {
		logger.Debugf("OTEL shutdown failed: %v", err)
	}
}

func semanticAttributes(recordType string, data map[string]interface{}, includePaths bool) []otelLog.KeyValue {
	if len(data) == 0 {
		return nil
	}
	var kvs []otelLog.KeyValue

	switch recordType {
	case "file":
		if includePaths {
			if path, _ := data["path"].(string); path != "" {
				kvs = append(kvs, otelLog.String(string(semconv.FilePathKey), path))
			}
		}
		if name, _ := data["name"].(string); name != "" {
			kvs = append(kvs, otelLog.String(string(semconv.FileNameKey), name))
		}
		if size, ok := data["size"].(float64); ok {
			kvs = append(kvs, otelLog.Int64(string(semconv.FileSizeKey), int64(size)))
		}
		if status, _ := data["status"].(string); status != "" {
			kvs = append(kvs, otelLog.String("veracity.file.status", status))
		}
		if mime, _ := data["mime_type"].(string); mime != "" {
			kvs = append(kvs, otelLog.String("veracity.file.mime_type", mime))
		}
	case "summary":
		if total, ok := data["total_files"].(float64); ok {
			kvs = append(kvs, otelLog.Int64("veracity.summary.total_files", int64(total)))
		}
		if corrupted, ok := data["corrupted_files"].(float64); ok {
			kvs = append(kvs, otelLog.Int64("veracity.summary.corrupted_files", int64(corrupted)))
		}
	}
	return kvs
}

// payloadToMap normalizes any payload through a JSON round trip so the
// log body uses only plain JSON shapes.
func payloadToMap(payload interface{}) map[string]interface{} {
	if payload == nil {
		return nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil
	}
	var data map[string]interface{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil
	}
	return data
}

func toLogValue(value interface{}) otelLog.Value {
	switch v := value.(type) {
	case nil:
		return otelLog.Value{}
	case string:
		return otelLog.StringValue(v)
	case bool:
		return otelLog.BoolValue(v)
	case float64:
		return otelLog.Float64Value(v)
	case map[string]interface{}:
		kvs := make([]otelLog.KeyValue, 0, len(v))
		for key, item := range v {
			kvs = append(kvs, otelLog.KeyValue{Key: key, Value: toLogValue(item)})
		}
		return otelLog.MapValue(kvs...)
	case []interface{}:
		values := make([]otelLog.Value, 0, len(v))
		for _, item := range v {
			values = append(values, toLogValue(item))
		}
		return otelLog.SliceValue(values...)
	default:
		if data, err := json.Marshal(v); err == nil {
			return otelLog.StringValue(string(data))
		}
		return otelLog.Value{}
	}
}
