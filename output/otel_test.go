package output

import (
	"testing"
	"time"

	otelLog "go.opentelemetry.io/otel/log"

	"veracity/config"
	"veracity/scanner"
)

func TestNewOtelLoggerDisabled(t *testing.T) {
	o, err := newOtelLogger(&config.Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o != nil {
		t.Fatal("expected nil logger when no endpoint is set")
	}
}

func TestNewOtelLoggerRejectsSchemeless(t *testing.T) {
	cfg := &config.Config{OtelEndpoint: "localhost:4318", OtelTimeout: time.Second}
	if _, err := newOtelLogger(cfg); err == nil {
		t.Fatal("expected error for endpoint without scheme")
	}
}

func TestPayloadToMap(t *testing.T) {
	rec := &scanner.FileRecord{Path: "/data/a.csv", Size: 7, Status: scanner.StatusIntact}
	data := payloadToMap(rec)
	if data["path"] != "/data/a.csv" {
		t.Errorf("path = %v", data["path"])
	}
	if data["status"] != "INTACT" {
		t.Errorf("status = %v", data["status"])
	}
	if size, ok := data["size"].(float64); !ok || size != 7 {
		t.Errorf("size = %v", data["size"])
	}
}

func TestSemanticAttributesRedactsPath(t *testing.T) {
	data := payloadToMap(&scanner.FileRecord{
		Path: "/secret/a.csv", Name: "a.csv", Size: 7, Status: scanner.StatusIntact,
	})
	attrs := semanticAttributes("file", data, false)
	for _, kv := range attrs {
		if kv.Value.Kind() == otelLog.KindString && kv.Value.AsString() == "/secret/a.csv" {
			t.Fatal("path must not appear when export-paths is off")
		}
	}
	attrs = semanticAttributes("file", data, true)
	found := false
	for _, kv := range attrs {
		if kv.Value.Kind() == otelLog.KindString && kv.Value.AsString() == "/secret/a.csv" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected path attribute when export-paths is on")
	}
}

func TestToLogValueShapes(t *testing.T) {
	v := toLogValue(map[string]interface{}{
		"s": "x", "b": true, "n": 1.5,
		"list": []interface{}{"a", 2.0},
	})
	if v.Kind() != otelLog.KindMap {
		t.Fatalf("kind = %v, want map", v.Kind())
	}
}
