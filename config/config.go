package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"veracity/version"
)

type Config struct {
	InputDirs         []string          `json:"input_dirs"`
	Recursive         bool              `json:"recursive"`
	FileTypes         []string          `json:"file_types"`
	OutputFormat      string            `json:"output_format"`
	OutputFileName    string            `json:"output_file_name"`
	ConcurrencyLevel  int               `json:"concurrency_level"`
	NiceLevel         string            `json:"nice_level"`
	HashAlgorithms    []string          `json:"hash_algorithms"`
	MaxFileSize       int64             `json:"max_file_size"`
	MaxReadBytes      int64             `json:"max_read_bytes"`
	MaxIOPerSecond    int               `json:"max_io_per_second"`
	LogLevel          string            `json:"log_level"`
	SkipCount         bool              `json:"skip_count"`
	SpreadsheetMode   string            `json:"spreadsheet_mode"`
	CollectSystemInfo bool              `json:"collect_system_info"`
	ConfigFile        string            `json:"config_file"`
	OtelEndpoint      string            `json:"otel_endpoint"`
	OtelHeaders       map[string]string `json:"otel_headers"`
	OtelServiceName   string            `json:"otel_service_name"`
	OtelTimeout       time.Duration     `json:"otel_timeout"`
	OtelExportPaths   bool              `json:"otel_export_paths"`
	ConcurrencySet    bool              `json:"-"`
}

func LoadConfig() (*Config, error) {
	now := time.Now().UTC()
	timestamp := now.Format("20060102-150405")
	cfg := &Config{
		InputDirs:         []string{"."},
		Recursive:         true,
		FileTypes:         []string{},
		OutputFormat:      "json",
		OutputFileName:    fmt.Sprintf("veracity-%s", timestamp),
		ConcurrencyLevel:  runtime.NumCPU(),
		NiceLevel:         "medium",
		HashAlgorithms:    []string{"md5", "sha1", "sha256"},
		MaxFileSize:       0,
		MaxReadBytes:      0,
		MaxIOPerSecond:    0,
		LogLevel:          "info",
		SkipCount:         true,
		SpreadsheetMode:   "auto",
		CollectSystemInfo: true,
		OtelEndpoint:      "",
		OtelHeaders:       map[string]string{},
		OtelServiceName:   "veracity",
		OtelTimeout:       5 * time.Second,
		OtelExportPaths:   false,
	}

	paths := flag.String("path", strings.Join(cfg.InputDirs, ","), fmt.Sprintf("Comma-separated list of directories to scan (default: %s).", strings.Join(cfg.InputDirs, ",")))
	recursive := flag.Bool("recursive", cfg.Recursive, fmt.Sprintf("Descend into subdirectories (default: %t).", cfg.Recursive))
	types := flag.String("types", "", "Comma-separated list of file extensions to scan, e.g. csv,json,xlsx (default: all files).")
	format := flag.String("format", cfg.OutputFormat, fmt.Sprintf("Output format: json, csv, or txt (default: %s).", cfg.OutputFormat))
	output := flag.String("output", cfg.OutputFileName, "Output file name without extension (default: veracity-<timestamp>).")
	concurrency := flag.Int("concurrency", cfg.ConcurrencyLevel, fmt.Sprintf("Concurrency level (default: %d).", cfg.ConcurrencyLevel))
	nice := flag.String("nice", cfg.NiceLevel, fmt.Sprintf("Nice level: high, medium, or low (default: %s).", cfg.NiceLevel))
	hashes := flag.String("hashes", strings.Join(cfg.HashAlgorithms, ","), fmt.Sprintf("Comma-separated list of hash algorithms (default: %s).", strings.Join(cfg.HashAlgorithms, ",")))
	maxFileSize := flag.Int64("max-file-size", cfg.MaxFileSize, "Maximum file size to process in bytes (default: 0, unlimited).")
	maxReadBytes := flag.Int64("max-read-bytes", cfg.MaxReadBytes, "Maximum bytes format validators may read per file (default: 0, unlimited).")
	maxIO := flag.Int("max-io-per-second", cfg.MaxIOPerSecond, "Maximum disk I/O operations per second (default: 0, unlimited).")
	logLevel := flag.String("log-level", cfg.LogLevel, fmt.Sprintf("Log level: debug, info, warn, error, fatal, or panic (default: %s).", cfg.LogLevel))
	skipCount := flag.Bool("skip-count", cfg.SkipCount, "Skip initial file counting to start scanning immediately.")
	spreadsheetMode := flag.String("spreadsheet-advanced", cfg.SpreadsheetMode, fmt.Sprintf("Advanced spreadsheet checks: auto, prompt, or off (default: %s).", cfg.SpreadsheetMode))
	collectSystemInfo := flag.Bool("collect-system-info", cfg.CollectSystemInfo, fmt.Sprintf("Include host information in the report (default: %t).", cfg.CollectSystemInfo))
	configFile := flag.String("config", "", "Path to JSON configuration file (default: none).")
	otelEndpoint := flag.String("otel-endpoint", cfg.OtelEndpoint, "OTLP/HTTP logs endpoint (default: none).")
	otelHeaders := flag.String("otel-headers", "", "Comma-separated OTEL headers (key=value) for export (default: none).")
	otelServiceName := flag.String("otel-service-name", cfg.OtelServiceName, "OTEL service name for export (default: veracity).")
	otelTimeout := flag.Duration("otel-timeout", cfg.OtelTimeout, "OTEL export timeout (default: 5s).")
	otelExportPaths := flag.Bool("otel-export-paths", cfg.OtelExportPaths, "Include raw file paths in OTEL payloads (default: false).")
	showVersion := flag.Bool("version", false, "Print version and exit")

	flag.Usage = displayHelp
	flag.Parse()

	if *showVersion {
		fmt.Printf("Veracity version %s\n", version.Version)
		os.Exit(0)
	}

	if *configFile != "" {
		cfg.ConfigFile = *configFile
		if err := cfg.loadFromFile(cfg.ConfigFile); err != nil {
			return nil, err
		}
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "path":
			cfg.InputDirs = parseCommaSeparated(*paths)
		case "recursive":
			cfg.Recursive = *recursive
		case "types":
			cfg.FileTypes = parseCommaSeparated(*types)
		case "format":
			cfg.OutputFormat = strings.ToLower(*format)
		case "output":
			cfg.OutputFileName = *output
		case "concurrency":
			cfg.ConcurrencyLevel = *concurrency
			cfg.ConcurrencySet = true
		case "nice":
			cfg.NiceLevel = *nice
		case "hashes":
			cfg.HashAlgorithms = parseCommaSeparated(*hashes)
		case "max-file-size":
			cfg.MaxFileSize = *maxFileSize
		case "max-read-bytes":
			cfg.MaxReadBytes = *maxReadBytes
		case "max-io-per-second":
			cfg.MaxIOPerSecond = *maxIO
		case "log-level":
			cfg.LogLevel = *logLevel
		case "skip-count":
			cfg.SkipCount = *skipCount
		case "spreadsheet-advanced":
			cfg.SpreadsheetMode = strings.ToLower(strings.TrimSpace(*spreadsheetMode))
		case "collect-system-info":
			cfg.CollectSystemInfo = *collectSystemInfo
		case "otel-endpoint":
			cfg.OtelEndpoint = strings.TrimSpace(*otelEndpoint)
		case "otel-headers":
			cfg.OtelHeaders = parseHeaders(*otelHeaders)
		case "otel-service-name":
			cfg.OtelServiceName = strings.TrimSpace(*otelServiceName)
		case "otel-timeout":
			cfg.OtelTimeout = *otelTimeout
		case "otel-export-paths":
			cfg.OtelExportPaths = *otelExportPaths
		}
	})
	cfg.OutputFormat = strings.ToLower(cfg.OutputFormat)
	cfg.SpreadsheetMode = strings.ToLower(strings.TrimSpace(cfg.SpreadsheetMode))
	cfg.HashAlgorithms = normalizeAlgorithms(cfg.HashAlgorithms)
	cfg.FileTypes = normalizeAlgorithms(cfg.FileTypes)
	if cfg.SpreadsheetMode == "" {
		cfg.SpreadsheetMode = "auto"
	}
	if len(cfg.InputDirs) == 0 {
		cfg.InputDirs = []string{"."}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func displayHelp() {
	fmt.Println("Veracity - File Integrity Classifier")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  veracity [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  veracity --path \"/data\"")
	fmt.Println("  veracity --path \"/data,/backup\" --types csv,json,xlsx")
	fmt.Println("  veracity --path \"/data\" --format csv --recursive=false")
}

func (cfg *Config) loadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read config file: %v", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid config file format: %v", err)
	}
	if _, ok := raw["concurrency_level"]; ok {
		cfg.ConcurrencySet = true
	}
	err = json.Unmarshal(data, cfg)
	if err != nil {
		return fmt.Errorf("invalid config file format: %v", err)
	}
	return nil
}

func (cfg *Config) validate() error {
	if len(cfg.InputDirs) == 0 {
		return fmt.Errorf("at least one input directory must be specified")
	}
	if cfg.OutputFormat != "json" && cfg.OutputFormat != "csv" && cfg.OutputFormat != "txt" {
		return fmt.Errorf("invalid output format: %s (json, csv, or txt)", cfg.OutputFormat)
	}
	if cfg.ConcurrencyLevel <= 0 {
		return fmt.Errorf("concurrency level must be positive")
	}
	if cfg.NiceLevel != "high" && cfg.NiceLevel != "medium" && cfg.NiceLevel != "low" {
		return fmt.Errorf("invalid nice level: %s", cfg.NiceLevel)
	}
	if cfg.MaxFileSize < 0 {
		return fmt.Errorf("max-file-size must be zero or positive")
	}
	if cfg.MaxReadBytes < 0 {
		return fmt.Errorf("max-read-bytes must be zero or positive")
	}
	if cfg.MaxIOPerSecond < 0 {
		return fmt.Errorf("max-io-per-second must be zero or positive")
	}
	if cfg.SpreadsheetMode != "auto" && cfg.SpreadsheetMode != "prompt" && cfg.SpreadsheetMode != "off" {
		return fmt.Errorf("invalid spreadsheet-advanced value: %s", cfg.SpreadsheetMode)
	}
	if cfg.LogLevel != "debug" && cfg.LogLevel != "info" && cfg.LogLevel != "warn" &&
		cfg.LogLevel != "error" && cfg.LogLevel != "fatal" && cfg.LogLevel != "panic" {
		return fmt.Errorf("invalid log level: %s", cfg.LogLevel)
	}
	for _, algo := range cfg.HashAlgorithms {
		switch algo {
		case "md5", "sha1", "sha256", "xxh64", "blake3":
		default:
			return fmt.Errorf("unsupported hash algorithm: %s", algo)
		}
	}
	if cfg.OtelTimeout < 0 {
		return fmt.Errorf("otel-timeout must be zero or positive")
	}
	if cfg.OtelEndpoint != "" {
		if !strings.HasPrefix(cfg.OtelEndpoint, "http://") && !strings.HasPrefix(cfg.OtelEndpoint, "https://") {
			return fmt.Errorf("otel-endpoint must include scheme (http or https)")
		}
	}
	return nil
}

func parseCommaSeparated(input string) []string {
	if input == "" {
		return []string{}
	}
	items := strings.Split(input, ",")
	for i, item := range items {
		items[i] = strings.TrimSpace(item)
	}
	return items
}

func parseHeaders(input string) map[string]string {
	headers := make(map[string]string)
	if input == "" {
		return headers
	}
	items := strings.Split(input, ",")
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		parts := strings.SplitN(item, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if key == "" {
			continue
		}
		headers[key] = value
	}
	return headers
}

func normalizeAlgorithms(items []string) []string {
	normalized := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.ToLower(strings.TrimSpace(item))
		if item == "" {
			continue
		}
		normalized = append(normalized, item)
	}
	return normalized
}
