package scanner

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/h2non/filetype"

	"veracity/config"
	"veracity/hasher"
	"veracity/logger"
	"veracity/probe"
	"veracity/tracing"
	"veracity/utils"
	"veracity/validator"
)

type processor struct {
	cfg      *config.Config
	registry *validator.Registry
	enh      *enhancer
	agg      *Aggregator
	sink     RecordSink
}

func newProcessor(cfg *config.Config, agg *Aggregator, sink RecordSink) *processor {
	enh := newEnhancer(cfg.SpreadsheetMode)
	return &processor{
		cfg: cfg,
		registry: validator.NewRegistry(validator.Config{
			AdvancedSpreadsheet: enh.Active,
			MaxBytes:            cfg.MaxReadBytes,
		}),
		enh:  enh,
		agg:  agg,
		sink: sink,
	}
}

// process probes, hashes, validates, and classifies a single file.
// Failures stay contained in the resulting record; nothing here aborts
// the scan.
func (p *processor) process(ctx context.Context, path string) {
	ctx, endTask := tracing.StartTask(ctx, "process_file")
	tracing.Log(ctx, "file", path)
	defer endTask()

	select {
	case <-ctx.Done():
		return
	default:
	}

	// Symlinks can point anywhere; only record files that resolve
	// inside the scanned directories.
	if !utils.IsPathWithin(path, p.cfg.InputDirs) {
		logger.Debugf("Skipping %s: resolves outside the scanned directories", path)
		return
	}

	info := probe.Stat(path)
	rec := &FileRecord{
		Path:         path,
		Name:         info.Name,
		Size:         info.Size,
		ModTime:      info.ModTime,
		CreationTime: info.CreationTime,
		AccessTime:   info.AccessTime,
		ChangeTime:   info.ChangeTime,
		Permissions:  info.Permissions,
		IsAccessible: info.Accessible,
		IsReadable:   info.Readable,
	}
	if rec.Name == "" {
		rec.Name = filepath.Base(path)
	}

	ext := filepath.Ext(path)
	spreadsheet := validator.IsSpreadsheetExt(ext)

	var res validator.Result
	switch {
	case !info.Accessible:
		rec.Error = info.Err
	case !info.IsRegular:
		// Opening a FIFO or device can block forever, so non-regular
		// entries are never hashed or validated.
		rec.Warning = "not a regular file"
	case info.Readable && info.Size == 0:
		// Empty files are UNKNOWN before any format check runs.
		rec.Warning = "empty file"
	default:
		if info.Readable {
			rec.Hashes = hasher.ComputeHashes(path, p.cfg.HashAlgorithms)
			rec.MimeType = sniffMime(path)
		}
		endRegion := tracing.StartRegion(ctx, "validate")
		res = p.registry.Lookup(ext).Validate(path)
		endRegion()
		rec.Checks = res.Fields()
		rec.Error = res.Err
		rec.Warning = res.Warning
		rec.Suggestion = res.Suggestion
	}

	rec.Status = classify(info, res)
	p.agg.Add(rec, spreadsheet)
	p.sink.WriteRecord(rec)
}

// sniffMime identifies the content type from magic bytes. Best-effort
// and informational only.
func sniffMime(path string) string {
	file, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer file.Close()

	head := make([]byte, 262)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return ""
	}
	kind, err := filetype.Match(head[:n])
	if err != nil || kind == filetype.Unknown {
		return ""
	}
	return kind.MIME.Value
}
