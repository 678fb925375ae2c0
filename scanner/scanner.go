package scanner

import (
	"context"
	"io/fs"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/time/rate"

	"veracity/config"
	"veracity/logger"
	"veracity/utils"
)

// ScanFiles walks every input directory, classifies each file through
// the worker pool, and returns the aggregated summary. Per-file and
// per-directory failures are logged and isolated; the walk itself only
// stops on context cancellation.
func ScanFiles(ctx context.Context, cfg *config.Config, sink RecordSink) Summary {
	filter := utils.NewExtensionFilter(cfg.FileTypes)
	agg := NewAggregator(cfg.InputDirs)
	proc := newProcessor(cfg, agg, sink)
	adjustConcurrency(cfg)

	totalFiles := 0
	var bar *progressbar.ProgressBar
	if cfg.SkipCount {
		bar = progressbar.NewOptions(-1,
			progressbar.OptionSetDescription("Classifying files"),
			progressbar.OptionShowCount(),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionSetVisibility(progressVisible()),
			progressbar.OptionFullWidth(),
		)
	} else {
		logger.Info("Counting total number of files...")
		for _, dir := range cfg.InputDirs {
			count, err := countTotalFiles(ctx, dir, cfg, filter)
			if err != nil {
				logger.Warnf("Failed to count files in %s: %v", dir, err)
				continue
			}
			totalFiles += count
		}
		logger.Infof("Total files to scan: %d", totalFiles)
		bar = progressbar.NewOptions(totalFiles,
			progressbar.OptionSetDescription("Classifying files"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetPredictTime(true),
			progressbar.OptionSetVisibility(progressVisible()),
			progressbar.OptionFullWidth(),
		)
	}

	var ioLimiter *rate.Limiter
	if cfg.MaxIOPerSecond > 0 {
		ioLimiter = rate.NewLimiter(rate.Limit(cfg.MaxIOPerSecond), cfg.MaxIOPerSecond)
	}

	progressCh := make(chan int, maxInt(cfg.ConcurrencyLevel*4, 64))
	var progressWG sync.WaitGroup
	progressWG.Add(1)
	go func() {
		defer progressWG.Done()
		for delta := range progressCh {
			_ = bar.Add(delta)
		}
	}()

	filesChan := make(chan string, cfg.ConcurrencyLevel)

	go func() {
		defer close(filesChan)
		seen := make(map[string]struct{})
		for _, dir := range cfg.InputDirs {
			err := walkDir(ctx, dir, cfg, filter, func(path string) error {
				if _, dup := seen[path]; dup {
					return nil
				}
				seen[path] = struct{}{}
				select {
				case <-ctx.Done():
					return ctx.Err()
				case filesChan <- path:
					if ioLimiter != nil {
						if err := ioLimiter.Wait(ctx); err != nil {
							return err
						}
					}
				}
				return nil
			})
			if err != nil && err != context.Canceled {
				logger.Warnf("Error walking directory %s: %v", dir, err)
			}
		}
	}()

	var wg sync.WaitGroup
	for range cfg.ConcurrencyLevel {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range filesChan {
				select {
				case <-ctx.Done():
					return
				default:
				}
				proc.process(ctx, path)
				progressCh <- 1
			}
		}()
	}

	wg.Wait()
	close(progressCh)
	progressWG.Wait()

	agg.SetEnhanced(proc.enh.Activated())
	return agg.Snapshot()
}

// walkDir runs the fast walker over one input directory, forwarding
// regular-file paths that pass the extension filter. Directory-level
// errors are logged and skipped.
func walkDir(ctx context.Context, dir string, cfg *config.Config, filter *utils.ExtensionFilter, emit func(string) error) error {
	return fastWalker{}.Walk(ctx, dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warnf("Failed to access %s: %v", path, err)
			return nil
		}
		if d == nil {
			return nil
		}
		if d.IsDir() {
			if !cfg.Recursive && path != dir {
				return fs.SkipDir
			}
			return nil
		}
		if !filter.ShouldInclude(path) {
			return nil
		}
		if cfg.MaxFileSize > 0 {
			if info, err := d.Info(); err == nil && info.Size() > cfg.MaxFileSize {
				logger.Debugf("Skipping large file %s", path)
				return nil
			}
		}
		return emit(path)
	})
}

func countTotalFiles(ctx context.Context, dir string, cfg *config.Config, filter *utils.ExtensionFilter) (int, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	var total int
	err := walkDir(ctx, dir, cfg, filter, func(string) error {
		total++
		return nil
	})
	return total, err
}

func adjustConcurrency(cfg *config.Config) {
	if cfg.ConcurrencySet {
		return
	}
	numCPU := runtime.NumCPU()
	switch cfg.NiceLevel {
	case "high":
		cfg.ConcurrencyLevel = numCPU
	case "medium":
		cfg.ConcurrencyLevel = numCPU / 2
		if cfg.ConcurrencyLevel < 1 {
			cfg.ConcurrencyLevel = 1
		}
	case "low":
		cfg.ConcurrencyLevel = 1
	}
}

func progressVisible() bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv("VERACITY_DISABLE_PROGRESS")))
	return value != "1" && value != "true" && value != "yes" && value != "on"
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
