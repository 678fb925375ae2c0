package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"veracity/config"
	"veracity/logger"
	"veracity/output"
	"veracity/scanner"
	"veracity/systeminfo"
	"veracity/tracing"
	"veracity/update"
	"veracity/utils"
	"veracity/version"

	// Registers the advanced workbook reader with the validator.
	_ "veracity/validator/xlsx"
)

func main() {
	os.Exit(run())
}

func run() int {
	if err := tracing.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start trace: %v\n", err)
	} else {
		defer tracing.Stop()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return 1
	}

	logger.Init(cfg.LogLevel)

	if latest, notes, newer, err := update.CheckForUpdate(version.Version); err == nil && newer {
		if strings.Contains(strings.ToLower(notes), "security") {
			logger.Warnf("Update available: %s -> %s (security fixes included)", version.Version, latest)
		} else {
			logger.Infof("Update available: %s -> %s", version.Version, latest)
		}
	}

	valid, invalid := utils.NormalizeDirs(cfg.InputDirs)
	for _, dir := range invalid {
		logger.Warnf("Skipping invalid input directory: %s", dir)
	}
	if len(valid) == 0 {
		logger.Error("No valid input directories to scan")
		return 1
	}
	cfg.InputDirs = valid

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var sysInfo *systeminfo.SystemInfo
	if cfg.CollectSystemInfo {
		sysInfo = systeminfo.Collect(ctx)
	}

	writer, err := output.New(cfg, sysInfo)
	if err != nil {
		logger.Errorf("Failed to initialize output: %v", err)
		return 1
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go handleSignalEvent(cancel, sigChan)

	summary := scanner.ScanFiles(ctx, cfg, writer)

	if err := writer.Close(summary); err != nil {
		logger.Errorf("Failed to write report: %v", err)
		return 1
	}

	logger.Infof(
		"Scan complete: %d files (%d intact, %d corrupted, %d inaccessible, %d unknown) in %.2fs",
		summary.TotalFiles,
		summary.IntactFiles,
		summary.CorruptedFiles,
		summary.InaccessibleFiles,
		summary.UnknownFiles,
		summary.DurationSeconds,
	)
	return 0
}

func handleSignalEvent(cancelFunc context.CancelFunc, sigChan chan os.Signal) {
	<-sigChan
	logger.Info("Interrupt signal received. Shutting down...")
	cancelFunc()
}
