package scanner

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"veracity/logger"
	"veracity/validator"
)

// enhancer negotiates the advanced spreadsheet tier exactly once per
// scan, on the first spreadsheet encounter. Safe under concurrent
// first encounters from the worker pool.
type enhancer struct {
	mode   string
	input  io.Reader
	output io.Writer

	once   sync.Once
	active bool
}

func newEnhancer(mode string) *enhancer {
	return &enhancer{mode: mode, input: os.Stdin, output: os.Stdout}
}

// Active reports whether the advanced tier is in use, negotiating on
// the first call and caching the decision for the rest of the run.
func (e *enhancer) Active() bool {
	e.once.Do(e.negotiate)
	return e.active
}

// Activated reports the cached decision without triggering
// negotiation. Only safe once the worker pool has drained.
func (e *enhancer) Activated() bool {
	return e.active
}

func (e *enhancer) negotiate() {
	if e.mode == "off" {
		logger.Debug("Advanced spreadsheet checks disabled by configuration")
		return
	}
	reader := validator.LookupWorkbookReader()
	if reader == nil {
		logger.Debug("No workbook reader available; using basic spreadsheet checks")
		return
	}
	if e.mode == "prompt" && !e.confirm(reader.Name()) {
		logger.Info("Advanced spreadsheet checks declined")
		return
	}
	e.active = true
	logger.Infof("Advanced spreadsheet checks enabled (%s)", reader.Name())
}

func (e *enhancer) confirm(readerName string) bool {
	fmt.Fprintf(e.output, "Spreadsheet files detected. Enable advanced checks via %s? [y/N]: ", readerName)
	scan := bufio.NewScanner(e.input)
	if !scan.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scan.Text()))
	return answer == "y" || answer == "yes"
}
