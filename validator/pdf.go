package validator

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

const pdfTrailerProbeSize = 1024

var pdfHeader = []byte("%PDF-")

type pdfValidator struct{}

func (pdfValidator) Name() string { return "pdf" }

// Validate checks the %PDF- header and probes the final kilobyte for
// the %%EOF marker. Both are soft signals; a missing header leaves
// format_valid false without an error. When the header matches, the
// page count is additionally read via pdfcpu as best-effort metadata.
func (v pdfValidator) Validate(path string) Result {
	result := newResult("pdf")

	file, err := os.Open(path)
	if err != nil {
		result.Err = err.Error()
		return result
	}
	defer file.Close()

	header := make([]byte, 8)
	n, err := io.ReadFull(file, header)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		result.Err = err.Error()
		return result
	}
	header = header[:n]

	if bytes.HasPrefix(header, pdfHeader) {
		result.Details["format_valid"] = true
		result.Details["pdf_version"] = strings.TrimSpace(printableASCII(header))
	}

	result.Details["has_eof"] = hasEOFMarker(file)

	if result.FormatValid() {
		if pages, err := api.PageCountFile(path); err == nil {
			result.Details["pages_count"] = pages
		}
	}
	return result
}

func hasEOFMarker(file *os.File) bool {
	info, err := file.Stat()
	if err != nil {
		return false
	}
	offset := info.Size() - pdfTrailerProbeSize
	if offset < 0 {
		offset = 0
	}
	tail := make([]byte, pdfTrailerProbeSize)
	n, err := file.ReadAt(tail, offset)
	if err != nil && err != io.EOF {
		return false
	}
	return bytes.Contains(tail[:n], []byte("%%EOF"))
}

func printableASCII(raw []byte) string {
	var b strings.Builder
	for _, c := range raw {
		if c >= 0x20 && c < 0x7f {
			b.WriteByte(c)
		}
	}
	return b.String()
}
