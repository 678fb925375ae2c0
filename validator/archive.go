package validator

import (
	"archive/zip"
	"bytes"
	"io"
)

var rarSignature = []byte{'R', 'a', 'r', '!', 0x1a, 0x07, 0x00}

type zipValidator struct{}

func (zipValidator) Name() string { return "zip" }

// Validate opens the archive and verifies every member by reading it
// to EOF, which checks the stored CRC. A bad member is surfaced as
// structured metadata (is_corrupted plus the member name), not as the
// hard error field; only a failure to open the archive at all is hard.
func (zipValidator) Validate(path string) Result {
	result := newResult("zip")
	result.Details["files_count"] = 0

	reader, err := zip.OpenReader(path)
	if err != nil {
		result.Err = err.Error()
		return result
	}
	defer reader.Close()

	result.Details["format_valid"] = true
	result.Details["files_count"] = len(reader.File)

	badMember := testZipMembers(reader)
	result.Details["is_corrupted"] = badMember != ""
	if badMember != "" {
		result.Details["corrupted_file"] = badMember
	}
	return result
}

// testZipMembers returns the name of the first member that fails its
// CRC check, or "" when the archive is clean.
func testZipMembers(reader *zip.ReadCloser) string {
	for _, member := range reader.File {
		rc, err := member.Open()
		if err != nil {
			return member.Name
		}
		_, err = io.Copy(io.Discard, rc)
		rc.Close()
		if err != nil {
			return member.Name
		}
	}
	return ""
}

type rarValidator struct{}

func (rarValidator) Name() string { return "rar" }

// Validate checks the 7-byte RAR signature only; deep validation of
// RAR volumes is out of scope.
func (rarValidator) Validate(path string) Result {
	result := newResult("rar")

	header, err := readHeader(path, len(rarSignature))
	if err != nil {
		result.Err = err.Error()
		return result
	}

	if bytes.Equal(header, rarSignature) {
		result.Details["format_valid"] = true
		result.Details["rar_signature"] = true
	}
	return result
}
