package scanner

import (
	"veracity/probe"
	"veracity/validator"
)

// classify applies the verdict precedence. Order matters: an
// inaccessible file is never CORRUPTED, a non-regular entry and an
// empty readable file are UNKNOWN before any format signal is
// consulted, and only the hard validator error (never a soft format
// mismatch) drives CORRUPTED.
func classify(info probe.Info, res validator.Result) Status {
	switch {
	case !info.Accessible:
		return StatusInaccessible
	case !info.IsRegular:
		return StatusUnknown
	case info.Readable && info.Size == 0:
		return StatusUnknown
	case res.Err != "":
		return StatusCorrupted
	case !info.Readable:
		return StatusCorrupted
	default:
		return StatusIntact
	}
}
