// Package probe answers the filesystem-level questions about a path:
// does it exist, how big is it, and can this process read it. It never
// reads file content and never returns an error; failures resolve to
// an inaccessible Info with the cause recorded.
package probe

import (
	"fmt"
	"os"
	"time"

	"github.com/djherbis/times"
)

type Info struct {
	Path         string
	Name         string
	Size         int64
	IsRegular    bool
	Accessible   bool
	Readable     bool
	Permissions  string
	ModTime      string
	CreationTime string
	AccessTime   string
	ChangeTime   string
	Err          string
}

// Stat probes a single path. Fails closed: any stat or open failure
// yields Accessible=false with Err set.
func Stat(path string) Info {
	info := Info{Path: path}

	fi, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			info.Err = "file not found"
		} else {
			info.Err = err.Error()
		}
		return info
	}

	info.Name = fi.Name()
	info.Size = fi.Size()
	info.IsRegular = fi.Mode().IsRegular()
	info.ModTime = fi.ModTime().Format(time.RFC3339)
	info.Permissions = fmt.Sprintf("%03o", fi.Mode().Perm())
	info.Accessible = true

	if ts, err := times.Stat(path); err == nil {
		info.AccessTime = ts.AccessTime().Format(time.RFC3339)
		if ts.HasChangeTime() {
			info.ChangeTime = ts.ChangeTime().Format(time.RFC3339)
		}
		if ts.HasBirthTime() {
			info.CreationTime = ts.BirthTime().Format(time.RFC3339)
		}
	}

	// The read check opens the path, which blocks forever on a FIFO
	// with no writer. Only regular files get it; everything else stays
	// Readable=false.
	if info.IsRegular {
		info.Readable = canRead(path)
	}
	return info
}

func canRead(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	f.Close()
	return true
}
