package scanner

// Status is the final integrity verdict for one file.
type Status string

const (
	StatusIntact       Status = "INTACT"
	StatusCorrupted    Status = "CORRUPTED"
	StatusInaccessible Status = "INACCESSIBLE"
	StatusUnknown      Status = "UNKNOWN"
)

// FileRecord is the canonical per-file scan result. It is typed to
// avoid hot-path map mutation costs and is immutable once classified.
type FileRecord struct {
	Path         string                 `json:"path"`
	Name         string                 `json:"name,omitempty"`
	Size         int64                  `json:"size"`
	ModTime      string                 `json:"mod_time,omitempty"`
	CreationTime string                 `json:"creation_time,omitempty"`
	AccessTime   string                 `json:"access_time,omitempty"`
	ChangeTime   string                 `json:"change_time,omitempty"`
	Permissions  string                 `json:"permissions,omitempty"`
	IsAccessible bool                   `json:"is_accessible"`
	IsReadable   bool                   `json:"is_readable"`
	MimeType     string                 `json:"mime_type,omitempty"`
	Hashes       map[string]string      `json:"hashes,omitempty"`
	Checks       map[string]interface{} `json:"specific_checks,omitempty"`
	Status       Status                 `json:"status"`
	Error        string                 `json:"error,omitempty"`
	Warning      string                 `json:"warning,omitempty"`
	Suggestion   string                 `json:"suggestion,omitempty"`
}

// RecordSink receives finalized records. The output writer implements
// it; tests substitute their own.
type RecordSink interface {
	WriteRecord(*FileRecord)
}
