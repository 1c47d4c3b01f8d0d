package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/collab-intel/ci/internal/configs"
	"github.com/collab-intel/ci/internal/utils"
	"github.com/google/uuid"
)

// TimestampFormat is the layout of Entry.Timestamp.
const TimestampFormat = "2006-01-02T15:04:05.000000Z"

// Operations recorded in the log.
const (
	OpSet    = "set"
	OpRemove = "remove"
)

// Entry represents a single audit log entry. It never carries key values.
type Entry struct {
	ID        string `json:"id"`   // Random UUID.
	Timestamp string `json:"ts"`   // RFC3339 with microseconds.
	User      string `json:"user"` // Local user performing the action.
	Operation string `json:"op"`   // set or remove.

	Scope       string `json:"scope"` // global, environment or project.
	Service     string `json:"service"`
	Key         string `json:"key"`
	Environment string `json:"environment,omitempty"`
	Removed     bool   `json:"removed,omitempty"` // For remove: whether the key existed.
	StorePath   string `json:"store_path,omitempty"`
}

var now = func() time.Time { return time.Now().UTC() }

// Log appends an entry to the audit log.
// Failures are ignored: operations should not fail just because audit
// logging failed.
func Log(entry Entry) {
	logPath := LogPath()
	if logPath == "" || !enabled() {
		return
	}

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp == "" {
		entry.Timestamp = now().Format(TimestampFormat)
	}

	if err := utils.EnsureSecureDir(filepath.Dir(logPath)); err != nil {
		return
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, utils.FilePermSecure)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	_, _ = f.Write(append(data, '\n'))
}

// LogWithUser returns an entry for op with the user field populated from
// the user settings.
func LogWithUser(op string) Entry {
	entry := Entry{Operation: op}
	if configs.UserCISettings != nil {
		entry.User = configs.UserCISettings.Username
	}
	return entry
}

// LogPath returns the path to the audit log file.
// Returns empty string if user settings are not initialised or the platform
// has no configuration directory.
func LogPath() string {
	if configs.UserCISettings == nil {
		return ""
	}
	return configs.UserCISettings.AuditPath
}

func enabled() bool {
	return configs.UserCISettings != nil && configs.UserCISettings.AuditEnabled
}

// ReadEntries reads all entries from the audit log.
// Returns an empty slice if the log doesn't exist.
func ReadEntries() ([]Entry, error) {
	logPath := LogPath()
	if logPath == "" {
		return nil, nil
	}

	data, err := os.ReadFile(logPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				// Partial writes leave truncated lines behind.
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}

// ParseTimestamp parses an entry timestamp, accepting plain RFC3339 as well.
func ParseTimestamp(ts string) (time.Time, error) {
	t, err := time.Parse(TimestampFormat, ts)
	if err != nil {
		t, err = time.Parse(time.RFC3339, ts)
	}
	return t, err
}
