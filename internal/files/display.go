package files

import (
	"time"

	"github.com/dustin/go-humanize"
)

// recentWindow is how far back modification times are shown relatively.
const recentWindow = 7 * 24 * time.Hour

// FormatSize renders a byte count the way the file list shows it.
func FormatSize(size int64) string {
	if size < 0 {
		return ""
	}
	return humanize.IBytes(uint64(size))
}

// FormatModTime renders a modification time: relative ("3 hours ago") within
// the last week, otherwise a short date and time. The zero time renders empty.
func FormatModTime(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	if age := now.Sub(t); age >= 0 && age < recentWindow {
		return humanize.RelTime(t, now, "ago", "from now")
	}
	return t.Format("2006-01-02 15:04")
}
