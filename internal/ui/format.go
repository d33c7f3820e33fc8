package ui

import "time"

// Timestamp layouts the prediction service has been seen emitting. The
// primary one is a bare ISO timestamp with no zone suffix.
var createdAtLayouts = []string{
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	time.RFC3339Nano,
	time.RFC3339,
}

func formatDateShort(iso string) string {
	if iso == "" {
		return ""
	}
	for _, layout := range createdAtLayouts {
		if t, err := time.Parse(layout, iso); err == nil {
			return t.Format("2006-01-02 15:04")
		}
	}
	return iso
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
