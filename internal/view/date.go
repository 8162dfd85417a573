package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/traveljournal/internal/locale"
)

// dateLayouts are tried in order; layouts without a zone are read as UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05Z07",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// FormatDate renders an ISO-8601 timestamp as a long-form date such as
// "March 5, 2024". Empty or unparseable input yields "".
func FormatDate(raw, language string, loc *time.Location) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		parsed, err := time.Parse(layout, trimmed)
		if err == nil {
			return FormatTime(&parsed, language, loc)
		}
	}
	return ""
}

// FormatTime is FormatDate for an already parsed timestamp.
func FormatTime(t *time.Time, language string, loc *time.Location) string {
	if t == nil || t.IsZero() {
		return ""
	}
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	if locale.NormalizeLanguage(language) == locale.LanguageChinese {
		return fmt.Sprintf("%d年%d月%d日", local.Year(), int(local.Month()), local.Day())
	}
	return local.Format("January 2, 2006")
}
