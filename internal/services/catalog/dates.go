package catalog

import (
	"strings"
	"time"
)

// DisplayDateLayout renders dates as DD/MM/YYYY
const DisplayDateLayout = "02/01/2006"

var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// FormatGameDate turns an ISO-8601 timestamp into a DD/MM/YYYY string.
// Trailing "Z" characters are dropped and the date is taken as written,
// without conversion to another zone. Input that does not parse is returned unchanged.
func FormatGameDate(raw string) string {
	iso := strings.TrimRight(raw, "Z")
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, iso); err == nil {
			return t.Format(DisplayDateLayout)
		}
	}
	return raw
}
