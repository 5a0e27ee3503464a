package cli

import (
	"encoding/json"
	"fmt"
	"io"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case HealthResult:
		_, _ = fmt.Fprintf(o.w, "Status: %s\nDatabase: %s\n", v.Status, v.Database)
	case MigrateResult:
		_, _ = fmt.Fprintf(o.w, "Database: %s (%s)\nUsers: %d\n", v.Database, v.Dialect, v.Users)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// HealthResult response type (matches API)
type HealthResult struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// MigrateResult reports the credential store after migrations ran
type MigrateResult struct {
	Database string `json:"database"`
	Dialect  string `json:"dialect"`
	Users    int    `json:"users"`
}
