package layout

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Writer writes HTML fragments and keeps the first write error
type Writer struct {
	w   io.Writer
	err error
}

// NewWriter wraps w
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Raw writes trusted markup as-is
func (hw *Writer) Raw(s string) {
	if hw.err != nil {
		return
	}
	_, hw.err = io.WriteString(hw.w, s)
}

// Text writes s with HTML escaping; safe for element bodies and quoted attributes
func (hw *Writer) Text(s string) {
	hw.Raw(templ.EscapeString(s))
}

// Textf formats then escapes
func (hw *Writer) Textf(format string, args ...any) {
	hw.Text(fmt.Sprintf(format, args...))
}

// Component renders a child component in place
func (hw *Writer) Component(ctx context.Context, c templ.Component) {
	if hw.err != nil || c == nil {
		return
	}
	hw.err = c.Render(ctx, hw.w)
}

// Err returns the first write error
func (hw *Writer) Err() error {
	return hw.err
}
