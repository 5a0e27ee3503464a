package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/mcoot/courtside/internal/web/templates/layout"
)

// ServerError renders the generic failure page
func ServerError() templ.Component {
	return layout.Base(layout.PageData{Title: "Error"}, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := layout.NewWriter(w)
		hw.Raw(`<h1>Internal Server Error</h1><p>Something went wrong. Please try again later.</p><p><a href="/">Return to home</a></p>`)
		return hw.Err()
	}))
}
