package handler

import (
	"net/http"

	"github.com/a-h/templ"

	"github.com/mcoot/courtside/internal/web/middleware"
	"github.com/mcoot/courtside/internal/web/templates/layout"
)

// Flash and notice types
const (
	flashSuccess = "success"
	flashError   = "error"
	flashInfo    = "info"
)

// pageData builds the shell data for a page: the current user, the pending
// flash from the previous request, then any notices raised by this request
func pageData(r *http.Request, title string, notices ...layout.FlashMessage) layout.PageData {
	data := layout.PageData{
		Title: title,
		User:  middleware.GetUser(r.Context()),
	}
	if flash := middleware.GetFlash(r.Context()); flash != nil {
		data.Flashes = append(data.Flashes, *flash)
	}
	data.Flashes = append(data.Flashes, notices...)
	return data
}

func errorNotice(message string) layout.FlashMessage {
	return layout.FlashMessage{Type: flashError, Message: message}
}

func render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.Render(r.Context(), w); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// redirectWithFlash queues a one-time notice and sends the browser to target
func redirectWithFlash(w http.ResponseWriter, r *http.Request, flashType, message, target string) {
	middleware.SetFlash(w, flashType, message)
	http.Redirect(w, r, target, http.StatusSeeOther)
}
