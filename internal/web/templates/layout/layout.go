package layout

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/mcoot/courtside/internal/model"
)

// FlashMessage is a one-time notice shown at the top of a page
type FlashMessage struct {
	Type    string // success, error, info
	Message string
}

// PageData carries what every page needs to render the shell
type PageData struct {
	Title   string
	User    *model.User
	Flashes []FlashMessage
}

// Base renders the HTML document around content
func Base(data PageData, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := NewWriter(w)

		hw.Raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		hw.Raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		hw.Raw(`<title>`)
		hw.Text(data.Title)
		hw.Raw(` | Courtside</title><link rel="stylesheet" href="/static/style.css"></head><body>`)

		nav(hw, data.User)

		hw.Raw(`<main>`)
		for _, flash := range data.Flashes {
			hw.Raw(`<div class="flash flash-`)
			hw.Text(flash.Type)
			hw.Raw(`" role="alert">`)
			hw.Text(flash.Message)
			hw.Raw(`</div>`)
		}
		hw.Component(ctx, content)
		hw.Raw(`</main></body></html>`)

		return hw.Err()
	})
}

func nav(hw *Writer, user *model.User) {
	hw.Raw(`<nav><a class="brand" href="/">Courtside</a>`)
	if user != nil {
		hw.Raw(`<a href="/players">Players</a><a href="/teams">Teams</a><a href="/games">Games</a>`)
		hw.Raw(`<span class="user">`)
		hw.Text(user.Username)
		hw.Raw(`</span><a class="logout" href="/logout">Log out</a>`)
	} else {
		hw.Raw(`<a href="/login">Log in</a><a href="/register">Register</a>`)
	}
	hw.Raw(`</nav>`)
}
