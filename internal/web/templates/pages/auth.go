package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/mcoot/courtside/internal/web/templates/layout"
)

// LoginData holds data for the login page
type LoginData struct {
	layout.PageData
	Username    string
	Next        string
	FieldErrors map[string]string
}

// RegisterData holds data for the registration page
type RegisterData struct {
	layout.PageData
	Username    string
	FieldErrors map[string]string
}

// Login renders the login form
func Login(data LoginData) templ.Component {
	return layout.Base(data.PageData, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := layout.NewWriter(w)
		hw.Raw(`<h1>Log in</h1><form id="login-form" method="post" action="/login">`)
		if data.Next != "" {
			hw.Raw(`<input type="hidden" name="next" value="`)
			hw.Text(data.Next)
			hw.Raw(`">`)
		}
		textInput(hw, "username", "Username", "text", data.Username, data.FieldErrors)
		textInput(hw, "password", "Password", "password", "", data.FieldErrors)
		hw.Raw(`<button type="submit">Log in</button></form>`)
		hw.Raw(`<p>No account yet? <a href="/register">Register</a></p>`)
		return hw.Err()
	}))
}

// Register renders the registration form
func Register(data RegisterData) templ.Component {
	return layout.Base(data.PageData, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := layout.NewWriter(w)
		hw.Raw(`<h1>Register</h1><form id="register-form" method="post" action="/register">`)
		textInput(hw, "username", "Username", "text", data.Username, data.FieldErrors)
		textInput(hw, "password", "Password", "password", "", data.FieldErrors)
		textInput(hw, "password2", "Repeat password", "password", "", data.FieldErrors)
		hw.Raw(`<button type="submit">Register</button></form>`)
		hw.Raw(`<p>Already registered? <a href="/login">Log in</a></p>`)
		return hw.Err()
	}))
}

// textInput renders a labelled input followed by its validation message, if any
func textInput(hw *layout.Writer, name, label, inputType, value string, fieldErrors map[string]string) {
	hw.Raw(`<div class="field"><label for="`)
	hw.Text(name)
	hw.Raw(`">`)
	hw.Text(label)
	hw.Raw(`</label><input id="`)
	hw.Text(name)
	hw.Raw(`" name="`)
	hw.Text(name)
	hw.Raw(`" type="`)
	hw.Text(inputType)
	hw.Raw(`" value="`)
	hw.Text(value)
	hw.Raw(`">`)
	if msg, ok := fieldErrors[name]; ok {
		hw.Raw(`<span class="field-error" data-field="`)
		hw.Text(name)
		hw.Raw(`">`)
		hw.Text(msg)
		hw.Raw(`</span>`)
	}
	hw.Raw(`</div>`)
}
