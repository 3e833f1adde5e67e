package pages

import (
	"github.com/nfrund/writerfolio/internal/view/dto/auth"
	"github.com/nfrund/writerfolio/web/src/templates/components"
	"maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// Login renders the admin login form.
func Login(data auth.LoginData) gomponents.Node {
	return Div(
		ID("login-section"), Class("login-container"),
		H1(gomponents.Text("Admin Login")),
		FormEl(
			ID("login-form"),
			Method("post"), Action("/admin/login"),
			components.InlineError(data.Error),
			gomponents.If(data.Next != "", Input(Type("hidden"), Name("next"), Value(data.Next))),
			components.TextField("username", "Username", "text", data.Username, true),
			components.TextField("password", "Password", "password", "", true),
			components.SubmitButton("Login"),
		),
	)
}
