package web

import (
	"net/http"

	"github.com/labstack/echo/v4"
	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"
)

const siteName = "Top Thought"

func layout(title string, children ...g.Node) g.Node {
	return Doctype(
		HTML(
			Lang("en"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
				Link(Rel("stylesheet"), Href("/static/main.css")),
				TitleEl(g.Text(title)),
			),
			Body(
				navbar(),
				Main(Class("container"),
					g.Group(children),
				),
				footer(),
			),
		),
	)
}

func navbar() g.Node {
	return Nav(Class("nav"),
		Div(Class("brand"), A(Href("/"), g.Text(siteName))),
	)
}

func footer() g.Node {
	return Footer(Class("footer"),
		P(g.Textf("© %s", siteName)),
	)
}

// RenderError renders the HTML error page for a status code. Used by the
// application-wide error handler for non-API routes.
func RenderError(c echo.Context, status int) error {
	title := http.StatusText(status)
	message := "Something went wrong on our side."
	if status == http.StatusNotFound {
		message = "That page doesn't exist, or the post was removed."
	}
	return render(c, status, errorPage(title, message))
}

func errorPage(title, message string) g.Node {
	return layout(title,
		Section(Class("error"),
			H1(g.Text(title)),
			P(g.Text(message)),
			P(A(Href("/"), g.Text("Back to all posts"))),
		),
	)
}
