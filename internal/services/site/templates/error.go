package templates

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/kakascoaching/site/internal/services/site/routepath"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// ErrorTitle returns the localized heading for status.
func ErrorTitle(status int, loc Localizer) string {
	if status == http.StatusNotFound {
		return tr(loc, "errors.not_found.title")
	}
	return tr(loc, "errors.server.title")
}

// ErrorState renders the app-shell error body. message overrides the default
// body text when set.
func ErrorState(status int, message string, loc Localizer) templ.Component {
	body := message
	if body == "" {
		if status == http.StatusNotFound {
			body = tr(loc, "errors.not_found.body")
		} else {
			body = tr(loc, "errors.server.body")
		}
	}
	return Component(Section(
		ID("error"),
		Class("error-state"),
		Data("status", itoa(status)),
		H1(g.Text(ErrorTitle(status, loc))),
		P(g.Text(body)),
		A(Class("button"), Href(routepath.Root), msg(loc, "errors.home")),
	))
}
