// Package templates renders the site pages.
//
// Markup is built with gomponents and exposed to handlers as templ
// components so the layout can receive page bodies as templ children.
package templates

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"golang.org/x/text/message"
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"
)

// Localizer formats localized messages.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// Component adapts a gomponents node to a templ component.
func Component(node g.Node) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if node == nil {
			return nil
		}
		return node.Render(w)
	})
}

// childrenNode renders the templ children attached to ctx.
type childrenNode struct {
	ctx context.Context
}

func (n childrenNode) Render(w io.Writer) error {
	return templ.GetChildren(n.ctx).Render(n.ctx, w)
}

func msg(loc Localizer, key string, args ...any) g.Node {
	return g.Text(tr(loc, key, args...))
}

func tr(loc Localizer, key string, args ...any) string {
	if loc == nil {
		return key
	}
	return loc.Sprintf(key, args...)
}

func formEl(children ...g.Node) g.Node { return g.El("form", children...) }

func labelEl(children ...g.Node) g.Node { return g.El("label", children...) }

func quote(children ...g.Node) g.Node { return g.El("blockquote", children...) }

func caption(children ...g.Node) g.Node { return g.El("figcaption", children...) }

func ariaCurrent(active bool) g.Node {
	return g.If(active, Aria("current", "page"))
}

// navLink is a no-JS link that HTMX upgrades to a fragment swap of target.
func navLink(href, fragment, target, label, rel string, children ...g.Node) g.Node {
	nodes := []g.Node{
		Href(href),
		Aria("label", label),
		hx.Get(fragment),
		hx.Target(target),
		hx.Swap("outerHTML"),
	}
	if rel != "" {
		nodes = append(nodes, Data("nav", rel))
	}
	return A(append(nodes, children...)...)
}

func hxPushURL() g.Node { return hx.PushURL("true") }

func itoa(i int) string { return strconv.Itoa(i) }

func stars(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
}

func lazy() g.Node { return g.Attr("loading", "lazy") }
