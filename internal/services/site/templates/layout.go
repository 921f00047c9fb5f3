package templates

import (
	"context"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/kakascoaching/site/internal/content"
	"github.com/kakascoaching/site/internal/services/site/routepath"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

const (
	htmxScript       = "https://unpkg.com/htmx.org@2.0.4/dist/htmx.min.js"
	lucideStylesheet = "https://unpkg.com/lucide-static@0.469.0/font/lucide.css"
)

// MainContentID is the element HTMX swaps page bodies into.
const MainContentID = "main-content"

// LanguageLink is one entry of the language switcher.
type LanguageLink struct {
	Tag    string
	Label  string
	URL    string
	Active bool
}

// Toast is a one-shot notice shown above the page body.
type Toast struct {
	Kind    string
	Message string
}

// Shell is the document frame around every page.
type Shell struct {
	Title     string
	Lang      string
	Dir       string
	Path      string
	Catalog   *content.Catalog
	Languages []LanguageLink
	Toast     *Toast
	Loc       Localizer
	Year      int
}

// Layout renders the full document; the page body is passed as templ
// children.
func Layout(shell Shell) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return layoutNode(ctx, shell).Render(w)
	})
}

// MainContent renders only the children, for HTMX swaps of the main area.
func MainContent() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return childrenNode{ctx: ctx}.Render(w)
	})
}

func layoutNode(ctx context.Context, s Shell) g.Node {
	site := siteOf(s.Catalog)
	lang := strings.TrimSpace(s.Lang)
	if lang == "" {
		lang = "en-US"
	}
	dir := strings.TrimSpace(s.Dir)
	if dir == "" {
		dir = "ltr"
	}
	return Doctype(
		HTML(
			Lang(lang),
			g.Attr("dir", dir),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
				g.El("title", g.Text(documentTitle(s.Title, site.Name))),
				Meta(Name("description"), Content(tr(s.Loc, "site.meta.description"))),
				Link(Rel("stylesheet"), Href(lucideStylesheet)),
				Link(Rel("stylesheet"), Href(routepath.StaticPrefix+"site.css")),
				Script(Src(htmxScript), Defer()),
				Script(Src(routepath.StaticPrefix+"site.js"), Defer()),
			),
			Body(
				siteHeader(s, site),
				toastNode(s.Toast),
				Main(ID(MainContentID), childrenNode{ctx: ctx}),
				siteFooter(s, site),
			),
		),
	)
}

func documentTitle(title, siteName string) string {
	title = strings.TrimSpace(title)
	switch {
	case title == "":
		return siteName
	case siteName == "" || title == siteName:
		return title
	default:
		return title + " | " + siteName
	}
}

func siteOf(c *content.Catalog) content.Site {
	if c == nil {
		return content.Site{}
	}
	return c.Site
}

func siteHeader(s Shell, site content.Site) g.Node {
	var links []content.Link
	if s.Catalog != nil {
		links = s.Catalog.Nav
	}
	return Header(
		Class("site-header"),
		A(Class("brand"), Href(routepath.Root), g.Text(site.Name)),
		Nav(
			Aria("label", tr(s.Loc, "site.nav.label")),
			Ul(
				Class("nav-links"),
				g.Group(g.Map(links, func(link content.Link) g.Node {
					return Li(A(Href(link.Href), ariaCurrent(navActive(s.Path, link.Href)), g.Text(link.Label)))
				})),
			),
		),
		languageSwitcher(s),
	)
}

func navActive(path, href string) bool {
	if href == routepath.Root {
		return path == routepath.Root
	}
	return path == href || strings.HasPrefix(path, href+"/")
}

func languageSwitcher(s Shell) g.Node {
	if len(s.Languages) == 0 {
		return nil
	}
	return Div(
		Class("language-switcher"),
		Span(Class("language-label"), msg(s.Loc, "site.language.label")),
		Ul(g.Group(g.Map(s.Languages, func(option LanguageLink) g.Node {
			return Li(A(
				Href(option.URL),
				g.Attr("hreflang", option.Tag),
				ariaCurrent(option.Active),
				g.Text(option.Label),
			))
		}))),
	)
}

func toastNode(toast *Toast) g.Node {
	if toast == nil || strings.TrimSpace(toast.Message) == "" {
		return nil
	}
	kind := strings.TrimSpace(toast.Kind)
	if kind == "" {
		kind = "info"
	}
	return Div(
		ID("toast"),
		Class("toast toast-"+kind),
		Role("status"),
		g.Text(toast.Message),
	)
}

func siteFooter(s Shell, site content.Site) g.Node {
	var socials []content.Social
	if s.Catalog != nil {
		socials = s.Catalog.Socials
	}
	year := s.Year
	if year == 0 {
		year = time.Now().Year()
	}
	return Footer(
		Class("site-footer"),
		Div(
			Class("footer-brand"),
			Strong(g.Text(site.Name)),
			P(g.Text(site.Tagline)),
		),
		Div(
			Class("footer-contact"),
			H2(msg(s.Loc, "site.footer.contact")),
			g.If(site.Email != "", P(A(Href("mailto:"+site.Email), g.Text(site.Email)))),
			g.If(site.WhatsApp != "", P(A(
				Href(site.WhatsApp),
				Rel("noopener"),
				Target("_blank"),
				msg(s.Loc, "site.footer.whatsapp"),
				g.Text(" "+site.WhatsAppLabel),
			))),
		),
		g.If(len(socials) > 0, Div(
			Class("footer-social"),
			H2(msg(s.Loc, "site.footer.follow")),
			Ul(g.Group(g.Map(socials, func(social content.Social) g.Node {
				return Li(A(Href(social.Href), Rel("noopener"), Target("_blank"), g.Text(social.Name)))
			}))),
		)),
		P(Class("copyright"), g.Text("© "+strconv.Itoa(year)+" "+site.Name+". "), msg(s.Loc, "site.footer.rights")),
	)
}
