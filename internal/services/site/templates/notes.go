package templates

import (
	"path"

	"github.com/a-h/templ"
	"github.com/kakascoaching/site/internal/carousel"
	"github.com/kakascoaching/site/internal/content"
	"github.com/kakascoaching/site/internal/services/site/routepath"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// PaperViewerID is the element the paper viewer fragment replaces.
const PaperViewerID = "paper-viewer"

// NotesPage lists the notes subjects.
func NotesPage(subjects []content.Subject, loc Localizer) templ.Component {
	return Component(Section(
		ID("notes"),
		Class("notes"),
		H1(msg(loc, "site.notes.title")),
		P(Class("section-subtitle"), msg(loc, "site.notes.subtitle")),
		Ul(
			Class("subject-grid"),
			g.Group(g.Map(subjects, func(subject content.Subject) g.Node {
				return Li(A(
					Class("subject-card"),
					Href(routepath.NotesSubject(subject.Slug)),
					H2(g.Text(subject.Label())),
					g.If(subject.Description != "", P(g.Text(subject.Description))),
				))
			})),
		),
	))
}

// SubjectPage lists the classes of one subject.
func SubjectPage(subject content.Subject, loc Localizer) templ.Component {
	return Component(Section(
		ID("subject-"+subject.Slug),
		Class("subject"),
		H1(g.Text(subject.Label())),
		g.If(subject.Description != "", P(Class("section-subtitle"), g.Text(subject.Description))),
		H2(msg(loc, "site.notes.classes")),
		Ul(
			Class("class-grid"),
			g.Group(g.Map(content.Classes(), func(class string) g.Node {
				return Li(A(Href(routepath.NotesClass(subject.Slug, class)), msg(loc, "site.notes.class", class)))
			})),
		),
		A(Class("back"), Href(routepath.Notes), msg(loc, "site.notes.back", tr(loc, "site.notes.title"))),
	))
}

// PaperView is the state of the per-class paper viewer.
type PaperView struct {
	Subject content.Subject
	Class   string
	Papers  []string
	Ring    carousel.Ring
	Loc     Localizer
}

// PaperViewer renders the paper viewer.
func PaperViewer(v PaperView) templ.Component {
	return Component(paperViewerNode(v))
}

func (v PaperView) link(r carousel.Ring, label, rel string, children ...g.Node) g.Node {
	href := routepath.NotesPaper(v.Subject.Slug, v.Class, r.Index())
	return navLink(href, href, "#"+PaperViewerID, label, rel, children...)
}

// paperFileName names a saved paper, e.g. english-III-4.jpg.
func (v PaperView) paperFileName(index int) string {
	return v.Subject.Slug + "-" + v.Class + "-" + itoa(index+1) + path.Ext(v.Papers[index])
}

func paperViewerNode(v PaperView) g.Node {
	ring := v.Ring
	title := v.Subject.Label() + " · " + tr(v.Loc, "site.notes.class", v.Class)
	if ring.Empty() || len(v.Papers) != ring.Len() {
		return Section(ID(PaperViewerID), Class("viewer"), H1(g.Text(title)))
	}
	current := ring.Index()
	thumbs := make([]g.Node, 0, ring.Len())
	for i := 0; i < ring.Len(); i++ {
		thumbs = append(thumbs, Li(v.link(
			ring.GoTo(i),
			tr(v.Loc, "site.notes.paper", i+1, ring.Len()),
			"",
			ariaCurrent(i == current),
			g.Text(itoa(i+1)),
		)))
	}
	return Section(
		ID(PaperViewerID),
		Class("viewer"),
		Data("keyboard-nav", "true"),
		hxPushURL(),
		H1(g.Text(title)),
		P(Class("viewer-position"), msg(v.Loc, "site.notes.paper", current+1, ring.Len())),
		Figure(
			Img(Src(v.Papers[current]), Alt(tr(v.Loc, "site.notes.paper", current+1, ring.Len()))),
		),
		Nav(
			Class("viewer-nav"),
			v.link(ring.Prev(), tr(v.Loc, "site.notes.previous"), "prev", g.Text("‹")),
			v.link(ring.Next(), tr(v.Loc, "site.notes.next"), "next", g.Text("›")),
		),
		Ol(Class("viewer-thumbs"), g.Group(thumbs)),
		Div(
			Class("viewer-actions"),
			A(Class("button"), Data("download", "paper"), Href(v.Papers[current]), g.Attr("download", v.paperFileName(current)), msg(v.Loc, "site.notes.download_paper", current+1)),
			A(Class("button"), Href(routepath.NotesDownload(v.Subject.Slug, v.Class)), g.Attr("download"), msg(v.Loc, "site.notes.download")),
			A(Class("back"), Data("nav", "back"), Href(routepath.NotesSubject(v.Subject.Slug)), msg(v.Loc, "site.notes.back", v.Subject.Label())),
		),
	)
}
