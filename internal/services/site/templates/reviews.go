package templates

import (
	"github.com/a-h/templ"
	"github.com/kakascoaching/site/internal/carousel"
	"github.com/kakascoaching/site/internal/content"
	"github.com/kakascoaching/site/internal/platform/icons"
	"github.com/kakascoaching/site/internal/services/site/routepath"
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"
)

// CarouselID is the element the reviews carousel fragment replaces.
const CarouselID = "reviews-carousel"

// AutoAdvanceEvery is the client-side auto-advance period.
const AutoAdvanceEvery = "4200ms"

// ReviewsView is the testimonial section state.
type ReviewsView struct {
	Stories    []content.Story
	Highlights []content.Highlight
	Ring       carousel.Ring
	Direction  carousel.Direction
	Per        int
	Auto       bool
	Loc        Localizer
}

// ReviewsPage renders the testimonials section with its highlight row.
func ReviewsPage(v ReviewsView) templ.Component {
	return Component(reviewsSection(v))
}

// ReviewsCarousel renders only the carousel, for HTMX swaps.
func ReviewsCarousel(v ReviewsView) templ.Component {
	return Component(carouselNode(v))
}

func reviewsSection(v ReviewsView) g.Node {
	return Section(
		ID("reviews"),
		Class("reviews"),
		H2(msg(v.Loc, "site.reviews.title")),
		g.If(len(v.Highlights) > 0, Ul(
			Class("highlight-row"),
			g.Group(g.Map(v.Highlights, func(h content.Highlight) g.Node {
				return Li(
					Class("highlight"),
					Span(Class("highlight-icon "+icons.LucideClass(h.Icon)), Aria("hidden", "true")),
					Strong(g.Text(h.Label)),
					Small(g.Text(h.Sub)),
				)
			})),
		)),
		carouselNode(v),
	)
}

func (v ReviewsView) state(r carousel.Ring, auto bool) routepath.CarouselState {
	return routepath.CarouselState{
		Index: r.Index(),
		Per:   v.Per,
		Dir:   r.Direction().String(),
		Auto:  auto,
	}
}

func (v ReviewsView) link(r carousel.Ring, label string, rel string, children ...g.Node) g.Node {
	state := v.state(r, false)
	return navLink(
		routepath.ReviewsURL(state),
		routepath.ReviewsCarouselURL(state),
		"#"+CarouselID,
		label,
		rel,
		children...,
	)
}

func carouselNode(v ReviewsView) g.Node {
	ring := v.Ring
	attrs := []g.Node{
		ID(CarouselID),
		Class("carousel"),
		Data("index", itoa(ring.Index())),
		Data("per", itoa(v.Per)),
	}
	if dir := v.Direction.String(); dir != "" {
		attrs = append(attrs, Data("direction", dir))
	}
	if ring.Empty() {
		return Div(attrs...)
	}
	if v.Auto && ring.Len() > v.Per {
		attrs = append(attrs,
			hx.Get(routepath.ReviewsCarouselURL(v.state(ring.NextPage(v.Per), true))),
			hx.Trigger("every "+AutoAdvanceEvery),
			hx.Swap("outerHTML"),
			Data("autoplay", "true"),
		)
	}

	cards := make([]g.Node, 0, v.Per)
	for _, index := range ring.Window(v.Per) {
		cards = append(cards, storyCard(v.Stories[index], v.Loc))
	}
	dots := make([]g.Node, 0, ring.Len())
	for i := 0; i < ring.Len(); i++ {
		dots = append(dots, Li(v.link(
			ring.GoTo(i),
			tr(v.Loc, "site.reviews.goto", i+1),
			"",
			Class("dot"),
			ariaCurrent(i == ring.Index()),
		)))
	}

	return Div(append(attrs,
		v.link(ring.PrevPage(v.Per), tr(v.Loc, "site.reviews.previous"), "prev", Class("carousel-prev"), g.Text("‹")),
		Div(Class("carousel-track"), g.Group(cards)),
		v.link(ring.NextPage(v.Per), tr(v.Loc, "site.reviews.next"), "next", Class("carousel-next"), g.Text("›")),
		Ol(Class("carousel-dots"), g.Group(dots)),
	)...)
}

func storyCard(story content.Story, loc Localizer) g.Node {
	return Article(
		Class("story-card"),
		H3(g.Text(story.Name)),
		g.If(story.Title != "", P(Class("story-title"), g.Text(story.Title))),
		quote(P(g.Text(story.Text))),
		Span(
			Class("story-rating"),
			Aria("label", tr(loc, "site.reviews.rating", story.Rating)),
			g.Text(stars(story.Rating)),
		),
		g.If(len(story.Highlights) > 0, Ul(
			Class("story-highlights"),
			g.Group(g.Map(story.Highlights, func(d content.Detail) g.Node {
				return Li(Strong(g.Text(d.Label)), g.Text(" "+d.Value))
			})),
		)),
	)
}
