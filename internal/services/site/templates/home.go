package templates

import (
	"github.com/a-h/templ"
	"github.com/kakascoaching/site/internal/content"
	"github.com/kakascoaching/site/internal/services/site/routepath"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// HomeView is the landing page state.
type HomeView struct {
	Catalog *content.Catalog
	Reviews ReviewsView
	Enroll  FormView
	Loc     Localizer
}

// HomePage renders the hero followed by the courses, reviews and enroll
// sections.
func HomePage(v HomeView) templ.Component {
	site := siteOf(v.Catalog)
	var courses []content.Course
	var splash []string
	if v.Catalog != nil {
		courses = v.Catalog.Courses
		splash = v.Catalog.Splash
	}
	return Component(g.Group([]g.Node{
		hero(site, splash, v.Loc),
		coursesSection(courses, v.Loc),
		reviewsSection(v.Reviews),
		enrollSection(site.EnrollHeading, v.Enroll),
	}))
}

func hero(site content.Site, splash []string, loc Localizer) g.Node {
	return Section(
		ID("home"),
		Class("hero"),
		H1(g.Text(site.Name)),
		P(Class("hero-tagline"), g.Text(site.Tagline)),
		g.If(len(splash) > 0, Ul(
			Class("hero-splash"),
			Data("rotate", "true"),
			g.Group(g.Map(splash, func(line string) g.Node {
				return Li(g.Text(line))
			})),
		)),
		Div(
			Class("hero-actions"),
			A(Class("button"), Href(routepath.Root+routepath.EnrollSection), msg(loc, "site.hero.cta_enroll")),
			A(Class("button secondary"), Href(routepath.Courses), msg(loc, "site.hero.cta_courses")),
		),
	)
}
