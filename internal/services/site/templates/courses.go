package templates

import (
	"github.com/a-h/templ"
	"github.com/kakascoaching/site/internal/content"
	"github.com/kakascoaching/site/internal/services/site/routepath"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// CoursesPage renders the course showcase.
func CoursesPage(courses []content.Course, loc Localizer) templ.Component {
	return Component(coursesSection(courses, loc))
}

func coursesSection(courses []content.Course, loc Localizer) g.Node {
	return Section(
		ID("courses"),
		Class("courses"),
		H2(msg(loc, "site.courses.title")),
		P(Class("section-subtitle"), msg(loc, "site.courses.subtitle")),
		Div(
			Class("course-grid"),
			g.Group(g.Map(courses, func(course content.Course) g.Node {
				return courseCard(course, loc)
			})),
		),
	)
}

func courseCard(course content.Course, loc Localizer) g.Node {
	return Article(
		ID("course-"+course.Key),
		Class("course-card"),
		Img(Src(course.ImagePath()), Alt(course.Title), lazy()),
		H3(g.Text(course.Title)),
		P(Class("course-summary"), g.Text(course.Summary)),
		g.If(len(course.Details) > 0, Ul(
			Class("course-details"),
			g.Group(g.Map(course.Details, func(d content.Detail) g.Node {
				return Li(Strong(g.Text(d.Label+":")), g.Text(" "+d.Value))
			})),
		)),
		g.If(course.BodyHTML != "", Div(Class("course-body"), g.Raw(course.BodyHTML))),
		A(Class("button"), Href(routepath.Enroll), msg(loc, "site.courses.enroll")),
	)
}
