// Package forms serves the lead-capture forms: enrollment and the intake
// announcement.
package forms

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/kakascoaching/site/internal/content"
	"github.com/kakascoaching/site/internal/leads"
	module "github.com/kakascoaching/site/internal/services/site/module"
	"github.com/kakascoaching/site/internal/services/site/routepath"
	"github.com/kakascoaching/site/internal/services/site/templates"
)

// page describes one form page.
type page struct {
	id         string
	prefix     string
	path       string
	form       leads.Form
	titleKey   string
	submitKey  string
	successKey string
	saveKey    string
	savedKey   string
	anotherKey string
	heading    func(content.Site) string
	render     func(heading string, v templates.FormView) templ.Component
}

// Module serves one lead-capture form.
type Module struct {
	page page
}

// NewEnroll returns the enrollment form module.
func NewEnroll() Module {
	return Module{page: page{
		id:         "enroll",
		prefix:     routepath.EnrollPrefix,
		path:       routepath.Enroll,
		form:       leads.Enrollment,
		titleKey:   "site.hero.cta_enroll",
		submitKey:  "forms.enroll.submit",
		successKey: "forms.enroll.success",
		heading:    func(site content.Site) string { return site.EnrollHeading },
		render:     templates.EnrollPage,
	}}
}

// NewAnnouncements returns the intake announcement module.
func NewAnnouncements() Module {
	return Module{page: page{
		id:         "announcements",
		prefix:     routepath.AnnouncementsPrefix,
		path:       routepath.Announcements,
		form:       leads.Intake,
		titleKey:   "site.announcements.title",
		submitKey:  "forms.intake.submit",
		successKey: "forms.intake.success",
		saveKey:    "forms.intake.save",
		savedKey:   "forms.intake.saved",
		anotherKey: "forms.intake.another",
		heading:    func(site content.Site) string { return site.IntakeHeading },
		render:     templates.AnnouncementsPage,
	}}
}

// ID returns a stable module identifier.
func (m Module) ID() string { return m.page.id }

// Mount wires form route handlers.
func (m Module) Mount(deps module.Dependencies) (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, m.page, newHandlers(deps, m.page))
	return module.Mount{Prefix: m.page.prefix, Handler: mux}, nil
}
