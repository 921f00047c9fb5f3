package templates

import (
	"strings"

	"github.com/a-h/templ"
	"github.com/kakascoaching/site/internal/leads"
	"github.com/kakascoaching/site/internal/services/site/routepath"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// FormView is the render state of one lead-capture form.
type FormView struct {
	Form   leads.Form
	Action string
	Values map[string]string
	Errors leads.FieldErrors
	// Alert is a form-level error, e.g. the retry message.
	Alert string
	// Success replaces the fields with a confirmation when AnotherKey is set,
	// otherwise it is shown above an empty form.
	Success    string
	Notice     string
	SubmitKey  string
	SaveKey    string
	AnotherKey string
	Loc        Localizer
}

// FormID returns the DOM id of the form container.
func FormID(formID string) string { return "form-" + formID }

// EnrollPage renders the enrollment section.
func EnrollPage(heading string, v FormView) templ.Component {
	return Component(enrollSection(heading, v))
}

// AnnouncementsPage renders the intake announcement with its form.
func AnnouncementsPage(heading string, v FormView) templ.Component {
	return Component(Section(
		ID("announcements"),
		Class("announcements"),
		H1(g.Text(heading)),
		P(Class("section-subtitle"), msg(v.Loc, "site.announcements.subtitle")),
		formNode(v),
	))
}

func enrollSection(heading string, v FormView) g.Node {
	return Section(
		ID(strings.TrimPrefix(routepath.EnrollSection, "#")),
		Class("enroll"),
		H2(msg(v.Loc, "site.hero.cta_enroll")),
		g.If(heading != "", P(Class("section-subtitle"), g.Text(heading))),
		formNode(v),
	)
}

func formNode(v FormView) g.Node {
	if v.Success != "" && v.AnotherKey != "" {
		return Div(
			ID(FormID(v.Form.ID)),
			Class("lead-form lead-form-done"),
			P(Class("form-success"), Role("status"), g.Text(v.Success)),
			A(Class("button"), Href(v.Action), msg(v.Loc, v.AnotherKey)),
		)
	}

	fields := make([]g.Node, 0, len(v.Form.Fields))
	for _, field := range v.Form.Fields {
		fields = append(fields, fieldNode(v, field))
	}
	actions := []g.Node{
		Class("form-actions"),
		Button(Type("submit"), msg(v.Loc, v.SubmitKey)),
	}
	if v.SaveKey != "" {
		actions = append(actions, Button(
			Type("submit"),
			Name(routepath.FormActionParam),
			Value(routepath.FormActionSaveForLater),
			g.Attr("formnovalidate"),
			Class("secondary"),
			msg(v.Loc, v.SaveKey),
		))
	}

	return Div(
		ID(FormID(v.Form.ID)),
		Class("lead-form"),
		g.If(v.Success != "", P(Class("form-success"), Role("status"), g.Text(v.Success))),
		g.If(v.Notice != "", P(Class("form-notice"), Role("status"), g.Text(v.Notice))),
		g.If(v.Alert != "", P(Class("form-alert"), Role("alert"), g.Text(v.Alert))),
		formEl(
			Method("post"),
			Action(v.Action),
			g.Attr("novalidate"),
			g.Group(fields),
			Div(actions...),
		),
	)
}

func fieldNode(v FormView, field leads.Field) g.Node {
	id := v.Form.ID + "-" + field.Name
	errorID := id + "-error"
	fieldErr, hasErr := v.Errors[field.Name]

	control := []g.Node{
		ID(id),
		Name(field.Name),
		Placeholder(tr(v.Loc, field.PlaceholderKey())),
		g.If(field.Required, Required()),
	}
	if hasErr {
		control = append(control, Aria("invalid", "true"), Aria("describedby", errorID))
	}

	value := v.Values[field.Name]
	var input g.Node
	switch field.Input {
	case leads.InputTextarea:
		input = Textarea(append(control, g.Attr("rows", "4"), g.Text(value))...)
	default:
		input = Input(append(control, Type(string(field.Input)), Value(value))...)
	}

	return Div(
		Class("form-field"),
		labelEl(
			For(id),
			msg(v.Loc, field.LabelKey()),
			g.If(field.Required, Span(Class("required"), Aria("hidden", "true"), g.Text(" *"))),
		),
		input,
		g.If(hasErr, Span(ID(errorID), Class("field-error"), g.Text(fieldErrorText(v.Loc, field, fieldErr)))),
	)
}

func fieldErrorText(loc Localizer, field leads.Field, err leads.FieldError) string {
	if err.Key == leads.KeyRequired {
		return tr(loc, err.Key, tr(loc, field.LabelKey()))
	}
	if err.Key != "" {
		return tr(loc, err.Key)
	}
	return err.Message
}
