// Package leads validates lead-capture forms and forwards submissions to a
// mail relay.
package leads

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// Input selects how a field is rendered.
type Input string

const (
	InputText     Input = "text"
	InputEmail    Input = "email"
	InputTel      Input = "tel"
	InputTextarea Input = "textarea"
)

// Localization keys for field errors.
const (
	KeyRequired = "forms.error.required"
	KeyEmail    = "forms.error.email"
	KeyTooShort = "forms.error.too_short"
	KeyPhone    = "forms.error.phone"
)

var (
	simpleEmailPattern = regexp.MustCompile(`(?i)^\S+@\S+$`)
	strictEmailPattern = regexp.MustCompile(`^(([^<>()\[\]\\.,;:\s@"]+(\.[^<>()\[\]\\.,;:\s@"]+)*)|(".+"))@(([^<>()\[\]\\.,;:\s@"]+\.)+[^<>()\[\]\\.,;:\s@"]{2,})$`)
	phonePattern       = regexp.MustCompile(`^\+?\d[\d\s\-]{7,}$`)
)

// Field describes one form input and its rules.
type Field struct {
	Name        string
	Label       string
	Placeholder string
	Input       Input
	Required    bool
	MinLen      int
	Pattern     *regexp.Regexp
	// PatternKey and PatternMessage describe a pattern mismatch.
	PatternKey     string
	PatternMessage string
}

// LabelKey is the localization key of the field label.
func (f Field) LabelKey() string { return "forms.field." + f.Name }

// PlaceholderKey is the localization key of the field placeholder.
func (f Field) PlaceholderKey() string { return "forms.placeholder." + f.Name }

// Form is a lead-capture form bound to a relay template.
type Form struct {
	ID       string
	Template string
	Fields   []Field
	// KeepOnFailure keeps entered values when the relay fails.
	KeepOnFailure bool
}

// Enrollment is the course enrollment form.
var Enrollment = Form{
	ID:            "enrollment",
	Template:      "enrollment",
	KeepOnFailure: true,
	Fields: []Field{
		{Name: "user_name", Label: "Name", Placeholder: "Your Name", Input: InputText, Required: true},
		{
			Name: "user_email", Label: "Email", Placeholder: "you@email.com", Input: InputEmail, Required: true,
			Pattern: simpleEmailPattern, PatternKey: KeyEmail, PatternMessage: "Invalid email address",
		},
		{Name: "user_contact", Label: "Contact", Placeholder: "Phone Number", Input: InputTel, Required: true, MinLen: 7},
		{Name: "user_address", Label: "Address", Placeholder: "Your Address", Input: InputText, Required: true},
		{Name: "user_message", Label: "Message", Placeholder: "Tell us about your learning goals...", Input: InputTextarea, Required: true},
	},
}

// Intake is the toddler home-schooling intake form on the announcements page.
var Intake = Form{
	ID:       "intake",
	Template: "intake",
	Fields: []Field{
		{Name: "child_name", Label: "Child's Full Name", Placeholder: "For e.g: Ali", Input: InputText, Required: true},
		{Name: "guardian_name", Label: "Guardian's Name", Placeholder: "For e.g: Ahmed", Input: InputText, Required: true},
		{
			Name: "contact_no", Label: "Contact Number", Placeholder: "+92 300 1234567", Input: InputTel, Required: true,
			Pattern: phonePattern, PatternKey: KeyPhone, PatternMessage: "Invalid phone number",
		},
		{
			Name: "email", Label: "Email (optional)", Placeholder: "guardian@example.com", Input: InputEmail,
			Pattern: strictEmailPattern, PatternKey: KeyEmail, PatternMessage: "Invalid email address",
		},
		{Name: "message", Label: "Message (optional)", Placeholder: "Any allergies, concerns, or just say hi", Input: InputTextarea},
	},
}

// Forms returns every lead form.
func Forms() []Form { return []Form{Enrollment, Intake} }

// FieldError is a validation failure for one field.
type FieldError struct {
	Field   string
	Key     string
	Args    []any
	Message string
}

// FieldErrors maps field names to their first failure.
type FieldErrors map[string]FieldError

// Error lists the failing fields.
func (e FieldErrors) Error() string {
	if len(e) == 0 {
		return "no field errors"
	}
	names := make([]string, 0, len(e))
	for name := range e {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e[name].Message)
	}
	return "invalid fields: " + strings.Join(parts, "; ")
}

// Normalize trims values and keeps only the form's fields.
func (f Form) Normalize(values map[string]string) map[string]string {
	out := make(map[string]string, len(f.Fields))
	for _, field := range f.Fields {
		out[field.Name] = strings.TrimSpace(values[field.Name])
	}
	return out
}

// Validate applies required, min length and pattern rules in that order.
// Empty optional fields are not checked further.
func (f Form) Validate(values map[string]string) FieldErrors {
	normalized := f.Normalize(values)
	errs := FieldErrors{}
	for _, field := range f.Fields {
		value := normalized[field.Name]
		if value == "" {
			if field.Required {
				errs[field.Name] = FieldError{
					Field:   field.Name,
					Key:     KeyRequired,
					Args:    []any{field.Label},
					Message: fmt.Sprintf("%s is required", field.Label),
				}
			}
			continue
		}
		if field.MinLen > 0 && utf8.RuneCountInString(value) < field.MinLen {
			errs[field.Name] = FieldError{Field: field.Name, Key: KeyTooShort, Message: "Too short"}
			continue
		}
		if field.Pattern != nil && !field.Pattern.MatchString(value) {
			errs[field.Name] = FieldError{Field: field.Name, Key: field.PatternKey, Message: field.PatternMessage}
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
