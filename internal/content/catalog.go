// Package content holds the literal site content: identity, navigation,
// courses, testimonials, notes subjects and gallery albums.
package content

import "strings"

// Catalog is the full set of content rendered by the site.
type Catalog struct {
	Site       Site        `yaml:"site"`
	Nav        []Link      `yaml:"nav"`
	Socials    []Social    `yaml:"socials"`
	Splash     []string    `yaml:"splash"`
	CourseKeys []string    `yaml:"courses"`
	Stories    []Story     `yaml:"stories"`
	Highlights []Highlight `yaml:"highlights"`
	Subjects   []Subject   `yaml:"subjects"`
	Albums     []Album     `yaml:"albums"`
	Activities []string    `yaml:"activities"`

	// Courses is filled from courses/<key>.md in CourseKeys order.
	Courses []Course `yaml:"-"`
}

// Site describes the business identity shown in the header and footer.
type Site struct {
	Name          string `yaml:"name"`
	Tagline       string `yaml:"tagline"`
	Email         string `yaml:"email"`
	WhatsApp      string `yaml:"whatsapp"`
	WhatsAppLabel string `yaml:"whatsapp_label"`
	EnrollHeading string `yaml:"enroll_heading"`
	IntakeHeading string `yaml:"intake_heading"`
}

// Link is one navigation entry.
type Link struct {
	Label string `yaml:"label"`
	Href  string `yaml:"href"`
}

// Social is one footer social link.
type Social struct {
	Name string `yaml:"name"`
	Href string `yaml:"href"`
}

// Detail is a label/value pair shown on course cards and testimonials.
type Detail struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
}

// Course is one course card with its rendered description.
type Course struct {
	Key     string   `yaml:"-"`
	Title   string   `yaml:"title"`
	Image   string   `yaml:"image"`
	Summary string   `yaml:"summary"`
	Details []Detail `yaml:"details"`
	// BodyHTML is trusted markdown output from the embedded catalog.
	BodyHTML string `yaml:"-"`
}

// ImagePath returns the asset URL for the course illustration.
func (c Course) ImagePath() string {
	image := strings.TrimSpace(c.Image)
	if image == "" {
		image = c.Key + ".png"
	}
	return AssetPrefix + "courses/" + image
}

// Story is one testimonial.
type Story struct {
	Name       string   `yaml:"name"`
	Title      string   `yaml:"title"`
	Text       string   `yaml:"text"`
	Rating     int      `yaml:"rating"`
	Highlights []Detail `yaml:"highlights"`
}

// Highlight is one icon tile in the row above the testimonials.
type Highlight struct {
	Icon  string `yaml:"icon"`
	Label string `yaml:"label"`
	Sub   string `yaml:"sub"`
}

// Subject is one notes subject.
type Subject struct {
	Slug        string `yaml:"slug"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// Label returns the display name, derived from the slug when unset.
func (s Subject) Label() string {
	if name := strings.TrimSpace(s.Name); name != "" {
		return name
	}
	return Label(s.Slug)
}

// LegacySlug returns the capitalised path segment used by old links,
// e.g. "Islamic-Studies".
func (s Subject) LegacySlug() string {
	parts := strings.Split(s.Slug, "-")
	for i, part := range parts {
		parts[i] = Label(part)
	}
	return strings.Join(parts, "-")
}

// Album is one gallery album: an optional video followed by numbered images.
type Album struct {
	Slug   string `yaml:"slug"`
	Title  string `yaml:"title"`
	Alt    string `yaml:"alt"`
	Video  bool   `yaml:"video"`
	Images int    `yaml:"images"`
}

// Subject returns the subject matching slug, ignoring case.
func (c *Catalog) Subject(slug string) (Subject, bool) {
	if c == nil {
		return Subject{}, false
	}
	slug = strings.TrimSpace(slug)
	for _, subject := range c.Subjects {
		if strings.EqualFold(subject.Slug, slug) {
			return subject, true
		}
	}
	return Subject{}, false
}

// Album returns the album matching slug.
func (c *Catalog) Album(slug string) (Album, bool) {
	if c == nil {
		return Album{}, false
	}
	for _, album := range c.Albums {
		if album.Slug == slug {
			return album, true
		}
	}
	return Album{}, false
}
