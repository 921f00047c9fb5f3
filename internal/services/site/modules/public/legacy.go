package public

import (
	"strings"

	"github.com/kakascoaching/site/internal/content"
	"github.com/kakascoaching/site/internal/services/site/routepath"
)

var legacySections = []string{
	routepath.Courses,
	routepath.Reviews,
	routepath.Enroll,
	routepath.Notes,
	routepath.Glimpse,
	routepath.Announcements,
}

// legacyTarget maps old capitalised links such as /Courses or
// /Notes/Islamic-Studies to their canonical lowercase route.
func legacyTarget(path string, catalog *content.Catalog) (string, bool) {
	for _, section := range legacySections {
		if path != section && strings.EqualFold(path, section) {
			return section, true
		}
	}
	if catalog == nil {
		return "", false
	}
	for _, subject := range catalog.Subjects {
		canonical := routepath.NotesSubject(subject.Slug)
		if path == canonical {
			continue
		}
		if strings.EqualFold(path, canonical) || path == "/Notes/"+subject.LegacySlug() {
			return canonical, true
		}
	}
	return "", false
}
