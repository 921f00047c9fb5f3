package icons

import (
	"sort"
	"strings"
)

// ID is a stable icon identifier used in content files.
type ID string

const (
	IDGeneric  ID = "generic"
	IDHome     ID = "home"
	IDTrophy   ID = "trophy"
	IDMobile   ID = "mobile"
	IDQuestion ID = "question"
	IDMedal    ID = "medal"
	IDSun      ID = "sun"
	IDBook     ID = "book"
	IDStar     ID = "star"
	IDUsers    ID = "users"
)

// Definition describes a core icon entry.
type Definition struct {
	ID          ID
	Name        string
	Description string
}

var catalog = []Definition{
	{ID: IDGeneric, Name: "Generic", Description: "Default icon for uncategorized entries."},
	{ID: IDHome, Name: "Home", Description: "Home tuition and at-home learning."},
	{ID: IDTrophy, Name: "Trophy", Description: "Results and achievements."},
	{ID: IDMobile, Name: "Mobile", Description: "Online and phone-based classes."},
	{ID: IDQuestion, Name: "Question", Description: "Doubt sessions and guidance."},
	{ID: IDMedal, Name: "Medal", Description: "Awards and recognition."},
	{ID: IDSun, Name: "Sun", Description: "Morning and summer programs."},
	{ID: IDBook, Name: "Book", Description: "Courses and study material."},
	{ID: IDStar, Name: "Star", Description: "Ratings and highlights."},
	{ID: IDUsers, Name: "Users", Description: "Students, parents and groups."},
}

// Catalog returns a copy of the icon catalog definitions.
func Catalog() []Definition {
	result := make([]Definition, len(catalog))
	copy(result, catalog)
	return result
}

// Parse normalizes raw into a known icon id.
func Parse(raw string) (ID, bool) {
	id := ID(strings.ToLower(strings.TrimSpace(raw)))
	for _, def := range catalog {
		if def.ID == id {
			return id, true
		}
	}
	return "", false
}

// IDs returns the known icon ids in name order.
func IDs() []string {
	out := make([]string, 0, len(catalog))
	for _, def := range catalog {
		out = append(out, string(def.ID))
	}
	sort.Strings(out)
	return out
}
