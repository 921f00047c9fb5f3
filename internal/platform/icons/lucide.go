package icons

const lucideClassPrefix = "icon-"

var lucideIconNames = map[ID]string{
	IDGeneric:  "sparkle",
	IDHome:     "house",
	IDTrophy:   "trophy",
	IDMobile:   "smartphone",
	IDQuestion: "circle-help",
	IDMedal:    "medal",
	IDSun:      "sun",
	IDBook:     "book-open",
	IDStar:     "star",
	IDUsers:    "users",
}

// LucideName returns the Lucide icon name for a core icon identifier.
func LucideName(id ID) (string, bool) {
	name, ok := lucideIconNames[id]
	return name, ok
}

// LucideNameOrDefault provides a stable Lucide name even when the icon ID is unknown.
func LucideNameOrDefault(id ID) string {
	if name, ok := lucideIconNames[id]; ok {
		return name
	}
	return "sparkle"
}

// LucideClass returns the icon-font class for a raw content icon value.
func LucideClass(raw string) string {
	id, _ := Parse(raw)
	return lucideClassPrefix + LucideNameOrDefault(id)
}
