package content

import (
	"fmt"
	"io/fs"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// AssetPrefix is the URL prefix for files served from the external asset dir.
const AssetPrefix = "/assets/"

// PapersPerClass is the fixed number of papers published per class.
const PapersPerClass = 10

var classes = []string{"I", "II", "III", "IV", "V", "VI", "VII", "VIII", "IX", "X"}

// Classes returns the class identifiers, Roman I through X.
func Classes() []string {
	out := make([]string, len(classes))
	copy(out, classes)
	return out
}

// NormalizeClass returns the canonical upper-case Roman numeral.
func NormalizeClass(class string) (string, bool) {
	upper := strings.ToUpper(strings.TrimSpace(class))
	for _, candidate := range classes {
		if candidate == upper {
			return candidate, true
		}
	}
	return "", false
}

// PaperFile returns the asset-relative file for paper n of a class.
func PaperFile(subject, class string, n int) string {
	return fmt.Sprintf("papers/%s/%s/%d.jpg", strings.ToLower(subject), class, n)
}

// PaperPath returns the URL for paper n (1-based) of a class.
func PaperPath(subject, class string, n int) string {
	return AssetPrefix + PaperFile(subject, class, n)
}

// PaperPaths returns the URLs of every paper in a class, in order.
func PaperPaths(subject, class string) []string {
	out := make([]string, 0, PapersPerClass)
	for n := 1; n <= PapersPerClass; n++ {
		out = append(out, PaperPath(subject, class, n))
	}
	return out
}

// MediaKind distinguishes gallery videos from images.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// MediaItem is one gallery entry.
type MediaItem struct {
	Kind   MediaKind
	File   string
	Poster string
	Alt    string
}

// Src returns the item URL.
func (m MediaItem) Src() string { return AssetPrefix + m.File }

// PosterSrc returns the poster URL, or "" for images.
func (m MediaItem) PosterSrc() string {
	if m.Poster == "" {
		return ""
	}
	return AssetPrefix + m.Poster
}

// Items expands the album definition into its ordered media list.
func (a Album) Items() []MediaItem {
	alt := strings.TrimSpace(a.Alt)
	if alt == "" {
		alt = a.Title
	}
	out := make([]MediaItem, 0, a.Images+1)
	if a.Video {
		out = append(out, MediaItem{
			Kind:   MediaVideo,
			File:   fmt.Sprintf("media/%s/1.mp4", a.Slug),
			Poster: fmt.Sprintf("media/%s/main.png", a.Slug),
			Alt:    alt + " video",
		})
	}
	for n := 1; n <= a.Images; n++ {
		out = append(out, MediaItem{
			Kind: MediaImage,
			File: fmt.Sprintf("media/%s/%d.jpeg", a.Slug, n),
			Alt:  fmt.Sprintf("%s %d", alt, n),
		})
	}
	return out
}

// ExpectedAssets lists every asset-relative file the catalog references.
func ExpectedAssets(c *Catalog) []string {
	if c == nil {
		return nil
	}
	var out []string
	for _, course := range c.Courses {
		out = append(out, strings.TrimPrefix(course.ImagePath(), AssetPrefix))
	}
	for _, subject := range c.Subjects {
		for _, class := range classes {
			for n := 1; n <= PapersPerClass; n++ {
				out = append(out, PaperFile(subject.Slug, class, n))
			}
		}
	}
	for _, album := range c.Albums {
		for _, item := range album.Items() {
			out = append(out, item.File)
			if item.Poster != "" {
				out = append(out, item.Poster)
			}
		}
	}
	return out
}

// MissingAssets returns the expected files absent from assets.
func MissingAssets(assets fs.FS, c *Catalog) []string {
	var missing []string
	for _, name := range ExpectedAssets(c) {
		if _, err := fs.Stat(assets, name); err != nil {
			missing = append(missing, name)
		}
	}
	return missing
}

// Label turns a slug such as "islamic-studies" into "Islamic Studies".
func Label(slug string) string {
	words := strings.NewReplacer("-", " ", "_", " ").Replace(strings.TrimSpace(slug))
	return cases.Title(language.English).String(words)
}
