package content

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/kakascoaching/site/internal/platform/icons"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"gopkg.in/yaml.v3"
)

const (
	catalogFile = "catalog.yaml"
	coursesDir  = "courses"
)

//go:embed data/catalog.yaml data/courses/*.md
var embeddedFS embed.FS

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
)

// LoadEmbedded loads the catalog compiled into the binary.
func LoadEmbedded() (*Catalog, error) {
	sub, err := fs.Sub(embeddedFS, "data")
	if err != nil {
		return nil, fmt.Errorf("open embedded catalog: %w", err)
	}
	return LoadFS(sub)
}

// LoadDir loads a catalog from an override directory on disk.
func LoadDir(dir string) (*Catalog, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, fmt.Errorf("content dir is required")
	}
	return LoadFS(os.DirFS(dir))
}

// LoadFS reads catalog.yaml and courses/<key>.md from fsys and validates
// the result.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	if fsys == nil {
		return nil, fmt.Errorf("content fs is required")
	}
	data, err := fs.ReadFile(fsys, catalogFile)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", catalogFile, err)
	}
	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parse %s: %w", catalogFile, err)
	}
	if err := validate(&catalog); err != nil {
		return nil, err
	}
	catalog.Courses = make([]Course, 0, len(catalog.CourseKeys))
	for _, key := range catalog.CourseKeys {
		course, err := loadCourse(fsys, key)
		if err != nil {
			return nil, err
		}
		catalog.Courses = append(catalog.Courses, course)
	}
	return &catalog, nil
}

func loadCourse(fsys fs.FS, key string) (Course, error) {
	name := path.Join(coursesDir, key+".md")
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return Course{}, fmt.Errorf("read course %s: %w", key, err)
	}
	var course Course
	body, err := frontmatter.Parse(bytes.NewReader(raw), &course)
	if err != nil {
		return Course{}, fmt.Errorf("parse course %s front matter: %w", key, err)
	}
	var html bytes.Buffer
	if err := markdown.Convert(body, &html); err != nil {
		return Course{}, fmt.Errorf("render course %s: %w", key, err)
	}
	course.Key = key
	if strings.TrimSpace(course.Title) == "" {
		course.Title = Label(key)
	}
	course.BodyHTML = html.String()
	return course, nil
}

func validate(c *Catalog) error {
	if strings.TrimSpace(c.Site.Name) == "" {
		return fmt.Errorf("catalog: site name is required")
	}
	if err := unique("nav target", c.Nav, func(l Link) string { return l.Href }); err != nil {
		return err
	}
	if err := unique("course key", c.CourseKeys, func(k string) string { return k }); err != nil {
		return err
	}
	if err := unique("subject slug", c.Subjects, func(s Subject) string { return strings.ToLower(s.Slug) }); err != nil {
		return err
	}
	if err := unique("album slug", c.Albums, func(a Album) string { return a.Slug }); err != nil {
		return err
	}
	for _, h := range c.Highlights {
		if _, ok := icons.Parse(h.Icon); !ok {
			return fmt.Errorf("catalog: highlight %q has unknown icon %q", h.Label, h.Icon)
		}
	}
	for _, album := range c.Albums {
		if album.Images < 0 {
			return fmt.Errorf("catalog: album %q has negative image count", album.Slug)
		}
		if !album.Video && album.Images == 0 {
			return fmt.Errorf("catalog: album %q has no media", album.Slug)
		}
	}
	return nil
}

func unique[T any](what string, items []T, key func(T) string) error {
	seen := make(map[string]struct{}, len(items))
	for i, item := range items {
		value := strings.TrimSpace(key(item))
		if value == "" {
			return fmt.Errorf("catalog: %s at position %d is empty", what, i)
		}
		if _, ok := seen[value]; ok {
			return fmt.Errorf("catalog: duplicate %s %q", what, value)
		}
		seen[value] = struct{}{}
	}
	return nil
}
