// Package catalog embeds the site's message files and registers them with
// golang.org/x/text/message so templates can print them by key.
//
// Files live at locales/<locale>/<namespace>.yaml. The locale directory must
// name a language the site serves, and every key must start with
// "<namespace>.".
package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/kakascoaching/site/internal/platform/i18n"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the locale every other locale is checked against.
var BaseLocale = i18n.DefaultTag().String()

//go:embed locales/*/*.yaml
var localeFiles embed.FS

var defaultBundle = mustRegisterEmbedded()

// Bundle maps locale → message key → text.
type Bundle struct {
	messages map[string]map[string]string
}

type messageFile struct {
	Locale    string            `yaml:"locale"`
	Namespace string            `yaml:"namespace"`
	Messages  map[string]string `yaml:"messages"`
}

// Default returns the embedded bundle, registered at init.
func Default() *Bundle { return defaultBundle }

// LoadEmbedded parses the embedded message files.
func LoadEmbedded() (*Bundle, error) { return LoadFromFS(localeFiles) }

// LoadFromFS parses message files from fsys.
func LoadFromFS(fsys fs.FS) (*Bundle, error) {
	names, err := fs.Glob(fsys, "locales/*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("catalog: glob: %w", err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("catalog: no message files")
	}
	sort.Strings(names)

	b := &Bundle{messages: map[string]map[string]string{}}
	seen := map[string]bool{}
	for _, name := range names {
		locale := path.Base(path.Dir(name))
		namespace := strings.TrimSuffix(path.Base(name), ".yaml")
		if seen[locale+"/"+strings.ToLower(namespace)] {
			return nil, fmt.Errorf("catalog %s: namespace %q defined twice for %s", name, namespace, locale)
		}
		seen[locale+"/"+strings.ToLower(namespace)] = true

		if err := b.addFile(fsys, name, locale, namespace); err != nil {
			return nil, err
		}
	}
	if _, ok := b.messages[BaseLocale]; !ok {
		return nil, fmt.Errorf("catalog: base locale %s has no messages", BaseLocale)
	}
	return b, nil
}

func (b *Bundle) addFile(fsys fs.FS, name, locale, namespace string) error {
	if tag, ok := i18n.ParseTag(locale); !ok || tag.String() != locale {
		return fmt.Errorf("catalog %s: %q is not a served locale", name, locale)
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("catalog %s: %w", name, err)
	}
	var file messageFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("catalog %s: %w", name, err)
	}
	if got := strings.TrimSpace(file.Locale); got != "" && got != locale {
		return fmt.Errorf("catalog %s: locale %q does not match directory %q", name, got, locale)
	}
	if got := strings.TrimSpace(file.Namespace); got != "" && got != namespace {
		return fmt.Errorf("catalog %s: namespace %q does not match file name %q", name, got, namespace)
	}
	if len(file.Messages) == 0 {
		return fmt.Errorf("catalog %s: no messages", name)
	}

	out := b.messages[locale]
	if out == nil {
		out = map[string]string{}
		b.messages[locale] = out
	}
	for key, text := range file.Messages {
		key = strings.TrimSpace(key)
		if !strings.HasPrefix(key, namespace+".") {
			return fmt.Errorf("catalog %s: key %q outside namespace %q", name, key, namespace)
		}
		if _, dup := out[key]; dup {
			return fmt.Errorf("catalog %s: duplicate key %q", name, key)
		}
		out[key] = text
	}
	return nil
}

// Register installs every locale into message.DefaultCatalog. Keys a
// locale lacks are registered with the base text so pages never show a
// raw key.
func (b *Bundle) Register() error {
	base := b.LocaleMessages(BaseLocale)
	for _, locale := range b.Locales() {
		tag, err := language.Parse(locale)
		if err != nil {
			return fmt.Errorf("catalog: locale %q: %w", locale, err)
		}
		own := b.messages[locale]
		for key, text := range base {
			if translated, ok := own[key]; ok {
				text = translated
			}
			if err := message.SetString(tag, key, text); err != nil {
				return fmt.Errorf("catalog: register %s %s: %w", locale, key, err)
			}
		}
	}
	return nil
}

// Locales returns the loaded locales, sorted.
func (b *Bundle) Locales() []string {
	out := make([]string, 0, len(b.messages))
	for locale := range b.messages {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// LocaleMessages returns a copy of one locale's messages.
func (b *Bundle) LocaleMessages(locale string) map[string]string {
	out := make(map[string]string, len(b.messages[locale]))
	for key, text := range b.messages[locale] {
		out[key] = text
	}
	return out
}

// MissingKeys returns base-locale keys that locale does not translate,
// sorted. Keys present only in locale are ignored.
func (b *Bundle) MissingKeys(locale string) []string {
	own := b.messages[locale]
	var missing []string
	for key := range b.messages[BaseLocale] {
		if _, ok := own[key]; !ok {
			missing = append(missing, key)
		}
	}
	sort.Strings(missing)
	return missing
}

func mustRegisterEmbedded() *Bundle {
	b, err := LoadEmbedded()
	if err != nil {
		panic(err)
	}
	if err := b.Register(); err != nil {
		panic(err)
	}
	return b
}
