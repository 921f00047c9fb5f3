// Package pagerender centralizes module page rendering behavior.
package pagerender

import (
	"context"
	"io"
	"net/http"

	"github.com/a-h/templ"
	platformi18n "github.com/kakascoaching/site/internal/platform/i18n"
	module "github.com/kakascoaching/site/internal/services/site/module"
	"github.com/kakascoaching/site/internal/services/site/platform/flash"
	"github.com/kakascoaching/site/internal/services/site/platform/httpx"
	sitei18n "github.com/kakascoaching/site/internal/services/site/platform/i18n"
	"github.com/kakascoaching/site/internal/services/site/templates"
	"golang.org/x/text/language"
)

// ModulePage describes a module page response for both full-page and HTMX flows.
type ModulePage struct {
	Title      string
	StatusCode int
	Fragment   templ.Component
	// Toast is shown instead of any pending flash notice.
	Toast *flash.Notice
	// FlashConsumed marks that the handler already read the flash cookie.
	FlashConsumed bool
}

// PageFunc builds a module page once the request language is known.
type PageFunc func(loc sitei18n.Localizer) ModulePage

type emptyComponent struct{}

func (emptyComponent) Render(context.Context, io.Writer) error {
	return nil
}

// WriteModulePage writes a module page using shared app-shell rendering contracts.
func WriteModulePage(w http.ResponseWriter, r *http.Request, deps module.Dependencies, page ModulePage) error {
	return WriteLocalizedPage(w, r, deps, func(sitei18n.Localizer) ModulePage { return page })
}

// WriteLocalizedPage resolves the request language, then renders the page
// built by build.
func WriteLocalizedPage(w http.ResponseWriter, r *http.Request, deps module.Dependencies, build PageFunc) error {
	if w == nil || build == nil {
		return nil
	}
	loc, tag := sitei18n.ResolveLocalizer(w, r)
	page := build(loc)

	statusCode := page.StatusCode
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	fragment := page.Fragment
	if fragment == nil {
		fragment = emptyComponent{}
	}
	ctx := requestContext(r)

	if httpx.IsHTMXRequest(r) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(statusCode)
		return templates.MainContent().Render(templ.WithChildren(ctx, fragment), w)
	}

	notice := page.Toast
	if notice == nil && !page.FlashConsumed {
		if pending, ok := flash.ReadAndClearWithPolicy(w, r, deps.SchemePolicy); ok {
			notice = &pending
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	shell := Shell(r, deps, loc, tag, page.Title, notice)
	return templates.Layout(shell).Render(templ.WithChildren(ctx, fragment), w)
}

// Shell builds the document frame for r.
func Shell(r *http.Request, deps module.Dependencies, loc sitei18n.Localizer, tag language.Tag, title string, notice *flash.Notice) templates.Shell {
	path, rawQuery := "/", ""
	if r != nil && r.URL != nil {
		path, rawQuery = r.URL.Path, r.URL.RawQuery
	}
	options := sitei18n.LanguageOptions(loc, tag, path, rawQuery)
	languages := make([]templates.LanguageLink, 0, len(options))
	for _, option := range options {
		languages = append(languages, templates.LanguageLink{
			Tag:    option.Tag,
			Label:  option.Label,
			URL:    option.URL,
			Active: option.Active,
		})
	}
	return templates.Shell{
		Title:     title,
		Lang:      tag.String(),
		Dir:       platformi18n.Direction(tag),
		Path:      path,
		Catalog:   deps.Catalog(),
		Languages: languages,
		Toast:     toast(loc, notice),
		Loc:       loc,
	}
}

func toast(loc sitei18n.Localizer, notice *flash.Notice) *templates.Toast {
	if notice == nil || notice.Key == "" {
		return nil
	}
	return &templates.Toast{Kind: string(notice.Kind), Message: loc.Sprintf(notice.Key)}
}

func requestContext(r *http.Request) context.Context {
	if r == nil {
		return context.Background()
	}
	return r.Context()
}
