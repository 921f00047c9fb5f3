package notes

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/kakascoaching/site/internal/carousel"
	"github.com/kakascoaching/site/internal/content"
	module "github.com/kakascoaching/site/internal/services/site/module"
	"github.com/kakascoaching/site/internal/services/site/platform/httpx"
	sitei18n "github.com/kakascoaching/site/internal/services/site/platform/i18n"
	"github.com/kakascoaching/site/internal/services/site/platform/pagerender"
	"github.com/kakascoaching/site/internal/services/site/platform/weberror"
	"github.com/kakascoaching/site/internal/services/site/routepath"
	"github.com/kakascoaching/site/internal/services/site/templates"
)

type handlers struct {
	deps module.Dependencies
}

func newHandlers(deps module.Dependencies) handlers {
	return handlers{deps: deps}
}

func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	subjects := h.deps.Catalog().Subjects
	h.write(w, r, func(loc sitei18n.Localizer) pagerender.ModulePage {
		return pagerender.ModulePage{
			Title:    loc.Sprintf("site.notes.title"),
			Fragment: templates.NotesPage(subjects, loc),
		}
	})
}

func (h handlers) handleSubject(w http.ResponseWriter, r *http.Request) {
	subject, ok := h.subject(w, r)
	if !ok {
		return
	}
	if r.PathValue("subject") != subject.Slug {
		http.Redirect(w, r, routepath.NotesSubject(subject.Slug), http.StatusMovedPermanently)
		return
	}
	h.write(w, r, func(loc sitei18n.Localizer) pagerender.ModulePage {
		return pagerender.ModulePage{
			Title:    subject.Label(),
			Fragment: templates.SubjectPage(subject, loc),
		}
	})
}

func (h handlers) handleClass(w http.ResponseWriter, r *http.Request) {
	subject, ok := h.subject(w, r)
	if !ok {
		return
	}
	class, ok := h.class(w, r, subject, false)
	if !ok {
		return
	}
	papers := content.PaperPaths(subject.Slug, class)
	index, _ := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get(routepath.PaperParam)))
	h.write(w, r, func(loc sitei18n.Localizer) pagerender.ModulePage {
		return pagerender.ModulePage{
			Title: subject.Label() + " · " + loc.Sprintf("site.notes.class", class),
			Fragment: templates.PaperViewer(templates.PaperView{
				Subject: subject,
				Class:   class,
				Papers:  papers,
				Ring:    carousel.New(len(papers), index),
				Loc:     loc,
			}),
		}
	})
}

func (h handlers) handleDownload(w http.ResponseWriter, r *http.Request) {
	subject, ok := h.subject(w, r)
	if !ok {
		return
	}
	class, ok := h.class(w, r, subject, true)
	if !ok {
		return
	}
	files := classFiles(h.deps.Assets, subject.Slug, class)
	if len(files) == 0 {
		weberror.WriteAppError(w, r, http.StatusNotFound, h.deps)
		return
	}
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="`+archiveName(subject.Slug, class)+`"`)
	if err := writeArchive(w, h.deps.Assets, files); err != nil {
		// Headers are already sent; the client sees a truncated archive.
		h.deps.Logf("notes archive failed subject=%s class=%s request_id=%s err=%v", subject.Slug, class, httpx.RequestIDFrom(r), err)
	}
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteAppError(w, r, http.StatusNotFound, h.deps)
}

func (h handlers) subject(w http.ResponseWriter, r *http.Request) (content.Subject, bool) {
	subject, ok := h.deps.Catalog().Subject(strings.ToLower(r.PathValue("subject")))
	if !ok {
		weberror.WriteAppError(w, r, http.StatusNotFound, h.deps)
		return content.Subject{}, false
	}
	return subject, true
}

// class resolves the class path value, redirecting non-canonical spellings
// such as "iii" to "III".
func (h handlers) class(w http.ResponseWriter, r *http.Request, subject content.Subject, download bool) (string, bool) {
	raw := r.PathValue("class")
	class, ok := content.NormalizeClass(raw)
	if !ok {
		weberror.WriteAppError(w, r, http.StatusNotFound, h.deps)
		return "", false
	}
	if class != raw || subject.Slug != r.PathValue("subject") {
		target := routepath.NotesClass(subject.Slug, class)
		if download {
			target = routepath.NotesDownload(subject.Slug, class)
		}
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}
		http.Redirect(w, r, target, http.StatusMovedPermanently)
		return "", false
	}
	return class, true
}

func (h handlers) write(w http.ResponseWriter, r *http.Request, build pagerender.PageFunc) {
	if err := pagerender.WriteLocalizedPage(w, r, h.deps, build); err != nil {
		h.deps.Logf("notes render failed path=%s request_id=%s err=%v", r.URL.Path, httpx.RequestIDFrom(r), err)
	}
}
