package public

import (
	"net/http"

	"github.com/kakascoaching/site/internal/leads"
	module "github.com/kakascoaching/site/internal/services/site/module"
	"github.com/kakascoaching/site/internal/services/site/modules/reviews"
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

func (h handlers) handleHome(w http.ResponseWriter, r *http.Request) {
	catalog := h.deps.Catalog()
	h.write(w, r, func(loc sitei18n.Localizer) pagerender.ModulePage {
		return pagerender.ModulePage{
			Fragment: templates.HomePage(templates.HomeView{
				Catalog: catalog,
				Reviews: reviews.View(r, catalog, loc),
				Enroll: templates.FormView{
					Form:      leads.Enrollment,
					Action:    routepath.Enroll,
					SubmitKey: "forms.enroll.submit",
					Loc:       loc,
				},
				Loc: loc,
			}),
		}
	})
}

func (h handlers) handleCourses(w http.ResponseWriter, r *http.Request) {
	catalog := h.deps.Catalog()
	h.write(w, r, func(loc sitei18n.Localizer) pagerender.ModulePage {
		return pagerender.ModulePage{
			Title:    loc.Sprintf("site.courses.title"),
			Fragment: templates.CoursesPage(catalog.Courses, loc),
		}
	})
}

func (handlers) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h handlers) handleFallback(w http.ResponseWriter, r *http.Request) {
	if target, ok := legacyTarget(r.URL.Path, h.deps.Catalog()); ok {
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}
		http.Redirect(w, r, target, http.StatusMovedPermanently)
		return
	}
	weberror.WriteAppError(w, r, http.StatusNotFound, h.deps)
}

func (h handlers) write(w http.ResponseWriter, r *http.Request, build pagerender.PageFunc) {
	if err := pagerender.WriteLocalizedPage(w, r, h.deps, build); err != nil {
		h.deps.Logf("public render failed path=%s request_id=%s err=%v", r.URL.Path, httpx.RequestIDFrom(r), err)
	}
}
