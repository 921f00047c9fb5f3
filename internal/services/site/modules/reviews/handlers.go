package reviews

import (
	"net/http"

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
	catalog := h.deps.Catalog()
	h.write(w, r, func(loc sitei18n.Localizer) pagerender.ModulePage {
		return pagerender.ModulePage{
			Title:    loc.Sprintf("site.reviews.title"),
			Fragment: templates.ReviewsPage(View(r, catalog, loc)),
		}
	})
}

func (h handlers) handleCarousel(w http.ResponseWriter, r *http.Request) {
	if !httpx.IsHTMXRequest(r) {
		http.Redirect(w, r, routepath.ReviewsURL(State(r)), http.StatusFound)
		return
	}
	catalog := h.deps.Catalog()
	h.write(w, r, func(loc sitei18n.Localizer) pagerender.ModulePage {
		return pagerender.ModulePage{Fragment: templates.ReviewsCarousel(View(r, catalog, loc))}
	})
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteAppError(w, r, http.StatusNotFound, h.deps)
}

func (h handlers) write(w http.ResponseWriter, r *http.Request, build pagerender.PageFunc) {
	if err := pagerender.WriteLocalizedPage(w, r, h.deps, build); err != nil {
		h.deps.Logf("reviews render failed path=%s err=%v", r.URL.Path, err)
	}
}
