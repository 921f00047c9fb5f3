package glimpse

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/kakascoaching/site/internal/carousel"
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
			Title:    loc.Sprintf("site.glimpse.title"),
			Fragment: templates.GlimpsePage(catalog.Albums, catalog.Activities, loc),
		}
	})
}

func (h handlers) handleAlbum(w http.ResponseWriter, r *http.Request) {
	album, ok := h.deps.Catalog().Album(r.PathValue("album"))
	if !ok {
		weberror.WriteAppError(w, r, http.StatusNotFound, h.deps)
		return
	}
	items := album.Items()
	index, _ := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get(routepath.ItemParam)))
	h.write(w, r, func(loc sitei18n.Localizer) pagerender.ModulePage {
		return pagerender.ModulePage{
			Title: album.Title,
			Fragment: templates.AlbumViewer(templates.AlbumView{
				Album: album,
				Items: items,
				Ring:  carousel.New(len(items), index),
				Loc:   loc,
			}),
		}
	})
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteAppError(w, r, http.StatusNotFound, h.deps)
}

func (h handlers) write(w http.ResponseWriter, r *http.Request, build pagerender.PageFunc) {
	if err := pagerender.WriteLocalizedPage(w, r, h.deps, build); err != nil {
		h.deps.Logf("glimpse render failed path=%s request_id=%s err=%v", r.URL.Path, httpx.RequestIDFrom(r), err)
	}
}
