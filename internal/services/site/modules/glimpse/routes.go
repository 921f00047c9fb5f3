package glimpse

import (
	"net/http"

	"github.com/kakascoaching/site/internal/services/site/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Glimpse, h.handleIndex)
	mux.HandleFunc(http.MethodGet+" "+routepath.GlimpsePrefix+"{$}", h.handleIndex)
	mux.HandleFunc(http.MethodGet+" "+routepath.GlimpseAlbumPattern, h.handleAlbum)
	mux.HandleFunc(http.MethodGet+" "+routepath.GlimpsePrefix+"{rest...}", h.handleNotFound)
}
