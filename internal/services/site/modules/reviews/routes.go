package reviews

import (
	"net/http"

	"github.com/kakascoaching/site/internal/services/site/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Reviews, h.handleIndex)
	mux.HandleFunc(http.MethodGet+" "+routepath.ReviewsPrefix+"{$}", h.handleIndex)
	mux.HandleFunc(http.MethodGet+" "+routepath.ReviewsCarousel, h.handleCarousel)
	mux.HandleFunc(http.MethodGet+" "+routepath.ReviewsPrefix+"{rest...}", h.handleNotFound)
}
