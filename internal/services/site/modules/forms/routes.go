package forms

import (
	"net/http"

	"github.com/kakascoaching/site/internal/services/site/platform/httpx"
)

func registerRoutes(mux *http.ServeMux, p page, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+p.path, h.handleShow)
	mux.HandleFunc(http.MethodGet+" "+p.prefix+"{$}", h.handleShow)
	mux.HandleFunc(http.MethodPost+" "+p.path, h.handleSubmit)
	mux.HandleFunc(http.MethodPost+" "+p.prefix+"{$}", h.handleSubmit)
	mux.HandleFunc(http.MethodGet+" "+p.prefix+"{rest...}", h.handleNotFound)
	mux.HandleFunc(http.MethodPost+" "+p.prefix+"{rest...}", httpx.MethodNotAllowed(http.MethodGet))
}
