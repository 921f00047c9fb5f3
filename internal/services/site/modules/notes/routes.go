package notes

import (
	"net/http"

	"github.com/kakascoaching/site/internal/services/site/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Notes, h.handleIndex)
	mux.HandleFunc(http.MethodGet+" "+routepath.NotesPrefix+"{$}", h.handleIndex)
	mux.HandleFunc(http.MethodGet+" "+routepath.NotesSubjectPattern, h.handleSubject)
	mux.HandleFunc(http.MethodGet+" "+routepath.NotesClassPattern, h.handleClass)
	mux.HandleFunc(http.MethodGet+" "+routepath.NotesDownloadPattern, h.handleDownload)
	mux.HandleFunc(http.MethodGet+" "+routepath.NotesPrefix+"{rest...}", h.handleNotFound)
}
