package notes

import (
	"net/http"

	module "github.com/kakascoaching/site/internal/services/site/module"
	"github.com/kakascoaching/site/internal/services/site/routepath"
)

// Module provides the notes catalog, paper viewer and class downloads.
type Module struct{}

// New returns a notes module.
func New() Module { return Module{} }

// ID returns a stable module identifier.
func (Module) ID() string { return "notes" }

// Mount wires notes route handlers.
func (Module) Mount(deps module.Dependencies) (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(deps))
	return module.Mount{Prefix: routepath.NotesPrefix, Handler: mux}, nil
}
