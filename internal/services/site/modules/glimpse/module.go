package glimpse

import (
	"net/http"

	module "github.com/kakascoaching/site/internal/services/site/module"
	"github.com/kakascoaching/site/internal/services/site/routepath"
)

// Module provides the gallery and its album viewer.
type Module struct{}

// New returns a glimpse module.
func New() Module { return Module{} }

// ID returns a stable module identifier.
func (Module) ID() string { return "glimpse" }

// Mount wires gallery route handlers.
func (Module) Mount(deps module.Dependencies) (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(deps))
	return module.Mount{Prefix: routepath.GlimpsePrefix, Handler: mux}, nil
}
