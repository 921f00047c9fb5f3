package reviews

import (
	"net/http"

	module "github.com/kakascoaching/site/internal/services/site/module"
	"github.com/kakascoaching/site/internal/services/site/routepath"
)

// Module provides the testimonials page and carousel fragment.
type Module struct{}

// New returns a reviews module.
func New() Module { return Module{} }

// ID returns a stable module identifier.
func (Module) ID() string { return "reviews" }

// Mount wires reviews route handlers.
func (Module) Mount(deps module.Dependencies) (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(deps))
	return module.Mount{Prefix: routepath.ReviewsPrefix, Handler: mux}, nil
}
