// Package app composes site modules into the root handler.
package app

import (
	"net/http"

	module "github.com/kakascoaching/site/internal/services/site/module"
)

// Config captures the composition inputs for the site root handler.
type Config struct {
	Dependencies module.Dependencies
	Modules      []module.Module
}

// BuildRootHandler composes cfg's modules into one handler.
func BuildRootHandler(cfg Config) (http.Handler, error) {
	return Composer{}.Compose(ComposeInput{
		Dependencies: cfg.Dependencies,
		Modules:      cfg.Modules,
	})
}
