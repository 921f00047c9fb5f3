// Package modules lists the site's route modules in mount order.
package modules

import (
	module "github.com/kakascoaching/site/internal/services/site/module"
	"github.com/kakascoaching/site/internal/services/site/modules/forms"
	"github.com/kakascoaching/site/internal/services/site/modules/glimpse"
	"github.com/kakascoaching/site/internal/services/site/modules/notes"
	"github.com/kakascoaching/site/internal/services/site/modules/public"
	"github.com/kakascoaching/site/internal/services/site/modules/reviews"
)

// DefaultModules returns every site module in mount order.
func DefaultModules() []module.Module {
	return []module.Module{
		public.New(),
		reviews.New(),
		notes.New(),
		glimpse.New(),
		forms.NewEnroll(),
		forms.NewAnnouncements(),
	}
}
