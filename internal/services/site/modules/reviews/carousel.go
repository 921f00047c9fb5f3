package reviews

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/kakascoaching/site/internal/carousel"
	"github.com/kakascoaching/site/internal/content"
	"github.com/kakascoaching/site/internal/services/site/routepath"
	"github.com/kakascoaching/site/internal/services/site/templates"
)

const (
	// DefaultPerPage is the number of cards shown on wide screens.
	DefaultPerPage = 3
	maxPerPage     = 3
)

// State reads the carousel query parameters. Missing or malformed values
// fall back to index 0, DefaultPerPage cards and auto-advance on.
func State(r *http.Request) routepath.CarouselState {
	state := routepath.CarouselState{Per: DefaultPerPage, Auto: true}
	if r == nil || r.URL == nil {
		return state
	}
	query := r.URL.Query()
	if index, err := strconv.Atoi(strings.TrimSpace(query.Get(routepath.CarouselIndexParam))); err == nil {
		state.Index = index
	}
	if per, err := strconv.Atoi(strings.TrimSpace(query.Get(routepath.CarouselPerParam))); err == nil {
		state.Per = min(max(per, 1), maxPerPage)
	}
	state.Dir = carousel.ParseDirection(query.Get(routepath.CarouselDirParam)).String()
	if query.Get(routepath.CarouselAutoParam) == "0" {
		state.Auto = false
	}
	return state
}

// View builds the testimonials view for r.
func View(r *http.Request, catalog *content.Catalog, loc templates.Localizer) templates.ReviewsView {
	state := State(r)
	var stories []content.Story
	var highlights []content.Highlight
	if catalog != nil {
		stories = catalog.Stories
		highlights = catalog.Highlights
	}
	return templates.ReviewsView{
		Stories:    stories,
		Highlights: highlights,
		Ring:       carousel.New(len(stories), state.Index),
		Direction:  carousel.ParseDirection(state.Dir),
		Per:        state.Per,
		Auto:       state.Auto,
		Loc:        loc,
	}
}
