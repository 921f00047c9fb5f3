package glimpse

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kakascoaching/site/internal/content"
	module "github.com/kakascoaching/site/internal/services/site/module"
	"github.com/kakascoaching/site/internal/services/site/routepath"
)

type staticContent struct {
	catalog *content.Catalog
}

func (s staticContent) Current() *content.Catalog { return s.catalog }

func serve(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	deps := module.Dependencies{Content: staticContent{catalog: &content.Catalog{
		Albums: []content.Album{
			{Slug: "annual-day", Title: "Annual Day", Video: true, Images: 3},
			{Slug: "science-fair", Title: "Science Fair", Images: 2},
		},
		Activities: []string{"Quran recitation", "Art and craft"},
	}}}
	mount, err := New().Mount(deps)
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	rr := httptest.NewRecorder()
	mount.Handler.ServeHTTP(rr, req)
	return rr
}

func TestModuleIDReturnsGlimpse(t *testing.T) {
	t.Parallel()

	if got := New().ID(); got != "glimpse" {
		t.Fatalf("ID() = %q, want %q", got, "glimpse")
	}
}

func TestGlimpseListsAlbumsAndActivities(t *testing.T) {
	t.Parallel()

	rr := serve(t, httptest.NewRequest(http.MethodGet, routepath.Glimpse, nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	for _, marker := range []string{
		`href="/glimpse/annual-day"`,
		`src="/assets/media/annual-day/main.png"`,
		`src="/assets/media/science-fair/1.jpeg"`,
		"Art and craft",
	} {
		if !strings.Contains(body, marker) {
			t.Fatalf("body missing %q", marker)
		}
	}
}

func TestAlbumViewerWrapsItems(t *testing.T) {
	t.Parallel()

	tests := []struct {
		query string
		want  string
	}{
		{query: "", want: `src="/assets/media/annual-day/1.mp4"`},
		{query: "?item=3", want: `src="/assets/media/annual-day/3.jpeg"`},
		{query: "?item=4", want: `src="/assets/media/annual-day/1.mp4"`},
		{query: "?item=-1", want: `src="/assets/media/annual-day/3.jpeg"`},
	}
	for _, tc := range tests {
		rr := serve(t, httptest.NewRequest(http.MethodGet, routepath.GlimpseAlbum("annual-day")+tc.query, nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
		}
		figure := rr.Body.String()
		start := strings.Index(figure, "<figure>")
		end := strings.Index(figure, "</figure>")
		if start < 0 || end < start {
			t.Fatalf("figure missing for %q", tc.query)
		}
		if !strings.Contains(figure[start:end], tc.want) {
			t.Fatalf("item %q figure = %s, want %s", tc.query, figure[start:end], tc.want)
		}
	}
}

func TestUnknownAlbumIsNotFound(t *testing.T) {
	t.Parallel()

	rr := serve(t, httptest.NewRequest(http.MethodGet, routepath.GlimpseAlbum("missing"), nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}
