package public

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

func testCatalog() *content.Catalog {
	return &content.Catalog{
		Site:    content.Site{Name: "Test Institute", Tagline: "Learn with us", EnrollHeading: "Join today"},
		Splash:  []string{"Learn. Grow. Shine."},
		Courses: []content.Course{{Key: "quran-studies", Title: "Quran Studies", Summary: "Tajweed"}},
		Stories: []content.Story{{Name: "Amina", Text: "Great", Rating: 5}},
		Subjects: []content.Subject{
			{Slug: "english"},
			{Slug: "islamic-studies"},
		},
	}
}

func serve(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	mount, err := New().Mount(module.Dependencies{Content: staticContent{catalog: testCatalog()}})
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	rr := httptest.NewRecorder()
	mount.Handler.ServeHTTP(rr, req)
	return rr
}

func TestModuleIDReturnsPublic(t *testing.T) {
	t.Parallel()

	if got := New().ID(); got != "public" {
		t.Fatalf("ID() = %q, want %q", got, "public")
	}
}

func TestHomeRendersAllSections(t *testing.T) {
	t.Parallel()

	rr := serve(t, httptest.NewRequest(http.MethodGet, routepath.Root, nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	for _, marker := range []string{
		`id="home"`,
		`id="courses"`,
		`id="reviews-carousel"`,
		`id="enroll"`,
		`action="/enroll"`,
		"Learn. Grow. Shine.",
		"Quran Studies",
		"Amina",
	} {
		if !strings.Contains(body, marker) {
			t.Fatalf("home body missing %q", marker)
		}
	}
}

func TestCoursesPage(t *testing.T) {
	t.Parallel()

	rr := serve(t, httptest.NewRequest(http.MethodGet, routepath.Courses, nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if !strings.Contains(rr.Body.String(), `id="course-quran-studies"`) {
		t.Fatalf("courses body missing course card")
	}
}

func TestHealth(t *testing.T) {
	t.Parallel()

	rr := serve(t, httptest.NewRequest(http.MethodGet, routepath.Health, nil))
	if rr.Code != http.StatusOK || rr.Body.String() != "ok" {
		t.Fatalf("health = %d %q", rr.Code, rr.Body.String())
	}
}

func TestLegacyPathsRedirectPermanently(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want string
	}{
		{path: "/Courses", want: "/courses"},
		{path: "/Reviews", want: "/reviews"},
		{path: "/Enroll", want: "/enroll"},
		{path: "/Notes", want: "/notes"},
		{path: "/Glimpse", want: "/glimpse"},
		{path: "/Announcements?lang=ur-PK", want: "/announcements?lang=ur-PK"},
		{path: "/Notes/Islamic-Studies", want: "/notes/islamic-studies"},
		{path: "/Notes/English", want: "/notes/english"},
	}
	for _, tc := range tests {
		rr := serve(t, httptest.NewRequest(http.MethodGet, tc.path, nil))
		if rr.Code != http.StatusMovedPermanently {
			t.Fatalf("GET %s status = %d, want %d", tc.path, rr.Code, http.StatusMovedPermanently)
		}
		if got := rr.Header().Get("Location"); got != tc.want {
			t.Fatalf("GET %s location = %q, want %q", tc.path, got, tc.want)
		}
	}
}

func TestUnknownPathRendersNotFound(t *testing.T) {
	t.Parallel()

	rr := serve(t, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
	if !strings.Contains(rr.Body.String(), `data-status="404"`) {
		t.Fatalf("404 body missing error state")
	}
}
