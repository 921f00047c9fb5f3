package templates

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/kakascoaching/site/internal/carousel"
	"github.com/kakascoaching/site/internal/content"
	"github.com/kakascoaching/site/internal/leads"
	_ "github.com/kakascoaching/site/internal/platform/i18n/catalog"
	"golang.org/x/net/html"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func englishLoc() Localizer {
	return message.NewPrinter(language.MustParse("en-US"))
}

func renderComponent(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

func renderInLayout(t *testing.T, shell Shell, body templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	ctx := templ.WithChildren(context.Background(), body)
	if err := Layout(shell).Render(ctx, &buf); err != nil {
		t.Fatalf("render layout: %v", err)
	}
	return buf.String()
}

func parseHTML(t *testing.T, body string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode && attr(n, "id") == id {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

func findAllByClass(n *html.Node, class string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			for _, field := range strings.Fields(attr(n, "class")) {
				if field == class {
					out = append(out, n)
					break
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}

func testCatalog() *content.Catalog {
	return &content.Catalog{
		Site: content.Site{
			Name:          "Kaka's Coaching Institute",
			Tagline:       "Where learning is fun.",
			Email:         "hello@example.com",
			WhatsApp:      "https://wa.me/100",
			WhatsAppLabel: "+1 00",
			EnrollHeading: "Join us!",
		},
		Nav: []content.Link{
			{Label: "Home", Href: "/"},
			{Label: "Courses", Href: "/courses"},
			{Label: "Notes", Href: "/notes"},
		},
		Socials: []content.Social{{Name: "Facebook", Href: "https://facebook.com"}},
		Splash:  []string{"Learn.", "Grow."},
		Courses: []content.Course{{Key: "home-tuition", Title: "Home Tuition", Summary: "One to one.", BodyHTML: "<p>Body</p>"}},
		Stories: []content.Story{
			{Name: "Story 0", Text: "t0", Rating: 5},
			{Name: "Story 1", Text: "t1", Rating: 4},
			{Name: "Story 2", Text: "t2", Rating: 5},
			{Name: "Story 3", Text: "t3", Rating: 3},
			{Name: "Story 4", Text: "t4", Rating: 5},
		},
	}
}

func TestLayoutWrapsChildrenInShell(t *testing.T) {
	t.Parallel()

	shell := Shell{
		Title:   "Courses",
		Lang:    "ur-PK",
		Dir:     "rtl",
		Path:    "/courses",
		Catalog: testCatalog(),
		Languages: []LanguageLink{
			{Tag: "en-US", Label: "English", URL: "/courses?lang=en-US"},
			{Tag: "ur-PK", Label: "اردو", URL: "/courses?lang=ur-PK", Active: true},
		},
		Toast: &Toast{Kind: "success", Message: "Saved"},
		Loc:   englishLoc(),
		Year:  2026,
	}
	body := renderInLayout(t, shell, CoursesPage(shell.Catalog.Courses, shell.Loc))
	doc := parseHTML(t, body)

	for _, marker := range []string{
		`lang="ur-PK"`,
		`dir="rtl"`,
		"<title>Courses | Kaka&#39;s Coaching Institute</title>",
		`href="/static/site.css"`,
		`href="mailto:hello@example.com"`,
		"© 2026 Kaka&#39;s Coaching Institute.",
	} {
		if !strings.Contains(body, marker) {
			t.Fatalf("body missing %q", marker)
		}
	}

	mainNode := findByID(doc, MainContentID)
	if mainNode == nil || findByID(mainNode, "course-home-tuition") == nil {
		t.Fatalf("main content does not contain the page body")
	}
	toast := findByID(doc, "toast")
	if toast == nil || textOf(toast) != "Saved" {
		t.Fatalf("toast = %v", toast)
	}

	var current []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" && attr(n, "aria-current") == "page" {
			current = append(current, attr(n, "href"))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	if strings.Join(current, ",") != "/courses,/courses?lang=ur-PK" {
		t.Fatalf("aria-current links = %v", current)
	}
}

func TestMainContentRendersOnlyChildren(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := templ.WithChildren(context.Background(), ErrorState(http.StatusNotFound, "", englishLoc()))
	if err := MainContent().Render(ctx, &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	body := buf.String()
	if strings.Contains(body, "<html") {
		t.Fatalf("fragment rendered document: %s", body)
	}
	if !strings.Contains(body, `data-status="404"`) {
		t.Fatalf("fragment missing error state: %s", body)
	}
}

func TestReviewsCarouselShowsWrappedWindow(t *testing.T) {
	t.Parallel()

	stories := testCatalog().Stories
	view := ReviewsView{
		Stories: stories,
		Ring:    carousel.New(len(stories), 4),
		Per:     3,
		Loc:     englishLoc(),
	}
	doc := parseHTML(t, renderComponent(t, ReviewsCarousel(view)))

	cards := findAllByClass(doc, "story-card")
	var names []string
	for _, card := range cards {
		names = append(names, textOf(card.FirstChild))
	}
	if got := strings.Join(names, ","); got != "Story 4,Story 0,Story 1" {
		t.Fatalf("visible stories = %q", got)
	}

	prev := findAllByClass(doc, "carousel-prev")
	if len(prev) != 1 || attr(prev[0], "href") != "/reviews?auto=0&dir=prev&index=1&per=3" {
		t.Fatalf("prev link = %v", prev)
	}
	next := findAllByClass(doc, "carousel-next")
	if len(next) != 1 || attr(next[0], "hx-get") != "/reviews/carousel?auto=0&dir=next&index=2&per=3" {
		t.Fatalf("next link = %v", next)
	}
	dots := findAllByClass(doc, "dot")
	if len(dots) != len(stories) || attr(dots[4], "aria-current") != "page" {
		t.Fatalf("dots = %d, current dot mismatch", len(dots))
	}
	node := findByID(doc, CarouselID)
	if attr(node, "hx-trigger") != "" {
		t.Fatalf("manual carousel should not auto-advance")
	}
}

func TestReviewsCarouselAutoAdvance(t *testing.T) {
	t.Parallel()

	stories := testCatalog().Stories
	view := ReviewsView{
		Stories: stories,
		Ring:    carousel.New(len(stories), 0),
		Per:     1,
		Auto:    true,
		Loc:     englishLoc(),
	}
	doc := parseHTML(t, renderComponent(t, ReviewsCarousel(view)))
	node := findByID(doc, CarouselID)
	if node == nil {
		t.Fatal("carousel not rendered")
	}
	if got := attr(node, "hx-trigger"); got != "every 4200ms" {
		t.Fatalf("hx-trigger = %q", got)
	}
	if got := attr(node, "hx-get"); got != "/reviews/carousel?auto=1&dir=next&index=1&per=1" {
		t.Fatalf("hx-get = %q", got)
	}
}

func TestReviewsCarouselEmpty(t *testing.T) {
	t.Parallel()

	body := renderComponent(t, ReviewsCarousel(ReviewsView{Per: 3, Loc: englishLoc()}))
	if !strings.Contains(body, `id="reviews-carousel"`) || strings.Contains(body, "story-card") {
		t.Fatalf("empty carousel = %s", body)
	}
}

func TestFormRendersInlineErrorsAndValues(t *testing.T) {
	t.Parallel()

	values := map[string]string{"user_name": "Ali", "user_email": "nope"}
	errs := leads.Enrollment.Validate(values)
	view := FormView{
		Form:      leads.Enrollment,
		Action:    "/enroll",
		Values:    values,
		Errors:    errs,
		Alert:     "Please correct the highlighted fields.",
		SubmitKey: "forms.enroll.submit",
		Loc:       englishLoc(),
	}
	body := renderComponent(t, EnrollPage("Join us!", view))
	doc := parseHTML(t, body)

	name := findByID(doc, "enrollment-user_name")
	if name == nil || attr(name, "value") != "Ali" {
		t.Fatalf("user_name input = %v", name)
	}
	if _, ok := errs["user_name"]; ok {
		t.Fatalf("unexpected user_name error")
	}
	contactErr := findByID(doc, "enrollment-user_contact-error")
	if contactErr == nil || textOf(contactErr) != "Contact is required" {
		t.Fatalf("contact error = %v", contactErr)
	}
	emailErr := findByID(doc, "enrollment-user_email-error")
	if emailErr == nil || textOf(emailErr) != "Invalid email address" {
		t.Fatalf("email error = %v", emailErr)
	}
	if email := findByID(doc, "enrollment-user_email"); attr(email, "aria-invalid") != "true" {
		t.Fatalf("email input not marked invalid")
	}
	if area := findByID(doc, "enrollment-user_message"); area == nil || area.Data != "textarea" {
		t.Fatalf("user_message should be a textarea")
	}
	if !strings.Contains(body, `role="alert"`) {
		t.Fatalf("alert missing")
	}
}

func TestIntakeSuccessReplacesForm(t *testing.T) {
	t.Parallel()

	view := FormView{
		Form:       leads.Intake,
		Action:     "/announcements",
		Success:    "Thank you!",
		SubmitKey:  "forms.intake.submit",
		SaveKey:    "forms.intake.save",
		AnotherKey: "forms.intake.another",
		Loc:        englishLoc(),
	}
	body := renderComponent(t, AnnouncementsPage("Intake", view))
	if strings.Contains(body, "<form") {
		t.Fatalf("success state should not render the form")
	}
	if !strings.Contains(body, "Submit another response") {
		t.Fatalf("missing submit-another link: %s", body)
	}

	view.Success = ""
	body = renderComponent(t, AnnouncementsPage("Intake", view))
	if !strings.Contains(body, `name="action" value="save"`) {
		t.Fatalf("save-for-later button missing: %s", body)
	}
	if !strings.Contains(body, `type="tel"`) {
		t.Fatalf("contact number should be a tel input")
	}
}

func TestHomePageSections(t *testing.T) {
	t.Parallel()

	catalog := testCatalog()
	loc := englishLoc()
	body := renderComponent(t, HomePage(HomeView{
		Catalog: catalog,
		Reviews: ReviewsView{Stories: catalog.Stories, Ring: carousel.New(len(catalog.Stories), 0), Per: 3, Auto: true, Loc: loc},
		Enroll:  FormView{Form: leads.Enrollment, Action: "/enroll", SubmitKey: "forms.enroll.submit", Loc: loc},
		Loc:     loc,
	}))
	doc := parseHTML(t, body)
	for _, id := range []string{"home", "courses", "reviews", CarouselID, "enroll", FormID(leads.Enrollment.ID)} {
		if findByID(doc, id) == nil {
			t.Fatalf("home page missing #%s", id)
		}
	}
	if got := len(findAllByClass(doc, "hero-splash")); got != 1 {
		t.Fatalf("splash lists = %d", got)
	}
	if !strings.Contains(body, "<p>Body</p>") {
		t.Fatalf("course markdown body not rendered")
	}
}

func TestPaperViewerNavigation(t *testing.T) {
	t.Parallel()

	subject := content.Subject{Slug: "islamic-studies"}
	papers := content.PaperPaths(subject.Slug, "III")
	doc := parseHTML(t, renderComponent(t, PaperViewer(PaperView{
		Subject: subject,
		Class:   "III",
		Papers:  papers,
		Ring:    carousel.New(len(papers), 0),
		Loc:     englishLoc(),
	})))

	viewer := findByID(doc, PaperViewerID)
	if viewer == nil || attr(viewer, "data-keyboard-nav") != "true" {
		t.Fatalf("viewer = %v", viewer)
	}
	var prev, next, img, save *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch {
			case attr(n, "data-download") == "paper":
				save = n
			case attr(n, "data-nav") == "prev":
				prev = n
			case attr(n, "data-nav") == "next":
				next = n
			case n.Data == "img" && img == nil:
				img = n
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(viewer)
	if prev == nil || attr(prev, "href") != "/notes/islamic-studies/III?paper=9" {
		t.Fatalf("prev should wrap to the last paper, got %v", prev)
	}
	if next == nil || attr(next, "href") != "/notes/islamic-studies/III?paper=1" {
		t.Fatalf("next = %v", next)
	}
	if img == nil || attr(img, "src") != papers[0] {
		t.Fatalf("img = %v", img)
	}
	if save == nil || attr(save, "href") != papers[0] || attr(save, "download") != "islamic-studies-III-1.jpg" {
		t.Fatalf("paper download link = %v", save)
	}
}

func TestAlbumViewerRendersVideo(t *testing.T) {
	t.Parallel()

	album := content.Album{Slug: "sports-day", Title: "Sports Day", Video: true, Images: 2}
	items := album.Items()
	body := renderComponent(t, AlbumViewer(AlbumView{
		Album: album,
		Items: items,
		Ring:  carousel.New(len(items), 0),
		Loc:   englishLoc(),
	}))
	if !strings.Contains(body, "<video") || !strings.Contains(body, `poster="/assets/media/sports-day/main.png"`) {
		t.Fatalf("video item not rendered: %s", body)
	}
	if !strings.Contains(body, "1 of 3") {
		t.Fatalf("position missing: %s", body)
	}
}

func TestErrorState(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status int
		want   string
	}{
		{status: http.StatusNotFound, want: ErrorTitle(http.StatusNotFound, englishLoc())},
		{status: http.StatusInternalServerError, want: ErrorTitle(http.StatusInternalServerError, englishLoc())},
	}
	for _, tc := range tests {
		body := renderComponent(t, ErrorState(tc.status, "", englishLoc()))
		if !strings.Contains(body, tc.want) {
			t.Fatalf("status %d body missing %q: %s", tc.status, tc.want, body)
		}
	}
	if ErrorTitle(http.StatusNotFound, englishLoc()) == ErrorTitle(http.StatusBadGateway, englishLoc()) {
		t.Fatal("404 and 5xx titles should differ")
	}
}
