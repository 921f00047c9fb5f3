package routepath

import "testing"

func TestTopLevelRouteConstants(t *testing.T) {
	t.Parallel()

	if Root != "/" {
		t.Fatalf("Root = %q", Root)
	}
	if Health != "/up" {
		t.Fatalf("Health = %q", Health)
	}
	if NotesPrefix != "/notes/" {
		t.Fatalf("NotesPrefix = %q", NotesPrefix)
	}
	if ReviewsCarousel != "/reviews/carousel" {
		t.Fatalf("ReviewsCarousel = %q", ReviewsCarousel)
	}
}

func TestNotesRouteBuilders(t *testing.T) {
	t.Parallel()

	if got := NotesSubject("english"); got != "/notes/english" {
		t.Fatalf("NotesSubject() = %q", got)
	}
	if got := NotesClass("islamic-studies", "IV"); got != "/notes/islamic-studies/IV" {
		t.Fatalf("NotesClass() = %q", got)
	}
	if got := NotesPaper("urdu", "X", 3); got != "/notes/urdu/X?paper=3" {
		t.Fatalf("NotesPaper() = %q", got)
	}
	if got := NotesDownload("science", "I"); got != "/notes/science/I/download" {
		t.Fatalf("NotesDownload() = %q", got)
	}
	if got := NotesSubject(" a b "); got != "/notes/a%20b" {
		t.Fatalf("NotesSubject() escape = %q", got)
	}
}

func TestGlimpseRouteBuilders(t *testing.T) {
	t.Parallel()

	if got := GlimpseAlbum("sports-day"); got != "/glimpse/sports-day" {
		t.Fatalf("GlimpseAlbum() = %q", got)
	}
	if got := GlimpseItem("sports-day", 2); got != "/glimpse/sports-day?item=2" {
		t.Fatalf("GlimpseItem() = %q", got)
	}
}

func TestReviewsCarouselURL(t *testing.T) {
	t.Parallel()

	got := ReviewsCarouselURL(CarouselState{Index: 3, Per: 2, Dir: "next", Auto: true})
	if got != "/reviews/carousel?auto=1&dir=next&index=3&per=2" {
		t.Fatalf("ReviewsCarouselURL() = %q", got)
	}
	got = ReviewsCarouselURL(CarouselState{Index: 0})
	if got != "/reviews/carousel?auto=0&index=0" {
		t.Fatalf("ReviewsCarouselURL() = %q", got)
	}
}

func TestReviewsURL(t *testing.T) {
	t.Parallel()

	if got := ReviewsURL(CarouselState{Index: 1, Per: 3}); got != "/reviews?auto=0&index=1&per=3" {
		t.Fatalf("ReviewsURL() = %q", got)
	}
}
