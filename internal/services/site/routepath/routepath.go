// Package routepath stores canonical HTTP paths for site modules.
package routepath

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	Root                   = "/"
	Health                 = "/up"
	Courses                = "/courses"
	Reviews                = "/reviews"
	ReviewsPrefix          = "/reviews/"
	ReviewsCarousel        = "/reviews/carousel"
	Enroll                 = "/enroll"
	EnrollPrefix           = "/enroll/"
	Notes                  = "/notes"
	NotesPrefix            = "/notes/"
	NotesSubjectPattern    = NotesPrefix + "{subject}"
	NotesClassPattern      = NotesPrefix + "{subject}/{class}"
	NotesDownloadPattern   = NotesPrefix + "{subject}/{class}/download"
	Glimpse                = "/glimpse"
	GlimpsePrefix          = "/glimpse/"
	GlimpseAlbumPattern    = GlimpsePrefix + "{album}"
	Announcements          = "/announcements"
	AnnouncementsPrefix    = "/announcements/"
	StaticPrefix           = "/static/"
	AssetsPrefix           = "/assets/"
	EnrollSection          = "#enroll"
	CarouselIndexParam     = "index"
	CarouselPerParam       = "per"
	CarouselDirParam       = "dir"
	CarouselAutoParam      = "auto"
	PaperParam             = "paper"
	ItemParam              = "item"
	FormActionParam        = "action"
	FormActionSaveForLater = "save"
)

// NotesSubject returns the per-subject notes page.
func NotesSubject(subject string) string {
	return NotesPrefix + escapeSegment(subject)
}

// NotesClass returns the paper viewer for a subject class.
func NotesClass(subject, class string) string {
	return NotesSubject(subject) + "/" + escapeSegment(class)
}

// NotesPaper returns the paper viewer positioned at index.
func NotesPaper(subject, class string, index int) string {
	return NotesClass(subject, class) + "?" + PaperParam + "=" + strconv.Itoa(index)
}

// NotesDownload returns the zip download of a subject class.
func NotesDownload(subject, class string) string {
	return NotesClass(subject, class) + "/download"
}

// GlimpseAlbum returns the gallery viewer for an album.
func GlimpseAlbum(album string) string {
	return GlimpsePrefix + escapeSegment(album)
}

// GlimpseItem returns the gallery viewer positioned at index.
func GlimpseItem(album string, index int) string {
	return GlimpseAlbum(album) + "?" + ItemParam + "=" + strconv.Itoa(index)
}

// CarouselState is the query state of the reviews carousel.
type CarouselState struct {
	Index int
	Per   int
	Dir   string
	Auto  bool
}

// ReviewsURL returns the full reviews page URL for state.
func ReviewsURL(state CarouselState) string {
	return Reviews + "?" + state.Encode()
}

// ReviewsCarouselURL returns the carousel fragment URL for state.
func ReviewsCarouselURL(state CarouselState) string {
	return ReviewsCarousel + "?" + state.Encode()
}

// Encode renders state as a query string.
func (state CarouselState) Encode() string {
	query := url.Values{}
	query.Set(CarouselIndexParam, strconv.Itoa(state.Index))
	if state.Per > 0 {
		query.Set(CarouselPerParam, strconv.Itoa(state.Per))
	}
	if dir := strings.TrimSpace(state.Dir); dir != "" {
		query.Set(CarouselDirParam, dir)
	}
	if state.Auto {
		query.Set(CarouselAutoParam, "1")
	} else {
		query.Set(CarouselAutoParam, "0")
	}
	return query.Encode()
}

func escapeSegment(raw string) string {
	return url.PathEscape(strings.TrimSpace(raw))
}
