package templates

import (
	"github.com/a-h/templ"
	"github.com/kakascoaching/site/internal/carousel"
	"github.com/kakascoaching/site/internal/content"
	"github.com/kakascoaching/site/internal/services/site/routepath"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// GalleryViewerID is the element the gallery viewer fragment replaces.
const GalleryViewerID = "gallery-viewer"

// GlimpsePage renders the album grid and the highlight activities.
func GlimpsePage(albums []content.Album, activities []string, loc Localizer) templ.Component {
	return Component(Section(
		ID("glimpse"),
		Class("glimpse"),
		H1(msg(loc, "site.glimpse.title")),
		P(Class("section-subtitle"), msg(loc, "site.glimpse.subtitle")),
		Ul(
			Class("album-grid"),
			g.Group(g.Map(albums, func(album content.Album) g.Node {
				return Li(A(
					Class("album-card"),
					Href(routepath.GlimpseAlbum(album.Slug)),
					albumCover(album),
					H2(g.Text(album.Title)),
				))
			})),
		),
		g.If(len(activities) > 0, Div(
			Class("activities"),
			H2(msg(loc, "site.glimpse.activities")),
			Ul(g.Group(g.Map(activities, func(activity string) g.Node {
				return Li(g.Text(activity))
			}))),
		)),
	))
}

func albumCover(album content.Album) g.Node {
	items := album.Items()
	if len(items) == 0 {
		return nil
	}
	cover := items[0]
	src := cover.Src()
	if poster := cover.PosterSrc(); poster != "" {
		src = poster
	}
	return Img(Src(src), Alt(cover.Alt), lazy())
}

// AlbumView is the state of the gallery viewer.
type AlbumView struct {
	Album content.Album
	Items []content.MediaItem
	Ring  carousel.Ring
	Loc   Localizer
}

// AlbumViewer renders one album positioned at the current item.
func AlbumViewer(v AlbumView) templ.Component {
	return Component(albumViewerNode(v))
}

func (v AlbumView) link(r carousel.Ring, label, rel string, children ...g.Node) g.Node {
	href := routepath.GlimpseItem(v.Album.Slug, r.Index())
	return navLink(href, href, "#"+GalleryViewerID, label, rel, children...)
}

func albumViewerNode(v AlbumView) g.Node {
	ring := v.Ring
	if ring.Empty() || len(v.Items) != ring.Len() {
		return Section(ID(GalleryViewerID), Class("viewer"), H1(g.Text(v.Album.Title)))
	}
	current := ring.Index()
	item := v.Items[current]
	thumbs := make([]g.Node, 0, ring.Len())
	for i, thumb := range v.Items {
		src := thumb.Src()
		if poster := thumb.PosterSrc(); poster != "" {
			src = poster
		}
		thumbs = append(thumbs, Li(v.link(
			ring.GoTo(i),
			thumb.Alt,
			"",
			ariaCurrent(i == current),
			Img(Src(src), Alt(""), lazy()),
		)))
	}
	return Section(
		ID(GalleryViewerID),
		Class("viewer"),
		Data("keyboard-nav", "true"),
		hxPushURL(),
		H1(g.Text(v.Album.Title)),
		P(Class("viewer-position"), msg(v.Loc, "site.glimpse.item", current+1, ring.Len())),
		Figure(
			mediaNode(item),
			caption(g.Text(item.Alt)),
		),
		Nav(
			Class("viewer-nav"),
			v.link(ring.Prev(), tr(v.Loc, "site.glimpse.previous"), "prev", g.Text("‹")),
			v.link(ring.Next(), tr(v.Loc, "site.glimpse.next"), "next", g.Text("›")),
		),
		Ol(Class("viewer-thumbs"), g.Group(thumbs)),
		A(Class("back"), Data("nav", "back"), Href(routepath.Glimpse), msg(v.Loc, "site.glimpse.back")),
	)
}

func mediaNode(item content.MediaItem) g.Node {
	if item.Kind == content.MediaVideo {
		return Video(
			Src(item.Src()),
			g.Attr("poster", item.PosterSrc()),
			g.Attr("controls"),
			g.Attr("playsinline"),
			g.Attr("preload", "metadata"),
		)
	}
	return Img(Src(item.Src()), Alt(item.Alt))
}
