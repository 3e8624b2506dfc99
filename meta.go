package folioedge

import "strings"

// PageMeta carries per-page OpenGraph and SEO metadata into the crawler document.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	Image       SocialImageSpec
}

// SocialImageSpec points at a pre-rendered static social card. Width and
// Height must be the true pixel dimensions of the asset: platforms lay out
// previews from these values without re-measuring the image.
type SocialImageSpec struct {
	Path   string
	Width  int
	Height int
}

// socialImages maps crawler categories to their platform-sized card assets.
// The generic fallback is the plain og.jpg at the standard card size.
var socialImages = map[CrawlerCategory]SocialImageSpec{
	CrawlerTwitter:  {Path: "/social/x-1200x675.jpg", Width: 1200, Height: 675},
	CrawlerLinkedIn: {Path: "/social/linkedin-1200x627.jpg", Width: 1200, Height: 627},
	CrawlerFacebook: {Path: "/social/facebook-1200x630.jpg", Width: 1200, Height: 630},
	CrawlerWhatsApp: {Path: "/social/whatsapp-800x800.jpg", Width: 800, Height: 800},
	CrawlerTelegram: {Path: "/social/telegram-1200x630.jpg", Width: 1200, Height: 630},
	CrawlerDiscord:  {Path: "/social/discord-1200x630.jpg", Width: 1200, Height: 630},
}

var fallbackImage = SocialImageSpec{Path: "/og.jpg", Width: 1200, Height: 630}

// SocialImageFor returns the card asset for a crawler category, falling back
// to the generic og.jpg for categories without a dedicated asset.
func SocialImageFor(cat CrawlerCategory) SocialImageSpec {
	if spec, ok := socialImages[cat]; ok {
		return spec
	}
	return fallbackImage
}

// MetaMapper resolves request paths to page metadata. Site-wide defaults come
// from the injected SiteConfig rather than from literals scattered through
// the route table, so tests can override them.
type MetaMapper struct {
	cfg SiteConfig
}

// NewMetaMapper creates a mapper using cfg for titles and default text.
func NewMetaMapper(cfg SiteConfig) *MetaMapper {
	return &MetaMapper{cfg: cfg}
}

// Resolve maps a URL path to page metadata. Top-level routes match exactly;
// anything under /blog/ gets article metadata with a generic placeholder
// title, since no post store exists on this side. Unrecognized paths fall
// back to the homepage metadata without any 404 signaling.
func (m *MetaMapper) Resolve(path string) PageMeta {
	cfg := m.cfg
	home := PageMeta{
		Title:       cfg.Name,
		Description: cfg.Description,
		OGType:      "website",
	}

	if strings.HasPrefix(path, "/blog/") {
		return PageMeta{
			Title:       "Blog Post | " + cfg.Name,
			Description: "Writing on software engineering, the web, and things built along the way.",
			OGType:      "article",
		}
	}

	switch path {
	case "/":
		return home
	case "/about":
		return PageMeta{
			Title:       "About | " + cfg.Name,
			Description: "Who I am, what I work on, and how to reach me.",
			OGType:      "website",
		}
	case "/projects":
		return PageMeta{
			Title:       "Projects | " + cfg.Name,
			Description: "Selected projects and experiments by " + cfg.Name + ".",
			OGType:      "website",
		}
	case "/contact":
		return PageMeta{
			Title:       "Contact | " + cfg.Name,
			Description: "Get in touch with " + cfg.Name + ".",
			OGType:      "website",
		}
	case "/blog":
		return PageMeta{
			Title:       "Blog | " + cfg.Name,
			Description: "Writing on software engineering, the web, and things built along the way.",
			OGType:      "website",
		}
	}
	return home
}
