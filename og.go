package folioedge

import (
	"fmt"
	"net/url"
	"strings"
)

// OGImageRequest holds the query parameters of an /api/og request. Every
// field is optional; the renderer fills defaults per variant.
type OGImageRequest struct {
	Type        string // "homepage", "blog" or "blog-post"
	Title       string
	Subtitle    string
	Description string
	BlogTitle   string
	BlogExcerpt string
	Date        string
	ReadTime    string
}

// OGRenderer renders 1200x630 SVG preview cards. It is a pure function of
// the request plus the config captured at construction, so identical query
// strings always produce byte-identical output and the handler can mark
// responses immutable.
type OGRenderer struct {
	cfg  SiteConfig
	host string
}

// NewOGRenderer creates a renderer using cfg for default text and the footer
// site name.
func NewOGRenderer(cfg SiteConfig) *OGRenderer {
	host := cfg.URL
	if u, err := url.Parse(cfg.URL); err == nil && u.Host != "" {
		host = u.Host
	}
	return &OGRenderer{cfg: cfg, host: host}
}

const (
	ogWidth  = 1200
	ogHeight = 630

	titleWrapAt   = 50
	excerptWrapAt = 60
)

// xmlEscaper escapes the five XML-significant characters. Query parameter
// values flow straight into the SVG, so everything must pass through here
// before insertion.
var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"\"", "&#34;",
	"'", "&#39;",
)

func xmlEscape(s string) string {
	return xmlEscaper.Replace(s)
}

// Render produces the SVG document for req. Unknown type values render the
// homepage variant.
func (r *OGRenderer) Render(req OGImageRequest) string {
	switch req.Type {
	case "blog":
		return r.renderBlog(req)
	case "blog-post":
		return r.renderBlogPost(req)
	default:
		return r.renderHomepage(req)
	}
}

func (r *OGRenderer) renderHomepage(req OGImageRequest) string {
	title := defaultString(req.Title, r.cfg.Name)
	subtitle := defaultString(req.Subtitle, "Software Engineer")
	description := defaultString(req.Description, "Building things for the web")

	var b strings.Builder
	r.openSVG(&b)
	b.WriteString(`<rect width="1200" height="630" fill="url(#bg)"/>` + "\n")
	b.WriteString(`<rect width="1200" height="630" fill="url(#grid)"/>` + "\n")
	writeCircles(&b)
	fmt.Fprintf(&b, `<text x="600" y="280" text-anchor="middle" font-family="Georgia, serif" font-size="64" font-weight="bold" fill="#f5f5f4">%s</text>`+"\n", xmlEscape(title))
	fmt.Fprintf(&b, `<text x="600" y="340" text-anchor="middle" font-family="Helvetica, Arial, sans-serif" font-size="28" fill="#a8a29e">%s</text>`+"\n", xmlEscape(subtitle))
	fmt.Fprintf(&b, `<text x="600" y="390" text-anchor="middle" font-family="Helvetica, Arial, sans-serif" font-size="22" fill="#78716c">%s</text>`+"\n", xmlEscape(description))
	b.WriteString(`<rect x="560" y="420" width="80" height="4" rx="2" fill="#f59e0b"/>` + "\n")
	fmt.Fprintf(&b, `<text x="600" y="560" text-anchor="middle" font-family="Helvetica, Arial, sans-serif" font-size="20" fill="#57534e">%s</text>`+"\n", xmlEscape(r.host))
	b.WriteString("</svg>\n")
	return b.String()
}

func (r *OGRenderer) renderBlog(req OGImageRequest) string {
	title := defaultString(req.Title, "The Blog")
	description := defaultString(req.Description, "Notes on software engineering and the web")

	titleA, titleB := wrapAt(title, titleWrapAt)
	descA, descB := wrapAt(description, excerptWrapAt)

	var b strings.Builder
	r.openSVG(&b)
	b.WriteString(`<rect width="1200" height="630" fill="url(#bg)"/>` + "\n")
	writeCircles(&b)
	writeBadge(&b, "BLOG")
	fmt.Fprintf(&b, `<text x="100" y="290" font-family="Georgia, serif" font-size="54" font-weight="bold" fill="#f5f5f4">%s</text>`+"\n", xmlEscape(titleA))
	if titleB != "" {
		fmt.Fprintf(&b, `<text x="100" y="355" font-family="Georgia, serif" font-size="54" font-weight="bold" fill="#f5f5f4">%s</text>`+"\n", xmlEscape(titleB))
	}
	fmt.Fprintf(&b, `<text x="100" y="420" font-family="Helvetica, Arial, sans-serif" font-size="24" fill="#a8a29e">%s</text>`+"\n", xmlEscape(descA))
	if descB != "" {
		fmt.Fprintf(&b, `<text x="100" y="455" font-family="Helvetica, Arial, sans-serif" font-size="24" fill="#a8a29e">%s</text>`+"\n", xmlEscape(descB))
	}
	fmt.Fprintf(&b, `<text x="100" y="550" font-family="Helvetica, Arial, sans-serif" font-size="20" fill="#78716c">%s</text>`+"\n", xmlEscape(r.cfg.Author))
	fmt.Fprintf(&b, `<text x="1100" y="550" text-anchor="end" font-family="Helvetica, Arial, sans-serif" font-size="20" fill="#57534e">%s</text>`+"\n", xmlEscape(r.host+"/blog"))
	b.WriteString("</svg>\n")
	return b.String()
}

func (r *OGRenderer) renderBlogPost(req OGImageRequest) string {
	title := defaultString(req.BlogTitle, "Untitled Post")
	excerpt := defaultString(req.BlogExcerpt, "A post from the blog of "+r.cfg.Name)
	date := defaultString(req.Date, "")
	readTime := defaultString(req.ReadTime, "5 min read")

	titleA, titleB := wrapAt(title, titleWrapAt)
	excerptA, excerptB := wrapAt(excerpt, excerptWrapAt)

	byline := r.cfg.Author
	if date != "" {
		byline = date + " · " + byline
	}

	var b strings.Builder
	r.openSVG(&b)
	b.WriteString(`<rect width="1200" height="630" fill="url(#bg)"/>` + "\n")
	writeCircles(&b)
	writeBadge(&b, "BLOG POST")
	fmt.Fprintf(&b, `<text x="100" y="280" font-family="Georgia, serif" font-size="48" font-weight="bold" fill="#f5f5f4">%s</text>`+"\n", xmlEscape(titleA))
	if titleB != "" {
		fmt.Fprintf(&b, `<text x="100" y="340" font-family="Georgia, serif" font-size="48" font-weight="bold" fill="#f5f5f4">%s</text>`+"\n", xmlEscape(titleB))
	}
	fmt.Fprintf(&b, `<text x="100" y="410" font-family="Helvetica, Arial, sans-serif" font-size="22" fill="#a8a29e">%s</text>`+"\n", xmlEscape(excerptA))
	if excerptB != "" {
		fmt.Fprintf(&b, `<text x="100" y="442" font-family="Helvetica, Arial, sans-serif" font-size="22" fill="#a8a29e">%s</text>`+"\n", xmlEscape(excerptB))
	}
	fmt.Fprintf(&b, `<text x="100" y="550" font-family="Helvetica, Arial, sans-serif" font-size="20" fill="#78716c">%s</text>`+"\n", xmlEscape(byline))
	fmt.Fprintf(&b, `<text x="1100" y="550" text-anchor="end" font-family="Helvetica, Arial, sans-serif" font-size="20" fill="#f59e0b">%s</text>`+"\n", xmlEscape(readTime))
	b.WriteString("</svg>\n")
	return b.String()
}

func (r *OGRenderer) openSVG(b *strings.Builder) {
	fmt.Fprintf(b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n", ogWidth, ogHeight, ogWidth, ogHeight)
	b.WriteString(`<defs>` + "\n")
	b.WriteString(`<linearGradient id="bg" x1="0" y1="0" x2="1" y2="1">` +
		`<stop offset="0%" stop-color="#1c1917"/>` +
		`<stop offset="100%" stop-color="#0c0a09"/>` +
		`</linearGradient>` + "\n")
	b.WriteString(`<pattern id="grid" width="40" height="40" patternUnits="userSpaceOnUse">` +
		`<path d="M 40 0 L 0 0 0 40" fill="none" stroke="#292524" stroke-width="1"/>` +
		`</pattern>` + "\n")
	b.WriteString(`</defs>` + "\n")
}

func writeCircles(b *strings.Builder) {
	b.WriteString(`<circle cx="1080" cy="120" r="180" fill="#f59e0b" opacity="0.08"/>` + "\n")
	b.WriteString(`<circle cx="140" cy="560" r="220" fill="#38bdf8" opacity="0.06"/>` + "\n")
}

func writeBadge(b *strings.Builder, label string) {
	width := 40 + 14*len(label)
	fmt.Fprintf(b, `<rect x="100" y="120" width="%d" height="44" rx="22" fill="#f59e0b" opacity="0.15"/>`+"\n", width)
	fmt.Fprintf(b, `<text x="%d" y="149" text-anchor="middle" font-family="Helvetica, Arial, sans-serif" font-size="18" font-weight="bold" letter-spacing="3" fill="#f59e0b">%s</text>`+"\n", 100+width/2, xmlEscape(label))
}

// wrapAt splits s into at most two lines at a fixed rune position. This is a
// crude approximation (it can cut mid-word) but the canvas and fonts are
// fixed, so the overflow is bounded; the second line is clipped with an
// ellipsis when the text runs past two lines.
func wrapAt(s string, pos int) (string, string) {
	runes := []rune(s)
	if len(runes) <= pos {
		return s, ""
	}
	rest := runes[pos:]
	if len(rest) > pos {
		return string(runes[:pos]), string(rest[:pos-1]) + "…"
	}
	return string(runes[:pos]), string(rest)
}

func defaultString(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
