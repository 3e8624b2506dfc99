package folioedge

import (
	"encoding/xml"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func (a *App) setupRoutes() {
	e := a.Echo

	e.GET("/api/og", a.handleOGImage)
	e.GET("/api/blog-view-counts", a.viewCounts.Get)
	e.OPTIONS("/api/blog-view-counts", a.viewCounts.Preflight)

	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)

	if a.adminEnabled() {
		e.POST("/admin/login", a.handleAdminLogin)
		e.POST("/admin/logout", handleAdminLogout)
		e.GET("/admin/crawler-stats", a.handleCrawlerStats)
	}

	// Everything else is the client app: static files with an index.html
	// fallback so client-side routes resolve on hard reloads.
	e.Use(middleware.StaticWithConfig(middleware.StaticConfig{
		Root:  a.staticDir,
		HTML5: true,
	}))
}

// handleOGImage renders the SVG preview card for the request's query
// parameters. Missing parameters default per variant; invalid ones cannot
// exist, since any string is a valid input.
func (a *App) handleOGImage(c echo.Context) error {
	req := OGImageRequest{
		Type:        c.QueryParam("type"),
		Title:       c.QueryParam("title"),
		Subtitle:    c.QueryParam("subtitle"),
		Description: c.QueryParam("description"),
		BlogTitle:   c.QueryParam("blogTitle"),
		BlogExcerpt: c.QueryParam("blogExcerpt"),
		Date:        c.QueryParam("date"),
		ReadTime:    c.QueryParam("readTime"),
	}
	return c.Blob(http.StatusOK, "image/svg+xml", []byte(a.og.Render(req)))
}

// handleRobots generates robots.txt dynamically using the site URL.
func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /admin/\n\nSitemap: %s/sitemap.xml\n", a.Config.URL)
	return c.String(http.StatusOK, body)
}

// staticRoutes are the client-side routes worth listing in the sitemap. Blog
// posts are not enumerable server-side, so only the index appears.
var staticRoutes = []string{"/", "/about", "/projects", "/blog", "/contact"}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc string `xml:"loc"`
}

func (a *App) handleSitemap(c echo.Context) error {
	urls := make([]sitemapURL, 0, len(staticRoutes))
	for _, route := range staticRoutes {
		loc := a.Config.URL
		if route != "/" {
			loc += route
		}
		urls = append(urls, sitemapURL{Loc: loc})
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}
