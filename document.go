package folioedge

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a templ component with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

// CrawlerDocument builds the self-contained HTML document served to social
// crawlers: full OpenGraph and Twitter Card tag sets plus a small visible
// fallback body, so preview heuristics have text to read without running
// scripts. A non-crawler agent that still lands here gets the client app via
// the bootstrap script tag.
//
// Every interpolated value is escaped at the point of insertion. The mapper
// only produces values from config today, but nothing here relies on that.
func CrawlerDocument(cfg SiteConfig, meta PageMeta) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		esc := templ.EscapeString[string]
		title := esc(meta.Title)
		desc := esc(meta.Description)
		canonical := esc(meta.URL)
		imageURL := esc(cfg.URL + meta.Image.Path)
		siteName := esc(cfg.Name)

		var b []byte
		b = append(b, "<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n"...)
		b = append(b, "<meta charset=\"utf-8\">\n"...)
		b = append(b, "<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n"...)
		b = appendTag(b, "<title>%s</title>\n", title)
		b = appendTag(b, "<meta name=\"description\" content=\"%s\">\n", desc)
		b = appendTag(b, "<link rel=\"canonical\" href=\"%s\">\n", canonical)

		b = appendTag(b, "<meta property=\"og:title\" content=\"%s\">\n", title)
		b = appendTag(b, "<meta property=\"og:description\" content=\"%s\">\n", desc)
		b = appendTag(b, "<meta property=\"og:image\" content=\"%s\">\n", imageURL)
		b = appendTag(b, "<meta property=\"og:image:secure_url\" content=\"%s\">\n", imageURL)
		b = append(b, "<meta property=\"og:image:type\" content=\"image/jpeg\">\n"...)
		b = appendTag(b, "<meta property=\"og:image:width\" content=\"%d\">\n", meta.Image.Width)
		b = appendTag(b, "<meta property=\"og:image:height\" content=\"%d\">\n", meta.Image.Height)
		b = appendTag(b, "<meta property=\"og:image:alt\" content=\"%s\">\n", title)
		b = appendTag(b, "<meta property=\"og:url\" content=\"%s\">\n", canonical)
		b = appendTag(b, "<meta property=\"og:type\" content=\"%s\">\n", esc(meta.OGType))
		b = appendTag(b, "<meta property=\"og:site_name\" content=\"%s\">\n", siteName)
		b = append(b, "<meta property=\"og:locale\" content=\"en_US\">\n"...)

		b = append(b, "<meta name=\"twitter:card\" content=\"summary_large_image\">\n"...)
		if cfg.Twitter != "" {
			b = appendTag(b, "<meta name=\"twitter:site\" content=\"%s\">\n", esc(cfg.Twitter))
			b = appendTag(b, "<meta name=\"twitter:creator\" content=\"%s\">\n", esc(cfg.Twitter))
		}
		b = appendTag(b, "<meta name=\"twitter:title\" content=\"%s\">\n", title)
		b = appendTag(b, "<meta name=\"twitter:description\" content=\"%s\">\n", desc)
		b = appendTag(b, "<meta name=\"twitter:image\" content=\"%s\">\n", imageURL)
		b = appendTag(b, "<meta name=\"twitter:image:alt\" content=\"%s\">\n", title)

		b = append(b, "<meta name=\"robots\" content=\"index, follow\">\n"...)
		b = append(b, "<meta name=\"theme-color\" content=\"#0f1115\">\n"...)
		b = append(b, "<link rel=\"preconnect\" href=\"https://fonts.googleapis.com\">\n"...)
		b = append(b, "<link rel=\"preconnect\" href=\"https://fonts.gstatic.com\" crossorigin>\n"...)
		b = appendTag(b, "<script type=\"application/ld+json\">%s</script>\n", websiteJSONLD(cfg))
		b = append(b, "</head>\n<body>\n"...)
		b = appendTag(b, "<h1>%s</h1>\n", title)
		b = appendTag(b, "<p>%s</p>\n", desc)
		b = appendTag(b, "<a href=\"%s\">%s</a>\n", canonical, canonical)
		b = append(b, "<div id=\"root\"></div>\n"...)
		b = append(b, "<script type=\"module\" src=\"/assets/index.js\"></script>\n"...)
		b = append(b, "</body>\n</html>\n"...)

		_, err := w.Write(b)
		return err
	})
}

// appendTag formats one tag line. Arguments must already be escaped.
func appendTag(b []byte, format string, args ...any) []byte {
	return fmt.Appendf(b, format, args...)
}

// websiteJSONLD produces a Schema.org WebSite JSON-LD block from the config.
// json.Marshal handles escaping for the script context.
func websiteJSONLD(cfg SiteConfig) string {
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     cfg.Name,
		"url":      cfg.URL,
	}
	if cfg.Description != "" {
		data["description"] = cfg.Description
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
