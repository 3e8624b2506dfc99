package folioedge

import (
	"encoding/xml"
	"io"
	"strings"
	"testing"
)

func testOGRenderer() *OGRenderer {
	cfg := SiteConfig{URL: "https://example.com"}
	cfg.setDefaults()
	return NewOGRenderer(cfg)
}

// assertWellFormedXML runs the document through the XML tokenizer; any
// escaping failure surfaces as a syntax error here.
func assertWellFormedXML(t *testing.T, doc string) {
	t.Helper()
	dec := xml.NewDecoder(strings.NewReader(doc))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			return
		}
		if err != nil {
			t.Fatalf("malformed XML: %v\ndocument:\n%s", err, doc)
		}
	}
}

func TestRenderAllVariantsWellFormed(t *testing.T) {
	r := testOGRenderer()
	hostile := `5 < 10 & "fun" <svg onload='x'>`
	reqs := []OGImageRequest{
		{Type: "homepage", Title: hostile, Subtitle: hostile, Description: hostile},
		{Type: "blog", Title: hostile, Description: hostile},
		{Type: "blog-post", BlogTitle: hostile, BlogExcerpt: hostile, Date: hostile, ReadTime: hostile},
		{}, // all defaults
		{Type: "garbage"},
	}
	for _, req := range reqs {
		assertWellFormedXML(t, r.Render(req))
	}
}

func TestRenderEscapesText(t *testing.T) {
	r := testOGRenderer()
	doc := r.Render(OGImageRequest{Type: "homepage", Title: "5 < 10 & fun"})
	if !strings.Contains(doc, "5 &lt; 10 &amp; fun") {
		t.Error("expected escaped title text in SVG")
	}
	if strings.Contains(doc, "5 < 10 & fun") {
		t.Error("raw unescaped title leaked into SVG")
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	r := testOGRenderer()
	req := OGImageRequest{Type: "blog-post", BlogTitle: "Hello World", Date: "2025-06-01"}
	first := r.Render(req)
	second := r.Render(req)
	if first != second {
		t.Fatal("identical requests produced different output; immutable caching would be unsafe")
	}
}

func TestRenderBlogPostVariant(t *testing.T) {
	r := testOGRenderer()
	doc := r.Render(OGImageRequest{Type: "blog-post", BlogTitle: "Hello World"})
	if !strings.Contains(doc, "Hello World") {
		t.Error("blog title missing from SVG")
	}
	if !strings.Contains(doc, "BLOG POST") {
		t.Error("BLOG POST label missing from SVG")
	}
	if !strings.Contains(doc, `width="1200" height="630"`) {
		t.Error("canvas is not 1200x630")
	}
}

func TestRenderDefaultsPerField(t *testing.T) {
	r := testOGRenderer()
	doc := r.Render(OGImageRequest{Type: "homepage", Subtitle: "Custom Subtitle"})
	if !strings.Contains(doc, "Custom Subtitle") {
		t.Error("provided subtitle missing")
	}
	if !strings.Contains(doc, "Harikrishnan V K") {
		t.Error("defaulted title missing")
	}
}

func TestRenderUnknownTypeFallsBackToHomepage(t *testing.T) {
	r := testOGRenderer()
	if r.Render(OGImageRequest{Type: "bogus"}) != r.Render(OGImageRequest{Type: "homepage"}) {
		t.Error("unknown type should render the homepage variant")
	}
}

func TestWrapAt(t *testing.T) {
	tests := []struct {
		in    string
		pos   int
		wantA string
		wantB string
	}{
		{"short", 50, "short", ""},
		{strings.Repeat("a", 50), 50, strings.Repeat("a", 50), ""},
		{strings.Repeat("a", 60), 50, strings.Repeat("a", 50), strings.Repeat("a", 10)},
		{strings.Repeat("a", 120), 50, strings.Repeat("a", 50), strings.Repeat("a", 49) + "…"},
	}
	for _, tt := range tests {
		a, b := wrapAt(tt.in, tt.pos)
		if a != tt.wantA || b != tt.wantB {
			t.Errorf("wrapAt(%d chars, %d) = (%d, %q-tail), want (%d, %q-tail)",
				len(tt.in), tt.pos, len(a), b, len(tt.wantA), tt.wantB)
		}
	}
}

func TestWrapAtRuneBoundary(t *testing.T) {
	// Multi-byte input must split on runes, never mid-encoding.
	in := strings.Repeat("日", 60)
	a, b := wrapAt(in, 50)
	if !strings.HasPrefix(in, a) {
		t.Error("first line is not a clean prefix")
	}
	for _, r := range a + b {
		if r == '�' {
			t.Fatal("split produced an invalid rune")
		}
	}
}
