package folioedge

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// upstreamTimeout bounds the single outbound analytics call. There is no
// retry: view counts are non-critical and a zero count is an acceptable
// degraded outcome.
const upstreamTimeout = 5 * time.Second

// ViewCountsHandler proxies a per-post view count query to the analytics
// upstream and reshapes the result into a slug -> count mapping. Nothing is
// cached server-side; the short public Cache-Control on responses is the
// only caching layer.
type ViewCountsHandler struct {
	host      string
	projectID string
	apiKey    string
	client    *http.Client
}

// NewViewCountsHandler builds the proxy from the analytics part of cfg.
func NewViewCountsHandler(cfg SiteConfig) *ViewCountsHandler {
	return &ViewCountsHandler{
		host:      strings.TrimSuffix(cfg.AnalyticsHost, "/"),
		projectID: cfg.AnalyticsProjectID,
		apiKey:    cfg.AnalyticsAPIKey,
		client:    &http.Client{Timeout: upstreamTimeout},
	}
}

type viewCountsResponse struct {
	OK     bool           `json:"ok"`
	Counts map[string]int `json:"counts"`
	Error  string         `json:"error,omitempty"`
}

// setCORS opens the endpoint to cross-origin calls from the statically
// hosted front end.
func setCORS(c echo.Context) {
	h := c.Response().Header()
	h.Set(echo.HeaderAccessControlAllowOrigin, "*")
	h.Set(echo.HeaderAccessControlAllowMethods, "GET, OPTIONS")
	h.Set(echo.HeaderAccessControlAllowHeaders, "Content-Type, Authorization")
}

// Preflight answers the CORS OPTIONS request.
func (h *ViewCountsHandler) Preflight(c echo.Context) error {
	setCORS(c)
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

// Get runs the upstream query. Every failure mode produces a well-formed
// JSON body with ok:false and an empty counts object; nothing ever escapes
// as an unhandled error.
func (h *ViewCountsHandler) Get(c echo.Context) error {
	setCORS(c)
	c.Response().Header().Set("Cache-Control", "public, max-age=300")

	if h.projectID == "" || h.apiKey == "" {
		return c.JSON(http.StatusInternalServerError, viewCountsResponse{
			Counts: map[string]int{},
			Error:  "analytics credentials are not configured",
		})
	}

	query := url.Values{}
	query.Set("event", "blog_post_view")
	query.Set("breakdown", "post_slug")
	endpoint := fmt.Sprintf("%s/api/projects/%s/events/counts?%s", h.host, url.PathEscape(h.projectID), query.Encode())

	req, err := http.NewRequestWithContext(c.Request().Context(), http.MethodGet, endpoint, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, viewCountsResponse{
			Counts: map[string]int{},
			Error:  err.Error(),
		})
	}
	req.Header.Set("Authorization", "Bearer "+h.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, viewCountsResponse{
			Counts: map[string]int{},
			Error:  err.Error(),
		})
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, viewCountsResponse{
			Counts: map[string]int{},
			Error:  err.Error(),
		})
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.JSON(http.StatusBadGateway, viewCountsResponse{
			Counts: map[string]int{},
			Error:  fmt.Sprintf("upstream returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		})
	}

	var payload struct {
		Results []map[string]any `json:"results"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return c.JSON(http.StatusInternalServerError, viewCountsResponse{
			Counts: map[string]int{},
			Error:  "decode upstream response: " + err.Error(),
		})
	}

	counts := make(map[string]int, len(payload.Results))
	for _, row := range payload.Results {
		slug, ok := row["post_slug"].(string)
		if !ok || slug == "" {
			continue
		}
		counts[slug] = coerceCount(row["views"])
	}

	return c.JSON(http.StatusOK, viewCountsResponse{OK: true, Counts: counts})
}

// coerceCount turns whatever the upstream put in the views column into a
// non-negative integer. Missing or garbled values count as zero. Numbers
// arrive as float64, the only numeric type json.Unmarshal produces for an
// untyped map.
func coerceCount(v any) int {
	var n int
	switch t := v.(type) {
	case float64:
		n = int(t)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0
		}
		n = parsed
	default:
		return 0
	}
	if n < 0 {
		return 0
	}
	return n
}
