package folioedge

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func viewCountsContext(method string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, "/api/blog-view-counts", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeViewCounts(t *testing.T, rec *httptest.ResponseRecorder) viewCountsResponse {
	t.Helper()
	var resp viewCountsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v\nbody: %s", err, rec.Body.String())
	}
	return resp
}

func TestViewCountsSuccess(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer key" {
			t.Errorf("Authorization = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"post_slug":"a","views":5},{"post_slug":null,"views":3},{"post_slug":"b"},{"post_slug":"c","views":-2}]}`))
	}))
	defer upstream.Close()

	h := NewViewCountsHandler(SiteConfig{
		AnalyticsHost:      upstream.URL,
		AnalyticsProjectID: "42",
		AnalyticsAPIKey:    "key",
	})
	c, rec := viewCountsContext(http.MethodGet)
	if err := h.Get(c); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	resp := decodeViewCounts(t, rec)
	if !resp.OK {
		t.Fatalf("ok = false, error = %q", resp.Error)
	}
	if len(resp.Counts) != 3 {
		t.Errorf("counts = %v, want a, b, c (null slug dropped)", resp.Counts)
	}
	if resp.Counts["a"] != 5 {
		t.Errorf("counts[a] = %d, want 5", resp.Counts["a"])
	}
	if resp.Counts["b"] != 0 {
		t.Errorf("counts[b] = %d, want 0 (missing views)", resp.Counts["b"])
	}
	if resp.Counts["c"] != 0 {
		t.Errorf("counts[c] = %d, want 0 (negative clamped)", resp.Counts["c"])
	}
}

func TestViewCountsUpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
	}))
	defer upstream.Close()

	h := NewViewCountsHandler(SiteConfig{
		AnalyticsHost:      upstream.URL,
		AnalyticsProjectID: "42",
		AnalyticsAPIKey:    "key",
	})
	c, rec := viewCountsContext(http.MethodGet)
	if err := h.Get(c); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	resp := decodeViewCounts(t, rec)
	if resp.OK || resp.Error == "" {
		t.Errorf("want ok=false with non-empty error, got %+v", resp)
	}
}

func TestViewCountsMalformedUpstream(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer upstream.Close()

	h := NewViewCountsHandler(SiteConfig{
		AnalyticsHost:      upstream.URL,
		AnalyticsProjectID: "42",
		AnalyticsAPIKey:    "key",
	})
	c, rec := viewCountsContext(http.MethodGet)
	if err := h.Get(c); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if resp := decodeViewCounts(t, rec); resp.OK || resp.Error == "" {
		t.Errorf("want ok=false with non-empty error, got %+v", resp)
	}
}

func TestViewCountsMissingCredentials(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("upstream must not be called without credentials")
	}))
	defer upstream.Close()

	h := NewViewCountsHandler(SiteConfig{AnalyticsHost: upstream.URL})
	c, rec := viewCountsContext(http.MethodGet)
	if err := h.Get(c); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	resp := decodeViewCounts(t, rec)
	if resp.OK {
		t.Error("ok should be false")
	}
	if resp.Counts == nil || len(resp.Counts) != 0 {
		t.Errorf("counts = %v, want empty object", resp.Counts)
	}
	if resp.Error == "" {
		t.Error("error message missing")
	}
}

func TestViewCountsPreflight(t *testing.T) {
	h := NewViewCountsHandler(SiteConfig{})
	c, rec := viewCountsContext(http.MethodOptions)
	if err := h.Preflight(c); err != nil {
		t.Fatalf("Preflight: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
	var body map[string]bool
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode preflight body: %v", err)
	}
	if !body["ok"] {
		t.Error("preflight body should be {ok:true}")
	}
}

func TestCoerceCount(t *testing.T) {
	tests := []struct {
		in   any
		want int
	}{
		{float64(5), 5},
		{float64(-3), 0},
		{"12", 12},
		{" 7 ", 7},
		{"garbage", 0},
		{nil, 0},
		{true, 0},
		{json.Number("9"), 0}, // decode path never produces json.Number
	}
	for _, tt := range tests {
		if got := coerceCount(tt.in); got != tt.want {
			t.Errorf("coerceCount(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
