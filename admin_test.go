package folioedge

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func newAdminApp(t *testing.T) *App {
	t.Helper()
	return newTestApp(t, SiteConfig{
		URL:           "https://example.com",
		AdminPassword: "hunter2",
		SessionSecret: "0123456789abcdef0123456789abcdef",
	})
}

// postLogin satisfies the double-submit CSRF check by sending the same token
// as cookie and header, the way the browser client does.
func postLogin(a *App, password string) *httptest.ResponseRecorder {
	form := url.Values{"password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-CSRF-Token", "test-csrf-token")
	req.AddCookie(&http.Cookie{Name: "_csrf", Value: "test-csrf-token"})
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	return rec
}

func TestAdminLoginWrongPassword(t *testing.T) {
	a := newAdminApp(t)
	rec := postLogin(a, "wrong")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestAdminLoginSuccessSetsSession(t *testing.T) {
	a := newAdminApp(t)
	rec := postLogin(a, "hunter2")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	cookies := rec.Result().Cookies()
	var found bool
	for _, ck := range cookies {
		if ck.Name == sessionName {
			found = true
		}
	}
	if !found {
		t.Error("session cookie not set after successful login")
	}
}

func TestAdminLoginRateLimited(t *testing.T) {
	a := newAdminApp(t)
	var last *httptest.ResponseRecorder
	for i := 0; i < 6; i++ {
		last = postLogin(a, "wrong")
	}
	if last.Code != http.StatusTooManyRequests {
		t.Fatalf("status after burst = %d, want 429", last.Code)
	}
}

func TestCrawlerStatsRequiresSession(t *testing.T) {
	a := newAdminApp(t)
	req := httptest.NewRequest(http.MethodGet, "/admin/crawler-stats", nil)
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if got := rec.Header().Get("Cache-Control"); got != "no-store" {
		t.Errorf("Cache-Control = %q, want no-store", got)
	}
}
