package folioedge

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/harikrishnanvk/folioedge/botlog"
)

const sessionName = "admin_session"

func (a *App) setupMiddleware() {
	e := a.Echo

	e.IPExtractor = echo.ExtractIPFromXFFHeader(
		echo.TrustLoopback(true),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(true),
	)

	e.HTTPErrorHandler = a.httpErrorHandler

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			c.Logger().Infof("%s %s -> %d (%s)", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))

	e.Use(middleware.Recover())

	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
		Skipper: func(c echo.Context) bool {
			// SVG compresses well but the immutable cache makes it cheap anyway;
			// skip binary static assets.
			return strings.HasPrefix(c.Request().URL.Path, "/assets/") ||
				strings.HasPrefix(c.Request().URL.Path, "/social/")
		},
	}))

	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline' https://fonts.googleapis.com; img-src 'self' https: data:; font-src 'self' https://fonts.gstatic.com; connect-src 'self' https:",
		HSTSMaxAge:            31536000,
		HSTSExcludeSubdomains: false,
	}))

	if a.adminEnabled() {
		e.Use(session.Middleware(a.newSessionStore()))
		e.Use(middleware.CSRFWithConfig(middleware.CSRFConfig{
			ContextKey:  middleware.DefaultCSRFConfig.ContextKey,
			TokenLookup: "header:X-CSRF-Token,form:_csrf",
			CookieName:  "_csrf",
			CookiePath:  "/",
			CookieSameSite: func() http.SameSite {
				return http.SameSiteLaxMode
			}(),
			CookieSecure: a.Config.CookieSecure,
			Skipper: func(c echo.Context) bool {
				return strings.HasPrefix(c.Request().URL.Path, "/api/")
			},
			ErrorHandler: func(err error, c echo.Context) error {
				return c.String(http.StatusForbidden, "Forbidden")
			},
		}))
	}

	e.Use(cacheControlMiddleware)
	e.Use(a.crawlerMiddleware)
}

// httpErrorHandler keeps API error responses JSON-shaped; everything else
// gets Echo's default handling.
func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	message := "internal server error"
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if msg, ok := he.Message.(string); ok {
			message = msg
		}
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
	}
	if strings.HasPrefix(c.Request().URL.Path, "/api/") {
		_ = c.JSON(code, map[string]any{"ok": false, "error": message})
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}

// crawlerMiddleware intercepts page requests from social preview crawlers
// and answers with the pre-rendered OpenGraph document. Every other request
// falls through untouched to the client app. API, admin, and asset paths are
// never intercepted, regardless of user agent: crawlers fetch the og:image
// URL from the served document with the same user agent, and that request
// must reach the actual image bytes.
func (a *App) crawlerMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		path := c.Request().URL.Path
		if strings.HasPrefix(path, "/api/") || strings.HasPrefix(path, "/admin/") ||
			strings.HasPrefix(path, "/assets/") || strings.HasPrefix(path, "/social/") ||
			path == "/og.jpg" || path == "/robots.txt" || path == "/sitemap.xml" {
			return next(c)
		}

		ua := c.Request().UserAgent()
		category, ok := ClassifyCrawler(ua)
		if !ok {
			return next(c)
		}

		meta := a.mapper.Resolve(path)
		meta.Image = SocialImageFor(category)
		meta.URL = a.Config.URL + path

		if a.BotLog != nil {
			visit := &botlog.Visit{
				BotName:   CrawlerName(category),
				IPHash:    a.BotLog.HashIP(c.RealIP()),
				UserAgent: ua,
				Path:      path,
				Timestamp: time.Now().UTC(),
			}
			if err := a.BotLog.Record(visit); err != nil {
				c.Logger().Errorf("record crawler visit: %v", err)
			}
		}

		c.Response().Header().Set("Cache-Control", "public, max-age=300")
		return RenderStatus(c, http.StatusOK, CrawlerDocument(a.Config, meta))
	}
}

// cacheControlMiddleware sets Cache-Control headers based on the request
// path. The SVG endpoint is a pure function of its query string, so its URL
// is the cache key and the response can be immutable.
func cacheControlMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		path := c.Request().URL.Path
		switch {
		case strings.HasPrefix(path, "/assets/"):
			c.Response().Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		case path == "/api/og":
			c.Response().Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		case strings.HasPrefix(path, "/social/") || path == "/og.jpg":
			c.Response().Header().Set("Cache-Control", "public, max-age=86400")
		case path == "/sitemap.xml" || path == "/robots.txt":
			c.Response().Header().Set("Cache-Control", "public, max-age=86400")
		case strings.HasPrefix(path, "/admin/"):
			c.Response().Header().Set("Cache-Control", "no-store")
		case strings.HasPrefix(path, "/api/"):
			c.Response().Header().Set("Cache-Control", "public, max-age=300")
		default:
			c.Response().Header().Set("Cache-Control", "public, max-age=300")
		}
		return next(c)
	}
}

func (a *App) newSessionStore() *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(a.Config.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		MaxAge:   60 * 60 * 12,
		SameSite: http.SameSiteLaxMode,
		Secure:   a.Config.CookieSecure,
	}
	return store
}

// isAdmin checks if the current session is authenticated.
func isAdmin(c echo.Context) bool {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return false
	}
	auth, ok := sess.Values["authenticated"].(bool)
	return ok && auth
}

func setAdminSession(c echo.Context) error {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return err
	}
	sess.Values["authenticated"] = true
	return sess.Save(c.Request(), c.Response())
}

func clearAdminSession(c echo.Context) error {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return err
	}
	sess.Options.MaxAge = -1
	return sess.Save(c.Request(), c.Response())
}
