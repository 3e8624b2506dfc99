// Package folioedge serves a personal portfolio site at the edge: the built
// client app for browsers, pre-rendered OpenGraph documents for social
// crawlers, on-the-fly SVG preview cards, and a soft-failing proxy for blog
// view counts.
package folioedge

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"

	"github.com/harikrishnanvk/folioedge/botlog"
)

// App is the central application. It wires together the crawler pipeline,
// the API handlers, the optional visit log, and the admin surface.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	BotLog *botlog.Store

	mapper     *MetaMapper
	og         *OGRenderer
	viewCounts *ViewCountsHandler

	loginLimiter *ipLimiter
	customRoutes []func(*App)
	staticDir    string
}

// New creates an App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		staticDir: "dist",
	}

	for _, opt := range opts {
		opt(a)
	}

	a.mapper = NewMetaMapper(a.Config)
	a.og = NewOGRenderer(a.Config)
	a.viewCounts = NewViewCountsHandler(a.Config)

	if a.adminEnabled() {
		a.loginLimiter = newIPLimiter(5, loginWindow)
	}

	return a
}

// adminEnabled reports whether the admin surface is configured.
func (a *App) adminEnabled() bool {
	return a.Config.AdminPassword != "" && a.Config.SessionSecret != ""
}

// Start initializes the visit log, middleware, and routes, then starts the
// server. It blocks until the server stops.
func (a *App) Start() error {
	if a.Config.AdminPassword != "" && a.Config.SessionSecret == "" {
		return fmt.Errorf("folioedge: SessionSecret is required when AdminPassword is set")
	}

	if a.Config.BotLogDatabasePath != "" {
		store, err := botlog.Open(a.Config.BotLogDatabasePath)
		if err != nil {
			return fmt.Errorf("folioedge: init bot log: %w", err)
		}
		a.BotLog = store
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.loginLimiter != nil {
		a.loginLimiter.Stop()
	}
	if a.BotLog != nil {
		return a.BotLog.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("folioedge: required environment variable %s is not set", key)
	}
	return v
}
