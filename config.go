package folioedge

// SiteConfig holds all configuration for the portfolio edge server.
type SiteConfig struct {
	Name        string // Site/author name (default "Harikrishnan V K")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Default meta description
	Author      string // Author name for twitter:creator and JSON-LD
	Twitter     string // Twitter handle including @, empty to omit card site/creator tags

	Addr string // Listen address (default ":3000")

	// View-count proxy upstream. ProjectID and APIKey have no defaults:
	// without them /api/blog-view-counts answers with a soft failure.
	AnalyticsHost      string
	AnalyticsProjectID string
	AnalyticsAPIKey    string

	// BotLogDatabasePath enables the crawler visit log when non-empty.
	BotLogDatabasePath string

	// AdminPassword and SessionSecret enable the admin surface when both set.
	AdminPassword string
	SessionSecret string
	CookieSecure  bool // Set true for HTTPS
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Harikrishnan V K"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Description == "" {
		c.Description = "Personal website and blog of " + c.Name + " — software engineer."
	}
	if c.Author == "" {
		c.Author = c.Name
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.AnalyticsHost == "" {
		c.AnalyticsHost = "https://app.posthog.com"
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory holding the built client app (default "dist").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}
