package folioedge

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

// handleAdminLogin authenticates the single admin password and sets the
// session cookie. Attempts are rate-limited per IP.
func (a *App) handleAdminLogin(c echo.Context) error {
	if !a.loginLimiter.Allow(c.RealIP()) {
		return c.JSON(http.StatusTooManyRequests, map[string]any{
			"ok":    false,
			"error": "too many login attempts, try again later",
		})
	}
	if c.FormValue("password") != a.Config.AdminPassword {
		return c.JSON(http.StatusUnauthorized, map[string]any{
			"ok":    false,
			"error": "invalid password",
		})
	}
	if err := setAdminSession(c); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"ok": true})
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"ok": true})
}

// handleCrawlerStats returns aggregated crawler visit data for the last N
// days (default 7, capped at 365).
func (a *App) handleCrawlerStats(c echo.Context) error {
	if !isAdmin(c) {
		return c.JSON(http.StatusUnauthorized, map[string]any{
			"ok":    false,
			"error": "authentication required",
		})
	}
	if a.BotLog == nil {
		return c.JSON(http.StatusNotFound, map[string]any{
			"ok":    false,
			"error": "crawler log is not enabled",
		})
	}

	days := 7
	if v := c.QueryParam("days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			days = n
		}
	}
	if days > 365 {
		days = 365
	}

	now := time.Now().UTC()
	stats, err := a.BotLog.Stats(now.AddDate(0, 0, -days), now)
	if err != nil {
		c.Logger().Errorf("crawler stats: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]any{
			"ok":    false,
			"error": "internal server error",
		})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"ok":          true,
		"period_days": days,
		"stats":       stats,
	})
}
