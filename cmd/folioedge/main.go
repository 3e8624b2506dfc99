package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/harikrishnanvk/folioedge"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	cmd := "serve"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "serve":
		runServe()
	case "social":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "Usage: folioedge social <source-image>")
			os.Exit(1)
		}
		if err := runSocial(os.Args[2]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("folioedge %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func runServe() {
	cfg := folioedge.SiteConfig{
		Name:        folioedge.EnvOr("SITE_NAME", ""),
		URL:         strings.TrimSuffix(folioedge.EnvOr("SITE_URL", ""), "/"),
		Description: folioedge.EnvOr("SITE_DESCRIPTION", ""),
		Author:      folioedge.EnvOr("SITE_AUTHOR", ""),
		Twitter:     folioedge.EnvOr("TWITTER_HANDLE", ""),

		Addr: folioedge.EnvOr("ADDR", ""),

		AnalyticsHost:      folioedge.EnvOr("ANALYTICS_HOST", ""),
		AnalyticsProjectID: folioedge.EnvOr("ANALYTICS_PROJECT_ID", ""),
		AnalyticsAPIKey:    folioedge.EnvOr("ANALYTICS_API_KEY", ""),

		BotLogDatabasePath: folioedge.EnvOr("BOTLOG_DATABASE_PATH", ""),

		AdminPassword: folioedge.EnvOr("ADMIN_PASSWORD", ""),
		SessionSecret: folioedge.EnvOr("SESSION_SECRET", ""),
		CookieSecure:  strings.EqualFold(folioedge.EnvOr("COOKIE_SECURE", ""), "true"),
	}

	app := folioedge.New(cfg, folioedge.WithStaticDir(folioedge.EnvOr("STATIC_DIR", "dist")))
	defer app.Close()

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}

func runSocial(src string) error {
	outDir := folioedge.EnvOr("STATIC_DIR", "dist")
	if err := folioedge.GenerateSocialAssets(src, outDir); err != nil {
		return err
	}
	fmt.Printf("Social card assets written to %s\n", outDir)
	return nil
}

func printUsage() {
	fmt.Println(`folioedge - portfolio edge server

Usage:
  folioedge <command> [arguments]

Commands:
  serve           Start the server (default)
  social <image>  Generate the social card assets from a source image
  version         Print the folioedge version
  help            Show this help message

Configuration is read from environment variables; see SITE_NAME, SITE_URL,
ANALYTICS_PROJECT_ID, ANALYTICS_API_KEY, BOTLOG_DATABASE_PATH,
ADMIN_PASSWORD, SESSION_SECRET.`)
}
