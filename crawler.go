package folioedge

import "strings"

// CrawlerCategory identifies which social platform's preview crawler issued
// a request. It drives social image selection only.
type CrawlerCategory string

const (
	CrawlerTwitter  CrawlerCategory = "twitter"
	CrawlerLinkedIn CrawlerCategory = "linkedin"
	CrawlerFacebook CrawlerCategory = "facebook"
	CrawlerWhatsApp CrawlerCategory = "whatsapp"
	CrawlerTelegram CrawlerCategory = "telegram"
	CrawlerDiscord  CrawlerCategory = "discord"
	CrawlerGeneric  CrawlerCategory = "generic"
)

// detectPatterns is the broad first-pass list. A user agent containing any of
// these (case-insensitive) is treated as a social crawler and gets the
// pre-rendered document instead of the client app.
var detectPatterns = []string{
	"twitterbot",
	"facebookexternalhit",
	"facebot",
	"linkedinbot",
	"pinterest",
	"slackbot",
	"vkshare",
	"w3c_validator",
	"whatsapp",
	"telegram",
	"discord",
	"skype",
}

// categoryPatterns is the narrower second pass, evaluated in priority order;
// first match wins. Pinterest, Slackbot, vkShare, W3C_Validator and Skype are
// detected above but resolve to the generic category here: they all accept
// the standard 1200x630 card, so no per-platform asset exists for them.
var categoryPatterns = []struct {
	pattern  string
	category CrawlerCategory
}{
	{"twitterbot", CrawlerTwitter},
	{"linkedinbot", CrawlerLinkedIn},
	{"facebookexternalhit", CrawlerFacebook},
	{"facebot", CrawlerFacebook},
	{"whatsapp", CrawlerWhatsApp},
	{"telegram", CrawlerTelegram},
	{"discord", CrawlerDiscord},
}

// IsSocialCrawler reports whether ua belongs to a known social preview crawler.
// An absent User-Agent header (empty string) is never a crawler.
func IsSocialCrawler(ua string) bool {
	ua = strings.ToLower(ua)
	for _, p := range detectPatterns {
		if strings.Contains(ua, p) {
			return true
		}
	}
	return false
}

// ClassifyCrawler resolves ua to a crawler category. The second return value
// is false when ua is not a social crawler at all, in which case the request
// must pass through to the client app untouched.
func ClassifyCrawler(ua string) (CrawlerCategory, bool) {
	if !IsSocialCrawler(ua) {
		return "", false
	}
	lower := strings.ToLower(ua)
	for _, cp := range categoryPatterns {
		if strings.Contains(lower, cp.pattern) {
			return cp.category, true
		}
	}
	return CrawlerGeneric, true
}

// CrawlerName returns a display name for a category, used by the visit log.
func CrawlerName(cat CrawlerCategory) string {
	switch cat {
	case CrawlerTwitter:
		return "Twitterbot"
	case CrawlerLinkedIn:
		return "LinkedInBot"
	case CrawlerFacebook:
		return "Facebook"
	case CrawlerWhatsApp:
		return "WhatsApp"
	case CrawlerTelegram:
		return "Telegram"
	case CrawlerDiscord:
		return "Discord"
	default:
		return "Generic Crawler"
	}
}
