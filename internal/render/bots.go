package render

import (
	"regexp"
	"strings"
)

// BotTokens is the single source of truth for crawler detection. The
// generic tokens catch most crawlers; the named ones are the messaging and
// social platforms whose unfurlers matter for link previews. The embedded
// page script and the tests both build their matcher from this list.
var BotTokens = []string{
	"bot",
	"crawler",
	"spider",
	"crawling",
	"facebookexternalhit",
	"WhatsApp",
	"Telegram",
	"Slack",
	"Twitter",
	"LinkedIn",
}

var botPattern = regexp.MustCompile("(?i)" + BotPatternSource())

// BotPatternSource returns the alternation pattern shared with the client
// script, e.g. "bot|crawler|...".
func BotPatternSource() string {
	return strings.Join(BotTokens, "|")
}

// IsBot reports whether a user-agent string matches the crawler list.
// The page script performs the same check client-side; this matcher exists
// so the list stays testable server-side.
func IsBot(userAgent string) bool {
	return botPattern.MatchString(userAgent)
}
