package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsBot_KnownCrawlers(t *testing.T) {
	agents := []string{
		"facebookexternalhit/1.1 (+http://www.facebook.com/externalhit_uatext.php)",
		"WhatsApp/2.23.20.0",
		"TelegramBot (like TwitterBot)",
		"Slackbot-LinkExpanding 1.0 (+https://api.slack.com/robots)",
		"Twitterbot/1.0",
		"LinkedInBot/1.0 (compatible; Mozilla/5.0)",
		"Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)",
		"some-new-CRAWLER/0.1",
		"generic spider",
	}
	for _, ua := range agents {
		assert.True(t, IsBot(ua), "expected bot: %s", ua)
	}
}

func TestIsBot_RealBrowsers(t *testing.T) {
	agents := []string{
		"",
		"Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1",
		"Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Mobile Safari/537.36",
	}
	for _, ua := range agents {
		assert.False(t, IsBot(ua), "expected human: %s", ua)
	}
}

func TestBotPatternSource_MatchesTokenList(t *testing.T) {
	// The client script builds its matcher from the same source string, so
	// every token must survive into it verbatim.
	src := BotPatternSource()
	for _, token := range BotTokens {
		assert.Contains(t, src, token)
	}
}
