package domain

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncateDescription_OverLimit(t *testing.T) {
	long := strings.Repeat("a", 200)
	got := TruncateDescription(long)

	assert.Equal(t, DescriptionLimit, len([]rune(got)))
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Equal(t, strings.Repeat("a", 157), strings.TrimSuffix(got, "..."))
}

func TestTruncateDescription_AtOrUnderLimit(t *testing.T) {
	exact := strings.Repeat("b", DescriptionLimit)
	assert.Equal(t, exact, TruncateDescription(exact))

	short := "Koşularımız her seviyeye uygundur."
	assert.Equal(t, short, TruncateDescription(short))

	assert.Equal(t, "", TruncateDescription(""))
}

func TestTruncateDescription_MultibyteRunes(t *testing.T) {
	// 200 runes of two-byte Turkish characters: a byte-based cut would
	// split a UTF-8 sequence.
	turkish := strings.Repeat("şö", 100)
	got := TruncateDescription(turkish)

	require.True(t, utf8.ValidString(got))
	assert.Equal(t, DescriptionLimit, len([]rune(got)))
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestFormatPrice(t *testing.T) {
	price := func(v float64) *float64 { return &v }

	assert.Equal(t, "451 TRY", FormatPrice(price(450.7), "TRY"))
	assert.Equal(t, "451 TRY", FormatPrice(price(450.5), "TRY"))
	assert.Equal(t, "450 TRY", FormatPrice(price(450.2), "TRY"))
	assert.Equal(t, "1000 TRY", FormatPrice(price(1000), "TRY"))
	assert.Equal(t, "10 USD", FormatPrice(price(10), "USD"))
	// Empty currency falls back to the default.
	assert.Equal(t, "42 TRY", FormatPrice(price(42), ""))
}

func TestFormatPrice_NilIsPlaceholder(t *testing.T) {
	assert.Equal(t, PricePlaceholder, FormatPrice(nil, "TRY"))
}

func TestParsePrice(t *testing.T) {
	got := ParsePrice("450.7")
	require.NotNil(t, got)
	assert.InDelta(t, 450.7, *got, 0.0001)

	got = ParsePrice("  12  ")
	require.NotNil(t, got)
	assert.InDelta(t, 12, *got, 0.0001)

	assert.Nil(t, ParsePrice(""))
	assert.Nil(t, ParsePrice("abc"))
	assert.Nil(t, ParsePrice("12,50"))
}

func TestResolveImage(t *testing.T) {
	base := "https://rivlus.com"

	url, isDefault := ResolveImage("https://cdn.example.com/a.jpg", base)
	assert.Equal(t, "https://cdn.example.com/a.jpg", url)
	assert.False(t, isDefault)

	url, isDefault = ResolveImage("http://cdn.example.com/a.jpg", base)
	assert.Equal(t, "http://cdn.example.com/a.jpg", url)
	assert.False(t, isDefault)

	for _, bad := range []string{"", "   ", "/relative.jpg", "ftp://x/a.jpg", "javascript:alert(1)"} {
		url, isDefault = ResolveImage(bad, base)
		assert.Equal(t, "https://rivlus.com/tcr_logo.jpg", url, "input %q", bad)
		assert.True(t, isDefault, "input %q", bad)
	}
}

func TestKindProfile(t *testing.T) {
	event := KindEvent.Profile()
	assert.Equal(t, "e", event.ShortPath)
	assert.Equal(t, "events", event.DeepSegment)
	assert.Equal(t, "TCR - Twenty City Runners", event.SiteName)
	assert.Equal(t, "TCR - Twenty City Runners", event.MetaTitleSuffix)
	assert.Equal(t, DefaultEventTitle, event.DefaultTitle)

	listing := KindListing.Profile()
	assert.Equal(t, "m", listing.ShortPath)
	assert.Equal(t, "marketplace", listing.DeepSegment)
	assert.Equal(t, "TCR Market - Twenty City Runners", listing.SiteName)
	assert.Equal(t, "TCR Market", listing.MetaTitleSuffix)
	assert.Equal(t, "TCR Market - Twenty City Runners", listing.DocTitleSuffix)
	assert.Equal(t, DefaultListingTitle, listing.DefaultTitle)
}

func TestMetaDescription(t *testing.T) {
	event := Preview{Kind: KindEvent, Description: "Sabah koşusu"}
	assert.Equal(t, "Sabah koşusu", event.MetaDescription())

	price := 450.7
	listing := Preview{Kind: KindListing, Price: &price, Currency: "TRY"}
	assert.Equal(t, "451 TRY", listing.MetaDescription())

	listing.Price = nil
	assert.Equal(t, PricePlaceholder, listing.MetaDescription())
}
