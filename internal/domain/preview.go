package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind selects the field semantics of a shared entity: events carry a text
// description, marketplace listings carry a price.
type Kind string

const (
	KindEvent   Kind = "event"
	KindListing Kind = "listing"
)

// Fixed fallbacks. The preview page must always render something sensible,
// so these stand in whenever inline and remote values are both absent.
const (
	DefaultEventTitle       = "TCR Etkinlik"
	DefaultEventDescription = "Koşularımız her seviyeye uygundur."
	DefaultListingTitle     = "TCR Market Ürünü"
	PricePlaceholder        = "Fiyat Sorunuz"
	DefaultCurrency         = "TRY"

	// LogoPath is resolved against the page's own origin so the fallback
	// image never 404s across hosting aliases.
	LogoPath = "/tcr_logo.jpg"
)

// DescriptionLimit is the hard bound on rendered meta descriptions.
const DescriptionLimit = 160

const ellipsis = "..."

// Profile carries the per-kind branding and routing strings.
type Profile struct {
	// ShortPath is the preview route segment ("e" or "m").
	ShortPath string
	// DeepSegment is the path segment inside the app deep link.
	DeepSegment string
	SiteName    string
	// MetaTitleSuffix is appended to og:/twitter: titles, DocTitleSuffix to
	// the document title. They differ for the marketplace.
	MetaTitleSuffix string
	DocTitleSuffix  string
	DefaultTitle    string
	CTALabel        string
}

// Profile returns the branding profile for the kind.
func (k Kind) Profile() Profile {
	if k == KindListing {
		return Profile{
			ShortPath:       "m",
			DeepSegment:     "marketplace",
			SiteName:        "TCR Market - Twenty City Runners",
			MetaTitleSuffix: "TCR Market",
			DocTitleSuffix:  "TCR Market - Twenty City Runners",
			DefaultTitle:    DefaultListingTitle,
			CTALabel:        "Uygulamada Aç",
		}
	}
	return Profile{
		ShortPath:       "e",
		DeepSegment:     "events",
		SiteName:        "TCR - Twenty City Runners",
		MetaTitleSuffix: "TCR - Twenty City Runners",
		DocTitleSuffix:  "TCR - Twenty City Runners",
		DefaultTitle:    DefaultEventTitle,
		CTALabel:        "Uygulamada Aç",
	}
}

// Preview is the canonical, fully normalized description of a shareable
// entity. Title and ImageURL are never empty after resolution; Description
// and Price are mutually exclusive by Kind.
type Preview struct {
	ID          string
	Kind        Kind
	Title       string
	Description string   // events only, already truncated
	Price       *float64 // listings only, nil means "ask for price"
	Currency    string

	ImageURL       string
	IsDefaultImage bool

	// Debug carries a lookup diagnostic for resolved routes when explicitly
	// requested. Empty otherwise.
	Debug string
}

// MetaDescription is the text placed in og:description and the page body:
// the description for events, the formatted price for listings.
func (p Preview) MetaDescription() string {
	if p.Kind == KindListing {
		return FormatPrice(p.Price, p.Currency)
	}
	return p.Description
}

// InlineFields are the sharer-supplied query parameters of the static
// preview routes. Unknown query parameters are ignored by the adapter;
// Price holds the raw text until parsed.
type InlineFields struct {
	Title       string
	Description string
	Price       string
	Currency    string
	ImageURL    string
}

// ParsePrice coerces inline price text to a number. Unparseable or empty
// input yields nil, which formats as the "ask for price" placeholder.
func ParsePrice(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

// FormatPrice renders a price with zero decimal places and the currency
// code appended, e.g. "451 TRY". A nil price yields the placeholder.
func FormatPrice(price *float64, currency string) string {
	if price == nil {
		return PricePlaceholder
	}
	if currency == "" {
		currency = DefaultCurrency
	}
	return fmt.Sprintf("%.0f %s", math.Round(*price), currency)
}

// TruncateDescription bounds a description to DescriptionLimit runes,
// keeping the first 157 and appending an ellipsis when over the limit.
func TruncateDescription(s string) string {
	runes := []rune(s)
	if len(runes) <= DescriptionLimit {
		return s
	}
	return string(runes[:DescriptionLimit-len(ellipsis)]) + ellipsis
}

// DefaultLogoURL is the absolute fallback image for the given origin.
func DefaultLogoURL(baseURL string) string {
	return baseURL + LogoPath
}

// ResolveImage validates a candidate image URL. Anything that does not
// start with "http" is discarded in favor of the default logo; the second
// return reports whether the fallback was used.
func ResolveImage(candidate, baseURL string) (string, bool) {
	candidate = strings.TrimSpace(candidate)
	if candidate != "" && strings.HasPrefix(candidate, "http") {
		return candidate, false
	}
	return DefaultLogoURL(baseURL), true
}
