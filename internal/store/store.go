package store

import "context"

// Status classifies a lookup outcome. A failed lookup is data, not an
// error: found, not-found and unreachable all collapse to "use fallback
// values" at the call site, keeping pages renderable through store outages.
type Status int

const (
	StatusFound Status = iota
	StatusNotFound
	StatusUnreachable
)

// EventRow mirrors the columns selected from the remote events collection.
type EventRow struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	BannerImageURL string `json:"banner_image_url"`
}

// ListingRow mirrors the columns selected from the remote marketplace
// listings collection. Price is nullable remotely.
type ListingRow struct {
	Title    string   `json:"title"`
	Price    *float64 `json:"price"`
	Currency string   `json:"currency"`
}

// ListingImage is one row of the ordered image list for a listing.
type ListingImage struct {
	ImageURL  string `json:"image_url"`
	SortOrder int    `json:"sort_order"`
}

// EventLookup pairs a status with the row (valid only for StatusFound) and
// a short diagnostic suitable for debug rendering.
type EventLookup struct {
	Status Status
	Row    EventRow
	Detail string
}

// ListingLookup is the listing equivalent of EventLookup.
type ListingLookup struct {
	Status Status
	Row    ListingRow
	Detail string
}

// ImageLookup carries the ordered image rows for a listing.
type ImageLookup struct {
	Status Status
	Images []ListingImage
	Detail string
}

// Store defines read-only access to the remote system of record.
// Implementations must never block past their configured timeout.
type Store interface {
	// Event looks up a single event row by id.
	Event(ctx context.Context, id string) EventLookup

	// Listing looks up a single active listing row by id.
	Listing(ctx context.Context, id string) ListingLookup

	// ListingImages returns the listing's images ordered by sort order.
	ListingImages(ctx context.Context, id string) ImageLookup
}
