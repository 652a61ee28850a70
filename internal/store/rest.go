package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// detailLimit bounds how much of an upstream error body ends up in a
// diagnostic string.
const detailLimit = 200

// RESTStore implements Store against a PostgREST-style row-filtering API.
type RESTStore struct {
	baseURL string
	anonKey string
	client  *http.Client
	log     logrus.FieldLogger
}

// NewRESTStore creates a store client. The timeout bounds every outbound
// call so a slow upstream degrades the preview instead of stalling it.
func NewRESTStore(baseURL, anonKey string, timeout time.Duration, logger logrus.FieldLogger) *RESTStore {
	return &RESTStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		anonKey: anonKey,
		client:  &http.Client{Timeout: timeout},
		log:     logger.WithField("component", "store"),
	}
}

// Event looks up one event row by id.
func (s *RESTStore) Event(ctx context.Context, id string) EventLookup {
	q := url.Values{}
	q.Set("id", "eq."+id)
	q.Set("select", "title,description,banner_image_url")

	var rows []EventRow
	status, detail := s.fetch(ctx, "events", q, &rows)
	if status != StatusFound {
		return EventLookup{Status: status, Detail: detail}
	}
	if len(rows) == 0 {
		return EventLookup{Status: StatusNotFound, Detail: fmt.Sprintf("no event found with id: %s", id)}
	}
	return EventLookup{Status: StatusFound, Row: rows[0]}
}

// Listing looks up one active listing row by id. Anonymous credentials only
// see rows with active status, so the filter is part of the query.
func (s *RESTStore) Listing(ctx context.Context, id string) ListingLookup {
	q := url.Values{}
	q.Set("id", "eq."+id)
	q.Set("status", "eq.active")
	q.Set("select", "title,price,currency")

	var rows []ListingRow
	status, detail := s.fetch(ctx, "marketplace_listings", q, &rows)
	if status != StatusFound {
		return ListingLookup{Status: status, Detail: detail}
	}
	if len(rows) == 0 {
		return ListingLookup{Status: StatusNotFound, Detail: fmt.Sprintf("no listing found with id: %s (status must be 'active')", id)}
	}
	return ListingLookup{Status: StatusFound, Row: rows[0]}
}

// ListingImages returns the listing's image rows ordered by sort order.
func (s *RESTStore) ListingImages(ctx context.Context, id string) ImageLookup {
	q := url.Values{}
	q.Set("listing_id", "eq."+id)
	q.Set("select", "image_url,sort_order")
	q.Set("order", "sort_order.asc")

	var rows []ListingImage
	status, detail := s.fetch(ctx, "listing_images", q, &rows)
	if status != StatusFound {
		return ImageLookup{Status: status, Detail: detail}
	}
	if len(rows) == 0 {
		return ImageLookup{Status: StatusNotFound, Detail: fmt.Sprintf("no images for listing: %s", id)}
	}
	return ImageLookup{Status: StatusFound, Images: rows}
}

// fetch performs one GET against a table endpoint and decodes the row set.
// It never returns an error: outcomes are a Status plus a diagnostic.
func (s *RESTStore) fetch(ctx context.Context, table string, query url.Values, out any) (Status, string) {
	if s.baseURL == "" || s.anonKey == "" {
		return StatusUnreachable, "store credentials not configured"
	}

	endpoint := fmt.Sprintf("%s/rest/v1/%s?%s", s.baseURL, table, query.Encode())
	log := s.log.WithField("table", table)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		log.WithError(err).Error("Failed to build store request")
		return StatusUnreachable, fmt.Sprintf("bad store request: %v", err)
	}
	req.Header.Set("apikey", s.anonKey)
	req.Header.Set("Authorization", "Bearer "+s.anonKey)
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		log.WithError(err).Warn("Store request failed")
		return StatusUnreachable, fmt.Sprintf("store unreachable: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, detailLimit))
		log.WithField("status", resp.StatusCode).Warn("Store returned an error response")
		return StatusUnreachable, fmt.Sprintf("store error %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		log.WithError(err).Warn("Failed to decode store response")
		return StatusUnreachable, fmt.Sprintf("bad store response: %v", err)
	}
	return StatusFound, ""
}
