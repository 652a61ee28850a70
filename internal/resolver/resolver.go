package resolver

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"tcrlinks/internal/domain"
	"tcrlinks/internal/store"
)

// Resolver produces normalized previews. Field precedence is remote store
// value over inline query value over hard-coded default: canonical data
// wins, but a dead store must never stop a page from rendering.
type Resolver struct {
	store store.Store
	log   logrus.FieldLogger
}

// New creates a resolver backed by the given store.
func New(st store.Store, logger logrus.FieldLogger) *Resolver {
	return &Resolver{
		store: st,
		log:   logger.WithField("component", "resolver"),
	}
}

// ResolveInline builds a preview from inline fields and defaults only, with
// no remote lookup. Used by the query-string preview routes.
func ResolveInline(kind domain.Kind, id string, inline domain.InlineFields, baseURL string) domain.Preview {
	profile := kind.Profile()

	p := domain.Preview{
		ID:       id,
		Kind:     kind,
		Title:    strings.TrimSpace(inline.Title),
		Currency: domain.DefaultCurrency,
	}
	if p.Title == "" {
		p.Title = profile.DefaultTitle
	}

	switch kind {
	case domain.KindListing:
		p.Price = domain.ParsePrice(inline.Price)
		if c := strings.TrimSpace(inline.Currency); c != "" {
			p.Currency = c
		}
	default:
		p.Description = domain.TruncateDescription(strings.TrimSpace(inline.Description))
		if p.Description == "" {
			p.Description = domain.DefaultEventDescription
		}
	}

	p.ImageURL, p.IsDefaultImage = domain.ResolveImage(inline.ImageURL, baseURL)
	return p
}

// Resolve merges a remote lookup over inline fields and defaults. Lookup
// failures of any flavor fall through to the inline/default preview; their
// diagnostic is attached only when debug is requested.
func (r *Resolver) Resolve(ctx context.Context, kind domain.Kind, id string, inline domain.InlineFields, baseURL string, debug bool) domain.Preview {
	p := ResolveInline(kind, id, inline, baseURL)

	if kind == domain.KindListing {
		r.overlayListing(ctx, &p, id, debug)
	} else {
		r.overlayEvent(ctx, &p, id, debug)
	}
	return p
}

func (r *Resolver) overlayEvent(ctx context.Context, p *domain.Preview, id string, debug bool) {
	lookup := r.store.Event(ctx, id)
	if lookup.Status != store.StatusFound {
		r.log.WithFields(logrus.Fields{"id": id, "detail": lookup.Detail}).Debug("Event lookup fell back to inline/default values")
		if debug {
			p.Debug = lookup.Detail
		}
		return
	}

	row := lookup.Row
	if t := strings.TrimSpace(row.Title); t != "" {
		p.Title = t
	}
	if d := strings.TrimSpace(row.Description); d != "" {
		p.Description = domain.TruncateDescription(d)
	}
	if strings.HasPrefix(row.BannerImageURL, "http") {
		p.ImageURL = row.BannerImageURL
		p.IsDefaultImage = false
	}
}

func (r *Resolver) overlayListing(ctx context.Context, p *domain.Preview, id string, debug bool) {
	lookup := r.store.Listing(ctx, id)
	if lookup.Status != store.StatusFound {
		r.log.WithFields(logrus.Fields{"id": id, "detail": lookup.Detail}).Debug("Listing lookup fell back to inline/default values")
		if debug {
			p.Debug = lookup.Detail
		}
		return
	}

	row := lookup.Row
	if t := strings.TrimSpace(row.Title); t != "" {
		p.Title = t
	}
	if row.Price != nil {
		p.Price = row.Price
	}
	if c := strings.TrimSpace(row.Currency); c != "" {
		p.Currency = c
	}

	// The first image in sort order wins; a non-http URL is discarded and
	// the current (inline or default) image stands.
	images := r.store.ListingImages(ctx, id)
	if images.Status == store.StatusFound && len(images.Images) > 0 {
		if u := strings.TrimSpace(images.Images[0].ImageURL); strings.HasPrefix(u, "http") {
			p.ImageURL = u
			p.IsDefaultImage = false
		}
	}
}
