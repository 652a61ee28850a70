package server

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"tcrlinks/internal/domain"
	"tcrlinks/internal/render"
	"tcrlinks/internal/resolver"
)

// baseURL reconstructs the request origin. Forwarded headers win, then the
// platform-provided deployment host, then the configured production origin,
// so the result is a valid absolute URL under every deployment topology.
func (s *Server) baseURL(r *http.Request) string {
	host := r.Header.Get("X-Forwarded-Host")
	if host == "" {
		host = r.Host
	}
	proto := r.Header.Get("X-Forwarded-Proto")
	if proto == "" {
		proto = "https"
	}
	if host != "" {
		return proto + "://" + host
	}
	if s.cfg.DeploymentHost != "" {
		return "https://" + s.cfg.DeploymentHost
	}
	return s.cfg.PublicBaseURL
}

// deepLink builds the custom-scheme URI for an entity, empty when there is
// no id to link to.
func (s *Server) deepLink(kind domain.Kind, id string) string {
	if id == "" {
		return ""
	}
	return fmt.Sprintf("%s:///%s/%s", s.cfg.AppScheme, kind.Profile().DeepSegment, url.PathEscape(id))
}

func inlineFieldsFromQuery(q url.Values) domain.InlineFields {
	return domain.InlineFields{
		Title:       q.Get("title"),
		Description: q.Get("desc"),
		Price:       q.Get("price"),
		Currency:    q.Get("currency"),
		ImageURL:    q.Get("img"),
	}
}

// handleEventInline renders the static-preview page for /e from query
// parameters only.
func (s *Server) handleEventInline(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	id := q.Get("id")
	inline := inlineFieldsFromQuery(q)
	base := s.baseURL(r)

	meta := resolver.ResolveInline(domain.KindEvent, id, inline, base)

	pageURL := fmt.Sprintf("%s/e?id=%s&title=%s&desc=%s",
		base, url.QueryEscape(id), url.QueryEscape(inline.Title), url.QueryEscape(inline.Description))
	if inline.ImageURL != "" {
		pageURL += "&img=" + url.QueryEscape(inline.ImageURL)
	}

	s.writeHTML(w, s.renderer.Render(meta, render.Context{
		BaseURL:  base,
		PageURL:  pageURL,
		DeepLink: s.deepLink(domain.KindEvent, id),
	}))
}

// handleListingInline renders the static-preview page for /m from query
// parameters only.
func (s *Server) handleListingInline(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	id := q.Get("id")
	inline := inlineFieldsFromQuery(q)
	if inline.Currency == "" {
		inline.Currency = domain.DefaultCurrency
	}
	base := s.baseURL(r)

	meta := resolver.ResolveInline(domain.KindListing, id, inline, base)

	var params []string
	for _, kv := range [][2]string{
		{"id", id},
		{"title", inline.Title},
		{"price", inline.Price},
		{"currency", inline.Currency},
		{"img", inline.ImageURL},
	} {
		if kv[1] != "" {
			params = append(params, kv[0]+"="+url.QueryEscape(kv[1]))
		}
	}
	pageURL := base + "/m"
	if len(params) > 0 {
		pageURL += "?" + strings.Join(params, "&")
	}

	s.writeHTML(w, s.renderer.Render(meta, render.Context{
		BaseURL:  base,
		PageURL:  pageURL,
		DeepLink: s.deepLink(domain.KindListing, id),
	}))
}

// handleEventResolved serves the /e/:id short link: remote lookup with
// graceful fallback, resolved-mode rendering.
func (s *Server) handleEventResolved(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		id = r.URL.Query().Get("id")
	}
	if id == "" {
		plainError(w, http.StatusBadRequest, "Missing event id")
		return
	}
	base := s.baseURL(r)
	debug := r.URL.Query().Get("debug") == "true"

	meta := s.resolver.Resolve(r.Context(), domain.KindEvent, id, inlineFieldsFromQuery(r.URL.Query()), base, debug)

	s.writeHTML(w, s.renderer.Render(meta, render.Context{
		BaseURL:     base,
		PageURL:     fmt.Sprintf("%s/e/%s", base, url.PathEscape(id)),
		DeepLink:    s.deepLink(domain.KindEvent, id),
		EmbedScript: true,
	}))
}

// handleListingResolved serves the /m/:id short link.
func (s *Server) handleListingResolved(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		id = r.URL.Query().Get("id")
	}
	if id == "" {
		plainError(w, http.StatusBadRequest, "Missing listing id")
		return
	}
	base := s.baseURL(r)
	debug := r.URL.Query().Get("debug") == "true"

	meta := s.resolver.Resolve(r.Context(), domain.KindListing, id, inlineFieldsFromQuery(r.URL.Query()), base, debug)

	s.writeHTML(w, s.renderer.Render(meta, render.Context{
		BaseURL:     base,
		PageURL:     fmt.Sprintf("%s/m/%s", base, url.PathEscape(id)),
		DeepLink:    s.deepLink(domain.KindListing, id),
		EmbedScript: true,
	}))
}

// writeHTML emits a successful preview response with the short edge/browser
// cache window shared by all preview routes.
func (s *Server) writeHTML(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=300, s-maxage=300")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		s.log.WithError(err).Debug("Failed to write response body")
	}
}

func plainError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(msg))
}
