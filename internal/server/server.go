package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"tcrlinks/internal/config"
	"tcrlinks/internal/render"
	"tcrlinks/internal/resolver"
)

// Server holds dependencies for the HTTP handlers.
type Server struct {
	cfg      config.Config
	resolver *resolver.Resolver
	renderer *render.Renderer
	log      logrus.FieldLogger
	router   chi.Router
}

// New creates the server and mounts all routes.
func New(cfg config.Config, res *resolver.Resolver, ren *render.Renderer, logger logrus.FieldLogger) *Server {
	s := &Server{
		cfg:      cfg,
		resolver: res,
		renderer: ren,
		log:      logger.WithField("component", "server"),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	// Link unfurlers probe with HEAD; route those to the GET handlers.
	r.Use(middleware.GetHead)

	r.MethodNotAllowed(methodNotAllowed)

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Query-string preview routes (static mode) and id-addressed short
	// links (resolved mode). The bare "/e/" form keeps the query-parameter
	// id fallback reachable.
	r.Get("/e", s.handleEventInline)
	r.Get("/e/", s.handleEventResolved)
	r.Get("/e/{id}", s.handleEventResolved)
	r.Get("/m", s.handleListingInline)
	r.Get("/m/", s.handleListingResolved)
	r.Get("/m/{id}", s.handleListingResolved)

	r.Get("/auth/garmin-callback", s.handleGarminCallback)

	r.Get("/.well-known/apple-app-site-association", s.handleAppleAppSiteAssociation)
	r.Get("/.well-known/assetlinks.json", s.handleAssetLinks)

	s.router = r
	s.log.Info("Routes mounted")
	return s
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// methodNotAllowed answers anything but GET/HEAD with an explicit Allow
// header and no body.
func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", "GET, HEAD")
	w.WriteHeader(http.StatusMethodNotAllowed)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.WithFields(logrus.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      ww.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
			"request_id":  middleware.GetReqID(r.Context()),
		}).Info("Request handled")
	})
}
