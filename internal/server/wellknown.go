package server

import (
	"encoding/json"
	"net/http"
)

// App-association manifests. iOS fetches apple-app-site-association and
// Android fetches assetlinks.json to verify that this origin may hand its
// /e/* and /m/* links to the app.

func (s *Server) handleAppleAppSiteAssociation(w http.ResponseWriter, r *http.Request) {
	payload := map[string]any{
		"applinks": map[string]any{
			"apps": []string{},
			"details": []map[string]any{
				{
					"appID": s.cfg.AppleAppID,
					"paths": []string{"/e/*", "/m/*"},
				},
			},
		},
		"webcredentials": map[string]any{
			"apps": []string{s.cfg.AppleAppID},
		},
	}
	s.writeJSON(w, payload)
}

func (s *Server) handleAssetLinks(w http.ResponseWriter, r *http.Request) {
	payload := []map[string]any{
		{
			"relation": []string{"delegate_permission/common.handle_all_urls"},
			"target": map[string]any{
				"namespace":                "android_app",
				"package_name":             s.cfg.AndroidPackage,
				"sha256_cert_fingerprints": []string{s.cfg.AndroidSHA256},
			},
		},
	}
	s.writeJSON(w, payload)
}

func (s *Server) writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "public, max-age=3600, s-maxage=86400")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.WithError(err).Debug("Failed to encode manifest")
	}
}
