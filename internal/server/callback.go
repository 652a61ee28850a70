package server

import (
	"fmt"
	"net/http"
	"net/url"
)

// handleGarminCallback relays an OAuth authorization code into the app: the
// provider can only redirect to an https URL, so this hop forwards code and
// state onto the custom scheme.
func (s *Server) handleGarminCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if errCode := q.Get("error"); errCode != "" {
		plainError(w, http.StatusBadRequest,
			fmt.Sprintf("Garmin OAuth Error: %s - %s", errCode, q.Get("error_description")))
		return
	}

	code := q.Get("code")
	if code == "" {
		plainError(w, http.StatusBadRequest, "Missing authorization code from Garmin")
		return
	}

	params := url.Values{}
	params.Set("code", code)
	if state := q.Get("state"); state != "" {
		params.Set("state", state)
	}

	http.Redirect(w, r, fmt.Sprintf("%s://redirect?%s", s.cfg.AppScheme, params.Encode()), http.StatusFound)
}
