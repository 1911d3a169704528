package api

import (
	"encoding/json"
	"log"
	"net/http"

	"rentaride/internal/auth"
	apperrors "rentaride/internal/errors"
	"rentaride/internal/session"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError surfaces an error on a JSON endpoint with its mapped status.
func writeError(w http.ResponseWriter, err error) {
	status := apperrors.StatusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Printf("Internal error: %v", err)
		message = "Internal server error"
	}
	writeJSON(w, status, map[string]string{"error": message})
}

// flashAndRedirect queues a flash on the caller's session and redirects,
// the outcome shape of every form endpoint.
func flashAndRedirect(w http.ResponseWriter, r *http.Request, sessions session.Store, target, category, message string) {
	token := auth.SessionTokenFrom(r.Context())
	if token != "" {
		if err := sessions.AddFlash(r.Context(), token, session.Flash{Category: category, Message: message}); err != nil {
			log.Printf("Error adding flash: %v", err)
		}
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// popFlashes drains the session's pending flash messages for a page render.
func popFlashes(r *http.Request, sessions session.Store) []session.Flash {
	token := auth.SessionTokenFrom(r.Context())
	if token == "" {
		return nil
	}
	flashes, err := sessions.PopFlashes(r.Context(), token)
	if err != nil {
		log.Printf("Error popping flashes: %v", err)
		return nil
	}
	return flashes
}
