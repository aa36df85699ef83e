package directory

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the visitor lookup endpoint on the given router.
// Used by the registration desk to check a mobile number on the spot.
func RegisterRoutes(r chi.Router, store *Store) {
	r.Get("/api/visitors", handleLookup(store))
}

func handleLookup(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mobile := r.URL.Query().Get("mobile")
		if mobile == "" {
			writeError(w, http.StatusBadRequest, "mobile query param is required")
			return
		}

		phone := NormalizePhone(mobile)
		if phone == "" {
			writeError(w, http.StatusBadRequest, "mobile must contain at least 10 digits")
			return
		}

		records, err := store.FindByPhone(r.Context(), phone)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		if len(records) == 0 {
			writeError(w, http.StatusNotFound, "visitor not found")
			return
		}

		writeJSON(w, http.StatusOK, records)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
