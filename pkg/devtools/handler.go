package devtools

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/statekit-dev/statekit/pkg/statekit"
)

// keyResponse is the JSON body for a single key lookup.
type keyResponse struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// errorResponse is the JSON body for inspector errors.
type errorResponse struct {
	Error string `json:"error"`
}

// Handler returns the inspector routes for st:
//
//	GET /keys        -> sorted list of registered keys
//	GET /keys/{key}  -> current value for the key, 404 if unregistered
//
// Values must be JSON-encodable; anything the host stores that isn't will
// surface as an encoding error on that key's endpoint.
func Handler(st *statekit.Store) http.Handler {
	r := chi.NewRouter()

	r.Get("/keys", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, st.Keys())
	})

	r.Get("/keys/{key}", func(w http.ResponseWriter, req *http.Request) {
		key := chi.URLParam(req, "key")
		value, ok := st.Lookup(key)
		if !ok {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown key: " + key})
			return
		}
		writeJSON(w, http.StatusOK, keyResponse{Key: key, Value: value})
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
