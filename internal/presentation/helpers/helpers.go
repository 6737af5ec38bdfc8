package helpers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
)

func DecodeJSON(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func HttpError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, map[string]string{"error": msg})
}

// QueryInt reads an integer query parameter, clamped to [1, max];
// def when absent or unparsable.
func QueryInt(r *http.Request, name string, def, max int) int {
	q := r.URL.Query().Get(name)
	if q == "" {
		return def
	}
	v, err := strconv.Atoi(q)
	if err != nil || v < 1 {
		return def
	}
	if v > max {
		return max
	}
	return v
}

// PathID parses a decimal id path segment.
func PathID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
