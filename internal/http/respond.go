package http

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// writeNumber writes the estimate as a bare JSON number. Callers of this API
// treat any non-numeric top-level value as a failure, so the success shape
// is never wrapped in an object.
func writeNumber(w http.ResponseWriter, v int64) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(strconv.FormatInt(v, 10)))
}

// writeError writes the error envelope with the given status.
func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
