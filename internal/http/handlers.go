package http

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// maxBodyBytes caps the transaction payload; a month of records fits with
// room to spare.
const maxBodyBytes = 1 << 20 // 1MB

// handleEstimate computes the monthly spend estimate for a JSON array of
// {date, amount} records. The response is a bare JSON number. A body that is
// missing, empty, or not an array is a valid request with estimate 0;
// internal failures answer with an {"error": ...} object and a 5xx status.
func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		slog.WarnContext(r.Context(), "Failed reading request body", "error", err)
		writeError(w, http.StatusBadRequest, "could not read request body")
		return
	}

	var raw []map[string]any
	if len(body) > 0 {
		// A non-array or malformed body is treated as "no usable records",
		// not an error: the estimate contract returns 0 for it.
		if err := json.Unmarshal(body, &raw); err != nil {
			slog.WarnContext(r.Context(), "Request body is not a transaction array", "error", err)
			raw = nil
		}
	}

	key := s.cacheKey(body)
	if estimate, found := s.estimateCache.Get(key); found {
		slog.DebugContext(r.Context(), "Estimate cache hit")
		writeNumber(w, estimate)
		return
	}

	result, err := s.estimator.Estimate(r.Context(), raw)
	if err != nil {
		slog.ErrorContext(r.Context(), "Estimate computation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "estimate computation failed")
		return
	}

	slog.InfoContext(r.Context(), "Estimate computed",
		"estimate", result.Estimate,
		"transaction_count", result.TxCount,
		"year", result.Window.Year,
		"month", int(result.Window.Month),
		"month_closed", result.Closed,
		"model", result.Model)

	s.estimateCache.Set(key, result.Estimate)
	writeNumber(w, result.Estimate)
}

// cacheKey hashes the raw body and appends the UTC date so cached estimates
// never survive a day boundary, where "today" moves and the result changes.
func (s *Server) cacheKey(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:]) + ":" + time.Now().UTC().Format("2006-01-02")
}
