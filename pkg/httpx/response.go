package httpx

import (
	"encoding/json"
	"net/http"
)

// JSON renders v with the given status. An encode failure after the header
// has gone out cannot be reported to the client, so it is dropped.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// JSONError renders the shared {"error": message} error shape.
func JSONError(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// SafeError picks the message to show a client. 5xx details stay out of
// production responses; clients get the bare status text instead.
func SafeError(err error, status int, isProduction bool) string {
	if isProduction && status >= http.StatusInternalServerError {
		return http.StatusText(status)
	}
	return err.Error()
}
