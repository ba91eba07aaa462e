package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// AccessCodeHeader carries the household access code on administrative requests.
const AccessCodeHeader = "X-Access-Code"

// CodeChecker reports whether an access code is correct.
type CodeChecker interface {
	CheckAccessCode(code string) bool
}

// RequireAccessCode rejects requests whose X-Access-Code header does not
// match. There is no lockout.
func RequireAccessCode(checker CodeChecker, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !checker.CheckAccessCode(r.Header.Get(AccessCodeHeader)) {
				logger.Warn("access code rejected", "path", r.URL.Path, "remote", RealIP(r))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				json.NewEncoder(w).Encode(map[string]string{"error": "wrong access code"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
