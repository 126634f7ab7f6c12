package middleware

import (
	"net"
	"net/http"
	"strings"
)

// HSTS adds a Strict-Transport-Security header covering one year and
// all subdomains.
func HSTS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		next.ServeHTTP(w, r)
	})
}

// IsHostAllowed validates a host against the allowed hosts list.
// Returns true if no allowed hosts are configured.
func IsHostAllowed(host string, allowedHosts []string) bool {
	if len(allowedHosts) == 0 {
		return true
	}

	host = strings.ToLower(strings.TrimSpace(host))
	hostWithoutPort, _, err := net.SplitHostPort(host)
	if err != nil {
		hostWithoutPort = host
	}

	for _, allowed := range allowedHosts {
		allowed = strings.ToLower(strings.TrimSpace(allowed))
		allowedWithoutPort := allowed
		if idx := strings.Index(allowed, ":"); idx != -1 {
			allowedWithoutPort = allowed[:idx]
		}

		if host == allowed || hostWithoutPort == allowedWithoutPort {
			return true
		}
	}

	return false
}
