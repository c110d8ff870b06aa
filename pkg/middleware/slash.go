package middleware

import (
	"net/http"
	"path"
	"strings"
)

// TrimSlash returns middleware that redirects requests with trailing slashes
// to their canonical form without the slash. The root path "/" and paths under
// any of the exempt prefixes pass through unchanged.
//
// The Location header is relative to the request so the redirect stays
// correct when a module has stripped its mount prefix from the path.
func TrimSlash(exempt ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := r.URL.Path
			if len(p) <= 1 || !strings.HasSuffix(p, "/") || isExempt(p, exempt) {
				next.ServeHTTP(w, r)
				return
			}

			target := "../" + path.Base(p)
			if r.URL.RawQuery != "" {
				target += "?" + r.URL.RawQuery
			}
			w.Header().Set("Location", target)
			w.WriteHeader(http.StatusMovedPermanently)
		})
	}
}

func isExempt(p string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}
