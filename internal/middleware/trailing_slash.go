package middleware

import (
	"context"
	"net/http"
	"strings"
)

type originalPathKey struct{}

// TrimTrailingSlash routes "/api/courses/" the same as "/api/courses". It
// wraps the whole engine because gin matches routes before any middleware
// runs. The path as sent stays available to NotFound.
func TrimTrailingSlash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if len(path) <= 1 || !strings.HasSuffix(path, "/") {
			next.ServeHTTP(w, r)
			return
		}

		u := *r.URL
		u.Path = strings.TrimSuffix(path, "/")
		if u.Path == "" {
			u.Path = "/"
		}
		if u.RawPath != "" {
			u.RawPath = strings.TrimSuffix(u.RawPath, "/")
		}

		r = r.WithContext(context.WithValue(r.Context(), originalPathKey{}, path))
		r.URL = &u
		next.ServeHTTP(w, r)
	})
}

// requestPath returns the path the client sent, before TrimTrailingSlash.
func requestPath(r *http.Request) string {
	if path, ok := r.Context().Value(originalPathKey{}).(string); ok {
		return path
	}
	return r.URL.Path
}
