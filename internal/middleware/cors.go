package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORSMiddleware allows the configured origin on every route and answers
// OPTIONS preflight requests with 200 and no body.
func CORSMiddleware(allowedOrigin string, isDevelopment bool) func(http.Handler) http.Handler {
	// In development, allow all origins
	allowedOrigins := []string{allowedOrigin}
	if isDevelopment {
		allowedOrigins = []string{"*"}
	}

	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300, // Maximum value not ignored by any of major browsers
	})
}
