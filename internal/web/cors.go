package web

import (
	"net/http"

	"github.com/rs/cors"
)

// WithDevCORS lets a locally served preview page on another origin read the
// API and the event stream. Only enabled when ServerConfig.DevMode is set.
func WithDevCORS(next http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowedMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:  []string{"Content-Type", "Last-Event-ID"},
	}).Handler(next)
}
