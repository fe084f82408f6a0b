package web

import "context"

// Server is the lifecycle the app drives; HTTPServer is the only implementation.
type Server interface {
	Start(ctx context.Context) error
	Stop() error
}

var _ Server = (*HTTPServer)(nil)
