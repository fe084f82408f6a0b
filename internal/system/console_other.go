//go:build !linux

package system

import "github.com/rook-computer/scoreboard/internal/logging"

// Console is a no-op outside Linux.
type Console struct{}

func NewConsole(logger logging.Logger) *Console { return &Console{} }

func (c *Console) EnterGraphics() error { return nil }

func (c *Console) Restore() error { return nil }
