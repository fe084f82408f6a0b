//go:build !linux

package system

import (
	"context"

	"github.com/rook-computer/scoreboard/internal/logging"
)

const KeyF4 = 62

// WatchExitKey is unsupported outside Linux.
func WatchExitKey(ctx context.Context, logger logging.Logger, key uint16, onExit func()) {
	logging.OrNoop(logger).Infof("input", "exit key unsupported on this platform")
}
