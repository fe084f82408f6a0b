//go:build linux

package system

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/rook-computer/scoreboard/internal/logging"
)

const (
	evKey = 0x01

	// KeyF4 is from linux input-event-codes.h.
	KeyF4 = 62
)

// WatchExitKey watches evdev devices under /dev/input and calls onExit once
// when key is pressed. A keyboard plugged into the device then acts as an
// operator stop button. It returns immediately when no input devices exist.
func WatchExitKey(ctx context.Context, logger logging.Logger, key uint16, onExit func()) {
	logger = logging.OrNoop(logger)
	if onExit == nil {
		return
	}
	paths, err := filepath.Glob("/dev/input/event*")
	if err != nil || len(paths) == 0 {
		logger.Infof("input", "no evdev devices found, exit key disabled")
		return
	}

	var once sync.Once
	trigger := func() {
		once.Do(func() {
			logger.Infof("input", "exit key %d pressed", key)
			onExit()
		})
	}
	layout := newEventLayout()
	for _, path := range paths {
		go watchDevice(ctx, path, key, layout, trigger)
	}
}

// eventLayout is the size of struct input_event on this architecture:
// timeval + u16 type + u16 code + s32 value.
type eventLayout struct {
	timeval int
	size    int
}

func newEventLayout() eventLayout {
	tv := binary.Size(unix.Timeval{})
	return eventLayout{timeval: tv, size: tv + 8}
}

// pressed reports whether buf holds a key-down event for key.
func (l eventLayout) pressed(buf []byte, key uint16) bool {
	for off := 0; off+l.size <= len(buf); off += l.size {
		rec := buf[off : off+l.size]
		typ := binary.LittleEndian.Uint16(rec[l.timeval : l.timeval+2])
		code := binary.LittleEndian.Uint16(rec[l.timeval+2 : l.timeval+4])
		value := int32(binary.LittleEndian.Uint32(rec[l.timeval+4 : l.timeval+8]))
		if typ == evKey && code == key && value == 1 {
			return true
		}
	}
	return false
}

func watchDevice(ctx context.Context, path string, key uint16, layout eventLayout, trigger func()) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return
	}
	f := os.NewFile(uintptr(fd), path)
	defer func() {
		_ = f.Close()
	}()

	buf := make([]byte, 4096)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		pollFds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		if _, err := unix.Poll(pollFds, 250); err != nil {
			if err == unix.EINTR {
				continue
			}
			return
		}
		if pollFds[0].Revents&unix.POLLIN == 0 {
			continue
		}
		n, err := unix.Read(fd, buf)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				continue
			}
			return
		}
		if layout.pressed(buf[:n], key) {
			trigger()
			return
		}
	}
}
