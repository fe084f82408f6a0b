//go:build linux

package system

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/rook-computer/scoreboard/internal/logging"
)

// KD console modes from linux/kd.h
const (
	kdText     = 0x00
	kdGraphics = 0x01
	kdSetMode  = 0x4B3A // KDSETMODE ioctl
)

var consolePaths = []string{"/dev/tty", "/dev/tty0"}

// Console switches the active virtual terminal into graphics mode while the
// framebuffer sink owns the screen, so the text cursor and kernel messages do
// not bleed into the matrix.
type Console struct {
	logger   logging.Logger
	graphics bool
}

func NewConsole(logger logging.Logger) *Console {
	return &Console{logger: logging.OrNoop(logger)}
}

// EnterGraphics sets KD_GRAPHICS and hides the cursor. Failures are logged and
// returned; the caller may keep drawing regardless.
func (c *Console) EnterGraphics() error {
	if err := setMode(kdGraphics); err != nil {
		c.logger.Errorf("tty", "KD_GRAPHICS failed: %v", err)
		return err
	}
	c.graphics = true
	c.logger.Infof("tty", "KD_GRAPHICS set")
	if err := writeVT("\x1b[?25l"); err != nil {
		c.logger.Warnf("tty", "hide cursor failed: %v", err)
	}
	return nil
}

// Restore returns the console to text mode if EnterGraphics succeeded.
func (c *Console) Restore() error {
	if !c.graphics {
		return nil
	}
	if err := setMode(kdText); err != nil {
		c.logger.Errorf("tty", "KD_TEXT failed: %v", err)
		return err
	}
	c.graphics = false
	if err := writeVT("\x1b[?25h"); err != nil {
		c.logger.Warnf("tty", "show cursor failed: %v", err)
	}
	c.logger.Infof("tty", "KD_TEXT set")
	return nil
}

func setMode(mode int) error {
	var lastErr error
	for _, p := range consolePaths {
		fd, err := unix.Open(p, unix.O_RDONLY, 0)
		if err != nil {
			lastErr = fmt.Errorf("open %s: %w", p, err)
			continue
		}
		err = unix.IoctlSetInt(fd, kdSetMode, mode)
		_ = unix.Close(fd)
		if err != nil {
			lastErr = fmt.Errorf("KDSETMODE %d on %s: %w", mode, p, err)
			continue
		}
		return nil
	}
	return lastErr
}

func writeVT(s string) error {
	var lastErr error
	for _, p := range consolePaths {
		f, err := os.OpenFile(p, os.O_WRONLY, 0)
		if err != nil {
			lastErr = err
			continue
		}
		_, err = f.WriteString(s)
		_ = f.Close()
		if err == nil {
			return nil
		}
		lastErr = err
	}
	return fmt.Errorf("write VT failed: %w", lastErr)
}
