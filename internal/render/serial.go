package render

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/albenik/go-serial/v2"

	"github.com/rook-computer/scoreboard/internal/logging"
	"github.com/rook-computer/scoreboard/internal/scene"
)

const (
	DefaultSerialBaud = 115200

	// frameMarker starts every frame: 'F', width, height, then width*height
	// big-endian RGB565 pixels row-major.
	frameMarker = 'F'
)

// SerialSink streams rasterized frames to a matrix controller board over USB
// serial. Unchanged frames are not resent.
type SerialSink struct {
	port   io.WriteCloser
	canvas *Canvas
	logger logging.Logger
	buf    []byte
	last   []byte
}

func OpenSerial(path string, baud int, canvas *Canvas, logger logging.Logger) (*SerialSink, error) {
	if baud <= 0 {
		baud = DefaultSerialBaud
	}
	port, err := serial.Open(path,
		serial.WithBaudrate(baud),
		serial.WithWriteTimeout(1000),
	)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	logging.OrNoop(logger).Infof("serial", "connected to %s at %d baud", path, baud)
	return NewSerialSink(port, canvas, logger), nil
}

// NewSerialSink writes frames to an already open port.
func NewSerialSink(port io.WriteCloser, canvas *Canvas, logger logging.Logger) *SerialSink {
	return &SerialSink{port: port, canvas: canvas, logger: logging.OrNoop(logger)}
}

func (s *SerialSink) Name() string { return "serial" }

func (s *SerialSink) Draw(sc scene.Scene) error {
	paintErr := s.canvas.Paint(sc)
	s.buf = encodeFrame(s.buf[:0], s.canvas)
	if string(s.buf) == string(s.last) {
		return paintErr
	}
	if _, err := s.port.Write(s.buf); err != nil {
		return fmt.Errorf("serial write: %w", err)
	}
	s.last = append(s.last[:0], s.buf...)
	return paintErr
}

func (s *SerialSink) Close() error {
	return s.port.Close()
}

func encodeFrame(dst []byte, c *Canvas) []byte {
	bounds := c.Bounds()
	dst = append(dst, frameMarker, byte(bounds.Dx()), byte(bounds.Dy()))
	img := c.Image()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			px := img.RGBAAt(x, y)
			dst = binary.BigEndian.AppendUint16(dst, rgb565(px.R, px.G, px.B))
		}
	}
	return dst
}

func rgb565(r, g, b uint8) uint16 {
	return uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
}
