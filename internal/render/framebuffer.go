package render

import (
	"image"
	"image/color"

	fb "github.com/gonutz/framebuffer"

	"github.com/rook-computer/scoreboard/internal/logging"
	"github.com/rook-computer/scoreboard/internal/scene"
)

const DefaultFramebufferDevice = "/dev/fb0"

// FramebufferSink paints scenes on a Canvas and upscales them onto a Linux
// framebuffer, which drives the matrix through a HUB75 bonnet or a preview
// monitor.
type FramebufferSink struct {
	dev    *fb.Device
	canvas *Canvas
	logger logging.Logger
}

func OpenFramebuffer(path string, canvas *Canvas, logger logging.Logger) (*FramebufferSink, error) {
	if path == "" {
		path = DefaultFramebufferDevice
	}
	dev, err := fb.Open(path)
	if err != nil {
		return nil, err
	}
	logger = logging.OrNoop(logger)
	bounds := dev.Bounds()
	logger.Infof("fb", "framebuffer open, bounds=%dx%d canvas=%dx%d", bounds.Dx(), bounds.Dy(), canvas.Bounds().Dx(), canvas.Bounds().Dy())
	return &FramebufferSink{dev: dev, canvas: canvas, logger: logger}, nil
}

func (s *FramebufferSink) Name() string { return "framebuffer" }

func (s *FramebufferSink) Draw(sc scene.Scene) error {
	err := s.canvas.Paint(sc)
	blit(s.dev, s.canvas.Image())
	return err
}

func (s *FramebufferSink) Close() error {
	if s.dev == nil {
		return nil
	}
	s.dev.Close()
	s.dev = nil
	return nil
}

type pixelTarget interface {
	Bounds() image.Rectangle
	Set(x, y int, c color.Color)
}

// blit copies canvas onto dst with nearest-neighbour scaling.
func blit(dst pixelTarget, canvas *image.RGBA) {
	if dst == nil {
		return
	}
	bounds := dst.Bounds()
	dstWidth, dstHeight := bounds.Dx(), bounds.Dy()
	srcWidth, srcHeight := canvas.Bounds().Dx(), canvas.Bounds().Dy()
	if dstWidth == 0 || dstHeight == 0 || srcWidth == 0 || srcHeight == 0 {
		return
	}
	for y := 0; y < dstHeight; y++ {
		sy := (y * srcHeight) / dstHeight
		for x := 0; x < dstWidth; x++ {
			sx := (x * srcWidth) / dstWidth
			pixel := canvas.RGBAAt(sx, sy)
			dst.Set(bounds.Min.X+x, bounds.Min.Y+y, color.RGBA{R: pixel.R, G: pixel.G, B: pixel.B, A: 0xFF})
		}
	}
}
