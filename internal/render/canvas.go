package render

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"strings"

	"go.uber.org/multierr"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/rook-computer/scoreboard/internal/assets"
	"github.com/rook-computer/scoreboard/internal/geometry"
	"github.com/rook-computer/scoreboard/internal/layout"
	"github.com/rook-computer/scoreboard/internal/scene"
)

// Canvas rasterizes scenes into an offscreen RGBA image the size of the
// matrix. Primitives are painted in order and clipped to the canvas. A Canvas
// is not safe for concurrent use.
type Canvas struct {
	img        *image.RGBA
	faces      assets.Faces
	resolver   *assets.Resolver
	brightness float64
}

func NewCanvas(width, height int, resolver *assets.Resolver) *Canvas {
	if resolver == nil {
		resolver = assets.NewResolver()
	}
	return &Canvas{
		img:        image.NewRGBA(image.Rect(0, 0, width, height)),
		resolver:   resolver,
		brightness: 1,
	}
}

// SetBrightness scales every painted pixel by factor, clamped to [0,1].
func (c *Canvas) SetBrightness(factor float64) {
	switch {
	case factor < 0:
		factor = 0
	case factor > 1:
		factor = 1
	}
	c.brightness = factor
}

func (c *Canvas) Bounds() image.Rectangle { return c.img.Bounds() }

// Image returns the canvas backing image; it is overwritten by the next Paint.
func (c *Canvas) Image() *image.RGBA { return c.img }

// At returns the painted color at (x,y).
func (c *Canvas) At(x, y int) layout.RGB {
	px := c.img.RGBAAt(x, y)
	return layout.RGB{R: px.R, G: px.G, B: px.B}
}

// Paint clears the canvas and draws every primitive of sc. Bitmaps that cannot
// be resolved are left blank and reported together; the rest of the scene is
// still drawn.
func (c *Canvas) Paint(sc scene.Scene) error {
	draw.Draw(c.img, c.img.Bounds(), image.Black, image.Point{}, draw.Src)
	var errs error
	for _, p := range sc.Primitives {
		switch p := p.(type) {
		case scene.TextRun:
			c.text(p)
		case scene.FilledRect:
			c.rect(p)
		case scene.PixelSet:
			c.pixels(p)
		case scene.BitmapRef:
			if err := c.bitmap(p); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("%s: %w", p.Element, err))
			}
		}
	}
	c.dim()
	return errs
}

// EncodePNG writes the current canvas as a PNG image.
func (c *Canvas) EncodePNG(w io.Writer) error {
	return png.Encode(w, c.img)
}

func (c *Canvas) text(t scene.TextRun) {
	face := c.faces.Get(t.Font)
	drawer := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(t.Color.RGBA()),
		Face: face,
	}
	drawer.Dot = fixed.P(t.X, t.Y+face.Metrics().Ascent.Ceil())
	drawer.DrawString(t.Text)
}

func (c *Canvas) rect(r scene.FilledRect) {
	clipped := geometry.Clip(r.Rect(), c.img.Bounds())
	if clipped.Empty() {
		return
	}
	draw.Draw(c.img, clipped, image.NewUniform(r.Color.RGBA()), image.Point{}, draw.Src)
}

func (c *Canvas) pixels(p scene.PixelSet) {
	bounds := c.img.Bounds()
	for _, pt := range p.Points {
		if !image.Pt(pt.X, pt.Y).In(bounds) {
			continue
		}
		c.img.SetRGBA(pt.X, pt.Y, pt.Color.RGBA())
	}
}

func (c *Canvas) bitmap(b scene.BitmapRef) error {
	dst := b.Rect()
	// QR codes stay square so they remain scannable.
	if strings.HasPrefix(b.AssetID, assets.QRPrefix) {
		dst = geometry.FitSquare(dst)
	}
	if geometry.Clip(dst, c.img.Bounds()).Empty() {
		return nil
	}
	w, h := sourceSize(dst, c.img.Bounds())
	src, err := c.resolver.Image(b.AssetID, w, h)
	if err != nil {
		return err
	}
	xdraw.NearestNeighbor.Scale(c.img, dst, src, src.Bounds(), xdraw.Over, nil)
	return nil
}

// sourceSize is the resolution to request for a bitmap drawn into dst. Boxes
// larger than the canvas are requested at canvas scale, keeping their aspect
// ratio; the scaler then only computes the visible part of dst.
func sourceSize(dst, canvas image.Rectangle) (int, int) {
	w, h := dst.Dx(), dst.Dy()
	cw, ch := canvas.Dx(), canvas.Dy()
	if w <= cw && h <= ch {
		return w, h
	}
	scale := min(float64(cw)/float64(w), float64(ch)/float64(h))
	return max(1, int(float64(w)*scale)), max(1, int(float64(h)*scale))
}

func (c *Canvas) dim() {
	if c.brightness >= 1 {
		return
	}
	pix := c.img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		px := layout.RGB{R: pix[i], G: pix[i+1], B: pix[i+2]}.Scale(c.brightness)
		pix[i], pix[i+1], pix[i+2] = px.R, px.G, px.B
	}
}
