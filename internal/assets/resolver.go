package assets

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"strings"
	"sync"

	"github.com/skip2/go-qrcode"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/rook-computer/scoreboard/internal/geometry"
	"github.com/rook-computer/scoreboard/internal/layout"
)

// Asset id forms understood by Resolver.
const (
	AppLogo    = "logo"
	TeamPrefix = "team:"
	QRPrefix   = "qr:"
)

var ErrUnknownAsset = errors.New("unknown asset")

var (
	black    = color.RGBA{A: 0xFF}
	white    = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	stitches = color.RGBA{R: 0xD0, G: 0x10, B: 0x20, A: 0xFF}
)

type cacheKey struct {
	id   string
	w, h int
}

// Resolver turns BitmapRef asset ids into images sized for their box. Results
// are cached per id and size. Safe for concurrent use.
type Resolver struct {
	mu    sync.Mutex
	faces Faces
	cache map[cacheKey]image.Image
}

func NewResolver() *Resolver {
	return &Resolver{cache: make(map[cacheKey]image.Image)}
}

func (r *Resolver) Image(id string, w, h int) (image.Image, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("asset %q: empty box %dx%d", id, w, h)
	}
	key := cacheKey{id: id, w: w, h: h}

	r.mu.Lock()
	defer r.mu.Unlock()
	if img, ok := r.cache[key]; ok {
		return img, nil
	}

	var (
		img image.Image
		err error
	)
	switch {
	case id == AppLogo:
		img = baseball(w, h)
	case strings.HasPrefix(id, TeamPrefix):
		img = r.monogram(strings.TrimPrefix(id, TeamPrefix), w, h)
	case strings.HasPrefix(id, QRPrefix):
		img, err = qrImage(strings.TrimPrefix(id, QRPrefix), w, h)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownAsset, id)
	}
	if err != nil {
		return nil, err
	}
	r.cache[key] = img
	return img, nil
}

// monogram draws the team abbreviation on its primary color with a
// secondary-colored border. Unknown clubs use the league colors.
func (r *Resolver) monogram(abbr string, w, h int) image.Image {
	t, ok := LookupTeam(abbr)
	if !ok {
		t = League
		if abbr != "" {
			t.Abbr = abbr
		}
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(rgba(t.Secondary)), image.Point{}, draw.Src)
	inner := geometry.Inset(img.Bounds(), 1)
	if inner.Empty() {
		inner = img.Bounds()
	}
	draw.Draw(img, inner, image.NewUniform(rgba(t.Primary)), image.Point{}, draw.Src)

	face := r.faces.Get(FontSmall)
	if h < face.Metrics().Height.Ceil() {
		return img
	}
	drawer := &font.Drawer{Dst: img, Src: image.NewUniform(rgba(t.Text)), Face: face}
	text := t.Abbr
	for len(text) > 1 && drawer.MeasureString(text).Ceil() > inner.Dx() {
		text = text[:len(text)-1]
	}
	width := drawer.MeasureString(text).Ceil()
	m := face.Metrics()
	ascent, descent := m.Ascent.Ceil(), m.Descent.Ceil()
	x := (w - width) / 2
	baseline := (h-(ascent+descent))/2 + ascent
	drawer.Dot = fixed.P(x, baseline)
	drawer.DrawString(text)
	return img
}

// baseball draws a white ball with two red seams.
func baseball(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(black), image.Point{}, draw.Src)
	size := w
	if h < size {
		size = h
	}
	radius := float64(size)/2 - 0.5
	cx, cy := float64(w-1)/2, float64(h-1)/2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx, dy := float64(x)-cx, float64(y)-cy
			if dx*dx+dy*dy > radius*radius {
				continue
			}
			img.SetRGBA(x, y, white)
			seam := radius*0.75 - dy*dy/(2*radius)
			if math.Abs(math.Abs(dx)-seam) < 0.6 {
				img.SetRGBA(x, y, stitches)
			}
		}
	}
	return img
}

func qrImage(payload string, w, h int) (image.Image, error) {
	if payload == "" {
		return nil, fmt.Errorf("%w: empty qr payload", ErrUnknownAsset)
	}
	code, err := qrcode.New(payload, qrcode.Medium)
	if err != nil {
		return nil, err
	}
	code.DisableBorder = true
	code.ForegroundColor = white
	code.BackgroundColor = black
	size := w
	if h < size {
		size = h
	}
	return code.Image(size), nil
}

func rgba(c layout.RGB) color.RGBA { return c.RGBA() }
