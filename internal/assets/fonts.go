package assets

import (
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// Font names a layout element may reference.
const (
	FontSmall = "small"
	FontBold  = "bold"
	FontLarge = "large"
	FontBasic = "basic"
)

// DefaultFont is used when an element names no font or an unknown one.
const DefaultFont = FontSmall

var (
	parseOnce sync.Once
	monoTTF   *truetype.Font
	boldOTF   *sfnt.Font
	parseErr  error
)

func parseFonts() {
	monoTTF, parseErr = truetype.Parse(gomono.TTF)
	if parseErr != nil {
		return
	}
	boldOTF, parseErr = opentype.Parse(gobold.TTF)
}

// FontError reports whether the embedded fonts failed to parse; faces fall
// back to basicfont in that case.
func FontError() error {
	parseOnce.Do(parseFonts)
	return parseErr
}

// NewFace returns a fresh face for name. Faces keep glyph caches and must not
// be shared across goroutines.
func NewFace(name string) font.Face {
	parseOnce.Do(parseFonts)
	switch name {
	case FontBasic:
		return basicfont.Face7x13
	case FontBold:
		if boldOTF != nil {
			face, err := opentype.NewFace(boldOTF, &opentype.FaceOptions{Size: 8, DPI: 72, Hinting: font.HintingFull})
			if err == nil {
				return face
			}
		}
	case FontLarge:
		if monoTTF != nil {
			return truetype.NewFace(monoTTF, &truetype.Options{Size: 12, DPI: 72, Hinting: font.HintingFull})
		}
	default:
		if monoTTF != nil {
			return truetype.NewFace(monoTTF, &truetype.Options{Size: 8, DPI: 72, Hinting: font.HintingFull})
		}
	}
	return basicfont.Face7x13
}

// Faces caches one face per name for a single owner.
type Faces struct {
	faces map[string]font.Face
}

func (f *Faces) Get(name string) font.Face {
	switch name {
	case FontSmall, FontBold, FontLarge, FontBasic:
	default:
		name = DefaultFont
	}
	if face, ok := f.faces[name]; ok {
		return face
	}
	if f.faces == nil {
		f.faces = make(map[string]font.Face)
	}
	face := NewFace(name)
	f.faces[name] = face
	return face
}
