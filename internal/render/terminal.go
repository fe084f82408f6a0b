package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/rook-computer/scoreboard/internal/scene"
)

// TerminalSink previews the matrix in a truecolor terminal. Each cell shows two
// vertically stacked pixels using an upper half block.
type TerminalSink struct {
	screen tcell.Screen
	canvas *Canvas
}

// OpenTerminal initializes the controlling terminal.
func OpenTerminal(canvas *Canvas) (*TerminalSink, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.HideCursor()
	return NewTerminalSink(screen, canvas), nil
}

// NewTerminalSink draws onto an initialized screen.
func NewTerminalSink(screen tcell.Screen, canvas *Canvas) *TerminalSink {
	return &TerminalSink{screen: screen, canvas: canvas}
}

func (s *TerminalSink) Name() string { return "terminal" }

// Screen exposes the tcell screen so callers can poll its events.
func (s *TerminalSink) Screen() tcell.Screen { return s.screen }

func (s *TerminalSink) Draw(sc scene.Scene) error {
	err := s.canvas.Paint(sc)
	img := s.canvas.Image()
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y += 2 {
		row := (y - bounds.Min.Y) / 2
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			top := img.RGBAAt(x, y)
			style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B)))
			if y+1 < bounds.Max.Y {
				bottom := img.RGBAAt(x, y+1)
				style = style.Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			} else {
				style = style.Background(tcell.ColorBlack)
			}
			s.screen.SetContent(x-bounds.Min.X, row, '▀', nil, style)
		}
	}
	s.screen.Show()
	return err
}

func (s *TerminalSink) Close() error {
	s.screen.Fini()
	return nil
}
