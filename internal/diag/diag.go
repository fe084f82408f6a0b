// Package diag formats layouts for humans: an ASCII grid of element anchors
// and a per-element listing. It only reads through Schema.Get.
package diag

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/rook-computer/scoreboard/internal/layout"
)

const (
	empty   = '.'
	overlap = '*'
	symbols = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// Mark is one anchor plotted on the grid.
type Mark struct {
	Symbol  rune
	Element string
	X, Y    int
}

// Marks lists every positioned element and child in document order; children
// follow their parent sorted by name.
func Marks(s *layout.Schema) []Mark {
	var out []Mark
	next := 0
	add := func(name string, spec layout.ElementSpec) {
		if !spec.Positioned() {
			return
		}
		sym := rune('?')
		if next < len(symbols) {
			sym = rune(symbols[next])
		}
		next++
		out = append(out, Mark{Symbol: sym, Element: name, X: spec.X, Y: spec.Y})
	}
	for _, name := range s.Names() {
		spec, err := s.Get(name)
		if err != nil {
			continue
		}
		add(name, spec)
		for _, child := range childNames(spec) {
			add(name+"."+child, spec.Children[child])
		}
	}
	return out
}

// Grid renders the matrix as rows of characters with one symbol per anchor,
// '*' where anchors collide, followed by a legend.
func Grid(s *layout.Schema) string {
	width, height := s.Size()
	rows := make([][]rune, height)
	for y := range rows {
		rows[y] = []rune(strings.Repeat(string(empty), width))
	}
	marks := Marks(s)
	for _, m := range marks {
		if m.X < 0 || m.X >= width || m.Y < 0 || m.Y >= height {
			continue
		}
		if rows[m.Y][m.X] != empty {
			rows[m.Y][m.X] = overlap
			continue
		}
		rows[m.Y][m.X] = m.Symbol
	}

	var b strings.Builder
	fmt.Fprintf(&b, "   %s\n", ruler(width))
	for y, row := range rows {
		fmt.Fprintf(&b, "%2d %s\n", y, string(row))
	}
	for _, m := range marks {
		fmt.Fprintf(&b, "%c %s (%d,%d)\n", m.Symbol, m.Element, m.X, m.Y)
	}
	return b.String()
}

// ruler labels every tenth column.
func ruler(width int) string {
	r := []rune(strings.Repeat(" ", width))
	for x := 0; x < width; x += 10 {
		r[x] = rune('0' + (x/10)%10)
	}
	return string(r)
}

// Describe formats one element, or returns layout.ErrNotFound.
func Describe(s *layout.Schema, name string) (string, error) {
	spec, err := s.Get(name)
	if err != nil {
		return "", err
	}
	return describe(spec), nil
}

func describe(spec layout.ElementSpec) string {
	var parts []string
	if spec.Positioned() {
		parts = append(parts, fmt.Sprintf("at=%d,%d", spec.X, spec.Y))
	}
	if spec.MaxWidth > 0 || spec.MaxHeight > 0 {
		parts = append(parts, fmt.Sprintf("box=%dx%d", spec.MaxWidth, spec.MaxHeight))
	}
	if spec.Size > 0 {
		parts = append(parts, fmt.Sprintf("size=%d", spec.Size))
	}
	if spec.Font != "" {
		parts = append(parts, "font="+spec.Font)
	}
	if spec.Asset != "" {
		parts = append(parts, "asset="+spec.Asset)
	}
	keys := make([]string, 0, len(spec.Colors))
	for k := range spec.Colors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, spec.Colors[k]))
	}
	if len(spec.Children) > 0 {
		parts = append(parts, "children="+strings.Join(childNames(spec), ","))
	}
	return strings.Join(parts, " ")
}

// WriteListing writes one tab-aligned line per element and child.
func WriteListing(w io.Writer, s *layout.Schema) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, name := range s.Names() {
		spec, err := s.Get(name)
		if err != nil {
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\n", name, describe(spec))
		for _, child := range childNames(spec) {
			fmt.Fprintf(tw, "%s.%s\t%s\n", name, child, describe(spec.Children[child]))
		}
	}
	return tw.Flush()
}

func childNames(spec layout.ElementSpec) []string {
	names := make([]string, 0, len(spec.Children))
	for n := range spec.Children {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
