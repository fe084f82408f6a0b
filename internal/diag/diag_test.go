package diag

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rook-computer/scoreboard/internal/layout"
)

const doc = `
score: {x: 1, y: 16, color: "#ffffff"}
count: {x: 1, y: 16, color: "#ffffff"}
bases:
  first: {x: 12, y: 4, color_on: "#ffd700", color_off: "#333333"}
  second: {x: 8, y: 1, color_on: "#ffd700", color_off: "#333333"}
  third: {x: 4, y: 4, color_on: "#ffd700", color_off: "#333333"}
  home: {x: 8, y: 7, color: "#ffffff"}
`

func parse(t *testing.T) *layout.Schema {
	t.Helper()
	s, err := layout.Parse([]byte(doc), 20, 20)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return s
}

func TestMarksOrder(t *testing.T) {
	marks := Marks(parse(t))
	var names []string
	for _, m := range marks {
		names = append(names, string(m.Symbol)+"="+m.Element)
	}
	got := strings.Join(names, " ")
	want := "A=score B=count C=bases.first D=bases.home E=bases.second F=bases.third"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestGrid(t *testing.T) {
	grid := Grid(parse(t))
	lines := strings.Split(grid, "\n")
	// ruler + 20 rows + 6 legend lines + trailing newline
	if len(lines) != 1+20+6+1 {
		t.Fatalf("expected 28 lines, got %d:\n%s", len(lines), grid)
	}
	if row := lines[1+1]; row != " 1 ........E..........." {
		t.Fatalf("unexpected row 1 %q", row)
	}
	if row := lines[1+16]; !strings.HasPrefix(row, "16 .*") {
		t.Fatalf("expected collision marker on row 16, got %q", row)
	}
	if !strings.Contains(grid, "C bases.first (12,4)") {
		t.Fatalf("expected legend entry for bases.first:\n%s", grid)
	}
}

func TestDescribe(t *testing.T) {
	s := parse(t)
	got, err := Describe(s, "bases")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "children=first,home,second,third" {
		t.Fatalf("unexpected description %q", got)
	}
	got, _ = Describe(s, "score")
	if got != "at=1,16 color=#ffffff" {
		t.Fatalf("unexpected description %q", got)
	}
	if _, err := Describe(s, "Score"); !errors.Is(err, layout.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestWriteListing(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteListing(&buf, parse(t)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if strings.Count(out, "\n") != 7 {
		t.Fatalf("expected 7 lines, got:\n%s", out)
	}
	if !strings.Contains(out, "bases.first") || !strings.Contains(out, "color_off=#333333") {
		t.Fatalf("expected child listing, got:\n%s", out)
	}
}
