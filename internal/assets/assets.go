package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed layouts/*.yaml
var layoutFS embed.FS

//go:embed web
var webFS embed.FS

// WebUI is an embedded filesystem rooted at internal/assets/web.
var WebUI fs.FS

// ErrNoLayout is returned when no embedded layout exists for a resolution.
var ErrNoLayout = errors.New("no embedded layout")

func init() {
	// Embed paths include the leading directory; strip it for serving at '/'.
	sub, err := fs.Sub(webFS, "web")
	if err != nil {
		panic(err)
	}
	WebUI = sub
}

// Layout returns the embedded layout document for a matrix size.
func Layout(width, height int) ([]byte, error) {
	data, err := layoutFS.ReadFile(layoutPath(width, height))
	if err != nil {
		return nil, fmt.Errorf("%w for %dx%d", ErrNoLayout, width, height)
	}
	return data, nil
}

// LayoutSizes lists the embedded resolutions as "WxH".
func LayoutSizes() []string {
	entries, err := layoutFS.ReadDir("layouts")
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		out = append(out, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(out)
	return out
}

func layoutPath(width, height int) string {
	return path.Join("layouts", fmt.Sprintf("%dx%d.yaml", width, height))
}
