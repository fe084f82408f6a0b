package app

import (
	"errors"
	"fmt"
	"os"

	"github.com/rook-computer/scoreboard/internal/assets"
	"github.com/rook-computer/scoreboard/internal/layout"
	"github.com/rook-computer/scoreboard/internal/logging"
	"github.com/rook-computer/scoreboard/internal/metrics"
	"github.com/rook-computer/scoreboard/internal/store"
)

// LayoutSource names where a layout document came from.
type LayoutSource string

const (
	FromFile     LayoutSource = "file"
	FromEmbedded LayoutSource = "embedded"
	FromCache    LayoutSource = "cache"
)

// LayoutLoader reads and validates layout documents for one resolution.
// Valid documents are remembered in the cache as last known good.
type LayoutLoader struct {
	Path    string
	Width   int
	Height  int
	Cache   *store.Cache
	Logger  logging.Logger
	Metrics *metrics.Recorder
}

// document returns the configured document: Path when set, else the embedded
// layout for the resolution.
func (l LayoutLoader) document() ([]byte, LayoutSource, error) {
	if l.Path != "" {
		data, err := os.ReadFile(l.Path)
		return data, FromFile, err
	}
	data, err := assets.Layout(l.Width, l.Height)
	return data, FromEmbedded, err
}

// Parse validates the configured document. Every violation is logged and
// counted; a valid document is saved to the cache.
func (l LayoutLoader) Parse() (*layout.Schema, error) {
	logger := logging.OrNoop(l.Logger)
	data, source, err := l.document()
	if err != nil {
		return nil, err
	}
	schema, err := layout.Parse(data, l.Width, l.Height)
	if err != nil {
		l.report(source, err)
		return nil, err
	}
	if err := l.Cache.SaveLayout(l.Width, l.Height, data); err != nil {
		logger.Warnf("layout", "cache last good layout: %v", err)
	}
	logger.Infof("layout", "loaded %s layout for %dx%d, %d elements", source, l.Width, l.Height, schema.Len())
	return schema, nil
}

// Load is Parse with fallbacks for startup: the cached last good document,
// then the embedded default. It fails only when none of them is usable.
func (l LayoutLoader) Load() (*layout.Schema, LayoutSource, error) {
	logger := logging.OrNoop(l.Logger)
	schema, err := l.Parse()
	if err == nil {
		if l.Path != "" {
			return schema, FromFile, nil
		}
		return schema, FromEmbedded, nil
	}
	firstErr := err

	if data, cerr := l.Cache.LastGoodLayout(l.Width, l.Height); cerr == nil {
		if schema, perr := layout.Parse(data, l.Width, l.Height); perr == nil {
			logger.Warnf("layout", "using cached last good layout: %v", firstErr)
			return schema, FromCache, nil
		}
	} else if !errors.Is(cerr, store.ErrMiss) {
		logger.Warnf("layout", "read cached layout: %v", cerr)
	}

	if l.Path != "" {
		if data, eerr := assets.Layout(l.Width, l.Height); eerr == nil {
			if schema, perr := layout.Parse(data, l.Width, l.Height); perr == nil {
				logger.Warnf("layout", "using embedded layout: %v", firstErr)
				return schema, FromEmbedded, nil
			}
		}
	}
	return nil, "", fmt.Errorf("no usable layout for %dx%d: %w", l.Width, l.Height, firstErr)
}

func (l LayoutLoader) report(source LayoutSource, err error) {
	logger := logging.OrNoop(l.Logger)
	verr, ok := layout.AsValidationError(err)
	if !ok {
		logger.Errorf("layout", "%s layout: %v", source, err)
		return
	}
	for _, v := range verr.Violations {
		l.Metrics.RecordLayoutViolation(string(v.Kind))
		logger.Errorf("layout", "%s layout: %s", source, v)
	}
}
