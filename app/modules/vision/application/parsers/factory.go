package parsers

import (
	"fmt"
	"path/filepath"
	"strings"

	visiontypes "github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/domain/types"
)

// RosterParser decodes a roster file.
type RosterParser interface {
	Parse(data []byte) ([]visiontypes.RosterPlayer, error)
}

// ParserFactory defines the interface for creating parsers
type ParserFactory interface {
	GetParser(filename string) (RosterParser, error)
}

// Factory picks a roster parser by file extension.
type Factory struct{}

// NewFactory creates a new parser factory
func NewFactory() *Factory {
	return &Factory{}
}

// GetParser returns the appropriate parser for the given filename
func (f *Factory) GetParser(filename string) (RosterParser, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".csv":
		return NewCSVRosterParser(), nil
	case ".xlsx", ".xls":
		return NewXLSXRosterParser(), nil
	case ".yaml", ".yml":
		return NewYAMLRosterParser(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFileType, ext)
	}
}

// LoadRoster parses data with the parser registered for filename.
func (f *Factory) LoadRoster(filename string, data []byte) ([]visiontypes.RosterPlayer, error) {
	p, err := f.GetParser(filename)
	if err != nil {
		return nil, err
	}
	roster, err := p.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse roster %s: %w", filepath.Base(filename), err)
	}
	return roster, nil
}
