// Package config holds the per-document settings for adaptive wrap
// indentation, with JSON file persistence.
package config

import (
	"fmt"
	"os"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Bounds for validated settings.
const (
	MinExtraIndent = -256
	MaxExtraIndent = 256
	MaxCellWidth   = 256
	MaxTabWidth    = 64
)

// Settings holds one document's configuration. The zero value is not
// meaningful; start from Default.
type Settings struct {
	// ExtraIndent is added to every derived prefix, in fill-character
	// cells. Negative values shorten the prefix; zero aligns exactly with
	// the detected prefix.
	ExtraIndent int

	// VariablePitch selects font-face measurement instead of the fixed
	// cell grid.
	VariablePitch bool

	// CellWidth is the pixel width of one character cell in fixed-pitch
	// mode.
	CellWidth int

	// TabWidth is the tab stop interval in cells.
	TabWidth int
}

// Default returns the default settings: exact alignment, fixed pitch,
// 8-pixel cells, 8-cell tab stops.
func Default() Settings {
	return Settings{
		ExtraIndent:   0,
		VariablePitch: false,
		CellWidth:     8,
		TabWidth:      8,
	}
}

// Normalize clamps out-of-range values to the nearest valid setting.
func (s Settings) Normalize() Settings {
	if s.ExtraIndent < MinExtraIndent {
		s.ExtraIndent = MinExtraIndent
	}
	if s.ExtraIndent > MaxExtraIndent {
		s.ExtraIndent = MaxExtraIndent
	}
	if s.CellWidth < 1 {
		s.CellWidth = 1
	}
	if s.CellWidth > MaxCellWidth {
		s.CellWidth = MaxCellWidth
	}
	if s.TabWidth < 1 {
		s.TabWidth = 1
	}
	if s.TabWidth > MaxTabWidth {
		s.TabWidth = MaxTabWidth
	}
	return s
}

// Parse extracts settings from raw JSON. Absent keys keep their defaults;
// the result is normalized.
func Parse(data []byte) Settings {
	s := Default()
	if v := gjson.GetBytes(data, "softwrap.extraIndent"); v.Exists() {
		s.ExtraIndent = int(v.Int())
	}
	if v := gjson.GetBytes(data, "softwrap.variablePitch"); v.Exists() {
		s.VariablePitch = v.Bool()
	}
	if v := gjson.GetBytes(data, "softwrap.cellWidth"); v.Exists() {
		s.CellWidth = int(v.Int())
	}
	if v := gjson.GetBytes(data, "softwrap.tabWidth"); v.Exists() {
		s.TabWidth = int(v.Int())
	}
	return s.Normalize()
}

// Load reads settings from a JSON file.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data), nil
}

// Save writes settings to a JSON file, preserving unrelated keys when the
// file already exists.
func Save(path string, s Settings) error {
	s = s.Normalize()

	data, err := os.ReadFile(path)
	if err != nil {
		data = []byte("{}")
	}

	for _, kv := range []struct {
		key   string
		value interface{}
	}{
		{"softwrap.extraIndent", s.ExtraIndent},
		{"softwrap.variablePitch", s.VariablePitch},
		{"softwrap.cellWidth", s.CellWidth},
		{"softwrap.tabWidth", s.TabWidth},
	} {
		data, err = sjson.SetBytes(data, kv.key, kv.value)
		if err != nil {
			return fmt.Errorf("config: set %s: %w", kv.key, err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
