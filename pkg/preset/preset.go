// Package preset loads named generation presets from TOML files.
//
// A preset bundles a method name, grid size, seed, and parameter overrides
// under a single name, so frequently used configurations can be versioned
// alongside a project:
//
//	[presets.catacombs]
//	method = "physics_tinykep"
//	width = 80
//	height = 80
//	seed = 7
//
//	[presets.catacombs.parameters]
//	num_rooms = 120
//	corridor_width = 2
package preset

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/forgelab/dungeonforge/pkg/errors"
	"github.com/forgelab/dungeonforge/pkg/layout"
)

// Preset is one named generation configuration.
type Preset struct {
	Method     string         `toml:"method"`
	Width      int            `toml:"width"`
	Height     int            `toml:"height"`
	Seed       int64          `toml:"seed"`
	Parameters map[string]any `toml:"parameters"`
}

// File is the parsed form of a preset file.
type File struct {
	Presets map[string]Preset `toml:"presets"`
}

// Load parses a preset file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "preset file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read preset file %s", path)
	}

	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPreset, err, "parse preset file %s", path)
	}
	return &f, nil
}

// Names lists the preset names alphabetically.
func (f *File) Names() []string {
	names := make([]string, 0, len(f.Presets))
	for name := range f.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Request resolves a named preset into a generation request. The parameter
// table is re-encoded as JSON so the layout manager applies the same
// unknown-field validation as for ad hoc overrides.
func (f *File) Request(name string) (layout.Request, error) {
	p, ok := f.Presets[name]
	if !ok {
		return layout.Request{}, errors.New(errors.ErrCodeInvalidPreset,
			"unknown preset %q", name)
	}
	if p.Method == "" {
		return layout.Request{}, errors.New(errors.ErrCodeInvalidPreset,
			"preset %q does not name a method", name)
	}

	req := layout.Request{
		Method: p.Method,
		Width:  p.Width,
		Height: p.Height,
		Seed:   p.Seed,
	}
	if len(p.Parameters) > 0 {
		raw, err := json.Marshal(p.Parameters)
		if err != nil {
			return layout.Request{}, errors.Wrap(errors.ErrCodeInvalidPreset, err,
				"preset %q parameters", name)
		}
		req.Overrides = raw
	}
	return req, nil
}
