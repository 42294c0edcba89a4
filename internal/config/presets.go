package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	apperrors "github.com/agbru/hassecalc/internal/errors"
)

// DefaultPresetsPath is read when no presets file is given and it exists.
const DefaultPresetsPath = "hassecalc.yaml"

// Preset is a named algebra configuration.
type Preset struct {
	Name        string `yaml:"name"`
	Size        int    `yaml:"size"`
	Rule        string `yaml:"rule"`
	Bounded     *bool  `yaml:"bounded,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// PresetFile is the on-disk layout of a presets file.
type PresetFile struct {
	Presets []Preset `yaml:"presets"`
}

// Presets is an ordered, name-indexed set of presets.
type Presets struct {
	list []Preset
}

// BuiltinPresets returns the presets that are always available.
func BuiltinPresets() []Preset {
	return []Preset{
		{Name: "identity8", Size: 8, Rule: "bcdefgha", Description: "identity chain over a..h (base-8 arithmetic)"},
		{Name: "grouped5", Size: 5, Rule: "b{c,d}eea", Description: "c and d share a position; radix 4"},
		{Name: "binary", Size: 2, Rule: "ba", Description: "two symbols, base-2 arithmetic"},
		{Name: "decimal", Size: 10, Rule: "bcdefghija", Description: "identity chain over a..j (base-10 arithmetic)"},
	}
}

// LoadPresets returns the built-in presets merged with those in path. An
// empty path falls back to DefaultPresetsPath when that file exists. Entries
// from the file replace built-ins of the same name.
func LoadPresets(path string) (*Presets, error) {
	p := &Presets{list: BuiltinPresets()}
	if path == "" {
		if _, err := os.Stat(DefaultPresetsPath); err != nil {
			return p, nil
		}
		path = DefaultPresetsPath
	}
	file, err := LoadPresetFile(path)
	if err != nil {
		return nil, err
	}
	for _, preset := range file.Presets {
		p.put(preset)
	}
	return p, nil
}

// LoadPresetFile reads and validates a presets file.
func LoadPresetFile(path string) (*PresetFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.ConfigError{Message: fmt.Sprintf("presets file %q not found", path), Cause: err}
		}
		return nil, apperrors.ConfigError{Message: "read presets", Cause: err}
	}
	var file PresetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, apperrors.ConfigError{Message: "parse presets " + path, Cause: err}
	}
	for i, preset := range file.Presets {
		if preset.Name == "" {
			return nil, apperrors.NewConfigError("preset #%d in %s has no name", i+1, path)
		}
		if preset.Rule == "" {
			return nil, apperrors.NewConfigError("preset %q in %s has no rule", preset.Name, path)
		}
		if preset.Size == 0 {
			file.Presets[i].Size = DefaultSize
		}
	}
	return &file, nil
}

// Save writes the presets file to path.
func (f *PresetFile) Save(path string) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshal presets: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (p *Presets) put(preset Preset) {
	for i := range p.list {
		if p.list[i].Name == preset.Name {
			p.list[i] = preset
			return
		}
	}
	p.list = append(p.list, preset)
}

// Lookup finds a preset by name.
func (p *Presets) Lookup(name string) (Preset, bool) {
	for _, preset := range p.list {
		if preset.Name == name {
			return preset, true
		}
	}
	return Preset{}, false
}

// Names returns the preset names in sorted order.
func (p *Presets) Names() []string {
	names := make([]string, len(p.list))
	for i, preset := range p.list {
		names[i] = preset.Name
	}
	sort.Strings(names)
	return names
}

// All returns the presets in definition order.
func (p *Presets) All() []Preset { return append([]Preset(nil), p.list...) }
