// Package rules holds static read-only reference data for the host layer:
// predefined status-effect presets a GM can apply by key instead of typing
// out name, description, and duration every time. The combat engine never
// reads this table; handlers resolve a preset into plain effect fields
// before calling the engine.
package rules

import (
	_ "embed"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var presetsYAML []byte

// EffectPreset is a predefined status effect. DurationRounds is nil for
// conditions that last until removed.
type EffectPreset struct {
	Key            string `yaml:"key" json:"key"`
	Name           string `yaml:"name" json:"name"`
	Description    string `yaml:"description" json:"description"`
	DurationRounds *int   `yaml:"duration_rounds" json:"duration_rounds,omitempty"`
}

type presetFile struct {
	Presets []EffectPreset `yaml:"presets"`
}

var presetsByKey = mustLoadPresets()

func mustLoadPresets() map[string]EffectPreset {
	var f presetFile
	if err := yaml.Unmarshal(presetsYAML, &f); err != nil {
		panic("rules: embedded presets.yaml is invalid: " + err.Error())
	}

	byKey := make(map[string]EffectPreset, len(f.Presets))
	for _, p := range f.Presets {
		if p.Key == "" || p.Name == "" {
			panic("rules: preset entries require key and name")
		}
		if _, dup := byKey[p.Key]; dup {
			panic("rules: duplicate preset key " + p.Key)
		}
		byKey[p.Key] = p
	}
	return byKey
}

// EffectPresetByKey looks up a preset by its key
func EffectPresetByKey(key string) (EffectPreset, bool) {
	p, ok := presetsByKey[key]
	return p, ok
}

// EffectPresets returns all presets sorted by key
func EffectPresets() []EffectPreset {
	out := make([]EffectPreset, 0, len(presetsByKey))
	for _, p := range presetsByKey {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
