package contract

import (
	"os"
	"path/filepath"

	"github.com/guidepost-dev/guidepost/schema"
	"gopkg.in/yaml.v3"
)

// AreaOverride is the optional per-area configuration document. It can add
// tracked themes, extra technology names, and extra guidelines sections for
// a single area without touching the global config.
type AreaOverride struct {
	ExtraThemes       []schema.Theme   `yaml:"extra-themes"`
	ExtraTechnologies []string         `yaml:"extra-technologies"`
	ExtraSections     []schema.Section `yaml:"extra-sections"`
}

// AreaOverridePath returns the conventional location of the override
// document for an area under the output root.
func AreaOverridePath(outRoot, area string) string {
	return filepath.Join(outRoot, "areas", schema.SanitizeAreaName(area)+".yaml")
}

// LoadAreaOverride reads and validates an area override document. A missing
// file at the conventional path is not an error; a missing file at an
// explicitly provided path is.
func LoadAreaOverride(path string, explicit bool) (*AreaOverride, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil, nil
		}
		return nil, NewConfigError("area-config", "cannot read %s: %v", path, err)
	}

	var override AreaOverride
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, NewConfigError("area-config", "malformed YAML in %s: %v", path, err)
	}

	if err := ValidateThemes(override.ExtraThemes, "area-config extra-themes"); err != nil {
		return nil, err
	}
	for i, section := range override.ExtraSections {
		if section.Heading == "" {
			return nil, NewConfigError("area-config extra-sections", "section %d has an empty heading", i+1)
		}
	}

	return &override, nil
}

// processAreaOverride merges the area override document, when present, into
// the validated config.
func processAreaOverride(cfg *Config, input *ConfigRawInput) error {
	path := input.AreaConfig
	explicit := path != ""
	if !explicit {
		path = AreaOverridePath(cfg.OutRoot, cfg.Area)
	}

	override, err := LoadAreaOverride(path, explicit)
	if err != nil {
		return err
	}
	if override == nil {
		return nil
	}

	known := make(map[string]struct{}, len(cfg.Themes))
	for _, theme := range cfg.Themes {
		known[theme.Name] = struct{}{}
	}
	for _, theme := range override.ExtraThemes {
		if _, dup := known[theme.Name]; dup {
			return NewConfigError("area-config extra-themes", "theme %q already defined in the dictionary", theme.Name)
		}
		known[theme.Name] = struct{}{}
		cfg.Themes = append(cfg.Themes, theme)
	}

	for _, tech := range override.ExtraTechnologies {
		if _, ok := known[tech]; !ok {
			return NewConfigError("area-config extra-technologies", "technology %q has no matching theme entry", tech)
		}
		cfg.Technologies = append(cfg.Technologies, tech)
	}

	cfg.ExtraSections = append(cfg.ExtraSections, override.ExtraSections...)
	return nil
}
