package config

import (
	"fmt"
	"sort"

	"github.com/arthur-debert/barrel/pkg/errors"
	"github.com/arthur-debert/barrel/pkg/types"
)

// Config holds the settings of a generation run
type Config struct {
	Mode                   string   `koanf:"mode" toml:"mode"`
	Templated              bool     `koanf:"templated" toml:"templated"`
	AbortOnResolutionError bool     `koanf:"abort_on_resolution_error" toml:"abort_on_resolution_error"`
	AllowFolderExports     bool     `koanf:"allow_folder_exports" toml:"allow_folder_exports"`
	SourceExtensions       []string `koanf:"source_extensions" toml:"source_extensions"`
	DefaultFormat          string   `koanf:"default_format" toml:"default_format"`
}

// OperatingMode returns Mode as a types.OperatingMode
func (c *Config) OperatingMode() types.OperatingMode {
	return types.OperatingMode(c.Mode)
}

// Validate checks the values that cannot be expressed by the decoder
func (c *Config) Validate() error {
	if !c.OperatingMode().Valid() {
		return errors.Newf(errors.ErrConfigValid, "unknown mode %q (want %q or %q)",
			c.Mode, types.ModeAppend, types.ModeRewrite).
			WithDetail("mode", c.Mode)
	}
	if c.DefaultFormat == "" {
		return errors.New(errors.ErrConfigValid, "default_format cannot be empty")
	}
	if n := countVerbs(c.DefaultFormat); n != 1 {
		return errors.Newf(errors.ErrConfigValid, "default_format %q must contain exactly one %%s, found %d",
			c.DefaultFormat, n)
	}
	return nil
}

func countVerbs(format string) int {
	n := 0
	for i := 0; i < len(format)-1; i++ {
		if format[i] != '%' {
			continue
		}
		switch format[i+1] {
		case 's':
			n++
		case '%':
		default:
			return -1
		}
		i++
	}
	return n
}

// Preset names
const (
	PresetSimple    = "simple"
	PresetTemplated = "templated"
)

// presets are the two pipeline variants: append-only with the default
// export line, and rewrite with a declaration template.
var presets = map[string]map[string]interface{}{
	PresetSimple: {
		"mode":                      string(types.ModeAppend),
		"templated":                 false,
		"abort_on_resolution_error": false,
	},
	PresetTemplated: {
		"mode":                      string(types.ModeRewrite),
		"templated":                 true,
		"abort_on_resolution_error": true,
	},
}

// Preset returns the settings of a named preset
func Preset(name string) (map[string]interface{}, error) {
	values, ok := presets[name]
	if !ok {
		return nil, errors.Newf(errors.ErrConfigValid, "unknown preset %q (available: %v)", name, PresetNames())
	}
	copied := make(map[string]interface{}, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return copied, nil
}

// PresetNames lists the available presets
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// String renders the config for log lines
func (c *Config) String() string {
	return fmt.Sprintf("mode=%s templated=%t abort=%t folders=%t",
		c.Mode, c.Templated, c.AbortOnResolutionError, c.AllowFolderExports)
}
