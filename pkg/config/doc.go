// Package config handles configuration management for barrel.
//
// Configuration is layered with koanf, lowest precedence first:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. a preset ("simple" or "templated"), when requested
//  3. the user config, $XDG_CONFIG_HOME/barrel/config.toml
//  4. the project config next to the root file: .barrel.toml, barrel.toml,
//     .barrel.yaml or barrel.yaml (first found)
//  5. BARREL_* environment variables
//  6. explicit overrides, normally command-line flags
package config
