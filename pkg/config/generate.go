package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/barrel/pkg/errors"
	toml "github.com/pelletier/go-toml/v2"
)

// GenerateConfigContent generates the configuration file content with commented values
func GenerateConfigContent() string {
	return commentOutConfigValues(GetDefaultsContent())
}

// commentOutConfigValues takes the TOML content and comments out all non-comment, non-blank lines
// that contain configuration values (assignments)
func commentOutConfigValues(content string) string {
	lines := strings.Split(content, "\n")
	var result []string

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			result = append(result, line)
			continue
		}

		result = append(result, "# "+line)
	}

	return strings.Join(result, "\n")
}

// Marshal renders cfg as TOML
func Marshal(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode configuration")
	}
	return buf.Bytes(), nil
}

// WriteProjectConfig writes a commented .barrel.toml into dir. It returns
// the path and false when a project config already exists.
func WriteProjectConfig(dir string) (string, bool, error) {
	if existing := FindProjectConfig(dir); existing != "" {
		return existing, false, nil
	}
	path := filepath.Join(dir, ProjectConfigFiles[0])
	if err := os.WriteFile(path, []byte(GenerateConfigContent()), 0644); err != nil {
		return "", false, errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", path).
			WithDetail("path", path)
	}
	return path, true, nil
}
