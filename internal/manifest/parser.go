package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"
)

// ParseInfo reads an .info.yml manifest.
func ParseInfo(path string) (*Info, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return parseTyped[Info](data, path)
}

// ParseState reads a core.extension.yml file. A missing file is not an
// error: it yields an empty state where nothing is installed.
func ParseState(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &State{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return parseTyped[State](data, path)
}

// MachineName derives an extension's machine name from its manifest path:
// "core/modules/node/node.info.yml" → "node".
func MachineName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), InfoSuffix)
}

// IsInfoFile reports whether a filename is an extension manifest.
func IsInfoFile(name string) bool {
	return strings.HasSuffix(name, InfoSuffix) && len(name) > len(InfoSuffix)
}

// parseTyped unmarshals YAML data into a typed struct.
func parseTyped[T any](data []byte, path string) (*T, error) {
	var m T
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &m, nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
