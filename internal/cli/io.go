package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/build-aau/typed-graph/generic"
)

// readGraph loads a graph file, picking the codec from the extension
// (.json, .yaml or .yml). Loading replays every node and edge through
// the embedded schema, so a file that decodes is also valid.
func readGraph(path string) (*generic.StringGraph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	g := &generic.StringGraph{}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(data, g); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, g); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported graph file extension %q (want .json, .yaml or .yml)", ext)
	}
	return g, nil
}

// writeGraph writes a graph file, picking the codec from the extension.
func writeGraph(path string, g *generic.StringGraph) error {
	var data []byte
	var err error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		data, err = json.MarshalIndent(g, "", "  ")
		if err == nil {
			data = append(data, '\n')
		}
	case ".yaml", ".yml":
		data, err = yaml.Marshal(g)
	default:
		return fmt.Errorf("unsupported graph file extension %q (want .json, .yaml or .yml)", ext)
	}
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
