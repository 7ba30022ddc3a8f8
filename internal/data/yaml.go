package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// readYAML decodes one YAML file into out.
func readYAML(path, what string, out any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", what, err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parse %s: %w", what, err)
	}
	return nil
}
