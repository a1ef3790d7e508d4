package director

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// WriteSheet writes a sheet to a YAML file
func WriteSheet(sheet *Sheet, path string) error {
	data, err := yaml.Marshal(sheet)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ReadSheet reads a sheet from a YAML file. Unknown keys are rejected so a
// typo in a window does not silently drop it.
func ReadSheet(path string) (*Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	var sheet Sheet
	if err := dec.Decode(&sheet); err != nil {
		return nil, fmt.Errorf("sheet %s: %w", path, err)
	}

	return &sheet, nil
}
