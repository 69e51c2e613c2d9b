package profile

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile loads and parses a YAML profile file from the given path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a File, applies defaults and validates it.
func Parse(data []byte) (*File, error) {
	var f File

	err := yaml.Unmarshal(data, &f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse profile YAML: %w", err)
	}

	applyDefaults(&f)

	if err := Validate(&f); err != nil {
		return nil, err
	}

	return &f, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = "1"
	}

	for i := range f.Profiles {
		p := &f.Profiles[i]
		if p.Mode == "" {
			p.Mode = ModeFields
		}

		if p.Name == "" {
			p.Name = p.Source + "->" + p.Target
		}
	}
}

// Validate reports every problem found in f.
func Validate(f *File) error {
	var errs []error

	if f.Version != "1" {
		errs = append(errs, fmt.Errorf("unsupported profile version %q", f.Version))
	}

	names := make(map[string]bool, len(f.Profiles))
	for i := range f.Profiles {
		p := &f.Profiles[i]

		if p.Source == "" || p.Target == "" {
			errs = append(errs, fmt.Errorf("profile %d: source and target are required", i))
		}

		if names[p.Name] {
			errs = append(errs, fmt.Errorf("profile %s: duplicate name", p.Name))
		}

		names[p.Name] = true

		if _, err := p.Spec(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Marshal serializes a File to YAML.
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}
