package profile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"member-binder/internal/filemode"
)

const defaultReportMode fs.FileMode = 0o644

// Report collects the outcome of every profile run.
type Report struct {
	Version string   `yaml:"version"`
	Results []Result `yaml:"results"`
}

// Result is the outcome of one profile. Values holds the target member values
// after a successful map, keyed by member name.
type Result struct {
	Profile string         `yaml:"profile"`
	Spec    string         `yaml:"spec"`
	Values  map[string]any `yaml:"values,omitempty"`
	Error   string         `yaml:"error,omitempty"`
}

// Failed reports whether any result carries an error.
func (r *Report) Failed() bool {
	for _, res := range r.Results {
		if res.Error != "" {
			return true
		}
	}

	return false
}

// WriteReport writes r to path. The mode bits of an existing file are kept.
func WriteReport(r *Report, path string) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	mode, err := filemode.GetMode(path)
	if errors.Is(err, fs.ErrNotExist) {
		mode = defaultReportMode
	} else if err != nil {
		return fmt.Errorf("failed to stat report file %s: %w", path, err)
	}

	if err := os.WriteFile(path, data, mode); err != nil {
		return fmt.Errorf("failed to write report file %s: %w", path, err)
	}

	// WriteFile applies the umask on create and leaves the mode of an
	// existing file alone
	if err := filemode.SetMode(path, mode); err != nil {
		return fmt.Errorf("failed to set mode of report file %s: %w", path, err)
	}

	return nil
}
