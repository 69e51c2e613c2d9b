package profile

import (
	"fmt"

	"member-binder/flags"
	"member-binder/mapper"
)

// Mode selects the member kinds a profile copies between.
type Mode string

const (
	ModeFields             Mode = "fields"
	ModeProperties         Mode = "properties"
	ModeFieldsToProperties Mode = "fields-to-properties"
	ModePropertiesToFields Mode = "properties-to-fields"
)

// File is the root of a profile document.
type File struct {
	Version  string    `yaml:"version"`
	Profiles []Profile `yaml:"profiles"`
}

// Profile is one map run between two sample types.
type Profile struct {
	Name        string   `yaml:"name,omitempty"`
	Source      string   `yaml:"source"`
	Target      string   `yaml:"target"`
	Mode        Mode     `yaml:"mode,omitempty"`
	Members     []string `yaml:"members,omitempty"`
	SourceFlags string   `yaml:"source_flags,omitempty"`
	TargetFlags string   `yaml:"target_flags,omitempty"`
}

// Spec converts the profile into a mapper spec.
func (p *Profile) Spec() (mapper.Spec, error) {
	var spec mapper.Spec

	switch p.Mode {
	case ModeFields:
		spec = mapper.Fields(p.Members...)
	case ModeProperties:
		spec = mapper.Properties(p.Members...)
	case ModeFieldsToProperties:
		spec = mapper.FieldsToProperties(p.Members...)
	case ModePropertiesToFields:
		spec = mapper.PropertiesToFields(p.Members...)
	default:
		return spec, fmt.Errorf("profile %s: unknown mode %q", p.Name, p.Mode)
	}

	var err error

	if spec.SourceFlags, err = parseFlags(p.SourceFlags); err != nil {
		return spec, fmt.Errorf("profile %s source_flags: %w", p.Name, err)
	}

	if spec.TargetFlags, err = parseFlags(p.TargetFlags); err != nil {
		return spec, fmt.Errorf("profile %s target_flags: %w", p.Name, err)
	}

	return spec, nil
}

// parseFlags reads a flag list; empty leaves the mapper default in place.
func parseFlags(s string) (flags.Binding, error) {
	if s == "" {
		return flags.None, nil
	}

	fl, ok := flags.Parse(s)
	if !ok {
		return flags.None, fmt.Errorf("invalid binding flags %q", s)
	}

	return fl, nil
}
