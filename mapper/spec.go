package mapper

import (
	"fmt"
	"reflect"
	"strings"

	"member-binder/flags"
	"member-binder/member"
)

// Spec selects which members a Map call copies.
type Spec struct {
	// Source and Target are member.Field or member.Property.
	Source, Target member.Kind
	// Names restricts the copy to these source member names. Empty means every
	// member of kind Source found on the source type.
	Names []string
	// SourceFlags and TargetFlags default to flags.InstanceAnyVisibility.
	SourceFlags, TargetFlags flags.Binding
}

// Fields copies fields to fields.
func Fields(names ...string) Spec {
	return Spec{Source: member.Field, Target: member.Field, Names: names}
}

// Properties copies properties to properties.
func Properties(names ...string) Spec {
	return Spec{Source: member.Property, Target: member.Property, Names: names}
}

// FieldsToProperties copies fields to properties.
func FieldsToProperties(names ...string) Spec {
	return Spec{Source: member.Field, Target: member.Property, Names: names}
}

// PropertiesToFields copies properties to fields.
func PropertiesToFields(names ...string) Spec {
	return Spec{Source: member.Property, Target: member.Field, Names: names}
}

func (s Spec) withDefaults() Spec {
	if s.SourceFlags == flags.None {
		s.SourceFlags = flags.InstanceAnyVisibility
	}

	if s.TargetFlags == flags.None {
		s.TargetFlags = flags.InstanceAnyVisibility
	}

	return s
}

func (s Spec) validate() error {
	if !s.Source.IsValued() || !s.Target.IsValued() {
		return fmt.Errorf("map %s to %s: %w", s.Source, s.Target, member.ErrUnsupported)
	}

	return nil
}

// String renders e.g. "Field->Property[name,age]".
func (s Spec) String() string {
	out := s.Source.String() + "->" + s.Target.String()
	if len(s.Names) > 0 {
		out += "[" + strings.Join(s.Names, ",") + "]"
	}

	return out
}

// planKey identifies a cached plan. Names are joined since slices are not comparable.
type planKey struct {
	source, target reflect.Type
	from, to       member.Kind
	names          string
	srcFlags       flags.Binding
	dstFlags       flags.Binding
}

func (s Spec) key(source, target reflect.Type) planKey {
	return planKey{
		source:   source,
		target:   target,
		from:     s.Source,
		to:       s.Target,
		names:    strings.Join(s.Names, "\x00"),
		srcFlags: s.SourceFlags,
		dstFlags: s.TargetFlags,
	}
}
