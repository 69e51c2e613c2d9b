package flags

import "strings"

// Binding narrows member resolution. Values are combined with bitwise OR.
type Binding int

const (
	Public                    Binding = 1 << iota // exported members and registered members with an upper-case name
	NonPublic                                     // unexported fields and registered members with a lower-case name
	Instance                                      // members reached through an instance
	Static                                        // members registered on the type itself
	DeclaredOnly                                  // skip members promoted from embedded types
	TrimExplicitlyImplemented                     // match "Iface.Name" members by "Name"

	InstanceAnyVisibility = Public | NonPublic | Instance
	StaticAnyVisibility   = Public | NonPublic | Static
	AllMembers            = Public | NonPublic | Instance | Static

	Default Binding = Public | Instance | Static
	None    Binding = 0
)

var names = []struct {
	flag Binding
	name string
}{
	{Public, "Public"},
	{NonPublic, "NonPublic"},
	{Instance, "Instance"},
	{Static, "Static"},
	{DeclaredOnly, "DeclaredOnly"},
	{TrimExplicitlyImplemented, "TrimExplicitlyImplemented"},
}

// Has reports whether every bit of mask is set.
func (b Binding) Has(mask Binding) bool {
	return b&mask == mask
}

// Any reports whether at least one bit of mask is set.
func (b Binding) Any(mask Binding) bool {
	return b&mask != 0
}

func (b Binding) With(mask Binding) Binding {
	return b | mask
}

func (b Binding) Without(mask Binding) Binding {
	return b &^ mask
}

// Visible reports whether a member with the given visibility and static-ness passes b.
func (b Binding) Visible(public, static bool) bool {
	switch {
	case public && !b.Has(Public):
		return false
	case !public && !b.Has(NonPublic):
		return false
	case static && !b.Has(Static):
		return false
	case !static && !b.Has(Instance):
		return false
	}

	return true
}

// String renders the set bits joined by "|", e.g. "Public|Instance".
func (b Binding) String() string {
	if b == None {
		return "None"
	}

	var parts []string
	for _, n := range names {
		if b.Has(n.flag) {
			parts = append(parts, n.name)
		}
	}

	return strings.Join(parts, "|")
}

// Parse reads a comma or pipe separated list of flag names, case-insensitively.
// The composites "instanceany", "staticany" and "default" are accepted too.
func Parse(s string) (Binding, bool) {
	var out Binding

	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '|' || r == ' ' })
	for _, field := range fields {
		switch strings.ToLower(field) {
		default:
			return None, false
		case "public":
			out |= Public
		case "nonpublic":
			out |= NonPublic
		case "instance":
			out |= Instance
		case "static":
			out |= Static
		case "declaredonly":
			out |= DeclaredOnly
		case "trim", "trimexplicitlyimplemented":
			out |= TrimExplicitlyImplemented
		case "instanceany", "instanceanyvisibility":
			out |= InstanceAnyVisibility
		case "staticany", "staticanyvisibility":
			out |= StaticAnyVisibility
		case "all", "allmembers":
			out |= AllMembers
		case "default":
			out |= Default
		}
	}

	return out, true
}
