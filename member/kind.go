package member

//go:generate go tool stringer -type=Kind -output=kind_string.go

// Kind is the category of a type member.
type Kind int

const (
	_ Kind = iota // zero value is an invalid kind

	Field
	Property
	Method
	Constructor

	// KindTotal is the number of valid kinds plus the invalid zero value
	KindTotal = int(iota)
)

// IsCallable reports whether members of this kind take an argument list.
func (k Kind) IsCallable() bool {
	switch k {
	default:
		return false
	case Method, Constructor:
		return true
	}
}

// IsValued reports whether members of this kind hold a gettable and settable value.
func (k Kind) IsValued() bool {
	switch k {
	default:
		return false
	case Field, Property:
		return true
	}
}
