package binder

import (
	"reflect"

	"github.com/davecgh/go-spew/spew"

	"member-binder/flags"
	"member-binder/member"
)

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	DisableMethods:          false,
	SortKeys:                true,
	MaxDepth:                3,
}

// MemberSummary is the printable part of a member.Descriptor.
type MemberSummary struct {
	Kind      string
	Name      string
	Type      string
	Declaring string
	Depth     int
	Public    bool
	Static    bool
	Signature string
}

// Summaries lists every member of t visible under fl, kinds in declaration order.
func (e *Engine) Summaries(t reflect.Type, fl flags.Binding) []MemberSummary {
	var out []MemberSummary

	for k := member.Field; int(k) < member.KindTotal; k++ {
		for _, d := range e.resolver.Members(t, k, fl) {
			s := MemberSummary{
				Kind:      k.String(),
				Name:      d.Name,
				Depth:     d.Depth,
				Public:    d.Public,
				Static:    d.Static,
				Signature: d.String(),
			}

			if d.Type != nil {
				s.Type = d.Type.String()
			}

			if d.DeclaringType != nil {
				s.Declaring = d.DeclaringType.String()
			}

			out = append(out, s)
		}
	}

	return out
}

// Dump renders the members of t visible under fl for debugging.
func (e *Engine) Dump(t reflect.Type, fl flags.Binding) string {
	return dumper.Sdump(e.Summaries(t, fl))
}
