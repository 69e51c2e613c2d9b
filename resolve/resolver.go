package resolve

import (
	"reflect"
	"slices"
	"sync"

	"member-binder/flags"
	"member-binder/internal/match"
	"member-binder/member"
)

const maxSuggestions = 3

// Query is a member resolution request.
type Query struct {
	Type  reflect.Type
	Kind  member.Kind
	Name  string
	Flags flags.Binding
	// Args constrains methods and constructors. Nil means "not supplied" and
	// matches any arity; an empty non-nil slice asks for no parameters. A NullArg
	// (or nil) element stands for a nil argument.
	Args []reflect.Type
}

// Resolver maps queries to member descriptors. Per-type scans are cached for
// the lifetime of the resolver.
type Resolver struct {
	registry *Registry
	scans    sync.Map // map[reflect.Type]*typeScan
}

// New creates a resolver backed by reg, or by Default when reg is nil.
func New(reg *Registry) *Resolver {
	if reg == nil {
		reg = Default
	}

	return &Resolver{registry: reg}
}

// Registry returns the registry the resolver reads registered members from.
func (r *Resolver) Registry() *Registry {
	return r.registry
}

// Resolve finds the unique member satisfying q.
//
// Levels of the embedding hierarchy are searched from the owner down, and the
// first level with a surviving candidate decides. Among methods and
// constructors on that level the one needing the fewest implicit argument
// conversions wins; a tie is reported as *member.AmbiguousMatchError. No
// candidate at all is reported as *member.NotFoundError.
func (r *Resolver) Resolve(q Query) (*member.Descriptor, error) {
	owner := Normalize(q.Type)
	if owner == nil {
		return nil, r.notFound(nil, nil, q)
	}

	if q.Kind == member.Constructor {
		return r.resolveConstructor(owner, q)
	}

	sc := r.scan(owner)

	maxDepth := sc.maxDepth
	if q.Flags.Has(flags.DeclaredOnly) {
		maxDepth = 0
	}

	for depth := 0; depth <= maxDepth; depth++ {
		var found []*member.Descriptor
		for _, d := range r.atDepth(sc, depth) {
			if d.Kind == q.Kind && matchName(d.Name, q.Name, q.Flags) && q.Flags.Visible(d.Public, d.Static) {
				found = append(found, d)
			}
		}

		if q.Kind.IsCallable() {
			found = applicable(found, q.Args)
		}

		if len(found) == 0 {
			continue
		}

		return pick(owner, q, found)
	}

	return nil, r.notFound(owner, sc, q)
}

// Members lists the members of kind visible under fl, shallowest first and in
// declaration order within a level. Names shadowed by a shallower member and
// embedded struct fields themselves are left out.
func (r *Resolver) Members(t reflect.Type, kind member.Kind, fl flags.Binding) []*member.Descriptor {
	owner := Normalize(t)
	if owner == nil {
		return nil
	}

	if kind == member.Constructor {
		return r.constructors(owner, fl)
	}

	sc := r.scan(owner)

	maxDepth := sc.maxDepth
	if fl.Has(flags.DeclaredOnly) {
		maxDepth = 0
	}

	var out []*member.Descriptor

	shadowed := make(map[string]bool)
	for depth := 0; depth <= maxDepth; depth++ {
		var level []*member.Descriptor
		for _, d := range r.atDepth(sc, depth) {
			if d.Kind != kind || shadowed[d.Name] {
				continue
			}

			// embedded fields are promoted into, not mapped as values
			if kind == member.Field && !d.Static && isEmbedded(owner, d) {
				shadowed[d.Name] = true
				continue
			}

			if fl.Visible(d.Public, d.Static) {
				level = append(level, d)
			}
		}

		for _, d := range level {
			shadowed[d.Name] = true
		}

		out = append(out, level...)
	}

	return out
}

// atDepth merges scanned members at depth with the members registered on the
// level types of that depth.
func (r *Resolver) atDepth(sc *typeScan, depth int) []*member.Descriptor {
	out := slices.Clone(sc.byDepth[depth])

	for _, lv := range sc.levels {
		if lv.depth != depth {
			continue
		}

		for _, d := range r.registry.lookup(lv.typ) {
			if d.Kind == member.Constructor {
				continue
			}

			rebased := *d
			rebased.Owner = sc.owner
			rebased.Depth = lv.depth

			if !d.Static {
				rebased.Index = lv.index
			}

			out = append(out, &rebased)
		}
	}

	return out
}

func (r *Resolver) constructors(owner reflect.Type, fl flags.Binding) []*member.Descriptor {
	var out []*member.Descriptor

	registered := r.registry.lookup(owner)
	for _, d := range registered {
		if d.Kind == member.Constructor && fl.Visible(d.Public, false) {
			out = append(out, d)
		}
	}

	// a visible registered parameterless constructor replaces the zero value
	implicit := owner.Kind() != reflect.Interface && !slices.ContainsFunc(out, func(d *member.Descriptor) bool {
		return len(d.Params) == 0 && !d.Variadic
	})

	if implicit && fl.Visible(true, false) {
		out = append(out, &member.Descriptor{
			Owner:         owner,
			Kind:          member.Constructor,
			Name:          "new",
			Type:          owner,
			DeclaringType: owner,
			Public:        true,
			Params:        []reflect.Type{},
		})
	}

	return out
}

func (r *Resolver) resolveConstructor(owner reflect.Type, q Query) (*member.Descriptor, error) {
	found := applicable(r.constructors(owner, q.Flags), q.Args)
	if len(found) == 0 {
		return nil, r.notFound(owner, nil, q)
	}

	return pick(owner, q, found)
}

// applicable drops callables whose parameters cannot bind args.
func applicable(found []*member.Descriptor, args []reflect.Type) []*member.Descriptor {
	if args == nil {
		return found
	}

	return slices.DeleteFunc(slices.Clone(found), func(d *member.Descriptor) bool {
		return conversions(d.Params, d.Variadic, args) < 0
	})
}

// pick applies the tie-break rules to candidates found on one level.
func pick(owner reflect.Type, q Query, found []*member.Descriptor) (*member.Descriptor, error) {
	if len(found) == 1 {
		return found[0], nil
	}

	if !q.Kind.IsCallable() || q.Args == nil {
		return nil, &member.AmbiguousMatchError{Kind: q.Kind, Type: owner, Name: q.Name, Candidates: found}
	}

	var best []*member.Descriptor

	bestCost := -1
	for _, d := range found {
		cost := conversions(d.Params, d.Variadic, q.Args)

		switch {
		case bestCost < 0 || cost < bestCost:
			best, bestCost = []*member.Descriptor{d}, cost
		case cost == bestCost:
			best = append(best, d)
		}
	}

	if len(best) > 1 {
		return nil, &member.AmbiguousMatchError{Kind: q.Kind, Type: owner, Name: q.Name, Candidates: best}
	}

	return best[0], nil
}

func (r *Resolver) notFound(owner reflect.Type, sc *typeScan, q Query) error {
	err := &member.NotFoundError{Kind: q.Kind, Type: owner, Name: q.Name, Flags: q.Flags}
	if sc == nil {
		return err
	}

	var names []string
	for depth := range sc.byDepth {
		for _, d := range r.atDepth(sc, depth) {
			if d.Kind == q.Kind {
				names = append(names, d.Name)
			}
		}
	}

	err.Suggestions = match.Suggest(q.Name, names, maxSuggestions)

	return err
}

func matchName(declared, requested string, fl flags.Binding) bool {
	if declared == requested {
		return true
	}

	return fl.Has(flags.TrimExplicitlyImplemented) && member.TrimQualifier(declared) == requested
}

func isEmbedded(owner reflect.Type, d *member.Descriptor) bool {
	if owner.Kind() != reflect.Struct || len(d.Index) == 0 {
		return false
	}

	return owner.FieldByIndex(d.Index).Anonymous
}
