package mapper

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"member-binder/access"
	"member-binder/flags"
	"member-binder/internal/diagnostic"
	"member-binder/member"
	"member-binder/primitive"
	"member-binder/resolve"
)

// Mapper copies member values between objects of different shapes.
type Mapper struct {
	resolver *resolve.Resolver
	cache    *access.Cache
	plans    sync.Map // map[planKey]*plan
}

func New(r *resolve.Resolver, c *access.Cache) *Mapper {
	return &Mapper{resolver: r, cache: c}
}

type pair struct {
	name string
	from access.Accessor
	to   access.Accessor
}

type plan struct {
	pairs []pair
}

// Map copies the members selected by spec from source to target and returns
// target. Target must be a pointer.
//
// Every pair is resolved, and every value read and checked against its target
// member, before the first write: a missing member or an unassignable value
// leaves target untouched. A property setter that returns an error stops the
// copy after the members already written.
func (m *Mapper) Map(source, target any, spec Spec) (any, error) {
	if source == nil || target == nil {
		return target, fmt.Errorf("map %s: %w", spec, access.ErrNilInstance)
	}

	p, err := m.plan(reflect.TypeOf(source), reflect.TypeOf(target), spec)
	if err != nil {
		return target, err
	}

	values := make([]any, len(p.pairs))
	for i, pr := range p.pairs {
		v, err := access.Get(pr.from, source)
		if err != nil {
			return target, fmt.Errorf("map %s: %w", pr.name, err)
		}

		if err := access.Check(pr.to, v); err != nil {
			return target, fmt.Errorf("map %s: %w", pr.name, err)
		}

		values[i] = v
	}

	for i, pr := range p.pairs {
		if err := access.Set(pr.to, target, values[i]); err != nil {
			return target, fmt.Errorf("map %s: %w", pr.name, err)
		}
	}

	return target, nil
}

// Names lists the source member names Map would copy under spec.
func (m *Mapper) Names(source reflect.Type, spec Spec) []string {
	spec = spec.withDefaults()
	if len(spec.Names) > 0 {
		return spec.Names
	}

	var names []string
	for _, d := range m.resolver.Members(source, spec.Source, spec.SourceFlags) {
		if d.CanGet() {
			names = append(names, d.Name)
		}
	}

	return names
}

func (m *Mapper) plan(source, target reflect.Type, spec Spec) (*plan, error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}

	spec = spec.withDefaults()
	source, target = resolve.Normalize(source), resolve.Normalize(target)

	key := spec.key(source, target)
	if p, ok := m.plans.Load(key); ok {
		return p.(*plan), nil
	}

	p := &plan{}
	for _, name := range m.Names(source, spec) {
		from, err := m.bind(source, spec.Source, name, spec.SourceFlags)
		if err != nil {
			return nil, fmt.Errorf("map %s: %w", name, err)
		}

		to, err := m.bind(target, spec.Target, from.Descriptor().Name, spec.TargetFlags)
		if err != nil {
			return nil, fmt.Errorf("map %s: %w", name, err)
		}

		p.pairs = append(p.pairs, pair{name: name, from: from, to: to})
	}

	stored, _ := m.plans.LoadOrStore(key, p)

	return stored.(*plan), nil
}

// bind resolves name exactly and falls back to the single member of the same
// kind whose name differs only in case, so that a field "name" pairs with a
// property "Name".
func (m *Mapper) bind(t reflect.Type, kind member.Kind, name string, fl flags.Binding) (access.Accessor, error) {
	a, err := m.cache.Bind(m.resolver, resolve.Query{Type: t, Kind: kind, Name: name, Flags: fl})
	if err == nil || !errors.Is(err, member.ErrNotFound) {
		return a, err
	}

	var folded []string
	for _, d := range m.resolver.Members(t, kind, fl) {
		if strings.EqualFold(d.Name, name) {
			folded = append(folded, d.Name)
		}
	}

	if len(folded) != 1 {
		return nil, err
	}

	return m.cache.Bind(m.resolver, resolve.Query{Type: t, Kind: kind, Name: folded[0], Flags: fl})
}

// Check is a dry run of Map between two types. Unlike Map it does not stop at
// the first problem and reports every name.
func (m *Mapper) Check(source, target reflect.Type, spec Spec) diagnostic.Diagnostics {
	var diags diagnostic.Diagnostics

	source, target = resolve.Normalize(source), resolve.Normalize(target)
	typePair := fmt.Sprintf("%s->%s", source, target)

	if err := spec.validate(); err != nil {
		diags.AddError(diagnostic.CodeTypeMismatch, err.Error(), typePair, "")
		return diags
	}

	spec = spec.withDefaults()

	for _, name := range m.Names(source, spec) {
		from, err := m.bind(source, spec.Source, name, spec.SourceFlags)
		if err != nil {
			addResolveError(&diags, diagnostic.CodeSourceNotFound, err, typePair, name)
			continue
		}

		to, err := m.bind(target, spec.Target, from.Descriptor().Name, spec.TargetFlags)
		if err != nil {
			addResolveError(&diags, diagnostic.CodeTargetNotFound, err, typePair, name)
			continue
		}

		src, dst := from.Descriptor(), to.Descriptor()

		switch {
		case !src.CanGet():
			diags.AddError(diagnostic.CodeNotReadable, src.String()+" has no getter", typePair, name)
		case !dst.CanSet():
			diags.AddError(diagnostic.CodeNotWritable, dst.String()+" has no setter", typePair, name)
		case src.Type.AssignableTo(dst.Type):
			diags.AddInfo(diagnostic.CodeMapped, src.String()+" -> "+dst.String(), typePair, name)
		case src.Type.Kind() == reflect.Interface:
			diags.AddWarning(diagnostic.CodeDynamicType,
				fmt.Sprintf("%s holds %s, assignability to %s is checked per value", src, src.Type, dst.Type),
				typePair, name)
		default:
			msg := fmt.Sprintf("%s is not assignable to %s", src.Type, dst.Type)
			if reason := primitive.ExplainMismatch(src.Type, dst.Type); reason != "" {
				msg += ": " + reason
			}

			diags.AddError(diagnostic.CodeTypeMismatch, msg, typePair, name)
		}
	}

	return diags
}

func addResolveError(diags *diagnostic.Diagnostics, code string, err error, typePair, name string) {
	var notFound *member.NotFoundError
	if errors.As(err, &notFound) {
		diags.AddError(code, err.Error(), typePair, name, notFound.Suggestions...)
		return
	}

	if errors.Is(err, member.ErrAmbiguous) {
		code = diagnostic.CodeAmbiguous
	}

	diags.AddError(code, err.Error(), typePair, name)
}
