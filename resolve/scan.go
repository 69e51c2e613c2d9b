package resolve

import (
	"reflect"
	"runtime"
	"strings"

	"member-binder/member"
)

// level is one step of the embedding hierarchy: the owner itself at depth 0,
// then every struct or interface embedded at the previous depth.
type level struct {
	typ   reflect.Type
	depth int
	// index is the field path from the owner to this level's value.
	index []int
	// nilable is set when index crosses an embedded pointer or interface.
	nilable bool
}

// typeScan is the reflect-discoverable part of a type, computed once per type.
type typeScan struct {
	owner    reflect.Type
	levels   []level
	maxDepth int
	// byDepth holds fields, methods and properties grouped by declaring depth.
	byDepth [][]*member.Descriptor
}

// Normalize strips pointers so *T and **T resolve against T.
func Normalize(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return t
}

func (r *Resolver) scan(t reflect.Type) *typeScan {
	if sc, ok := r.scans.Load(t); ok {
		return sc.(*typeScan)
	}

	// concurrent scans of the same type are equivalent, the first stored wins
	sc, _ := r.scans.LoadOrStore(t, buildScan(t))

	return sc.(*typeScan)
}

func buildScan(owner reflect.Type) *typeScan {
	sc := &typeScan{owner: owner, levels: walkLevels(owner)}
	for _, lv := range sc.levels {
		sc.maxDepth = max(sc.maxDepth, lv.depth)
	}

	sc.byDepth = make([][]*member.Descriptor, sc.maxDepth+1)

	for _, lv := range sc.levels {
		if lv.typ.Kind() != reflect.Struct {
			continue
		}

		for i := range lv.typ.NumField() {
			f := lv.typ.Field(i)
			sc.byDepth[lv.depth] = append(sc.byDepth[lv.depth], &member.Descriptor{
				Owner:         owner,
				Kind:          member.Field,
				Name:          f.Name,
				Type:          f.Type,
				DeclaringType: lv.typ,
				Depth:         lv.depth,
				Public:        f.IsExported(),
				Index:         append(append([]int(nil), lv.index...), i),
			})
		}
	}

	methods := scanMethods(owner, sc.levels)
	for _, d := range methods {
		sc.byDepth[d.Depth] = append(sc.byDepth[d.Depth], d)
	}

	for _, d := range scanProperties(owner, methods) {
		sc.byDepth[d.Depth] = append(sc.byDepth[d.Depth], d)
	}

	return sc
}

// walkLevels lists the embedding hierarchy breadth first. Recursive embedding
// through pointers is cut at the first repeated type.
func walkLevels(owner reflect.Type) []level {
	levels := []level{{typ: owner}}
	seen := map[reflect.Type]bool{owner: true}

	for i := 0; i < len(levels); i++ {
		lv := levels[i]
		if lv.typ.Kind() != reflect.Struct {
			continue
		}

		for j := range lv.typ.NumField() {
			f := lv.typ.Field(j)
			if !f.Anonymous {
				continue
			}

			ft, nilable := f.Type, f.Type.Kind() == reflect.Interface
			if ft.Kind() == reflect.Pointer {
				ft, nilable = ft.Elem(), true
			}

			if ft.Kind() != reflect.Struct && ft.Kind() != reflect.Interface || seen[ft] {
				continue
			}

			seen[ft] = true
			levels = append(levels, level{
				typ:        ft,
				depth:      lv.depth + 1,
				index:      append(append([]int(nil), lv.index...), j),
				nilable:    lv.nilable || nilable,
			})
		}
	}

	return levels
}

// scanMethods lists the exported method set of *owner. Each method is attributed
// to the shallowest level that declares it rather than promotes it.
func scanMethods(owner reflect.Type, levels []level) []*member.Descriptor {
	if owner.Kind() == reflect.Interface {
		return nil
	}

	pt := reflect.PointerTo(owner)
	out := make([]*member.Descriptor, 0, pt.NumMethod())

	for i := range pt.NumMethod() {
		m := pt.Method(i)
		mt := m.Type

		d := &member.Descriptor{
			Owner:         owner,
			Kind:          member.Method,
			Name:          m.Name,
			DeclaringType: owner,
			Public:        true,
			Func:          m.Func,
			Receiver:      pt,
			Variadic:      mt.IsVariadic(),
		}

		for j := 1; j < mt.NumIn(); j++ {
			d.Params = append(d.Params, mt.In(j))
		}

		for j := range mt.NumOut() {
			d.Results = append(d.Results, mt.Out(j))
		}

		d.Type = valueResult(d.Results)

		for _, lv := range levels {
			if declares(lv.typ, m.Name) {
				d.DeclaringType, d.Depth = lv.typ, lv.depth
				if lv.nilable {
					d.Via = lv.index
				}
				break
			}
		}

		out = append(out, d)
	}

	return out
}

// declares reports whether t itself declares method name, as opposed to
// having it promoted from an embedded field.
func declares(t reflect.Type, name string) bool {
	if t.Kind() == reflect.Interface {
		_, ok := t.MethodByName(name)
		return ok
	}

	if _, ok := reflect.PointerTo(t).MethodByName(name); !ok {
		return false
	}

	if t.Kind() != reflect.Struct {
		return true
	}

	promoted := false
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.Anonymous {
			continue
		}

		ft := f.Type
		if ft.Kind() != reflect.Pointer && ft.Kind() != reflect.Interface {
			ft = reflect.PointerTo(ft)
		}

		if _, ok := ft.MethodByName(name); ok {
			promoted = true
			break
		}
	}

	if !promoted {
		return true
	}

	// t may shadow the embedded method with its own. Promotion wrappers are
	// compiler generated and report no source position.
	for _, rt := range []reflect.Type{t, reflect.PointerTo(t)} {
		m, ok := rt.MethodByName(name)
		if !ok {
			continue
		}

		if fn := runtime.FuncForPC(m.Func.Pointer()); fn != nil {
			file, _ := fn.FileLine(fn.Entry())
			if file != "" && !strings.HasPrefix(file, "<") {
				return true
			}
		}
	}

	return false
}

// scanProperties derives properties from accessor methods. A property P exists
// when *owner has SetP(v) or GetP(). The getter is P() or GetP() returning the
// setter's parameter type.
func scanProperties(owner reflect.Type, methods []*member.Descriptor) []*member.Descriptor {
	byName := make(map[string]*member.Descriptor, len(methods))
	for _, m := range methods {
		byName[m.Name] = m
	}

	var out []*member.Descriptor

	seen := make(map[string]bool)
	for _, m := range methods {
		var name string

		switch {
		case strings.HasPrefix(m.Name, "Set") && len(m.Name) > 3:
			name = m.Name[3:]
		case strings.HasPrefix(m.Name, "Get") && len(m.Name) > 3:
			name = m.Name[3:]
		default:
			continue
		}

		if seen[name] || !member.IsExportedName(name) {
			continue
		}

		seen[name] = true

		d := &member.Descriptor{
			Owner:  owner,
			Kind:   member.Property,
			Name:   name,
			Public: true,
			Depth:  -1,
		}

		if setter := byName["Set"+name]; setter != nil && isSetterSignature(setter.Func.Type(), 1) {
			d.Setter = setter.Func
			d.SetterVia = setter.Via
			d.Type = setter.Params[0]
			d.DeclaringType, d.Depth = setter.DeclaringType, setter.Depth
		}

		for _, candidate := range []string{name, "Get" + name} {
			getter := byName[candidate]
			if getter == nil || len(getter.Params) != 0 || len(getter.Results) != 1 {
				continue
			}

			if d.Type != nil && getter.Results[0] != d.Type {
				continue
			}

			d.Getter = getter.Func
			d.Via = getter.Via
			d.Type = getter.Results[0]
			d.Results = getter.Results

			if d.Depth < 0 || getter.Depth < d.Depth {
				d.DeclaringType, d.Depth = getter.DeclaringType, getter.Depth
			}

			break
		}

		if d.Type == nil {
			continue
		}

		out = append(out, d)
	}

	return out
}
