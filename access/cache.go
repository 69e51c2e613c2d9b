package access

import (
	"reflect"
	"sync"
	"sync/atomic"

	"member-binder/flags"
	"member-binder/member"
	"member-binder/resolve"
)

var nullArgType = reflect.TypeFor[resolve.NullArg]()

// Key identifies a compiled accessor. Parameter lists are folded into a single
// func type so that keys stay comparable and compare by type identity.
type Key struct {
	Owner  reflect.Type
	Kind   member.Kind
	Name   string
	Flags  flags.Binding
	Params reflect.Type // nil when no argument list was supplied
}

// KeyOf derives the cache key of a resolution query.
func KeyOf(q resolve.Query) Key {
	k := Key{
		Owner: resolve.Normalize(q.Type),
		Kind:  q.Kind,
		Name:  q.Name,
		Flags: q.Flags,
	}

	if q.Args != nil {
		in := make([]reflect.Type, len(q.Args))
		for i, t := range q.Args {
			if resolve.IsNull(t) {
				t = nullArgType
			}

			in[i] = t
		}

		k.Params = reflect.FuncOf(in, nil, false)
	}

	return k
}

// Cache memoizes compiled accessors for the lifetime of the process. Entries
// are never evicted.
//
// Two goroutines missing the same key may both compile; compilation has no
// side effects, so only the first stored accessor is kept and every caller
// gets that one back.
type Cache struct {
	entries sync.Map // map[Key]Accessor
	size    atomic.Int64
}

func NewCache() *Cache {
	return &Cache{}
}

// GetOrCompile returns the accessor stored under key, compiling and storing it
// on a miss. Compile errors are returned and never stored.
func (c *Cache) GetOrCompile(key Key, compile func() (Accessor, error)) (Accessor, error) {
	if a, ok := c.entries.Load(key); ok {
		return a.(Accessor), nil
	}

	a, err := compile()
	if err != nil {
		return nil, err
	}

	stored, loaded := c.entries.LoadOrStore(key, a)
	if !loaded {
		c.size.Add(1)
	}

	return stored.(Accessor), nil
}

// Lookup returns the stored accessor for key without compiling.
func (c *Cache) Lookup(key Key) (Accessor, bool) {
	a, ok := c.entries.Load(key)
	if !ok {
		return nil, false
	}

	return a.(Accessor), true
}

// Len reports the number of stored accessors.
func (c *Cache) Len() int {
	return int(c.size.Load())
}

// Bind resolves q with r and returns the cached accessor for it.
func (c *Cache) Bind(r *resolve.Resolver, q resolve.Query) (Accessor, error) {
	return c.GetOrCompile(KeyOf(q), func() (Accessor, error) {
		d, err := r.Resolve(q)
		if err != nil {
			return nil, err
		}

		return Compile(d)
	})
}
