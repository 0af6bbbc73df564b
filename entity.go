package metaecs

import (
	"fmt"
	"sort"
	"sync/atomic"
)

// Attributes is the literal form of an entity's attribute set, used to create
// entities.
type Attributes map[string]any

// Entity is a mutable, dynamically keyed attribute record. Presence of an
// attribute name is the only type information the engine uses; values are
// opaque.
//
// An entity belongs to at most one Metasystem at a time. While owned, every Set
// and Delete notifies the owner, which re-checks the entity's qualification for
// the roles that reference the changed attribute.
type Entity struct {
	attrs  map[string]any
	owner  *Metasystem
	system *System // non-nil when the entity is a system descriptor
	id     uint64
	mask   bitmask256 // bits of the carried names that some role requires
	masked uint32     // interned() when mask was last rebuilt
}

var nextEntityID atomic.Uint64

// NewEntity creates a free-standing entity carrying attrs.
func NewEntity(attrs Attributes) *Entity {
	e := &Entity{
		id:    nextEntityID.Add(1),
		attrs: make(map[string]any, len(attrs)),
	}
	for name, v := range attrs {
		e.attrs[name] = v
	}
	e.rebuildMask(interned())
	return e
}

// bits returns the requirement mask of the entity, rebuilding it when roles
// have interned new names since it was last computed.
func (e *Entity) bits() bitmask256 {
	if n := interned(); n != e.masked {
		e.rebuildMask(n)
	}
	return e.mask
}

func (e *Entity) rebuildMask(n uint32) {
	e.mask = bitmask256{}
	for name := range e.attrs {
		if id, ok := lookupAttr(name); ok {
			e.mask.set(id)
		}
	}
	e.masked = n
}

// ID returns the process-unique identity of the entity.
func (e *Entity) ID() uint64 {
	return e.id
}

// Owner returns the metasystem the entity belongs to, or nil if it is free.
func (e *Entity) Owner() *Metasystem {
	return e.owner
}

// System returns the system descriptor when the entity was created by
// NewSystem, or nil.
func (e *Entity) System() *System {
	return e.system
}

// Has reports whether the entity carries the attribute name.
func (e *Entity) Has(name string) bool {
	_, ok := e.attrs[name]
	return ok
}

// Get returns the value of the attribute name and whether it is present.
func (e *Entity) Get(name string) (any, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

// Set adds or replaces the attribute name. If the entity is owned, its owner
// re-evaluates the roles that require name.
func (e *Entity) Set(name string, value any) {
	e.attrs[name] = value
	id, required := lookupAttr(name)
	if required {
		e.mask.set(id)
	}
	if e.owner != nil {
		e.owner.attributeChanged(e, name, id, required, true)
	}
}

// Delete removes the attribute name and reports whether it was present. If the
// entity is owned, its owner re-evaluates the roles that require name.
func (e *Entity) Delete(name string) bool {
	if _, ok := e.attrs[name]; !ok {
		return false
	}
	delete(e.attrs, name)
	id, required := lookupAttr(name)
	if required {
		e.mask.unset(id)
	}
	if e.owner != nil {
		e.owner.attributeChanged(e, name, id, required, false)
	}
	return true
}

// Len returns the number of attributes the entity carries.
func (e *Entity) Len() int {
	return len(e.attrs)
}

// Names returns the attribute names the entity carries, sorted.
func (e *Entity) Names() []string {
	names := make([]string, 0, len(e.attrs))
	for name := range e.attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Each calls fn for every attribute in name order until fn returns false.
func (e *Entity) Each(fn func(name string, value any) bool) {
	for _, name := range e.Names() {
		if !fn(name, e.attrs[name]) {
			return
		}
	}
}

// String formats the entity with its ID and, when present, its name attribute.
func (e *Entity) String() string {
	if e == nil {
		return "Entity(nil)"
	}
	if name, ok := e.Get(NameAttr); ok {
		return fmt.Sprintf("Entity(%d, name=%v)", e.id, name)
	}
	return fmt.Sprintf("Entity(%d)", e.id)
}

// Value returns the attribute name of e as a T. The boolean is false when the
// attribute is missing or holds a value of another type.
func Value[T any](e *Entity, name string) (T, bool) {
	v, ok := e.Get(name)
	if !ok {
		var zero T
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}

// Exists reports whether e belongs to a metasystem.
func Exists(e *Entity) bool {
	return e != nil && e.owner != nil
}
