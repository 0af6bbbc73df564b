package metaecs

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// MaxAttributes is the maximum number of distinct attribute names that roles
// can require in a process. It matches the width of the attribute bitmask.
// Entities may carry any number of other names; those are stored by name and
// never take a bit.
const MaxAttributes = 256

// AttrID is the interned identifier of an attribute name that some role
// requires.
type AttrID uint8

// String returns the attribute name the ID was interned from.
func (id AttrID) String() string {
	attributes.mu.RLock()
	defer attributes.mu.RUnlock()
	return attributes.idToName[id]
}

type attributeRegistry struct {
	nameToID map[string]AttrID
	idToName [MaxAttributes]string
	mu       sync.RWMutex
	next     atomic.Uint32 // counter for assigning new attribute IDs
}

// attributes is shared by every entity and metasystem in the process, so an
// entity can be created before it is known which metasystem will own it.
var attributes = attributeRegistry{
	nameToID: make(map[string]AttrID, 32),
}

// AttrOf interns name and returns its ID. Interning the same name twice returns
// the same ID. Only requirements intern names; it panics when roles require
// more than MaxAttributes distinct names.
func AttrOf(name string) AttrID {
	attributes.mu.RLock()
	id, ok := attributes.nameToID[name]
	attributes.mu.RUnlock()
	if ok {
		return id
	}
	attributes.mu.Lock()
	defer attributes.mu.Unlock()
	if id, ok := attributes.nameToID[name]; ok {
		return id
	}
	n := attributes.next.Load()
	if n >= MaxAttributes {
		panic(fmt.Sprintf("ecs: cannot intern attribute %q: maximum number of required attribute names (%d) reached", name, MaxAttributes))
	}
	id = AttrID(n)
	attributes.nameToID[name] = id
	attributes.idToName[id] = name
	attributes.next.Store(n + 1)
	return id
}

// lookupAttr returns the ID of name without interning it. A name that was never
// interned is not required by any role.
func lookupAttr(name string) (AttrID, bool) {
	attributes.mu.RLock()
	defer attributes.mu.RUnlock()
	id, ok := attributes.nameToID[name]
	return id, ok
}

// interned returns the number of names interned so far. It only grows, so an
// entity whose mask was built at the current count is up to date.
func interned() uint32 {
	return attributes.next.Load()
}
