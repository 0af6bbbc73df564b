// Package metaecs implements a small, attribute-driven Entity Component System.
//
// Entities are dynamic records: a set of named attributes with opaque values.
// Systems declare named roles, each requiring a set of attribute names, and a
// processing routine. The Metasystem owns the registry of entities and systems,
// keeps every system's per-role candidates up to date as entities are added,
// removed or mutated, and on each tick invokes every system once per complete
// combination of its role candidates.
//
// Features:
//   - Attribute names interned to IDs, role qualification is a 256-bit subset test.
//   - Incremental candidate tracking: a single attribute change only re-checks
//     the roles that reference that attribute.
//   - Exhaustive cross-product dispatch, with no invocation at all when any role
//     is empty.
//   - Synchronous EventBus publishing lifecycle and tick events.
//
// The engine is single-threaded and non-reentrant. A processing routine may
// overwrite attribute values, but must not add or remove entities, nor set or
// delete attributes that change role membership of the system being
// dispatched: the candidate sets being enumerated would change under the
// iteration.
package metaecs

const (
	// ProcessAttr is the attribute holding a system's processing routine. The
	// metasystem selects as systems exactly the owned entities carrying it.
	ProcessAttr = "process"

	// SystemRole is the single role of the metasystem.
	SystemRole = "system"

	// MetasystemAttr is the attribute under which the metasystem facade entity
	// exposes its *Metasystem once RegisterItself is called.
	MetasystemAttr = "metasystem"

	// NameAttr is the conventional attribute used by Entity.String.
	NameAttr = "name"
)
