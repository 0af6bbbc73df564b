package metaecs

// EntityAdded is published after an entity joins a metasystem and has been
// registered with every system.
type EntityAdded struct {
	Entity *Entity
}

// EntityRemoved is published after an entity left a metasystem.
type EntityRemoved struct {
	Entity *Entity
}

// AttributeChanged is published after an owned entity's attribute was set
// (Present true) or deleted, and the affected roles were re-checked.
type AttributeChanged struct {
	Entity  *Entity
	Name    string
	Present bool
}

// SystemDispatched is published after a system was dispatched during a tick.
type SystemDispatched struct {
	System *System
	Calls  int
}

// TickCompleted is published at the end of every Update.
type TickCompleted struct {
	Tick    uint64
	Systems int // systems dispatched
	Calls   int // processing routine invocations across all systems
}
