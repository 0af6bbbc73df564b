package metaecs

import "fmt"

// Metasystem is the root coordinator. It owns the registry of entities and is
// itself a system with the single role SystemRole, requiring ProcessAttr, whose
// processing routine dispatches the bound system. Its candidates for that role
// are therefore exactly the registered systems.
//
// A Metasystem is not safe for concurrent use.
type Metasystem struct {
	self     *System
	facade   *Entity
	entities *entitySet
	events   *EventBus
	tickErr  error
	tick     uint64
	dispatch struct {
		systems int
		calls   int
	}
}

// New creates an empty metasystem.
func New() *Metasystem {
	m := &Metasystem{
		entities: newEntitySet(),
		events:   &EventBus{},
	}
	m.self = NewSystem(Roles{SystemRole: {ProcessAttr}}, m.process)
	m.self.Entity.owner = m
	m.facade = NewEntity(Attributes{NameAttr: "metasystem", MetasystemAttr: m})
	return m
}

// process is the metasystem's routine: run one dispatch of the bound system.
func (m *Metasystem) process(match Match) {
	s := match.Get(SystemRole).System()
	calls, err := s.Dispatch()
	if err != nil {
		if m.tickErr == nil {
			m.tickErr = err
		}
		return
	}
	m.dispatch.systems++
	m.dispatch.calls += calls
	Publish(m.events, SystemDispatched{System: s, Calls: calls})
}

// Events returns the bus the metasystem publishes lifecycle events on.
func (m *Metasystem) Events() *EventBus {
	return m.events
}

// System returns the metasystem's own system descriptor.
func (m *Metasystem) System() *System {
	return m.self
}

// Facade returns the entity representing the metasystem. It carries
// MetasystemAttr and becomes a candidate of other systems after RegisterItself.
func (m *Metasystem) Facade() *Entity {
	return m.facade
}

// Tick returns the number of completed Update calls.
func (m *Metasystem) Tick() uint64 {
	return m.tick
}

// Contains reports whether e belongs to this metasystem.
func (m *Metasystem) Contains(e *Entity) bool {
	return e != nil && e.owner == m
}

// Len returns the number of owned entities, systems included.
func (m *Metasystem) Len() int {
	return m.entities.len()
}

// Entities returns the owned entities in unspecified order.
func (m *Metasystem) Entities() []*Entity {
	return m.entities.snapshot()
}

// Systems returns the registered systems: the owned entities that are systems
// and currently carry ProcessAttr.
func (m *Metasystem) Systems() []*System {
	cands := m.self.candidates[0]
	out := make([]*System, 0, cands.len())
	for i := 0; i < cands.len(); i++ {
		if s := cands.at(i).system; s != nil {
			out = append(out, s)
		}
	}
	return out
}

// registered returns the registered systems, failing on the first candidate of
// SystemRole that is not a well-formed system.
func (m *Metasystem) registered() ([]*System, error) {
	cands := m.self.candidates[0]
	out := make([]*System, 0, cands.len())
	for i := 0; i < cands.len(); i++ {
		s, err := systemOf(cands.at(i))
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// Add makes e a member of the metasystem: it records the ownership, registers
// e with every registered system and with the metasystem's own role, and
// returns e. If e is itself a system it is filled with every owned entity.
//
// Add fails with ErrOwnershipConflict if e already belongs to a metasystem,
// and with ErrMalformedSystem if e or a registered system carries ProcessAttr
// without being a well-formed system. On failure nothing changes.
func (m *Metasystem) Add(e *Entity) (*Entity, error) {
	if e == nil {
		return nil, fmt.Errorf("%w: nil entity", ErrOwnershipConflict)
	}
	if e.owner != nil {
		return e, fmt.Errorf("%w: %v already belongs to a metasystem", ErrOwnershipConflict, e)
	}
	systems, err := m.registered()
	if err != nil {
		return e, err
	}
	joining := m.self.Qualifies(SystemRole, e)
	if joining {
		if _, err := systemOf(e); err != nil {
			return e, err
		}
	}

	e.owner = m
	m.entities.add(e)
	for _, s := range systems {
		s.register(e)
	}
	m.self.register(e)
	if joining {
		m.fill(e.system)
	}
	Publish(m.events, EntityAdded{Entity: e})
	return e, nil
}

// Remove takes e out of the metasystem: it is dropped from every registered
// system's candidates and from the metasystem's own role, its ownership is
// cleared, and e is returned. A removed system also forgets its candidates.
//
// Remove fails with ErrOwnershipConflict if e does not belong to this
// metasystem. On failure nothing changes.
func (m *Metasystem) Remove(e *Entity) (*Entity, error) {
	if e == nil || e.owner != m || e == m.self.Entity {
		return e, fmt.Errorf("%w: %v does not belong to this metasystem", ErrOwnershipConflict, e)
	}
	wasSystem := m.self.candidates[0].has(e)
	for _, s := range m.Systems() {
		s.unregister(e)
	}
	m.self.unregister(e)
	if wasSystem && e.system != nil {
		e.system.reset()
	}
	m.entities.remove(e)
	e.owner = nil
	Publish(m.events, EntityRemoved{Entity: e})
	return e, nil
}

// RegisterItself adds the metasystem facade entity, so systems whose roles
// require MetasystemAttr receive the metasystem as a candidate. Calling it
// again is a no-op.
func (m *Metasystem) RegisterItself() error {
	if m.facade.owner == m {
		return nil
	}
	_, err := m.Add(m.facade)
	return err
}

// Update runs one tick: the metasystem dispatches itself, which dispatches
// every registered system once. Every registered system is validated before
// any routine runs, so a malformed system fails the whole tick up front.
func (m *Metasystem) Update() error {
	if _, err := m.registered(); err != nil {
		return err
	}
	m.tickErr = nil
	m.dispatch.systems, m.dispatch.calls = 0, 0
	if _, err := m.self.Dispatch(); err != nil {
		return err
	}
	m.tick++
	Publish(m.events, TickCompleted{
		Tick:    m.tick,
		Systems: m.dispatch.systems,
		Calls:   m.dispatch.calls,
	})
	return m.tickErr
}

// attributeChanged re-checks e after its attribute name was set or deleted.
// Only the roles referencing name are touched, and a name no role requires
// touches none. An entity that starts carrying ProcessAttr while being a valid
// system is filled with every owned entity; one that stops carrying it forgets
// its candidates. An entity that carries ProcessAttr without being a valid
// system stays out of the system role until a later change makes it one.
func (m *Metasystem) attributeChanged(e *Entity, name string, id AttrID, required, present bool) {
	if e == m.self.Entity {
		return
	}
	if required {
		m.recheck(e, id)
	}
	if Subscribed[AttributeChanged](m.events) {
		Publish(m.events, AttributeChanged{Entity: e, Name: name, Present: present})
	}
}

func (m *Metasystem) recheck(e *Entity, id AttrID) {
	cands := m.self.candidates[0]
	for i := 0; i < cands.len(); i++ {
		if s := cands.at(i).system; s != nil && s.checkTables() == nil {
			s.recheck(e, id)
		}
	}
	was := cands.has(e)
	if !was && m.self.Qualifies(SystemRole, e) {
		if _, err := systemOf(e); err != nil {
			return
		}
	}
	m.self.recheck(e, id)
	is := cands.has(e)
	switch {
	case !was && is:
		m.fill(e.system)
	case was && !is && e.system != nil:
		e.system.reset()
	}
}

// fill registers every owned entity with s, which just became a registered
// system.
func (m *Metasystem) fill(s *System) {
	for _, e := range m.entities.snapshot() {
		s.register(e)
	}
}
