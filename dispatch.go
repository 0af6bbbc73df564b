package metaecs

// Match is one complete assignment of entities to a system's roles, handed to
// the processing routine. It is only valid for the duration of the call.
type Match struct {
	roles []string
	bound []*Entity
}

// Get returns the entity bound to role, or nil if the system has no such role.
func (m Match) Get(role string) *Entity {
	for i, r := range m.roles {
		if r == role {
			return m.bound[i]
		}
	}
	return nil
}

// Len returns the number of roles in the match.
func (m Match) Len() int {
	return len(m.roles)
}

// At returns the i-th role, in dispatch order, and its bound entity.
func (m Match) At(i int) (string, *Entity) {
	return m.roles[i], m.bound[i]
}

// Dispatch invokes the system's processing routine once per element of the
// cross product of its roles' candidates and returns the number of
// invocations. If any role has no candidates the routine is not invoked. A
// system with no roles is invoked exactly once.
//
// Cost grows with the product of the candidate counts; see Combinations.
func (s *System) Dispatch() (int, error) {
	if err := s.validate(); err != nil {
		return 0, err
	}
	process, _ := s.process()
	return s.join(process), nil
}

// join enumerates the cross product with an explicit cursor per role, the
// first role outermost. Cursors are bounds-checked on every step so a set that
// shrinks during the walk ends its level early instead of faulting.
func (s *System) join(process ProcessFunc) int {
	n := len(s.roles)
	m := Match{roles: s.roles, bound: make([]*Entity, n)}
	if n == 0 {
		process(m)
		return 1
	}
	for _, c := range s.candidates {
		if c.len() == 0 {
			return 0
		}
	}
	cursors := make([]int, n)
	calls := 0
	depth := 0
	for depth >= 0 {
		set := s.candidates[depth]
		if cursors[depth] >= set.len() {
			// level exhausted: unbind and advance the parent
			m.bound[depth] = nil
			cursors[depth] = 0
			depth--
			if depth >= 0 {
				cursors[depth]++
			}
			continue
		}
		m.bound[depth] = set.at(cursors[depth])
		if depth < n-1 {
			depth++
			continue
		}
		process(m)
		calls++
		cursors[depth]++
	}
	return calls
}
