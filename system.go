package metaecs

import (
	"fmt"
	"sort"
)

// Roles maps each role name of a system to the attribute names an entity must
// carry to occupy that role. A role with no required attributes matches every
// entity.
type Roles map[string][]string

// ProcessFunc is a system's processing routine. It is invoked once per complete
// combination of role candidates. The Match is only valid during the call.
type ProcessFunc func(m Match)

// requirement is the compiled form of one role's required attribute set.
type requirement struct {
	names []string // sorted, de-duplicated
	mask  bitmask256
}

func newRequirement(names []string) requirement {
	r := requirement{names: make([]string, 0, len(names))}
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		r.names = append(r.names, n)
		r.mask.set(AttrOf(n))
	}
	sort.Strings(r.names)
	return r
}

// matches reports whether e carries every required name. A role with no
// requirements matches every entity without consulting its mask.
func (r requirement) matches(e *Entity) bool {
	return r.mask.empty() || e.bits().contains(r.mask)
}

// System is an entity carrying a processing routine under ProcessAttr, plus
// two tables derived once from its declared roles: the requirement table and
// the candidate index. Both are keyed by the same fixed, sorted role list.
//
// The embedded Entity is what gets added to a Metasystem.
type System struct {
	*Entity
	roleIndex  map[string]int
	roles      []string
	reqs       []requirement
	candidates []*entitySet
}

// NewSystem builds a system from its roles and processing routine. A nil
// process yields a system without ProcessAttr, which a metasystem never
// dispatches.
func NewSystem(roles Roles, process ProcessFunc) *System {
	names := make([]string, 0, len(roles))
	for role := range roles {
		names = append(names, role)
	}
	sort.Strings(names)
	s := &System{
		roleIndex:  make(map[string]int, len(names)),
		roles:      names,
		reqs:       make([]requirement, len(names)),
		candidates: make([]*entitySet, len(names)),
	}
	for i, role := range names {
		s.roleIndex[role] = i
		s.reqs[i] = newRequirement(roles[role])
		s.candidates[i] = newEntitySet()
	}
	attrs := Attributes{}
	if process != nil {
		attrs[ProcessAttr] = process
	}
	s.Entity = NewEntity(attrs)
	s.Entity.system = s
	return s
}

// Roles returns the system's role names in dispatch order.
func (s *System) Roles() []string {
	out := make([]string, len(s.roles))
	copy(out, s.roles)
	return out
}

// Requirement returns the attribute names required by role, sorted, or nil if
// the system has no such role.
func (s *System) Requirement(role string) []string {
	i, ok := s.roleIndex[role]
	if !ok {
		return nil
	}
	out := make([]string, len(s.reqs[i].names))
	copy(out, s.reqs[i].names)
	return out
}

// Candidates returns a copy of the entities currently qualifying for role. The
// order is unspecified.
func (s *System) Candidates(role string) []*Entity {
	i, ok := s.roleIndex[role]
	if !ok {
		return nil
	}
	return s.candidates[i].snapshot()
}

// IsCandidate reports whether e is currently in the candidate index of role.
func (s *System) IsCandidate(role string, e *Entity) bool {
	i, ok := s.roleIndex[role]
	return ok && s.candidates[i].has(e)
}

// Qualifies reports whether e carries every attribute role requires,
// regardless of whether it is registered.
func (s *System) Qualifies(role string, e *Entity) bool {
	i, ok := s.roleIndex[role]
	return ok && s.reqs[i].matches(e)
}

// Combinations returns the number of invocations the next dispatch would make:
// the product of the candidate counts of every role.
func (s *System) Combinations() int {
	n := 1
	for _, c := range s.candidates {
		n *= c.len()
	}
	return n
}

// Register inserts e into the candidates of every role it qualifies for and
// drops it from the roles it no longer qualifies for. Registering twice is a
// no-op.
func (s *System) Register(e *Entity) error {
	if err := s.validate(); err != nil {
		return err
	}
	s.register(e)
	return nil
}

// Unregister removes e from the candidates of every role, whether or not it
// still qualifies.
func (s *System) Unregister(e *Entity) error {
	if err := s.checkTables(); err != nil {
		return err
	}
	s.unregister(e)
	return nil
}

func (s *System) register(e *Entity) {
	for i, r := range s.reqs {
		if r.matches(e) {
			s.candidates[i].add(e)
		} else {
			s.candidates[i].remove(e)
		}
	}
}

func (s *System) unregister(e *Entity) {
	for _, c := range s.candidates {
		c.remove(e)
	}
}

// recheck re-evaluates e only for the roles whose requirement references id.
func (s *System) recheck(e *Entity, id AttrID) {
	for i, r := range s.reqs {
		if !r.mask.containsBit(id) {
			continue
		}
		if r.matches(e) {
			s.candidates[i].add(e)
		} else {
			s.candidates[i].remove(e)
		}
	}
}

// reset empties every role's candidates.
func (s *System) reset() {
	for _, c := range s.candidates {
		c.clear()
	}
}

// checkTables verifies the role tables are present and aligned.
func (s *System) checkTables() error {
	if s == nil || s.Entity == nil {
		return fmt.Errorf("%w: nil system", ErrMalformedSystem)
	}
	if s.Entity.system != s || s.roleIndex == nil ||
		len(s.reqs) != len(s.roles) || len(s.candidates) != len(s.roles) {
		return fmt.Errorf("%w: %v has no role tables", ErrMalformedSystem, s.Entity)
	}
	return nil
}

// validate verifies the role tables and the processing routine.
func (s *System) validate() error {
	if err := s.checkTables(); err != nil {
		return err
	}
	if _, ok := s.process(); !ok {
		return fmt.Errorf("%w: %v has no %s routine", ErrMalformedSystem, s.Entity, ProcessAttr)
	}
	return nil
}

// process returns the routine stored under ProcessAttr. Plain func(Match)
// values are accepted as well as ProcessFunc.
func (s *System) process() (ProcessFunc, bool) {
	v, ok := s.Entity.Get(ProcessAttr)
	if !ok {
		return nil, false
	}
	switch fn := v.(type) {
	case ProcessFunc:
		return fn, fn != nil
	case func(Match):
		return fn, fn != nil
	}
	return nil, false
}

// systemOf returns the descriptor of e, checking that it is well formed.
func systemOf(e *Entity) (*System, error) {
	if e.system == nil {
		return nil, fmt.Errorf("%w: %v carries %s but is not a system", ErrMalformedSystem, e, ProcessAttr)
	}
	if err := e.system.validate(); err != nil {
		return nil, err
	}
	return e.system, nil
}
