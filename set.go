package metaecs

// entitySet is a de-duplicated collection of entities with O(1) insert, remove
// and membership. Entities are kept densely for iteration; removal swaps the
// last entity into the freed slot, so iteration order is not meaningful.
type entitySet struct {
	index map[*Entity]int
	dense []*Entity
}

func newEntitySet() *entitySet {
	return &entitySet{index: make(map[*Entity]int)}
}

// add inserts e and reports whether it was absent.
func (s *entitySet) add(e *Entity) bool {
	if _, ok := s.index[e]; ok {
		return false
	}
	s.index[e] = len(s.dense)
	s.dense = append(s.dense, e)
	return true
}

// remove deletes e and reports whether it was present.
func (s *entitySet) remove(e *Entity) bool {
	idx, ok := s.index[e]
	if !ok {
		return false
	}
	last := len(s.dense) - 1
	if idx < last {
		moved := s.dense[last]
		s.dense[idx] = moved
		s.index[moved] = idx
	}
	s.dense[last] = nil
	s.dense = s.dense[:last]
	delete(s.index, e)
	return true
}

func (s *entitySet) has(e *Entity) bool {
	_, ok := s.index[e]
	return ok
}

func (s *entitySet) len() int {
	return len(s.dense)
}

// at returns the entity at position i, or nil when i is out of range.
func (s *entitySet) at(i int) *Entity {
	if i < 0 || i >= len(s.dense) {
		return nil
	}
	return s.dense[i]
}

// clear removes every entity, keeping allocated storage.
func (s *entitySet) clear() {
	clear(s.dense)
	s.dense = s.dense[:0]
	clear(s.index)
}

// snapshot returns a copy of the members that is safe to hold across
// mutations of the set.
func (s *entitySet) snapshot() []*Entity {
	out := make([]*Entity, len(s.dense))
	copy(out, s.dense)
	return out
}
