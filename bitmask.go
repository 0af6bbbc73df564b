package metaecs

// bitmask256 represents a set of up to 256 attribute IDs. An entity keeps the
// mask of the required attributes it currently carries, and every role keeps
// the mask of the attributes it requires, so qualification is a subset test.
type bitmask256 [4]uint64

// set enables the bit corresponding to the given attribute ID.
func (m *bitmask256) set(bit AttrID) {
	i := bit >> 6 // (bit / 64) to find the uint64 index
	o := bit & 63 // (bit % 64) to find the bit offset
	m[i] |= uint64(1) << uint64(o)
}

// unset disables the bit corresponding to the given attribute ID.
func (m *bitmask256) unset(bit AttrID) {
	i := bit >> 6
	o := bit & 63
	m[i] &= ^(uint64(1) << uint64(o))
}

// contains checks if all the bits set in `sub` are also set in `m`. An entity
// qualifies for a role when its mask contains the role's requirement mask.
func (m bitmask256) contains(sub bitmask256) bool {
	return (m[0]&sub[0]) == sub[0] &&
		(m[1]&sub[1]) == sub[1] &&
		(m[2]&sub[2]) == sub[2] &&
		(m[3]&sub[3]) == sub[3]
}

// containsBit checks if a specific bit is set in the mask.
func (m bitmask256) containsBit(bit AttrID) bool {
	i := bit >> 6
	o := bit & 63
	return (m[i] & (uint64(1) << uint64(o))) != 0
}

// empty reports whether no bit is set. A role with an empty requirement mask
// matches every entity.
func (m bitmask256) empty() bool {
	return m[0]|m[1]|m[2]|m[3] == 0
}
