package metaecs

import "errors"

var (
	// ErrOwnershipConflict is returned when adding an entity that already
	// belongs to a metasystem, or removing one that does not belong to the
	// metasystem performing the call.
	ErrOwnershipConflict = errors.New("ecs: ownership conflict")

	// ErrMalformedSystem is returned when a system lacks its processing routine
	// or its role tables at registration or dispatch time.
	ErrMalformedSystem = errors.New("ecs: malformed system")
)
