package sequence

import "errors"

// ErrReservedSite is returned by NewReplica when asked to construct a
// replica for the reserved site id (0), which is embedded in the
// BEGIN/END sentinels and must never be used by a real site.
var ErrReservedSite = errors.New("sequence: site 0 is reserved for sentinels")
