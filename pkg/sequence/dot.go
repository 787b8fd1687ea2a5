package sequence

import "fmt"

// Dot identifies the origin of an operation: the site that issued it and
// that site's local, monotonically increasing counter at the time. A dot
// is emitted at most once per site.
type Dot struct {
	Site    uint32 `json:"site"`
	Counter uint64 `json:"counter"`
}

// String renders the dot for diagnostics, e.g. "site:3/counter:12".
func (d Dot) String() string {
	return fmt.Sprintf("site:%d/counter:%d", d.Site, d.Counter)
}
