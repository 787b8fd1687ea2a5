package allocator

import "errors"

// ErrInvalidBounds is returned by Alloc when the caller passes bounds that
// are not strictly ordered (p >= q). Well-behaved callers never trigger
// this; it exists so a misuse fails loudly instead of silently returning
// a meaningless identifier.
var ErrInvalidBounds = errors.New("allocator: lower bound must be strictly less than upper bound")
