// Package identifier implements the LSEQ exponential-tree path identifier:
// a dense, totally ordered address for a position in a replicated sequence.
//
// An identifier is an ordered list of (index, site) positions, read as a
// path from the implicit root of an exponential tree down to a leaf. Depth
// k of the tree has 2^(3+k) child slots; the first and last slot at every
// depth are reserved: package allocator never places a new leaf in them.
// BEGIN and END use them at depth 0, and slot 0 with the reserved site
// also appears as filler on an allocated path that descends below a
// shorter lower bound. New itself does not reject these indices.
//
// Comparison is lexicographic over positions, with a strict prefix
// considered smaller than anything it prefixes. This package has no
// knowledge of allocation strategy or randomness; see package allocator
// for that.
package identifier
