// Package allocator implements the LSEQ identifier allocation strategy: a
// per-site, stateful generator that, given two identifiers p < q, mints a
// fresh identifier r with p < r < q.
//
// The allocator descends the exponential tree from the root comparing p
// and q position by position until it finds a depth with room (a gap of
// at least 2 between the two bounding indices), then places the new index
// near one edge of that gap. Which edge — boundary-plus (near the lower
// bound) or boundary-minus (near the upper bound) — is chosen once per
// depth, the first time that depth is used, and is sticky afterward. This
// spreads growth across both edges of the tree under mixed editing
// patterns instead of growing a single, ever-deeper chain.
package allocator
