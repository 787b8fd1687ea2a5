// Package sequence implements the replicated ordered container on top of
// package identifier and package allocator: an entry list keyed by
// identifier, with index-based local edits that produce operations and
// operation application for remote edits.
//
// A Replica is single-owner and not safe for concurrent use; if an
// embedder shares one across goroutines it must serialize access
// externally. Different replicas run independently; applying the same
// multiset of operations (inserts before their matching deletes) at any
// two replicas converges to identical ordered entries.
package sequence
