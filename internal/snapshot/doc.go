// Package snapshot persists a sequence replica's operation log to disk
// and restores a replica from it, guarding the snapshot file with an
// exclusive lock so two processes never interleave a read and a write.
package snapshot
