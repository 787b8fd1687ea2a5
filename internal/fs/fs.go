// Package fs provides the minimal filesystem surface the snapshot layer
// needs to persist a replica to disk: existence checks, whole-file reads,
// a crash-safe atomic write, and an flock-based [Locker] guarding the
// snapshot path across processes.
package fs

import "os"

// Locker represents a held file lock. Call [Locker.Close] to release it.
type Locker interface {
	Close() error
}

// FS is the filesystem dependency [internal/snapshot] is written against,
// so tests can substitute a fake without touching the real disk.
//
// [Real] is the only production implementation.
type FS interface {
	// Exists reports whether path exists. Returns (false, nil) if not
	// found, (false, err) for any other stat failure.
	Exists(path string) (bool, error)

	// ReadFile reads path's entire contents. See [os.ReadFile].
	ReadFile(path string) ([]byte, error)

	// WriteFileAtomic writes data to path via a temp file + rename, so a
	// crash mid-write never corrupts a previous snapshot and a concurrent
	// reader never observes a partial file.
	WriteFileAtomic(path string, data []byte, perm os.FileMode) error

	// Lock acquires an exclusive lock guarding path, blocking until it is
	// available or a deadline is exceeded. Call [Locker.Close] to release.
	Lock(path string) (Locker, error)
}
