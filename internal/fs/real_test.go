package fs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// =============================================================================
// Real FS Tests
//
// internal/snapshot only calls Exists, ReadFile, WriteFileAtomic, and Lock,
// so that is all Real needs to cover here; the rest (os.ReadFile itself) is
// Go's job, not ours.
// =============================================================================

func TestReal_Exists_ReturnsFalseForNonExistent(t *testing.T) {
	t.Parallel()

	real := NewReal()
	dir := t.TempDir()

	exists, err := real.Exists(filepath.Join(dir, "snapshot.json"))
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}

	if exists {
		t.Fatalf("Exists=true, want false")
	}
}

func TestReal_Exists_ReturnsTrueForFile(t *testing.T) {
	t.Parallel()

	real := NewReal()
	path := filepath.Join(t.TempDir(), "snapshot.json")

	if err := os.WriteFile(path, []byte("{}"), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}

	exists, err := real.Exists(path)
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}

	if !exists {
		t.Fatalf("Exists=false, want true")
	}
}

func TestReal_ReadFile_ReturnsErrNotExist(t *testing.T) {
	t.Parallel()

	real := NewReal()
	path := filepath.Join(t.TempDir(), "missing.json")

	_, err := real.ReadFile(path)
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err=%v, want os.ErrNotExist", err)
	}
}

func TestReal_WriteFileAtomic_ThenReadFile_RoundTrips(t *testing.T) {
	t.Parallel()

	real := NewReal()
	path := filepath.Join(t.TempDir(), "snapshot.json")

	want := []byte(`{"site":1,"ops":[]}`)
	if err := real.WriteFileAtomic(path, want, 0o600); err != nil {
		t.Fatalf("WriteFileAtomic: %v", err)
	}

	got, err := real.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	if string(got) != string(want) {
		t.Fatalf("ReadFile=%q, want=%q", got, want)
	}
}

func TestReal_WriteFileAtomic_ReplacesExistingFile(t *testing.T) {
	t.Parallel()

	real := NewReal()
	path := filepath.Join(t.TempDir(), "snapshot.json")

	if err := real.WriteFileAtomic(path, []byte("old"), 0o600); err != nil {
		t.Fatalf("WriteFileAtomic(old): %v", err)
	}

	if err := real.WriteFileAtomic(path, []byte("new"), 0o600); err != nil {
		t.Fatalf("WriteFileAtomic(new): %v", err)
	}

	got, err := real.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	if string(got) != "new" {
		t.Fatalf("ReadFile=%q, want=%q", got, "new")
	}
}

func TestReal_Lock_BlocksASecondAcquireUntilReleased(t *testing.T) {
	t.Parallel()

	real := NewReal()
	path := filepath.Join(t.TempDir(), "snapshot.json")

	first, err := real.Lock(path)
	if err != nil {
		t.Fatalf("Lock (first): %v", err)
	}

	done := make(chan error, 1)

	go func() {
		second, err := real.Lock(path)
		if err != nil {
			done <- err

			return
		}

		done <- second.Close()
	}()

	select {
	case err := <-done:
		t.Fatalf("second Lock returned while the first was held: err=%v", err)
	case <-time.After(100 * time.Millisecond):
	}

	if err := first.Close(); err != nil {
		t.Fatalf("Close (first): %v", err)
	}

	if err := <-done; err != nil {
		t.Fatalf("Lock (second, after release): %v", err)
	}
}

func TestReal_Lock_TimesOutIfHeldTooLong(t *testing.T) {
	t.Parallel()

	real := NewReal()
	path := filepath.Join(t.TempDir(), "snapshot.json")

	held, err := real.Lock(path)
	if err != nil {
		t.Fatalf("Lock (held): %v", err)
	}
	t.Cleanup(func() { _ = held.Close() })

	if _, err := real.Lock(path); !errors.Is(err, os.ErrDeadlineExceeded) {
		t.Fatalf("Lock (contended): err=%v, want os.ErrDeadlineExceeded", err)
	}
}
