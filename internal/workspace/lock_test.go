package workspace

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAcquireLock(t *testing.T) {
	t.Run("creates and removes lock file", func(t *testing.T) {
		tmpDir := t.TempDir()

		lock, err := AcquireLock(tmpDir)
		if err != nil {
			t.Fatalf("AcquireLock() error = %v", err)
		}

		lockPath := filepath.Join(tmpDir, lockFileName)
		if _, err := os.Stat(lockPath); os.IsNotExist(err) {
			t.Error("lock file missing while held")
		}

		lock.Release()
		if _, err := os.Stat(lockPath); !os.IsNotExist(err) {
			t.Error("lock file left behind after release")
		}
	})

	t.Run("second acquire fails while held", func(t *testing.T) {
		tmpDir := t.TempDir()

		lock1, err := AcquireLock(tmpDir)
		if err != nil {
			t.Fatalf("AcquireLock() error = %v", err)
		}
		defer lock1.Release()

		lock2, err := AcquireLock(tmpDir)
		if err == nil {
			lock2.Release()
			t.Fatal("second lock should have failed")
		}
		if lock2 != nil {
			t.Error("lock should be nil on failure")
		}
	})

	t.Run("reacquire after release", func(t *testing.T) {
		tmpDir := t.TempDir()

		lock1, err := AcquireLock(tmpDir)
		if err != nil {
			t.Fatalf("AcquireLock() error = %v", err)
		}
		lock1.Release()

		lock2, err := AcquireLock(tmpDir)
		if err != nil {
			t.Fatalf("reacquire after release failed: %v", err)
		}
		lock2.Release()
	})

	t.Run("release is idempotent", func(t *testing.T) {
		tmpDir := t.TempDir()

		lock, err := AcquireLock(tmpDir)
		if err != nil {
			t.Fatalf("AcquireLock() error = %v", err)
		}
		lock.Release()
		lock.Release()
		lock.Release()
	})
}
