package launcher

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
)

func TestTryAcquireLock(t *testing.T) {
	logger := hclog.NewNullLogger()

	t.Run("fresh lock acquired", func(t *testing.T) {
		lockPath := filepath.Join(t.TempDir(), ".lock")

		acquired, err := tryAcquireLock(lockPath, logger)
		if err != nil {
			t.Fatalf("tryAcquireLock() error: %v", err)
		}
		if !acquired {
			t.Fatal("expected to acquire a fresh lock")
		}
		if _, err := os.Stat(lockPath); err != nil {
			t.Errorf("lock file not created: %v", err)
		}
	})

	t.Run("held by live process", func(t *testing.T) {
		lockPath := filepath.Join(t.TempDir(), ".lock")
		// Our own PID is guaranteed to be alive.
		if err := os.WriteFile(lockPath, []byte(fmt.Sprintf("%d\n", os.Getpid())), 0o644); err != nil {
			t.Fatal(err)
		}

		acquired, err := tryAcquireLock(lockPath, logger)
		if err != nil {
			t.Fatalf("tryAcquireLock() error: %v", err)
		}
		if acquired {
			t.Fatal("acquired a lock held by a live process")
		}
	})

	t.Run("stale lock retaken", func(t *testing.T) {
		lockPath := filepath.Join(t.TempDir(), ".lock")
		// PIDs don't reach this high on any supported platform.
		if err := os.WriteFile(lockPath, []byte("99999999\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		acquired, err := tryAcquireLock(lockPath, logger)
		if err != nil {
			t.Fatalf("tryAcquireLock() error: %v", err)
		}
		if !acquired {
			t.Fatal("expected to retake a stale lock")
		}
	})

	t.Run("invalid lock contents retaken", func(t *testing.T) {
		lockPath := filepath.Join(t.TempDir(), ".lock")
		if err := os.WriteFile(lockPath, []byte("not a pid"), 0o644); err != nil {
			t.Fatal(err)
		}

		acquired, err := tryAcquireLock(lockPath, logger)
		if err != nil {
			t.Fatalf("tryAcquireLock() error: %v", err)
		}
		if !acquired {
			t.Fatal("expected to retake a lock with invalid contents")
		}
	})

	t.Run("release allows reacquire", func(t *testing.T) {
		lockPath := filepath.Join(t.TempDir(), ".lock")

		if acquired, err := tryAcquireLock(lockPath, logger); err != nil || !acquired {
			t.Fatalf("first acquire: acquired=%v err=%v", acquired, err)
		}
		releaseLock(lockPath, logger)
		if acquired, err := tryAcquireLock(lockPath, logger); err != nil || !acquired {
			t.Fatalf("reacquire after release: acquired=%v err=%v", acquired, err)
		}
	})
}
