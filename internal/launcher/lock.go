package launcher

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/hashicorp/go-hclog"
)

// The file-existence-then-write pattern used while acquiring artifacts is not
// safe under concurrent writers, so a PID lock file guards each version
// directory (and the runtime install directory) against a second launcher
// process working on the same resource.

// isProcessRunning checks if a process with the given PID is still alive.
// On Unix, signal 0 probes existence without delivering anything.
func isProcessRunning(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return process.Signal(syscall.Signal(0)) == nil
}

// tryAcquireLock attempts to take the lock file at lockPath. It returns true
// if the lock was taken, false if another live process holds it. Locks left
// behind by dead processes are cleaned up and retaken.
func tryAcquireLock(lockPath string, logger hclog.Logger) (bool, error) {
	if data, err := os.ReadFile(lockPath); err == nil {
		contents := strings.TrimSpace(string(data))
		if oldPid, err := strconv.Atoi(contents); err == nil {
			if isProcessRunning(oldPid) {
				logger.Debug("🔒 Lock held by active process", "pid", oldPid)
				return false, nil
			}
			logger.Info("🧹 Removing stale lock from dead process", "pid", oldPid)
		} else {
			logger.Info("🧹 Removing invalid lock file", "path", lockPath)
		}
		os.Remove(lockPath)
	}

	file, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if os.IsExist(err) {
			logger.Debug("🔒 Lock file appeared, another process won the race")
			return false, nil
		}
		return false, err
	}
	defer file.Close()

	if _, err := fmt.Fprintf(file, "%d\n", os.Getpid()); err != nil {
		os.Remove(lockPath)
		return false, err
	}

	logger.Debug("🔒 Acquired lock", "path", lockPath, "pid", os.Getpid())
	return true, nil
}

// releaseLock removes the lock file.
func releaseLock(lockPath string, logger hclog.Logger) {
	if err := os.Remove(lockPath); err != nil {
		logger.Debug("⚠️ Failed to remove lock file", "path", lockPath, "error", err)
	} else {
		logger.Debug("🔓 Released lock", "path", lockPath)
	}
}
