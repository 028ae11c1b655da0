package launch

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/hashicorp/go-hclog"

	"github.com/nova-client/launcher/internal/errs"
	"github.com/nova-client/launcher/internal/logging"
)

// Start spawns the planned process and returns as soon as it is running. The
// child's lifetime is not owned here: a goroutine reaps it in the background
// and its exit status is only logged.
func Start(plan *Plan, logger hclog.Logger) error {
	if len(plan.Args) == 0 {
		return fmt.Errorf("empty launch plan: %w", errs.ErrLaunch)
	}

	cmd := exec.Command(plan.Args[0], plan.Args[1:]...)
	cmd.Dir = plan.WorkDir
	cmd.Stdout = logging.NewPrefixWriter("[game] ", os.Stdout)
	cmd.Stderr = logging.NewPrefixWriter("[game] ", os.Stderr)

	logger.Info("🚀 Launching game", "exe", plan.Args[0], "workdir", plan.WorkDir)
	logger.Debug("🚀 Full command", "args", plan.Args[1:])

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting %s: %v: %w", plan.Args[0], err, errs.ErrLaunch)
	}

	go func() {
		if err := cmd.Wait(); err != nil {
			logger.Debug("⏹️ Game process exited", "error", err)
		}
	}()
	return nil
}
