package launcher

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

// Launch starts the application executable as a detached process so it
// outlives the updater. Stdout and stderr are discarded and the process
// handle is released without waiting.
func Launch(app string) error {
	if _, err := os.Stat(app); err != nil {
		return fmt.Errorf("application executable: %w", err)
	}

	cmd := exec.Command(app)
	cmd.Dir = filepath.Dir(app)
	cmd.SysProcAttr = detachAttrs()

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", app, err)
	}
	log.Infof("Launched %s (pid %d)", app, cmd.Process.Pid)
	return cmd.Process.Release()
}
