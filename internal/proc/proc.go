package proc

import (
	"os"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v4/process"
	log "github.com/sirupsen/logrus"
)

const pollInterval = 500 * time.Millisecond

// Kill terminates every running process whose executable name matches one of
// names, then waits up to timeout for them to exit. Nothing here is fatal:
// a target that is already gone is the normal case, and a target that will
// not die is logged and left behind.
func Kill(names []string, timeout time.Duration) {
	if len(names) == 0 {
		log.Info("No process names provided, skipping terminate step")
		return
	}

	procs, err := process.Processes()
	if err != nil {
		log.Warnf("Could not enumerate processes: %v", err)
		return
	}

	self := int32(os.Getpid())
	killed := 0
	for _, p := range procs {
		if p.Pid == self {
			continue
		}
		name, err := p.Name()
		if err != nil {
			continue
		}
		if !matchesAny(names, name) {
			continue
		}
		log.Infof("Killing process %q (pid %d)", name, p.Pid)
		if err := p.Kill(); err != nil {
			log.Warnf("Failed to kill %q (pid %d): %v", name, p.Pid, err)
			continue
		}
		killed++
	}

	if killed == 0 {
		log.Info("No matching processes running")
		return
	}

	waitForExit(names, timeout)
}

// Running returns the names of currently running processes that match one of
// targets. The updater's own process is never reported.
func Running(targets []string) []string {
	procs, err := process.Processes()
	if err != nil {
		return nil
	}
	self := int32(os.Getpid())
	var alive []string
	for _, p := range procs {
		if p.Pid == self {
			continue
		}
		name, err := p.Name()
		if err != nil {
			continue
		}
		if matchesAny(targets, name) {
			alive = append(alive, name)
		}
	}
	return alive
}

func waitForExit(targets []string, timeout time.Duration) {
	deadline := time.Now().Add(timeout)
	for {
		alive := Running(targets)
		if len(alive) == 0 {
			log.Info("All target processes have exited")
			return
		}
		if time.Now().After(deadline) {
			log.Warnf("Timed out waiting for processes to exit, continuing anyway: %v", alive)
			return
		}
		log.Infof("Waiting for processes to exit: %v", alive)
		time.Sleep(pollInterval)
	}
}

func matchesAny(targets []string, name string) bool {
	for _, t := range targets {
		if matchName(t, name) {
			return true
		}
	}
	return false
}

// matchName compares a process name against a target, ignoring case and a
// missing or extra ".exe" suffix so the same --ps value works on every
// platform.
func matchName(target, name string) bool {
	t := strings.ToLower(strings.TrimSpace(target))
	n := strings.ToLower(name)
	if t == "" {
		return false
	}
	if t == n {
		return true
	}
	return strings.TrimSuffix(t, ".exe") == strings.TrimSuffix(n, ".exe")
}
