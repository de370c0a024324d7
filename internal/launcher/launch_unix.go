//go:build !windows

package launcher

import "syscall"

// detachAttrs puts the child in its own session so it is not torn down with
// the updater's process group.
func detachAttrs() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true}
}
