//go:build windows

package launcher

import (
	"syscall"

	"golang.org/x/sys/windows"
)

// detachAttrs detaches the child from the updater's console and process
// group and keeps its console window hidden during startup.
func detachAttrs() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		HideWindow:    true,
		CreationFlags: windows.DETACHED_PROCESS | windows.CREATE_NEW_PROCESS_GROUP,
	}
}
