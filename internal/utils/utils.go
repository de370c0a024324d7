package utils

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gen2brain/beeep"
	log "github.com/sirupsen/logrus"
)

// No bundled icon; the platform default is used for notifications.
var icon []byte

// ExpandTilde will resolve to the correct location on disk.
func ExpandTilde(path string) string {
	if strings.HasPrefix(path, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// SendNotification shows a desktop notification when enabled. Failures are
// logged only; an updater must not care whether the toast appeared.
func SendNotification(enabled bool, title string, message string) {
	if enabled {
		if err := beeep.Notify(title, message, icon); err != nil {
			log.Warnf("Notification failed: %v", err)
		}
	}
}
