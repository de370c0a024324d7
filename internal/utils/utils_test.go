package utils

import (
	"path/filepath"
	"runtime"
	"testing"
)

func TestExpandTilde(t *testing.T) {
	home := t.TempDir()
	if runtime.GOOS == "windows" {
		t.Setenv("USERPROFILE", home)
	} else {
		t.Setenv("HOME", home)
	}

	cases := []struct {
		in   string
		want string
	}{
		{"~", home},
		{"~/payload", filepath.Join(home, "payload")},
		{filepath.Join("relative", "path"), filepath.Join("relative", "path")},
		{"/absolute/path", "/absolute/path"},
		{"", ""},
	}
	for _, c := range cases {
		if got := ExpandTilde(c.in); got != c.want {
			t.Errorf("ExpandTilde(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSendNotificationDisabledIsNoop(t *testing.T) {
	// Must not panic or block when notifications are off.
	SendNotification(false, "title", "message")
}
