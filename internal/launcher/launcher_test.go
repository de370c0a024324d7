package launcher

import (
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
)

func TestLaunchRejectsMissingExecutable(t *testing.T) {
	err := Launch(filepath.Join(t.TempDir(), "missing-app"))
	if err == nil {
		t.Fatalf("expected error for missing executable")
	}
}

func TestLaunchStartsDetachedProcess(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on a unix true binary")
	}
	bin, err := exec.LookPath("true")
	if err != nil {
		t.Skipf("true not available: %v", err)
	}

	if err := Launch(bin); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
