package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestSplitList(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"app.exe,worker.exe", []string{"app.exe", "worker.exe"}},
		{" app.exe , worker.exe ", []string{"app.exe", "worker.exe"}},
		{"app.exe,,", []string{"app.exe"}},
		{"", nil},
		{" , ", nil},
	}
	for _, c := range cases {
		if got := SplitList(c.in); !reflect.DeepEqual(got, c.want) {
			t.Errorf("SplitList(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestMergeLists(t *testing.T) {
	got := MergeLists([]string{"a,b", "c", " d , "})
	want := []string{"a", "b", "c", "d"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("MergeLists = %v, want %v", got, want)
	}
}

func TestValidateAcceptsCompleteConfig(t *testing.T) {
	cfg := &Config{
		Input:  t.TempDir(),
		Output: filepath.Join(t.TempDir(), "resources"),
		App:    "/opt/app/app",
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRejectsMissingFields(t *testing.T) {
	input := t.TempDir()

	cases := []struct {
		name string
		cfg  Config
	}{
		{"no input", Config{Output: "out", App: "app"}},
		{"no output", Config{Input: input, App: "app"}},
		{"no app", Config{Input: input, Output: "out"}},
	}
	for _, c := range cases {
		if err := c.cfg.Validate(); err == nil {
			t.Errorf("%s: expected error", c.name)
		}
	}
}

func TestValidateRejectsMissingInputDir(t *testing.T) {
	cfg := &Config{
		Input:  filepath.Join(t.TempDir(), "missing"),
		Output: "out",
		App:    "app",
	}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for missing input directory")
	}
}

func TestValidateRejectsFileAsInput(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "payload.zip")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	cfg := &Config{Input: file, Output: "out", App: "app"}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for non-directory input")
	}
}
