package config

import (
	"path/filepath"
	"runtime"
	"testing"
)

func TestDir_Default(t *testing.T) {
	t.Setenv("MEMBANK_CONFIG_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "")

	dir := Dir()
	if dir == "" {
		t.Fatal("Dir() returned empty string")
	}
	if runtime.GOOS != "windows" && filepath.Base(dir) != "membank" {
		t.Errorf("Dir() = %q, want path ending in 'membank'", dir)
	}
}

func TestDir_ExplicitOverride(t *testing.T) {
	t.Setenv("MEMBANK_CONFIG_HOME", "/custom/path")
	if got := Dir(); got != "/custom/path" {
		t.Errorf("Dir() = %q, want %q", got, "/custom/path")
	}
	if got := GlobalFile(); got != filepath.Join("/custom/path", "config.yaml") {
		t.Errorf("GlobalFile() = %q", got)
	}
}

func TestDir_XDGOverride(t *testing.T) {
	t.Setenv("MEMBANK_CONFIG_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
	if got := Dir(); got != filepath.Join("/xdg/config", "membank") {
		t.Errorf("Dir() = %q, want %q", got, filepath.Join("/xdg/config", "membank"))
	}
}
