// Package config resolves membank settings from defaults, config files,
// MEMBANK_* environment variables and command-line flags.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Names used to locate the global config file.
const (
	ConfigHomeEnv  = "MEMBANK_CONFIG_HOME"
	GlobalFileName = "config.yaml"
	appDirName     = "membank"
)

// Dir returns the directory holding the global config.yaml, the lowest
// file layer Load reads (a --config file replaces it). Lookup order:
// $MEMBANK_CONFIG_HOME, $XDG_CONFIG_HOME/membank, %AppData%/membank on
// Windows, then ~/.config/membank. Returns "" when no home directory is known,
// in which case Load skips the global layer.
func Dir() string {
	if dir := os.Getenv(ConfigHomeEnv); dir != "" {
		return dir
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appDirName)
	}

	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, appDirName)
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appDirName)
}

// GlobalFile is Dir()/config.yaml, or "" when Dir is unknown.
func GlobalFile() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, GlobalFileName)
}
