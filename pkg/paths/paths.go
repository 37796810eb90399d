package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/metadir/pkg/errors"
)

// Environment variable names
const (
	// EnvBaseDir overrides the default repository base directory
	EnvBaseDir = "METADIR_DIR"

	// EnvConfigDir overrides the directory holding the user settings file
	EnvConfigDir = "METADIR_CONFIG_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directory and file names
const (
	// AppDirName is the directory name used under each XDG base directory
	AppDirName = "metadir"

	// SettingsFileName is the name of the user settings file
	SettingsFileName = "settings.toml"

	// LogFileName is the name of the log file
	LogFileName = "metadir.log"
)

// DefaultBaseDir returns the base directory of the default repository.
// $METADIR_DIR wins when set; otherwise the repository lives in
// $XDG_DATA_HOME/metadir.
func DefaultBaseDir() string {
	if dir := os.Getenv(EnvBaseDir); dir != "" {
		return ExpandHome(dir)
	}
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, AppDirName)
	}
	return filepath.Join(xdg.DataHome, AppDirName)
}

// ConfigDir returns the directory holding the user settings file
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return ExpandHome(dir)
	}
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, AppDirName)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// SettingsFilePath returns the path of the user settings file
func SettingsFilePath() string {
	return filepath.Join(ConfigDir(), SettingsFileName)
}

// LogFilePath returns the path log output is appended to.
// XDG doesn't provide StateHome on every platform, so we check manually.
func LogFilePath() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return LogFileName
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, AppDirName, LogFileName)
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to HOME env var
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}

	// Handle both ~/ and ~
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~something (not the user's home)
	return path
}

// Absolutize returns path as a clean absolute path, resolving relative
// paths against cwd. It does not consult the filesystem, so symlinks are
// preserved.
func Absolutize(path, cwd string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidInput, "empty path")
	}

	expanded := ExpandHome(path)
	if filepath.IsAbs(expanded) {
		return filepath.Clean(expanded), nil
	}

	if !filepath.IsAbs(cwd) {
		return "", errors.Newf(errors.ErrInvalidInput,
			"cannot resolve %q against non-absolute directory %q", path, cwd)
	}
	return filepath.Join(cwd, expanded), nil
}
