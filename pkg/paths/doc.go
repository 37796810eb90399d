// Package paths resolves the default locations metadir uses.
//
// It follows the XDG Base Directory specification through adrg/xdg and
// honours the following environment variables:
//
//   - METADIR_DIR: base directory of the default repository
//     (default: $XDG_DATA_HOME/metadir)
//   - METADIR_CONFIG_DIR: directory holding settings.toml
//     (default: $XDG_CONFIG_HOME/metadir)
//   - XDG_STATE_HOME: parent of the log directory
//     (default: ~/.local/state)
//
// Path helpers in this package are lexical: they never touch the filesystem.
package paths
