// Package config resolves where a repository keeps its files and how the
// command line tool is configured.
//
// A RepoConfig is derived from a base directory and an optional prefix, and
// persisted next to the records the first time a repository is opened. On
// later opens the persisted file takes precedence, so a repository keeps its
// layout even if the defaults change.
//
// Settings hold user preferences for the CLI. They are layered with koanf:
// built-in defaults, then $XDG_CONFIG_HOME/metadir/settings.toml, then
// METADIR_* environment variables, then command line flags.
package config
