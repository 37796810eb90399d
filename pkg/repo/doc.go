// Package repo implements the association store.
//
// A Repo maps project directories to metadirectories. Each metadirectory is a
// folder under the container directory holding a manifest record plus any
// files callers choose to keep there. Project directories point at a
// metadirectory through link records, one file per project directory, named
// after the MD5 digest of the directory's absolute path.
//
// Layout of a repository with the default settings:
//
//	<base>/.lock                           advisory lock, holds the owner PID
//	<base>/config.yaml                     persisted RepoConfig
//	<base>/links/<link_id>.yaml            one file per link
//	<base>/data/<meta_id>/manifest.yaml    one folder per metadirectory
//	<base>/shared/...                      free-form caller content
//
// A Repo holds an exclusive lock on the repository for its whole lifetime.
// New returns a nil Repo and a nil error when another process holds it.
// Every record is written with an atomic replace, and a manifest is always
// written before the first link that points to it.
package repo
