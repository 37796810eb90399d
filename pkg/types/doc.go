// Package types defines the core types and interfaces used throughout metadir.
// This includes the persisted Manifest and Link records, the combined DirInfo
// view and the FS interface the repository performs all I/O through.
package types
