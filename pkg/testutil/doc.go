// Package testutil provides helpers shared by metadir package tests.
//
// Key components:
//   - NewMemoryFS: in-memory types.FS backed by afero for fast, isolated tests
//   - MemRepoConfig: repository layout for an in-memory store
//   - File helpers that fail the test instead of returning errors
//
// Usage guidelines:
//   - Store-level tests should use NewMemoryFS
//   - Lock files always need the real filesystem, MemRepoConfig takes care of it
//   - Symlink and lock tests use t.TempDir() with the OS filesystem
package testutil
