// Package ids provides the two identifier schemes used by the repository.
//
// A LinkID is derived deterministically from the absolute path of a project
// directory and names the link file for that directory. A MetaID is generated
// randomly when a metadirectory is created and names that metadirectory for
// its entire lifetime.
package ids
