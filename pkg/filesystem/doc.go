// Package filesystem provides the filesystem abstraction used by dfm.
//
// The pipeline stages never call the os package directly for mutations; they
// go through FS so tests can inject failures for single paths. NewOS returns
// the real implementation, whose writes are atomic (temp file plus rename).
package filesystem
