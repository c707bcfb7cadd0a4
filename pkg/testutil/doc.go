// Package testutil holds filesystem fixtures and assertions shared by the
// package tests: building input trees on disk, checking rendered files and
// symlinks, and injecting failures into a filesystem.FS.
package testutil
