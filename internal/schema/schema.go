// Package schema provides the principal schematics for all other packages. It
// defines the portable filesystem contract (path metadata, the directory
// enumeration protocol, the per-platform [Backend] interface) and provides
// implementations for handling operating system syscalls, portable and
// Unix-specific. The package serves as a foundational layer for filesystem
// interactions throughout the codebase.
package schema
