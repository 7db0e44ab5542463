// Package queue provides a thread-safe processing queue for filesystem
// operations, with progress accounting for the interactive and headless
// frontends.
package queue

// OperationKind enumerates the mutating filesystem operations a queue can
// hold.
type OperationKind int

const (
	// KindCopy copies Source to Target, verifying the transferred content.
	KindCopy OperationKind = iota

	// KindRename renames Source to Target.
	KindRename

	// KindRemove removes the element at Source.
	KindRemove

	// KindRemoveTree removes Source and everything below it.
	KindRemoveTree

	// KindMakeDirectoryTree creates Source along with any missing parents.
	KindMakeDirectoryTree

	// KindPrune removes empty directories below Source.
	KindPrune
)

// String implements the [fmt.Stringer] interface.
func (k OperationKind) String() string {
	switch k {
	case KindCopy:
		return "copy"
	case KindRename:
		return "rename"
	case KindRemove:
		return "remove"
	case KindRemoveTree:
		return "remove-tree"
	case KindMakeDirectoryTree:
		return "mkdir-tree"
	case KindPrune:
		return "prune"
	default:
		return "unknown"
	}
}

// Operation is one queued filesystem mutation.
type Operation struct {
	// Kind is the operation to carry out.
	Kind OperationKind

	// Source is the path the operation works on.
	Source string

	// Target is the destination path for the two-path kinds.
	Target string

	// Err holds the failure that caused the operation to be skipped.
	Err error
}
