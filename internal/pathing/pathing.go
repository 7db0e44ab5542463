// Package pathing provides lexical helpers for the canonical paths crossing
// the portable filesystem layers. Unlike [path/filepath], which is fixed to
// the separator conventions of the compiling platform, these helpers reason
// about a path by its own shape, so Windows-style paths remain handled
// correctly in platform-neutral code and tests.
//
// Drive-relative Windows paths ("C:name") are not supported; a drive prefix
// is only recognized when it stands alone or is followed by a separator.
package pathing

import (
	"fmt"

	"github.com/HecaiYuan/crossfs/internal/encoding"
)

// Validate checks that a path satisfies the canonical contract of the
// portable layer: non-empty and well-formed UTF-8.
func Validate(path string) error {
	if path == "" {
		return fmt.Errorf("(pathing-validate) %w", ErrEmptyPath)
	}

	if err := encoding.ValidateUTF8(path); err != nil {
		return fmt.Errorf("(pathing-validate) %q: %w", path, err)
	}

	return nil
}

// Join appends a bare entry name to a directory path, choosing the separator
// style already present in the directory path. A directory path that already
// ends in a separator gains no additional one.
func Join(dir string, name string) string {
	if dir == "" {
		return name
	}

	if isSeparator(dir[len(dir)-1]) {
		return dir + name
	}

	return dir + string(separatorFor(dir)) + name
}

// Child resolves the path of a directory entry against the directory it was
// enumerated in, accounting for the virtual root whose entries are filesystem
// roots themselves: drive roots pass through unchanged, while entries of the
// POSIX root gain their leading separator.
func Child(dir string, name string) string {
	if dir == "" {
		if IsRoot(name) {
			return name
		}

		return "/" + name
	}

	return Join(dir, name)
}

// Parent returns the path with its final element removed. The root prefix is
// returned for direct children of a root; an empty string is returned when
// nothing remains.
func Parent(path string) string {
	trimmed := trimTrailingSeparators(path)

	start := volumeLength(trimmed)
	for start < len(trimmed) && isSeparator(trimmed[start]) {
		start++
	}

	i := len(trimmed)
	for i > start && !isSeparator(trimmed[i-1]) {
		i--
	}

	if i == start {
		return trimmed[:start]
	}

	return trimTrailingSeparators(trimmed[:i])
}

// ParentChain returns every ancestor directory of a path from shallowest to
// the path itself, omitting the root prefix. It returns nil for a root.
//
//	ParentChain("/a/b/c") returns ["/a", "/a/b", "/a/b/c"]
//	ParentChain(`C:\a\b`) returns [`C:\a`, `C:\a\b`]
func ParentChain(path string) []string {
	trimmed := trimTrailingSeparators(path)

	start := volumeLength(trimmed)
	for start < len(trimmed) && isSeparator(trimmed[start]) {
		start++
	}

	if start >= len(trimmed) {
		return nil
	}

	var chain []string
	for i := start + 1; i < len(trimmed); i++ {
		if isSeparator(trimmed[i]) && !isSeparator(trimmed[i-1]) {
			chain = append(chain, trimmed[:i])
		}
	}

	return append(chain, trimmed)
}

// IsRoot reports whether a path names a filesystem root: "/", a drive root
// such as "C:" or `C:\`, a UNC share root, or the empty path (the virtual
// root that enumerates drives on Windows).
func IsRoot(path string) bool {
	trimmed := trimTrailingSeparators(path)
	rest := trimmed[volumeLength(trimmed):]

	return rest == "" || rest == "/" || rest == `\`
}

// IsAbsolute reports whether a path is anchored to a root, either by a
// leading separator or by a volume prefix.
func IsAbsolute(path string) bool {
	if volumeLength(path) > 0 {
		return true
	}

	return len(path) > 0 && isSeparator(path[0])
}

func isSeparator(c byte) bool {
	return c == '/' || c == '\\'
}

func isDriveLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// separatorFor picks the separator style of a path, defaulting to '/' unless
// the path is exclusively backslash-separated.
func separatorFor(path string) byte {
	hasSlash := false
	hasBackslash := false

	for i := 0; i < len(path); i++ {
		switch path[i] {
		case '/':
			hasSlash = true
		case '\\':
			hasBackslash = true
		}
	}

	if hasBackslash && !hasSlash {
		return '\\'
	}

	return '/'
}

// volumeLength returns the length of the volume prefix of a path: 2 for a
// drive prefix ("C:"), the full "\\server\share" span for a UNC path, and 0
// otherwise.
func volumeLength(path string) int {
	if len(path) >= 2 && path[1] == ':' && isDriveLetter(path[0]) {
		if len(path) == 2 || isSeparator(path[2]) {
			return 2
		}

		return 0
	}

	if len(path) >= 2 && isSeparator(path[0]) && isSeparator(path[1]) {
		i := 2
		for i < len(path) && !isSeparator(path[i]) {
			i++
		}
		if i == 2 || i >= len(path) {
			return 0
		}

		j := i + 1
		for j < len(path) && !isSeparator(path[j]) {
			j++
		}
		if j == i+1 {
			return 0
		}

		return j
	}

	return 0
}

// trimTrailingSeparators removes trailing separators from a path, keeping the
// single separator that marks a root form such as "/" or `C:\`.
func trimTrailingSeparators(path string) string {
	vol := volumeLength(path)

	end := len(path)
	for end > vol && isSeparator(path[end-1]) {
		if end == vol+1 {
			break
		}
		end--
	}

	return path[:end]
}
