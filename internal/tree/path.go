package tree

import "strings"

// normalize converts alternate separators and strips trailing ones, so that
// `C:\Users\` and `C:/Users` compare equal to `C:\Users`, and "/" becomes "".
func normalize(path string, sep byte) string {
	if sep == '\\' {
		path = strings.ReplaceAll(path, "/", `\`)
	}
	return strings.TrimRight(path, string(sep))
}

// splitSegments splits a root-relative remainder into non-empty segments.
func splitSegments(rest string, sep byte) []string {
	parts := strings.Split(rest, string(sep))
	segs := parts[:0]
	for _, p := range parts {
		if p != "" {
			segs = append(segs, p)
		}
	}
	return segs
}

// cutRoot reports whether target lies at or under root (both normalized) and
// returns the remainder after the root and its separator.
func cutRoot(target, root string, sep byte) (rest string, ok bool) {
	if strings.EqualFold(target, root) {
		return "", true
	}
	if len(target) <= len(root) || target[len(root)] != sep {
		return "", false
	}
	if !strings.EqualFold(target[:len(root)], root) {
		return "", false
	}
	return target[len(root)+1:], true
}

// SamePath compares two paths ignoring case and trailing separators.
func SamePath(a, b string, sep byte) bool {
	return strings.EqualFold(normalize(a, sep), normalize(b, sep))
}

// Parent returns the folder containing path, or false for a volume root.
// `C:\Users` has parent `C:\`; "/home" has parent "/".
func Parent(path string, sep byte) (string, bool) {
	p := normalize(path, sep)
	i := strings.LastIndexByte(p, sep)
	if i < 0 {
		return "", false
	}
	parent := p[:i]
	if strings.IndexByte(parent, sep) < 0 {
		// Volume root: "" for "/", "C:" for `C:\`.
		parent += string(sep)
	}
	return parent, true
}
