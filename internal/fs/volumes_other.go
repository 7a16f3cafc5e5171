//go:build !linux && !darwin && !windows

package fs

// ListVolumes falls back to the filesystem root.
func ListVolumes() []Volume {
	return []Volume{{Name: "/", Label: "/", Path: "/", Ready: reachable("/")}}
}
