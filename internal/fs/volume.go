package fs

import "os"

// Volume is a mounted drive or mount point that can seed a tree root.
type Volume struct {
	Name  string // Path segment used for matching, e.g. "C:" or "/"
	Label string // Display name, e.g. "Data (D:)"
	Path  string // Root directory, e.g. `C:\` or "/"
	Ready bool   // False for empty optical drives and unreachable mounts
}

// ReadyVolumes filters vols down to the ones that can be browsed.
func ReadyVolumes(vols []Volume) []Volume {
	ready := make([]Volume, 0, len(vols))
	for _, v := range vols {
		if v.Ready {
			ready = append(ready, v)
		}
	}
	return ready
}

// reachable reports whether a mount point can be stat'ed as a directory.
func reachable(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
