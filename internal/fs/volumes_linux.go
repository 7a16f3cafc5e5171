//go:build linux

package fs

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/justyntemme/foldernav/internal/debug"
)

// ListVolumes returns mounted filesystems on Linux, root first.
func ListVolumes() []Volume {
	vols := []Volume{{Name: "/", Label: "/ (Root)", Path: "/", Ready: reachable("/")}}

	file, err := os.Open("/proc/mounts")
	if err != nil {
		debug.Log(debug.FS, "ListVolumes: %v", err)
		return vols
	}
	defer file.Close()

	seen := map[string]bool{"/": true}

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 3 {
			continue
		}
		mountPoint, fsType := fields[1], fields[2]

		if skipMount(mountPoint, fsType) || seen[mountPoint] {
			continue
		}
		seen[mountPoint] = true

		label := mountPoint
		if strings.HasPrefix(mountPoint, "/media/") || strings.HasPrefix(mountPoint, "/mnt/") {
			label = filepath.Base(mountPoint)
		} else if mountPoint == "/home" {
			label = "Home"
		}

		vols = append(vols, Volume{
			Name:  filepath.Base(mountPoint),
			Label: label,
			Path:  mountPoint,
			Ready: reachable(mountPoint),
		})
	}

	return vols
}

// skipMount drops pseudo filesystems that are never worth browsing.
func skipMount(mountPoint, fsType string) bool {
	for _, prefix := range []string{"/sys", "/proc", "/dev", "/run", "/snap"} {
		if mountPoint == prefix || strings.HasPrefix(mountPoint, prefix+"/") {
			return true
		}
	}
	switch fsType {
	case "tmpfs", "devtmpfs", "cgroup", "cgroup2", "overlay", "squashfs", "autofs":
		return true
	}
	return false
}
