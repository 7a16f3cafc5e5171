//go:build windows

package fs

import (
	"golang.org/x/sys/windows"
)

// ListDrivePaths returns drive roots without touching the media.
// GetLogicalDrives returns immediately even for disconnected drives.
func ListDrivePaths() []string {
	var paths []string

	mask, err := windows.GetLogicalDrives()
	if err != nil || mask == 0 {
		return paths
	}

	for i := 0; i < 26; i++ {
		if mask&(1<<uint(i)) == 0 {
			continue
		}
		paths = append(paths, string(rune('A'+i))+":\\")
	}
	return paths
}

// ListVolumes returns every drive letter. A drive is Ready when its volume
// information can be read, which fails for empty optical and card drives.
// GetVolumeInformation can block on dead network shares; call off the UI goroutine.
func ListVolumes() []Volume {
	var vols []Volume

	for _, path := range ListDrivePaths() {
		letter := path[:2]

		pathPtr, err := windows.UTF16PtrFromString(path)
		if err != nil {
			continue
		}
		driveType := windows.GetDriveType(pathPtr)
		if driveType == windows.DRIVE_UNKNOWN || driveType == windows.DRIVE_NO_ROOT_DIR {
			continue
		}

		volumeName := make([]uint16, windows.MAX_PATH+1)
		infoErr := windows.GetVolumeInformation(pathPtr, &volumeName[0], uint32(len(volumeName)), nil, nil, nil, nil, 0)
		ready := infoErr == nil

		label := letter
		if ready {
			if name := windows.UTF16ToString(volumeName); name != "" {
				label = name + " (" + letter + ")"
			}
		}
		if label == letter {
			switch driveType {
			case windows.DRIVE_REMOVABLE:
				label = "Removable (" + letter + ")"
			case windows.DRIVE_CDROM:
				label = "CD/DVD (" + letter + ")"
			case windows.DRIVE_REMOTE:
				label = "Network (" + letter + ")"
			}
		}

		vols = append(vols, Volume{Name: letter, Label: label, Path: path, Ready: ready})
	}

	return vols
}
