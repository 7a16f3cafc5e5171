//go:build darwin

package fs

import (
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/charlievieth/fastwalk"
)

// ListVolumes returns the boot volume followed by everything under /Volumes.
func ListVolumes() []Volume {
	vols := []Volume{{Name: "/", Label: "Macintosh HD", Path: "/", Ready: true}}
	var mu sync.Mutex

	conf := &fastwalk.Config{Follow: false}
	_ = fastwalk.Walk(conf, "/Volumes", func(fullPath string, d fs.DirEntry, err error) error {
		if err != nil || fullPath == "/Volumes" {
			return nil
		}
		if filepath.Dir(fullPath) != "/Volumes" {
			if d.IsDir() {
				return fastwalk.SkipDir
			}
			return nil
		}

		// The boot volume shows up as a symlink to /
		if target, err := os.Readlink(fullPath); err == nil && target == "/" {
			mu.Lock()
			vols[0].Label = d.Name()
			mu.Unlock()
			return nil
		}

		mu.Lock()
		vols = append(vols, Volume{
			Name:  d.Name(),
			Label: d.Name(),
			Path:  fullPath,
			Ready: reachable(fullPath),
		})
		mu.Unlock()

		if d.IsDir() {
			return fastwalk.SkipDir
		}
		return nil
	})

	return vols
}
