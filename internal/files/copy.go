package files

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/justyntemme/foldernav/internal/debug"
)

// CopyResult reports what CopyInto did with each source.
type CopyResult struct {
	Copied  []string
	Skipped []string         // destination already existed
	Failed  map[string]error // source path -> error
}

// CopyInto copies each source file into dstDir under its own name. Sources
// whose destination already exists are skipped, never overwritten.
// Directories are not copied and are reported as failures.
func CopyInto(dstDir string, srcs []string) CopyResult {
	res := CopyResult{Failed: make(map[string]error)}
	for _, src := range srcs {
		dst := filepath.Join(dstDir, filepath.Base(src))
		if _, err := os.Lstat(dst); err == nil {
			debug.Log(debug.FS, "CopyInto: skipping %q, %q exists", src, dst)
			res.Skipped = append(res.Skipped, src)
			continue
		}
		if err := copyFile(src, dst); err != nil {
			debug.Errorf(debug.FS, "CopyInto: %q: %v", src, err)
			res.Failed[src] = err
			continue
		}
		res.Copied = append(res.Copied, src)
	}
	return res
}

func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	info, err := srcFile.Stat()
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", src)
	}

	// O_EXCL so a file created since the existence check is not clobbered.
	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return err
	}

	_, err = io.Copy(dstFile, srcFile)
	return finishCopy(dst, dstFile, err)
}

// finishCopy closes the destination and removes it when either the copy or
// the close failed, so no partial file is left behind.
func finishCopy(dst string, f io.Closer, copyErr error) error {
	closeErr := f.Close()
	if copyErr == nil {
		copyErr = closeErr
	}
	if copyErr != nil {
		if err := os.Remove(dst); err != nil && !os.IsNotExist(err) {
			debug.Errorf(debug.FS, "CopyInto: removing partial %q: %v", dst, err)
		}
	}
	return copyErr
}
