package fs

import (
	"os"
	"path/filepath"
	"testing"
)

func makeTree(t *testing.T, root string, dirs, files []string) {
	t.Helper()
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(root, d), 0o755); err != nil {
			t.Fatalf("failed to create dir %s: %v", d, err)
		}
	}
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(root, f), []byte("test content"), 0o644); err != nil {
			t.Fatalf("failed to create file %s: %v", f, err)
		}
	}
}

func TestListSubdirectories(t *testing.T) {
	tmpDir := t.TempDir()
	makeTree(t, tmpDir,
		[]string{"beta", "Alpha", "gamma/nested", ".hidden"},
		[]string{"file.txt", "gamma/inner.txt"})

	p := NewOSProbe(false)
	dirs := p.ListSubdirectories(tmpDir)

	want := []string{"Alpha", "beta", "gamma"}
	if len(dirs) != len(want) {
		t.Fatalf("expected %d dirs, got %d: %+v", len(want), len(dirs), dirs)
	}
	for i, name := range want {
		if dirs[i].Name != name {
			t.Errorf("dirs[%d].Name = %q, want %q", i, dirs[i].Name, name)
		}
		if dirs[i].Path != filepath.Join(tmpDir, name) {
			t.Errorf("dirs[%d].Path = %q, want %q", i, dirs[i].Path, filepath.Join(tmpDir, name))
		}
	}
}

func TestListSubdirectories_ShowHidden(t *testing.T) {
	tmpDir := t.TempDir()
	makeTree(t, tmpDir, []string{".hidden", "visible"}, nil)

	dirs := NewOSProbe(true).ListSubdirectories(tmpDir)
	if len(dirs) != 2 {
		t.Fatalf("expected hidden dir to be listed, got %+v", dirs)
	}
}

func TestListFiles(t *testing.T) {
	tmpDir := t.TempDir()
	makeTree(t, tmpDir,
		[]string{"sub"},
		[]string{"b.PDF", "a.txt", "noext", "sub/nested.txt"})

	files := NewOSProbe(false).ListFiles(tmpDir)
	if len(files) != 3 {
		t.Fatalf("expected 3 files, got %d: %+v", len(files), files)
	}

	byName := make(map[string]File)
	for _, f := range files {
		byName[f.Name] = f
	}
	if byName["b.PDF"].Ext != ".PDF" {
		t.Errorf("probe should keep raw extension, got %q", byName["b.PDF"].Ext)
	}
	if byName["noext"].Ext != "" {
		t.Errorf("expected empty extension, got %q", byName["noext"].Ext)
	}
	if byName["a.txt"].Size != int64(len("test content")) {
		t.Errorf("unexpected size %d", byName["a.txt"].Size)
	}
	if _, ok := byName["nested.txt"]; ok {
		t.Error("nested file should not be listed")
	}
}

func TestProbe_NonExistent(t *testing.T) {
	p := NewOSProbe(false)
	missing := "/nonexistent/path/that/does/not/exist"

	if dirs := p.ListSubdirectories(missing); len(dirs) != 0 {
		t.Errorf("expected no dirs, got %+v", dirs)
	}
	if files := p.ListFiles(missing); len(files) != 0 {
		t.Errorf("expected no files, got %+v", files)
	}
	if p.DirectoryExists(missing) {
		t.Error("DirectoryExists should be false for a missing path")
	}
}

func TestDirectoryExists(t *testing.T) {
	tmpDir := t.TempDir()
	makeTree(t, tmpDir, nil, []string{"file.txt"})

	p := NewOSProbe(false)
	if !p.DirectoryExists(tmpDir) {
		t.Error("expected temp dir to exist")
	}
	if p.DirectoryExists(filepath.Join(tmpDir, "file.txt")) {
		t.Error("a regular file is not a directory")
	}
}

func TestListSubdirectories_SymlinkToDir(t *testing.T) {
	tmpDir := t.TempDir()
	makeTree(t, tmpDir, []string{"real"}, nil)
	if err := os.Symlink(filepath.Join(tmpDir, "real"), filepath.Join(tmpDir, "link")); err != nil {
		t.Skipf("cannot create symlinks: %v", err)
	}

	dirs := NewOSProbe(false).ListSubdirectories(tmpDir)
	if len(dirs) != 2 {
		t.Fatalf("symlink to a directory should count as a directory, got %+v", dirs)
	}
}

func TestReadyVolumes(t *testing.T) {
	vols := []Volume{
		{Name: "C:", Path: `C:\`, Ready: true},
		{Name: "D:", Path: `D:\`, Ready: false},
		{Name: "E:", Path: `E:\`, Ready: true},
	}
	ready := ReadyVolumes(vols)
	if len(ready) != 2 || ready[0].Name != "C:" || ready[1].Name != "E:" {
		t.Errorf("unexpected ready volumes: %+v", ready)
	}
}

func TestListVolumes(t *testing.T) {
	vols := ListVolumes()
	if len(vols) == 0 {
		t.Fatal("expected at least one volume")
	}
	for _, v := range vols {
		if v.Path == "" || v.Name == "" {
			t.Errorf("volume missing path or name: %+v", v)
		}
	}
}
