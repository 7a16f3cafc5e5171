package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/justyntemme/foldernav/internal/fs"
	"github.com/justyntemme/foldernav/internal/tree"
)

func newTree(t *testing.T) (string, *tree.Tree) {
	t.Helper()
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "a", "inner"), 0o755); err != nil {
		t.Fatal(err)
	}
	tr := tree.New(fs.NewOSProbe(false))
	tr.SetRoots([]fs.Volume{{Name: filepath.Base(root), Path: root, Ready: true}})
	tr.Expand(tr.Roots()[0])
	return root, tr
}

func waitFor(t *testing.T, ch <-chan string, want string) {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case got := <-ch:
			if got == want {
				return
			}
		case <-deadline:
			t.Fatalf("no change reported for %s", want)
		}
	}
}

func TestWatcher_RefreshesOnNewFolder(t *testing.T) {
	root, tr := newTree(t)

	w, err := New(tr, 20*time.Millisecond)
	if err != nil {
		t.Skipf("fsnotify unavailable: %v", err)
	}
	defer w.Close()

	w.Sync()
	if got := w.Watching(); got != 1 {
		t.Fatalf("expected the loaded root to be watched, got %d", got)
	}

	if err := os.Mkdir(filepath.Join(root, "b"), 0o755); err != nil {
		t.Fatal(err)
	}
	waitFor(t, w.Changed(), root)

	children := tr.Children(tr.Roots()[0])
	if len(children) != 2 || children[1].Name != "b" {
		t.Errorf("expected new folder in tree, got %d children", len(children))
	}
}

func TestWatcher_NewFileKeepsNodes(t *testing.T) {
	root, tr := newTree(t)

	w, err := New(tr, 20*time.Millisecond)
	if err != nil {
		t.Skipf("fsnotify unavailable: %v", err)
	}
	defer w.Close()
	w.Sync()

	before := tr.Children(tr.Roots()[0])
	if err := os.WriteFile(filepath.Join(root, "notes.txt"), []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}
	waitFor(t, w.Changed(), root)

	after := tr.Children(tr.Roots()[0])
	if len(after) != len(before) || after[0] != before[0] {
		t.Error("a new file should not change the folder's children")
	}
}

func TestWatcher_SyncDropsRemovedFolders(t *testing.T) {
	root, tr := newTree(t)

	w, err := New(tr, 0)
	if err != nil {
		t.Skipf("fsnotify unavailable: %v", err)
	}
	defer w.Close()

	tr.Expand(tr.Children(tr.Roots()[0])[0])
	w.Sync()
	if got := w.Watching(); got != 2 {
		t.Fatalf("expected 2 watched folders, got %d", got)
	}

	if err := os.RemoveAll(filepath.Join(root, "a")); err != nil {
		t.Fatal(err)
	}
	tr.Refresh(root)
	w.Sync()
	if got := w.Watching(); got != 0 {
		t.Errorf("folders without loaded children should not be watched, got %d", got)
	}
}

func TestWatcher_FocusedLeafFolder(t *testing.T) {
	root, tr := newTree(t)

	w, err := New(tr, 20*time.Millisecond)
	if err != nil {
		t.Skipf("fsnotify unavailable: %v", err)
	}
	defer w.Close()

	a := tr.Children(tr.Roots()[0])[0]
	tr.Expand(a)
	inner := tr.Children(a)[0]
	if tr.State(inner) != tree.Empty {
		t.Fatalf("inner should start Empty, got %s", tr.State(inner))
	}

	w.SetFocus(inner.Path)
	if got := w.Watching(); got != 3 {
		t.Fatalf("expected root, a and the focused leaf to be watched, got %d", got)
	}

	if err := os.WriteFile(filepath.Join(root, "a", "inner", "new.txt"), []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}
	waitFor(t, w.Changed(), inner.Path)

	if err := os.Mkdir(filepath.Join(root, "a", "inner", "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	deadline := time.Now().Add(5 * time.Second)
	for tr.State(inner) != tree.Loaded {
		if time.Now().After(deadline) {
			t.Fatalf("inner should become Loaded after gaining a subfolder, got %s", tr.State(inner))
		}
		time.Sleep(10 * time.Millisecond)
	}
	if children := tr.Children(inner); len(children) != 1 || children[0].Name != "sub" {
		t.Errorf("expected sub under inner, got %d children", len(children))
	}

	// Without the focus inner stays watched, since it is loaded now.
	w.SetFocus("")
	if got := w.Watching(); got != 3 {
		t.Errorf("inner is loaded now and stays watched, got %d", got)
	}
}
