package files

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/justyntemme/foldernav/internal/fs"
)

func TestIconKey(t *testing.T) {
	testCases := []struct {
		ext  string
		want string
	}{
		{".txt", IconText},
		{".TXT", IconText},
		{".pdf", IconPDF},
		{".PDF", IconPDF},
		{".jpg", IconImage},
		{".JPEG", IconImage},
		{".png", IconImage},
		{".bmp", IconImage},
		{".xyz", IconGeneric},
		{"", IconGeneric},
		{"txt", IconGeneric},
	}
	for _, tc := range testCases {
		if got := IconKey(tc.ext); got != tc.want {
			t.Errorf("IconKey(%q) = %q, want %q", tc.ext, got, tc.want)
		}
	}

	if IconKey(".PDF") != IconKey(".pdf") {
		t.Error("icon lookup should be case-insensitive")
	}
}

func TestLoaderList(t *testing.T) {
	p := fs.NewMemProbe('\\')
	p.AddRoot(`C:\`)
	dir := p.AddDir(`C:\`, "Docs")
	p.AddFile(dir, "Report.PDF", 2048)
	p.AddFile(dir, "photo.JPG", 10)
	p.AddFile(dir, "Makefile", 1)

	entries := NewLoader(p).List(dir)
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	want := []Entry{
		{Path: `C:\Docs\Report.PDF`, Name: "Report.PDF", Ext: ".pdf", IconKey: IconPDF, Size: 2048},
		{Path: `C:\Docs\photo.JPG`, Name: "photo.JPG", Ext: ".jpg", IconKey: IconImage, Size: 10},
		{Path: `C:\Docs\Makefile`, Name: "Makefile", Ext: "", IconKey: IconGeneric, Size: 1},
	}
	for i, w := range want {
		got := entries[i]
		if got.Path != w.Path || got.Name != w.Name || got.Ext != w.Ext || got.IconKey != w.IconKey || got.Size != w.Size {
			t.Errorf("entries[%d] = %+v, want %+v", i, got, w)
		}
	}
}

func TestLoaderList_Stable(t *testing.T) {
	tmpDir := t.TempDir()
	for _, name := range []string{"a.txt", "b.pdf", "c.png", "d.bin"} {
		if err := os.WriteFile(filepath.Join(tmpDir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	l := NewLoader(fs.NewOSProbe(false))
	first := l.List(tmpDir)
	second := l.List(tmpDir)

	if len(first) != 4 || len(first) != len(second) {
		t.Fatalf("unexpected lengths %d and %d", len(first), len(second))
	}
	seen := make(map[Entry]bool)
	for _, e := range first {
		seen[e] = true
	}
	for _, e := range second {
		if !seen[e] {
			t.Errorf("entry %+v missing from first listing", e)
		}
	}
}

func TestLoaderList_Unreadable(t *testing.T) {
	p := fs.NewMemProbe('/')
	p.AddRoot("/")
	p.AddFile("/", "a.txt", 1)
	p.Deny("/")

	if entries := NewLoader(p).List("/"); len(entries) != 0 {
		t.Errorf("expected empty listing, got %+v", entries)
	}
}

func TestFormatSize(t *testing.T) {
	testCases := []struct {
		size int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{2048, "2.0 KiB"},
		{-1, ""},
	}
	for _, tc := range testCases {
		if got := FormatSize(tc.size); got != tc.want {
			t.Errorf("FormatSize(%d) = %q, want %q", tc.size, got, tc.want)
		}
	}
}

func TestFormatModTime(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

	if got := FormatModTime(time.Time{}, now); got != "" {
		t.Errorf("zero time should render empty, got %q", got)
	}
	if got := FormatModTime(now.Add(-3*time.Hour), now); got != "3 hours ago" {
		t.Errorf("recent time = %q", got)
	}
	old := time.Date(2023, 1, 2, 15, 4, 0, 0, time.UTC)
	if got := FormatModTime(old, now); got != "2023-01-02 15:04" {
		t.Errorf("old time = %q", got)
	}
}

func TestImageSize(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "pic.png")

	img := image.NewRGBA(image.Rect(0, 0, 7, 3))
	img.Set(1, 1, color.White)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	w, h, ok := ImageSize(path)
	if !ok || w != 7 || h != 3 {
		t.Errorf("ImageSize = %d x %d ok=%v, want 7 x 3", w, h, ok)
	}

	if _, _, ok := ImageSize(filepath.Join(tmpDir, "missing.png")); ok {
		t.Error("missing file should not report a size")
	}
}

func TestCopyInto(t *testing.T) {
	srcDir := t.TempDir()
	dstDir := t.TempDir()

	a := filepath.Join(srcDir, "a.txt")
	b := filepath.Join(srcDir, "b.txt")
	for _, p := range []string{a, b} {
		if err := os.WriteFile(p, []byte("new "+filepath.Base(p)), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	existing := filepath.Join(dstDir, "b.txt")
	if err := os.WriteFile(existing, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	res := CopyInto(dstDir, []string{a, b, filepath.Join(srcDir, "missing.txt"), srcDir})

	if len(res.Copied) != 1 || res.Copied[0] != a {
		t.Errorf("Copied = %v", res.Copied)
	}
	if len(res.Skipped) != 1 || res.Skipped[0] != b {
		t.Errorf("Skipped = %v", res.Skipped)
	}
	if len(res.Failed) != 2 {
		t.Errorf("expected 2 failures, got %v", res.Failed)
	}

	data, err := os.ReadFile(existing)
	if err != nil || string(data) != "old" {
		t.Errorf("conflicting destination was modified: %q %v", data, err)
	}
	data, err = os.ReadFile(filepath.Join(dstDir, "a.txt"))
	if err != nil || string(data) != "new a.txt" {
		t.Errorf("copied file content = %q %v", data, err)
	}
}

type closeFunc func() error

func (f closeFunc) Close() error { return f() }

func TestFinishCopy_RemovesPartialFile(t *testing.T) {
	errDisk := errors.New("disk full")
	tests := []struct {
		name     string
		copyErr  error
		closeErr error
		want     error
		kept     bool
	}{
		{"success", nil, nil, nil, true},
		{"copy failed", errDisk, nil, errDisk, false},
		{"close failed", nil, errDisk, errDisk, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := filepath.Join(t.TempDir(), "partial.txt")
			if err := os.WriteFile(dst, []byte("half"), 0o644); err != nil {
				t.Fatal(err)
			}
			closed := false
			err := finishCopy(dst, closeFunc(func() error { closed = true; return tt.closeErr }), tt.copyErr)
			if !errors.Is(err, tt.want) || (tt.want == nil && err != nil) {
				t.Errorf("finishCopy() = %v, want %v", err, tt.want)
			}
			if !closed {
				t.Error("destination was not closed")
			}
			if _, statErr := os.Stat(dst); (statErr == nil) != tt.kept {
				t.Errorf("destination kept = %v, want %v", statErr == nil, tt.kept)
			}
		})
	}
}
