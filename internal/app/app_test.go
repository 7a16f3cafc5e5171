package app

import (
	"testing"
	"time"

	"github.com/justyntemme/foldernav/internal/config"
	"github.com/justyntemme/foldernav/internal/files"
	"github.com/justyntemme/foldernav/internal/ui"
)

func entries(names ...string) []files.Entry {
	out := make([]files.Entry, len(names))
	for i, n := range names {
		out[i] = files.Entry{Path: "/data/" + n, Name: n}
	}
	return out
}

func TestStateOwner_SetListing(t *testing.T) {
	invalidated := 0
	s := NewStateOwner(func() { invalidated++ })

	s.SetListing("/data", entries("a.txt", "b.txt"), true, false)
	path, got, selected := s.Snapshot()
	if path != "/data" || len(got) != 2 || selected != -1 {
		t.Fatalf("unexpected state: %q %v %d", path, got, selected)
	}
	if invalidated != 1 {
		t.Errorf("expected 1 invalidation, got %d", invalidated)
	}

	var canBack, canForward bool
	s.Frame(func(st *ui.State) { canBack, canForward = st.CanBack, st.CanForward })
	if !canBack || canForward {
		t.Errorf("history flags not applied: back=%v forward=%v", canBack, canForward)
	}
}

func TestStateOwner_ReloadKeepsSelection(t *testing.T) {
	s := NewStateOwner(nil)
	s.SetListing("/data", entries("a.txt", "b.txt"), false, false)
	if e, ok := s.SelectFile(1); !ok || e.Name != "b.txt" {
		t.Fatalf("SelectFile(1) = %v, %v", e, ok)
	}

	// Same folder, new file in front: selection follows the file.
	s.SetListing("/data", entries("0.txt", "a.txt", "b.txt"), false, false)
	if _, _, selected := s.Snapshot(); selected != 2 {
		t.Errorf("expected selection to follow b.txt to 2, got %d", selected)
	}

	// Selected file removed.
	s.SetListing("/data", entries("a.txt"), false, false)
	if _, _, selected := s.Snapshot(); selected != -1 {
		t.Errorf("expected no selection, got %d", selected)
	}

	// Another folder always starts unselected.
	s.SelectFile(0)
	s.SetListing("/other", entries("a.txt"), false, false)
	if _, _, selected := s.Snapshot(); selected != -1 {
		t.Errorf("expected no selection in a new folder, got %d", selected)
	}
}

func TestStateOwner_SelectFileOutOfRange(t *testing.T) {
	s := NewStateOwner(nil)
	s.SetListing("/data", entries("a.txt"), false, false)
	s.SelectFile(0)
	if _, ok := s.SelectFile(5); ok {
		t.Error("out of range index should not select")
	}
	if _, _, selected := s.Snapshot(); selected != -1 {
		t.Errorf("expected selection cleared, got %d", selected)
	}
}

func TestStateOwner_StatusAndRecent(t *testing.T) {
	s := NewStateOwner(nil)
	s.SetStatus("Folder not found.")
	s.SetRecent([]string{"/a", "/b"})
	s.SetConfigError("bad json")

	s.Frame(func(st *ui.State) {
		if st.Status != "Folder not found." {
			t.Errorf("status = %q", st.Status)
		}
		if len(st.Recent) != 2 || st.Recent[0].Path != "/a" {
			t.Errorf("recent = %+v", st.Recent)
		}
		if st.ConfigError != "bad json" {
			t.Errorf("config error = %q", st.ConfigError)
		}
	})

	// A new listing clears the status line.
	s.SetListing("/a", nil, false, false)
	s.Frame(func(st *ui.State) {
		if st.Status != "" {
			t.Errorf("status should be cleared, got %q", st.Status)
		}
	})
}

func TestStartPath(t *testing.T) {
	restore := *config.DefaultConfig()
	noRestore := restore
	noRestore.Navigation.RestoreLastPath = false
	configured := restore
	configured.Navigation.StartPath = "/srv"

	tests := []struct {
		name     string
		flagPath string
		lastPath string
		cfg      config.Config
		want     string
	}{
		{"flag wins", "/flag", "/last", configured, "/flag"},
		{"last path", "", "/last", configured, "/last"},
		{"restore disabled", "", "/last", noRestore, "/home/alice"},
		{"configured start", "", "", configured, "/srv"},
		{"home", "", "", restore, "/home/alice"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := startPath(tt.flagPath, tt.lastPath, tt.cfg, "/home/alice"); got != tt.want {
				t.Errorf("startPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNavOptions(t *testing.T) {
	c := *config.DefaultConfig()
	c.Navigation.RevealDelayMs = 50
	c.Navigation.RevealMaxDelayMs = 400
	c.Navigation.RevealAttempts = 6
	c.Navigation.HistorySize = 20

	opts := navOptions(c)
	if opts.RevealDelay != 50*time.Millisecond || opts.RevealMaxDelay != 400*time.Millisecond {
		t.Errorf("unexpected delays %v/%v", opts.RevealDelay, opts.RevealMaxDelay)
	}
	if opts.RevealAttempts != 6 || opts.HistorySize != 20 {
		t.Errorf("unexpected attempts/history %d/%d", opts.RevealAttempts, opts.HistorySize)
	}
}
