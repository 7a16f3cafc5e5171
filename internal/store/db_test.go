package store

import (
	"path/filepath"
	"testing"
	"time"
)

func openDB(t *testing.T) *DB {
	t.Helper()
	return openAt(t, filepath.Join(t.TempDir(), "data", "test.db"))
}

func openAt(t *testing.T, path string) *DB {
	t.Helper()
	d := NewDB()
	if err := d.Open(path); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	go d.Start()
	t.Cleanup(func() {
		close(d.RequestChan)
		d.Close()
	})
	return d
}

func roundTrip(t *testing.T, d *DB, req Request) Response {
	t.Helper()
	d.RequestChan <- req
	select {
	case resp := <-d.ResponseChan:
		if resp.Op != req.Op {
			t.Fatalf("response for op %d, want %d", resp.Op, req.Op)
		}
		if resp.Err != nil {
			t.Fatalf("op %d failed: %v", req.Op, resp.Err)
		}
		return resp
	case <-time.After(5 * time.Second):
		t.Fatalf("no response for op %d", req.Op)
	}
	return Response{}
}

func TestSettings(t *testing.T) {
	d := openDB(t)

	resp := roundTrip(t, d, Request{Op: FetchSettings})
	if len(resp.Settings) != 0 {
		t.Errorf("fresh database should have no settings, got %v", resp.Settings)
	}

	roundTrip(t, d, Request{Op: SaveSetting, Key: KeyLastPath, Value: "/home"})
	resp = roundTrip(t, d, Request{Op: SaveSetting, Key: KeyLastPath, Value: "/tmp"})
	if resp.Settings[KeyLastPath] != "/tmp" {
		t.Errorf("expected upserted value, got %v", resp.Settings)
	}
}

func TestRecentVisits(t *testing.T) {
	d := openDB(t)

	for _, p := range []string{"/a", "/b", "/c", "/a"} {
		roundTrip(t, d, Request{Op: RecordVisit, Path: p})
	}

	resp := roundTrip(t, d, Request{Op: FetchRecent, Limit: 2})
	if len(resp.Recent) != 2 || resp.Recent[0] != "/a" || resp.Recent[1] != "/c" {
		t.Errorf("expected [/a /c], got %v", resp.Recent)
	}

	resp = roundTrip(t, d, Request{Op: FetchRecent})
	if len(resp.Recent) != 3 {
		t.Errorf("revisits should not duplicate entries, got %v", resp.Recent)
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	d := NewDB()
	if err := d.Open(path); err != nil {
		t.Fatal(err)
	}
	go d.Start()
	roundTrip(t, d, Request{Op: SaveSetting, Key: KeyLastPath, Value: "/srv"})
	close(d.RequestChan)
	d.Close()

	d2 := openAt(t, path)
	resp := roundTrip(t, d2, Request{Op: FetchSettings})
	if resp.Settings[KeyLastPath] != "/srv" {
		t.Errorf("setting lost on reopen: %v", resp.Settings)
	}
}
