// Package store persists settings and recently visited folders in sqlite.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/justyntemme/foldernav/internal/debug"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

type EventType int

const (
	FetchSettings EventType = iota
	SaveSetting
	RecordVisit
	FetchRecent
)

// Setting keys.
const (
	KeyLastPath = "last_path"
)

// DefaultRecentLimit bounds FetchRecent when no limit is given.
const DefaultRecentLimit = 10

type Request struct {
	Op    EventType
	Path  string
	Key   string
	Value string
	Limit int
}

type Response struct {
	Op       EventType
	Settings map[string]string // Key-value settings
	Recent   []string          // Most recent first
	Err      error
}

type DB struct {
	conn         *sql.DB
	RequestChan  chan Request
	ResponseChan chan Response
}

func NewDB() *DB {
	return &DB{
		RequestChan:  make(chan Request, 10),
		ResponseChan: make(chan Response, 10),
	}
}

// Open initializes the database connection and schema
func (d *DB) Open(dbPath string) error {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return err
	}

	// WAL mode allows simultaneous readers and writers
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return fmt.Errorf("enable WAL: %w", err)
	}
	// Synchronous NORMAL is safe against app crashes, faster than FULL
	if _, err := db.Exec("PRAGMA synchronous=NORMAL;"); err != nil {
		db.Close()
		return fmt.Errorf("set synchronous: %w", err)
	}

	settingsQuery := `
	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	if _, err := db.Exec(settingsQuery); err != nil {
		db.Close()
		return err
	}

	// visited_at is unix nanoseconds; CURRENT_TIMESTAMP only has second resolution.
	visitsQuery := `
	CREATE TABLE IF NOT EXISTS visits (
		path TEXT PRIMARY KEY,
		visited_at INTEGER NOT NULL,
		count INTEGER NOT NULL DEFAULT 1
	);
	`
	if _, err := db.Exec(visitsQuery); err != nil {
		db.Close()
		return err
	}

	d.conn = db
	debug.Log(debug.STORE, "opened %s", dbPath)
	return nil
}

// Start serves requests until RequestChan is closed. Every request is
// answered on ResponseChan.
func (d *DB) Start() {
	for req := range d.RequestChan {
		switch req.Op {
		case FetchSettings:
			d.handleFetchSettings()
		case SaveSetting:
			d.handleSaveSetting(req.Key, req.Value)
		case RecordVisit:
			d.handleRecordVisit(req.Path, req.Limit)
		case FetchRecent:
			d.handleFetchRecent(req.Limit)
		}
	}
}

func (d *DB) handleFetchSettings() {
	rows, err := d.conn.Query("SELECT key, value FROM settings")
	if err != nil {
		d.ResponseChan <- Response{Op: FetchSettings, Err: err}
		return
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err == nil {
			settings[key] = value
		}
	}

	d.ResponseChan <- Response{Op: FetchSettings, Settings: settings, Err: rows.Err()}
}

func (d *DB) handleSaveSetting(key, value string) {
	_, err := d.conn.Exec("INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)", key, value)
	if err != nil {
		debug.Errorf(debug.STORE, "saving setting %s: %v", key, err)
		d.ResponseChan <- Response{Op: SaveSetting, Err: err}
		return
	}
	// Trigger a fetch to sync settings
	d.handleFetchSettings()
}

func (d *DB) handleRecordVisit(path string, limit int) {
	_, err := d.conn.Exec(`
		INSERT INTO visits (path, visited_at) VALUES (?, ?)
		ON CONFLICT(path) DO UPDATE SET visited_at = excluded.visited_at, count = count + 1`,
		path, time.Now().UnixNano())
	if err != nil {
		debug.Errorf(debug.STORE, "recording visit %s: %v", path, err)
		d.ResponseChan <- Response{Op: RecordVisit, Err: err}
		return
	}
	d.recent(RecordVisit, limit)
}

func (d *DB) handleFetchRecent(limit int) {
	d.recent(FetchRecent, limit)
}

func (d *DB) recent(op EventType, limit int) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	rows, err := d.conn.Query("SELECT path FROM visits ORDER BY visited_at DESC LIMIT ?", limit)
	if err != nil {
		d.ResponseChan <- Response{Op: op, Err: err}
		return
	}
	defer rows.Close()

	var recent []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err == nil {
			recent = append(recent, path)
		}
	}

	d.ResponseChan <- Response{Op: op, Recent: recent, Err: rows.Err()}
}

func (d *DB) Close() {
	if d.conn != nil {
		d.conn.Close()
	}
}
