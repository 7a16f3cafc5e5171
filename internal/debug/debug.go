// Package debug provides a centralized, categorized logging system.
//
// Categories are switched on at runtime with SetVerbose (the -debug flag) or
// the FOLDERNAV_DEBUG environment variable. Errors are always written.
package debug

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a debug logging category
type Category string

const (
	APP   Category = "APP"   // Orchestration, startup, shutdown
	FS    Category = "FS"    // Directory probing and volume discovery
	TREE  Category = "TREE"  // Expansion, invalidation, resolution
	NAV   Category = "NAV"   // Navigation state machine and reveal loop
	UI    Category = "UI"    // Frame handling and view requests
	STORE Category = "STORE" // SQLite settings and history
	WATCH Category = "WATCH" // fsnotify events
)

var allCategories = []Category{APP, FS, TREE, NAV, UI, STORE, WATCH}

var (
	categoryMu        sync.RWMutex
	enabledCategories = make(map[Category]bool)

	loggerMu sync.Mutex
	base     *zap.Logger
	named    = make(map[Category]*zap.SugaredLogger)
)

func init() {
	base = newLogger()

	// Format: FOLDERNAV_DEBUG=NAV,TREE or FOLDERNAV_DEBUG=all or FOLDERNAV_DEBUG=none
	if env := os.Getenv("FOLDERNAV_DEBUG"); env != "" {
		applySpec(env)
	}
}

func newLogger() *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000000")
	cfg.DisableStacktrace = true
	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

func applySpec(spec string) {
	categoryMu.Lock()
	defer categoryMu.Unlock()

	switch strings.ToUpper(strings.TrimSpace(spec)) {
	case "ALL":
		for _, cat := range allCategories {
			enabledCategories[cat] = true
		}
	case "NONE":
		enabledCategories = make(map[Category]bool)
	default:
		enabledCategories = make(map[Category]bool)
		for _, cat := range strings.Split(spec, ",") {
			cat = strings.ToUpper(strings.TrimSpace(cat))
			if cat != "" {
				enabledCategories[Category(cat)] = true
			}
		}
	}
}

func loggerFor(cat Category) *zap.SugaredLogger {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	l, ok := named[cat]
	if !ok {
		l = base.Named(string(cat)).Sugar()
		named[cat] = l
	}
	return l
}

// SetLogger replaces the underlying zap logger. Used by tests to capture output.
func SetLogger(l *zap.Logger) {
	loggerMu.Lock()
	base = l
	named = make(map[Category]*zap.SugaredLogger)
	loggerMu.Unlock()
}

// SetVerbose enables every category when on, and disables them all otherwise.
func SetVerbose(on bool) {
	if on {
		applySpec("all")
		return
	}
	applySpec("none")
}

// Log logs a debug message for the specified category
func Log(cat Category, format string, args ...interface{}) {
	if !IsEnabled(cat) {
		return
	}
	loggerFor(cat).Debugf(format, args...)
}

// Errorf logs an error regardless of which categories are enabled.
func Errorf(cat Category, format string, args ...interface{}) {
	loggerFor(cat).Errorf(format, args...)
}

// Infof logs an informational message regardless of enabled categories.
func Infof(cat Category, format string, args ...interface{}) {
	loggerFor(cat).Infof(format, args...)
}

// IsEnabled returns whether a category is enabled
func IsEnabled(cat Category) bool {
	categoryMu.RLock()
	defer categoryMu.RUnlock()
	return enabledCategories[cat]
}

// ListEnabled returns the currently enabled categories in declaration order.
func ListEnabled() []Category {
	categoryMu.RLock()
	defer categoryMu.RUnlock()

	var enabled []Category
	for _, cat := range allCategories {
		if enabledCategories[cat] {
			enabled = append(enabled, cat)
		}
	}
	return enabled
}

// Sync flushes buffered log entries.
func Sync() {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	_ = base.Sync()
}
