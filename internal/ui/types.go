package ui

import (
	"strings"
	"time"

	"gioui.org/widget"

	"github.com/justyntemme/foldernav/internal/files"
	"github.com/justyntemme/foldernav/internal/tree"
)

type UIAction int

const (
	ActionNone UIAction = iota
	ActionNavigate      // Path holds raw user input or a folder path
	ActionBack
	ActionForward
	ActionUp
	ActionRefresh
	ActionToggleExpand // Node holds the tree folder to expand or collapse
	ActionSelectFile   // NewIndex holds the file row
	ActionOpen         // Path holds the file to open
	ActionToggleTheme
	ActionPaste // Paths holds the clipboard file paths to copy into the current folder
)

type UIEvent struct {
	Action   UIAction
	Path     string
	Node     *tree.Node
	NewIndex int
	Paths    []string
}

// FileRow is a file list entry plus its widget state.
type FileRow struct {
	files.Entry
	Clickable widget.Clickable
	LastClick time.Time
}

// RecentItem is a recently visited folder shown under the path bar.
type RecentItem struct {
	Path      string
	Clickable widget.Clickable
}

// State is what the orchestrator hands the renderer each frame.
type State struct {
	CurrentPath   string
	Files         []FileRow
	SelectedIndex int
	CanBack       bool
	CanForward    bool
	Recent        []RecentItem
	Status        string
	ConfigError   string
}

// BreadcrumbSegment is one clickable part of the current path.
type BreadcrumbSegment struct {
	Name string
	Path string
}

// parseBreadcrumbSegments splits fullPath into segments using sep, so that
// each segment carries the path up to and including itself. The first
// segment is the volume root: "/" or `C:\`.
func parseBreadcrumbSegments(fullPath string, sep byte) []BreadcrumbSegment {
	if fullPath == "" {
		return nil
	}
	s := string(sep)
	trimmed := strings.TrimRight(fullPath, s)

	var segments []BreadcrumbSegment
	current := ""
	parts := strings.Split(trimmed, s)
	for i, part := range parts {
		switch {
		case i == 0 && part == "":
			current = s
			segments = append(segments, BreadcrumbSegment{Name: s, Path: s})
			continue
		case i == 0:
			current = part + s
			segments = append(segments, BreadcrumbSegment{Name: current, Path: current})
			continue
		case part == "":
			continue
		}
		if !strings.HasSuffix(current, s) {
			current += s
		}
		current += part
		segments = append(segments, BreadcrumbSegment{Name: part, Path: current})
	}
	return segments
}

// truncatePathMiddle truncates a path to maxLen characters, showing start.../end
// The end portion (current directory) is prioritized to always be visible
func truncatePathMiddle(path string, sep byte, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}

	lastSep := strings.LastIndexByte(path, sep)
	if lastSep <= 0 || lastSep >= len(path)-1 {
		return path[:maxLen-3] + "..."
	}

	endPart := path[lastSep:]
	startLen := maxLen - 3 - len(endPart)
	if startLen < 5 {
		if len(endPart) > maxLen-3 {
			return "..." + endPart[len(endPart)-(maxLen-3):]
		}
		return "..." + endPart
	}
	return path[:startLen] + "..." + endPart
}

// parsePastedPaths splits clipboard text into file paths, one per line.
// Surrounding quotes and file:// prefixes are stripped.
// selectionText is what Shortcut+C puts on the clipboard: the selected file's
// path, or "" when nothing is selected.
func selectionText(state *State) string {
	if state.SelectedIndex < 0 || state.SelectedIndex >= len(state.Files) {
		return ""
	}
	return state.Files[state.SelectedIndex].Path
}

func parsePastedPaths(text string) []string {
	var paths []string
	for _, line := range strings.Split(text, "\n") {
		p := strings.TrimSpace(line)
		p = strings.Trim(p, `"`)
		p = strings.TrimPrefix(p, "file://")
		if p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}
