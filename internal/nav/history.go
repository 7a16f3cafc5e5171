package nav

import (
	"context"
	"strings"

	"github.com/justyntemme/foldernav/internal/tree"
)

// Go expands user input (~, relative paths) and navigates there.
func (c *Controller) Go(ctx context.Context, input string) (Result, error) {
	return c.Navigate(ctx, c.ExpandPath(input))
}

// ExpandPath expands and normalizes a path string, handling:
// - ~ for home directory
// - Relative paths (../, ./), resolved against the current folder
// - Absolute paths and drive letters (C:, D:\)
// Empty input stays empty so that validation can reject it.
func (c *Controller) ExpandPath(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}
	sep := c.tree.Separator()

	if home := c.opts.HomePath; home != "" && strings.HasPrefix(input, "~") {
		if input == "~" {
			return home
		}
		if input[1] == '/' || input[1] == sep {
			return c.join(home, input[2:])
		}
	}

	if c.isAbsolutePath(input) {
		return input
	}

	current := c.State().CurrentPath
	if current == "" {
		return input
	}
	return c.join(current, input)
}

// join applies rel segment by segment to base, using the tree separator.
func (c *Controller) join(base, rel string) string {
	sep := c.tree.Separator()
	out := base
	segs := strings.FieldsFunc(rel, func(r rune) bool {
		return r == '/' || r == rune(sep)
	})
	for _, seg := range segs {
		switch seg {
		case ".":
		case "..":
			if parent, ok := tree.Parent(out, sep); ok {
				out = parent
			}
		default:
			if !strings.HasSuffix(out, string(sep)) {
				out += string(sep)
			}
			out += seg
		}
	}
	return out
}

// isAbsolutePath checks for Unix roots, drive letters and UNC paths.
func (c *Controller) isAbsolutePath(path string) bool {
	if path[0] == '/' || path[0] == c.tree.Separator() {
		return true
	}
	if c.tree.Separator() == '\\' && len(path) >= 2 && isLetter(path[0]) && path[1] == ':' {
		return true
	}
	return false
}

func isLetter(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

// pushHistoryLocked truncates forward history and appends path.
func (c *Controller) pushHistoryLocked(path string) {
	if c.historyIndex >= 0 && c.historyIndex < len(c.history) && c.history[c.historyIndex] == path {
		return
	}
	if c.historyIndex >= 0 && c.historyIndex < len(c.history)-1 {
		c.history = c.history[:c.historyIndex+1]
	}
	c.history = append(c.history, path)
	c.historyIndex = len(c.history) - 1

	if len(c.history) > c.opts.HistorySize {
		excess := len(c.history) - c.opts.HistorySize
		c.history = c.history[excess:]
		c.historyIndex -= excess
	}
}

// CanBack reports whether Back has somewhere to go.
func (c *Controller) CanBack() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.historyIndex > 0
}

// CanForward reports whether Forward has somewhere to go.
func (c *Controller) CanForward() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.historyIndex >= 0 && c.historyIndex < len(c.history)-1
}

// Back navigates to the previous folder in history.
func (c *Controller) Back(ctx context.Context) (Result, error) {
	return c.step(ctx, -1)
}

// Forward navigates to the next folder in history.
func (c *Controller) Forward(ctx context.Context) (Result, error) {
	return c.step(ctx, +1)
}

func (c *Controller) step(ctx context.Context, delta int) (Result, error) {
	c.mu.Lock()
	idx := c.historyIndex + delta
	if idx < 0 || idx >= len(c.history) {
		c.mu.Unlock()
		return Result{}, nil
	}
	path := c.history[idx]
	c.mu.Unlock()

	res, err := c.navigate(ctx, path, false)
	if err == nil && !res.Stale {
		c.mu.Lock()
		c.historyIndex = idx
		c.mu.Unlock()
	}
	return res, err
}

// Up navigates to the parent of the current folder.
func (c *Controller) Up(ctx context.Context) (Result, error) {
	parent, ok := tree.Parent(c.State().CurrentPath, c.tree.Separator())
	if !ok {
		return Result{}, nil
	}
	return c.Navigate(ctx, parent)
}

// History returns a copy of the visited paths and the current index.
func (c *Controller) History() ([]string, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	h := make([]string, len(c.history))
	copy(h, c.history)
	return h, c.historyIndex
}
