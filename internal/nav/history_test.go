package nav

import (
	"context"
	"testing"
)

func TestExpandPath(t *testing.T) {
	_, _, _, _, c := fixture(t, 0)
	ctx := context.Background()

	if got := c.ExpandPath("Users"); got != "Users" {
		t.Errorf("relative path without a current folder should pass through, got %q", got)
	}

	if _, err := c.Navigate(ctx, `C:\Users\Alice`); err != nil {
		t.Fatalf("Navigate failed: %v", err)
	}

	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"  ", ""},
		{"~", `C:\Users\Alice`},
		{`~\Documents`, `C:\Users\Alice\Documents`},
		{"~/Documents", `C:\Users\Alice\Documents`},
		{"Documents", `C:\Users\Alice\Documents`},
		{`.\Documents`, `C:\Users\Alice\Documents`},
		{"..", `C:\Users`},
		{`..\Bob`, `C:\Users\Bob`},
		{`..\..\..\..`, `C:\`},
		{`D:\Data`, `D:\Data`},
		{"d:", "d:"},
		{`\Windows`, `\Windows`},
	}
	for _, tt := range tests {
		if got := c.ExpandPath(tt.input); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestGo_Relative(t *testing.T) {
	_, _, _, _, c := fixture(t, 0)
	ctx := context.Background()

	if _, err := c.Go(ctx, `C:\Users\Alice`); err != nil {
		t.Fatalf("Go failed: %v", err)
	}
	res, err := c.Go(ctx, `..\Bob`)
	if err != nil {
		t.Fatalf("Go failed: %v", err)
	}
	if res.Node.Path != `C:\Users\Bob` {
		t.Errorf("expected Bob, got %q", res.Node.Path)
	}
}

func TestHistory_BackForward(t *testing.T) {
	_, _, _, pub, c := fixture(t, 0)
	ctx := context.Background()

	for _, p := range []string{`C:\Users`, `C:\Users\Alice`, `C:\Windows`} {
		if _, err := c.Navigate(ctx, p); err != nil {
			t.Fatalf("Navigate(%q) failed: %v", p, err)
		}
	}
	if c.CanForward() || !c.CanBack() {
		t.Fatal("expected back only")
	}

	if _, err := c.Back(ctx); err != nil {
		t.Fatalf("Back failed: %v", err)
	}
	if got := c.State().CurrentPath; got != `C:\Users\Alice` {
		t.Errorf("Back went to %q", got)
	}
	if !c.CanForward() {
		t.Error("expected forward after Back")
	}

	if _, err := c.Forward(ctx); err != nil {
		t.Fatalf("Forward failed: %v", err)
	}
	if pub.path != `C:\Windows` {
		t.Errorf("Forward listed %q", pub.path)
	}

	c.Back(ctx)
	c.Back(ctx)
	if _, err := c.Navigate(ctx, `C:\Users\Bob`); err != nil {
		t.Fatalf("Navigate failed: %v", err)
	}
	hist, idx := c.History()
	if len(hist) != 2 || hist[1] != `C:\Users\Bob` || idx != 1 {
		t.Errorf("navigating after Back should drop forward history, got %v @%d", hist, idx)
	}

	// At the start of history Back is a no-op.
	c.Back(ctx)
	res, err := c.Back(ctx)
	if err != nil || res.Node != nil {
		t.Errorf("Back at start should do nothing, got %+v %v", res, err)
	}
}

func TestHistory_SkipsRepeatsAndCaps(t *testing.T) {
	_, _, _, _, c := fixture(t, 0)
	ctx := context.Background()

	c.Navigate(ctx, `C:\Users`)
	c.Navigate(ctx, `C:\Users`)
	if hist, _ := c.History(); len(hist) != 1 {
		t.Errorf("repeat navigation should not grow history, got %v", hist)
	}

	c.opts.HistorySize = 3
	for _, p := range []string{`C:\Windows`, `C:\Users\Bob`, `C:\Users\Alice`, `C:\`} {
		c.Navigate(ctx, p)
	}
	hist, idx := c.History()
	if len(hist) != 3 || idx != 2 || hist[0] != `C:\Users\Bob` {
		t.Errorf("expected last 3 entries, got %v @%d", hist, idx)
	}
}

func TestUp(t *testing.T) {
	_, _, _, _, c := fixture(t, 0)
	ctx := context.Background()

	c.Navigate(ctx, `C:\Users\Alice`)
	if _, err := c.Up(ctx); err != nil {
		t.Fatalf("Up failed: %v", err)
	}
	if got := c.State().CurrentPath; got != `C:\Users` {
		t.Errorf("Up went to %q", got)
	}

	c.Up(ctx)
	if got := c.State().CurrentPath; got != `C:\` {
		t.Errorf("Up went to %q", got)
	}

	res, err := c.Up(ctx)
	if err != nil || res.Node != nil {
		t.Errorf("Up from a root should do nothing, got %+v %v", res, err)
	}
}
