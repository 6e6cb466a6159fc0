package spotlight

import "testing"

func sharedRevealConfig(text string, tl *Timeline, at float64) RevealConfig {
	cfg := DefaultRevealConfig(text)
	cfg.Timeline = tl
	cfg.StartAt = at
	return cfg
}

func TestDefaultRevealConfig(t *testing.T) {
	cfg := DefaultRevealConfig("hi")
	if cfg.Split != SplitChars || cfg.Ease != "power3.out" || cfg.Align != TextAlignCenter {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.From != (Style{Opacity: 0, Y: 40}) || cfg.To != (Style{Opacity: 1}) {
		t.Errorf("From/To = %+v/%+v", cfg.From, cfg.To)
	}
	assertNear(t, "Stagger", cfg.Stagger(), 0.1)
}

// --- Shared timeline ---

func TestRevealSharedTimeline(t *testing.T) {
	tl := NewTimeline()
	parent := NewContainer("parent")
	completed := 0
	cfg := sharedRevealConfig("ab cd", tl, 1)
	cfg.OnComplete = func() { completed++ }
	r := NewReveal(cfg)
	r.Mount(nil, parent, monoFont{})

	if len(r.Units()) != 4 || len(r.Targets()) != 4 {
		t.Fatalf("units = %d, want 4", len(r.Units()))
	}
	if tl.Len() != 2 {
		t.Errorf("insertions = %d, want 2", tl.Len())
	}

	tl.Seek(0.5)
	if r.Units()[0].Node.Alpha != 1 {
		t.Error("units should keep their layout style before the block's offset")
	}

	tl.Seek(1)
	for i, u := range r.Units() {
		if u.Node.Alpha != 0 || u.Node.Y != u.Home.Y+40 {
			t.Errorf("unit %d alpha %v y %v, want from style", i, u.Node.Alpha, u.Node.Y)
		}
	}

	// Last unit starts at 1 + 4*0.1 and runs 0.6s.
	tl.Seek(1.99)
	if r.Completed() {
		t.Fatal("completed before the last unit finished")
	}
	tl.Seek(2.01)
	tl.Seek(3)
	if !r.Completed() || completed != 1 {
		t.Errorf("Completed = %v, OnComplete calls = %d, want true 1", r.Completed(), completed)
	}
	for i, u := range r.Units() {
		if u.Node.Alpha != 1 || u.Node.Y != u.Home.Y {
			t.Errorf("unit %d alpha %v y %v, want end style", i, u.Node.Alpha, u.Node.Y)
		}
		if u.WillChange {
			t.Errorf("unit %d still hinted after completion", i)
		}
	}
	r.Unmount()
}

func TestRevealUnmountMidAnimation(t *testing.T) {
	tl := NewTimeline()
	parent := NewContainer("parent")
	aDone, bDone := false, false

	cfgA := sharedRevealConfig("abc", tl, 0)
	cfgA.OnComplete = func() { aDone = true }
	a := NewReveal(cfgA)
	a.Mount(nil, parent, monoFont{})

	cfgB := sharedRevealConfig("de", tl, 0.5)
	cfgB.OnComplete = func() { bDone = true }
	b := NewReveal(cfgB)
	b.Mount(nil, parent, monoFont{})

	tl.Seek(0.3)
	node := a.Node()
	a.Unmount()

	if tl.Len() != 2 {
		t.Errorf("insertions = %d, want only the other block's 2", tl.Len())
	}
	if !node.IsDisposed() || a.Node() != nil {
		t.Error("Unmount should dispose the text node")
	}
	if parent.NumChildren() != 1 {
		t.Errorf("parent children = %d, want 1", parent.NumChildren())
	}

	tl.Seek(5)
	if aDone {
		t.Error("unmounted block completed")
	}
	if !bDone {
		t.Error("surviving block should complete")
	}

	a.Unmount()
	b.Unmount()
	b.Unmount()
}

// --- Private, scroll-triggered timeline ---

func TestRevealScrollTrigger(t *testing.T) {
	tk := NewTicker(800, 600)
	parent := NewContainer("parent")
	parent.SetPosition(0, 1000)

	starts, completes := 0, 0
	cfg := DefaultRevealConfig("ab cd")
	cfg.OnStart = func() { starts++ }
	cfg.OnComplete = func() { completes++ }
	r := NewReveal(cfg)
	r.Mount(tk, parent, monoFont{})

	if tk.Len() != 1 {
		t.Fatalf("tick callbacks = %d, want 1", tk.Len())
	}
	if r.Timeline() == nil || !r.Timeline().Paused {
		t.Fatal("private timeline should wait paused")
	}

	tk.Tick(0.1)
	if r.Triggered() {
		t.Fatal("triggered while below the start line")
	}
	if r.Units()[0].Node.Alpha != 1 {
		t.Error("untriggered text should stay visible")
	}

	// Start line is 600*0.9 - 100 = 440.
	parent.SetPosition(0, 400)
	tk.Tick(0.1)
	if !r.Triggered() || starts != 1 {
		t.Fatalf("Triggered = %v starts = %d, want true 1", r.Triggered(), starts)
	}
	for i, u := range r.Units() {
		if u.Node.Alpha != 0 {
			t.Errorf("unit %d alpha = %v on the trigger frame, want 0", i, u.Node.Alpha)
		}
	}

	parent.SetPosition(0, 1000)
	tk.Tick(0.1)
	parent.SetPosition(0, 0)
	for i := 0; i < 20; i++ {
		tk.Tick(0.1)
	}
	if starts != 1 {
		t.Errorf("OnStart calls = %d, want 1", starts)
	}
	if !r.Completed() || completes != 1 {
		t.Errorf("Completed = %v completes = %d, want true 1", r.Completed(), completes)
	}
	if tk.Len() != 0 {
		t.Errorf("tick callbacks = %d after completion, want 0", tk.Len())
	}
	r.Unmount()
}

func TestRevealUnmountBeforeTrigger(t *testing.T) {
	tk := NewTicker(800, 600)
	parent := NewContainer("parent")
	parent.SetPosition(0, 5000)
	r := NewReveal(DefaultRevealConfig("abc"))
	r.Mount(tk, parent, monoFont{})
	tk.Tick(0.1)

	r.Unmount()
	if tk.Len() != 0 {
		t.Errorf("tick callbacks = %d, want 0", tk.Len())
	}
	if parent.NumChildren() != 0 {
		t.Error("text node should be removed")
	}
	tk.Tick(0.1)
}

// --- Mount edge cases ---

func TestRevealMountAborted(t *testing.T) {
	tk := NewTicker(800, 600)
	r := NewReveal(DefaultRevealConfig("abc"))

	r.Mount(tk, nil, monoFont{})
	if r.Node() != nil || tk.Len() != 0 {
		t.Error("mount without a parent should leave nothing behind")
	}

	r.Mount(tk, NewContainer("p"), nil)
	if r.Node() != nil || tk.Len() != 0 {
		t.Error("mount without a font should leave nothing behind")
	}

	r.Mount(nil, NewContainer("p"), monoFont{})
	if r.Node() != nil {
		t.Error("private reveal without a ticker should not mount")
	}

	r.Unmount()
}

func TestRevealRemount(t *testing.T) {
	tk := NewTicker(800, 600)
	parent := NewContainer("parent")
	r := NewReveal(DefaultRevealConfig("ab cd"))
	r.Mount(tk, parent, monoFont{})
	first := len(r.Units())

	r.Mount(tk, parent, monoFont{})
	if len(r.Units()) != first {
		t.Errorf("units = %d after remount, want %d", len(r.Units()), first)
	}
	if parent.NumChildren() != 1 || tk.Len() != 1 {
		t.Errorf("children = %d callbacks = %d, want 1 1", parent.NumChildren(), tk.Len())
	}
	r.Unmount()
}

func TestRevealLayoutOptions(t *testing.T) {
	tl := NewTimeline()
	parent := NewContainer("parent")
	cfg := sharedRevealConfig("ab cd", tl, 0)
	cfg.Split = SplitWords
	cfg.Align = TextAlignLeft
	cfg.WrapWidth = 30
	cfg.Position = Vec2{12, 34}
	cfg.Color = Color{1, 0, 0, 1}
	r := NewReveal(cfg)
	r.Mount(nil, parent, monoFont{})
	defer r.Unmount()

	n := r.Node()
	if n.X != 12 || n.Y != 34 {
		t.Errorf("position = (%v, %v), want (12, 34)", n.X, n.Y)
	}
	units := r.Units()
	if len(units) != 2 || units[1].Home != (Vec2{0, 20}) {
		t.Errorf("units = %q, want two wrapped words", unitTexts(units))
	}
	if units[0].Node.TextBlock.Color != (Color{1, 0, 0, 1}) {
		t.Error("units should inherit the block color")
	}
}
