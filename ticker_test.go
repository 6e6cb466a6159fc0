package spotlight

import "testing"

func TestTickerOrder(t *testing.T) {
	tk := NewTicker(100, 100)
	var got []int
	for i := 1; i <= 3; i++ {
		tk.Add(func(float64) { got = append(got, i) })
	}
	tk.Tick(1.0 / 60)

	if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Errorf("dispatch order = %v, want [1 2 3]", got)
	}
	if tk.Frame() != 1 {
		t.Errorf("Frame = %d, want 1", tk.Frame())
	}
}

func TestTickerPassesDelta(t *testing.T) {
	tk := NewTicker(0, 0)
	var got float64
	tk.Add(func(dt float64) { got = dt })
	tk.Tick(0.25)
	if got != 0.25 {
		t.Errorf("dt = %v, want 0.25", got)
	}
}

func TestTickerRemove(t *testing.T) {
	tk := NewTicker(0, 0)
	calls := 0
	h := tk.Add(func(float64) { calls++ })
	tk.Tick(0)
	tk.Remove(h)
	tk.Tick(0)

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if tk.Len() != 0 {
		t.Errorf("Len = %d, want 0", tk.Len())
	}

	// Unknown, zero, and repeated handles are ignored.
	tk.Remove(h)
	tk.Remove(0)
	tk.Remove(TickHandle(999))
}

func TestTickerRemoveDuringDispatch(t *testing.T) {
	tk := NewTicker(0, 0)
	var bCalls int
	var hb TickHandle
	tk.Add(func(float64) { tk.Remove(hb) })
	hb = tk.Add(func(float64) { bCalls++ })
	cCalls := 0
	tk.Add(func(float64) { cCalls++ })

	tk.Tick(0)
	if bCalls != 0 {
		t.Error("callback removed earlier in the frame still ran")
	}
	if cCalls != 1 {
		t.Errorf("later callback ran %d times, want 1", cCalls)
	}
	if tk.Len() != 2 {
		t.Errorf("Len = %d, want 2", tk.Len())
	}
}

func TestTickerSelfRemove(t *testing.T) {
	tk := NewTicker(0, 0)
	calls := 0
	var h TickHandle
	h = tk.Add(func(float64) {
		calls++
		tk.Remove(h)
	})
	tk.Tick(0)
	tk.Tick(0)
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestTickerAddDuringDispatch(t *testing.T) {
	tk := NewTicker(0, 0)
	added := 0
	tk.Add(func(float64) {
		if added == 0 {
			tk.Add(func(float64) { added++ })
			added = -1
		}
	})
	tk.Tick(0)
	if added != -1 {
		t.Fatal("callback added during dispatch ran in the same frame")
	}
	tk.Tick(0)
	if added != 0 {
		t.Errorf("added callback should run on the next frame, got %d", added)
	}
}

func TestTickerHandlesUnique(t *testing.T) {
	tk := NewTicker(0, 0)
	a := tk.Add(func(float64) {})
	b := tk.Add(func(float64) {})
	r := tk.OnResize(func(Vec2) {})
	if a == 0 || a == b || uint64(r) == uint64(b) {
		t.Errorf("handles a=%d b=%d r=%d should be distinct and non-zero", a, b, r)
	}
}

// --- Resize ---

func TestTickerResize(t *testing.T) {
	tk := NewTicker(300, 300)
	var got []Vec2
	tk.OnResize(func(b Vec2) { got = append(got, b) })

	tk.Resize(300, 300)
	if len(got) != 0 {
		t.Error("resize to the same bounds should not notify")
	}

	tk.Resize(640, 480)
	if len(got) != 1 || got[0] != (Vec2{640, 480}) {
		t.Errorf("notifications = %v, want [{640 480}]", got)
	}
	if tk.Bounds() != (Vec2{640, 480}) {
		t.Errorf("Bounds = %v, want {640 480}", tk.Bounds())
	}
}

func TestTickerRemoveResize(t *testing.T) {
	tk := NewTicker(0, 0)
	calls := 0
	h := tk.OnResize(func(Vec2) { calls++ })
	tk.RemoveResize(h)
	tk.RemoveResize(h)
	tk.Resize(10, 10)
	if calls != 0 {
		t.Errorf("calls = %d, want 0", calls)
	}
}

func TestTickerResizeListenerRemovesAnother(t *testing.T) {
	tk := NewTicker(0, 0)
	var second ResizeHandle
	calls := 0
	tk.OnResize(func(Vec2) { tk.RemoveResize(second) })
	second = tk.OnResize(func(Vec2) { calls++ })
	tk.Resize(10, 10)
	if calls != 0 {
		t.Error("listener removed during notification still ran")
	}
}

// --- Scroll ---

func TestTickerScrollTo(t *testing.T) {
	tk := NewTicker(0, 0)
	tk.ScrollTo(120)
	if tk.ScrollY() != 120 {
		t.Errorf("ScrollY = %v, want 120", tk.ScrollY())
	}
	tk.ScrollTo(-5)
	if tk.ScrollY() != 0 {
		t.Errorf("ScrollY = %v, want 0", tk.ScrollY())
	}
}

func BenchmarkTickerTick(b *testing.B) {
	tk := NewTicker(0, 0)
	for i := 0; i < 64; i++ {
		tk.Add(func(float64) {})
	}
	for b.Loop() {
		tk.Tick(1.0 / 60)
	}
}
