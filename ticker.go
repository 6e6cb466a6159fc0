package spotlight

// TickFunc is called once per frame with the frame's delta time in seconds.
type TickFunc func(dt float64)

// ResizeFunc is called with the new viewport bounds after a resize.
type ResizeFunc func(bounds Vec2)

// TickHandle identifies a registered TickFunc. The zero value is never issued.
type TickHandle uint64

// ResizeHandle identifies a registered ResizeFunc. The zero value is never issued.
type ResizeHandle uint64

type tickEntry struct {
	handle TickHandle
	fn     TickFunc
}

type resizeEntry struct {
	handle ResizeHandle
	fn     ResizeFunc
}

// Ticker is the frame scheduler shared by everything mounted on a Scene. It
// dispatches registered callbacks once per frame in registration order and
// owns the viewport bounds that resize listeners observe. It holds no
// simulation state of its own.
//
// Like the rest of the package, Ticker is single-threaded: call it from the
// game loop only.
type Ticker struct {
	entries  []tickEntry
	resizers []resizeEntry
	nextID   uint64
	bounds   Vec2
	scrollY  float64
	frame    uint64

	// dispatching is true while Tick runs; removals are then deferred to the
	// end of the frame but still suppress the removed callback immediately.
	dispatching bool
	pending     bool
}

// NewTicker creates a ticker with the given initial viewport bounds.
func NewTicker(width, height float64) *Ticker {
	return &Ticker{bounds: Vec2{width, height}}
}

// Bounds returns the current viewport size.
func (t *Ticker) Bounds() Vec2 {
	return t.bounds
}

// Frame returns the number of completed Tick calls.
func (t *Ticker) Frame() uint64 {
	return t.frame
}

// ScrollY returns how far the viewport has scrolled down, in pixels.
func (t *Ticker) ScrollY() float64 {
	return t.scrollY
}

// ScrollTo moves the viewport to y. Negative values clamp to zero.
func (t *Ticker) ScrollTo(y float64) {
	t.scrollY = max(0, y)
}

// Add registers fn to be called every frame until removed.
func (t *Ticker) Add(fn TickFunc) TickHandle {
	t.nextID++
	h := TickHandle(t.nextID)
	t.entries = append(t.entries, tickEntry{handle: h, fn: fn})
	return h
}

// Remove deregisters the callback for h. Unknown or already removed handles
// are ignored, so teardown code may call Remove unconditionally.
func (t *Ticker) Remove(h TickHandle) {
	for i := range t.entries {
		if t.entries[i].handle != h {
			continue
		}
		if t.dispatching {
			t.entries[i].fn = nil
			t.pending = true
			return
		}
		copy(t.entries[i:], t.entries[i+1:])
		t.entries[len(t.entries)-1] = tickEntry{}
		t.entries = t.entries[:len(t.entries)-1]
		return
	}
}

// Len returns the number of live tick callbacks.
func (t *Ticker) Len() int {
	n := 0
	for _, e := range t.entries {
		if e.fn != nil {
			n++
		}
	}
	return n
}

// Tick dispatches every live callback once. Callbacks added during dispatch
// first run on the next frame.
func (t *Ticker) Tick(dt float64) {
	t.dispatching = true
	n := len(t.entries)
	for i := 0; i < n; i++ {
		if fn := t.entries[i].fn; fn != nil {
			fn(dt)
		}
	}
	t.dispatching = false
	if t.pending {
		t.compact()
	}
	t.frame++
}

// compact drops entries whose callbacks were removed during dispatch.
func (t *Ticker) compact() {
	live := t.entries[:0]
	for _, e := range t.entries {
		if e.fn != nil {
			live = append(live, e)
		}
	}
	for i := len(live); i < len(t.entries); i++ {
		t.entries[i] = tickEntry{}
	}
	t.entries = live
	t.pending = false
}

// OnResize registers fn to run synchronously on every Resize.
func (t *Ticker) OnResize(fn ResizeFunc) ResizeHandle {
	t.nextID++
	h := ResizeHandle(t.nextID)
	t.resizers = append(t.resizers, resizeEntry{handle: h, fn: fn})
	return h
}

// RemoveResize deregisters the resize listener for h. Unknown handles are
// ignored.
func (t *Ticker) RemoveResize(h ResizeHandle) {
	for i := range t.resizers {
		if t.resizers[i].handle == h {
			t.resizers = append(t.resizers[:i], t.resizers[i+1:]...)
			return
		}
	}
}

// Resize updates the viewport bounds and notifies resize listeners before
// returning, so the next Tick already sees re-clamped state. Resizing to the
// current bounds is a no-op.
func (t *Ticker) Resize(width, height float64) {
	b := Vec2{width, height}
	if b == t.bounds {
		return
	}
	t.bounds = b
	// Iterate over a snapshot; a listener may remove itself.
	listeners := append([]resizeEntry(nil), t.resizers...)
	for _, r := range listeners {
		if t.hasResize(r.handle) {
			r.fn(b)
		}
	}
}

func (t *Ticker) hasResize(h ResizeHandle) bool {
	for _, r := range t.resizers {
		if r.handle == h {
			return true
		}
	}
	return false
}
