package spotlight

import "fmt"

// Reveal defaults.
const (
	DefaultRevealDelay      = 100.0 // ms between units
	DefaultRevealDuration   = 0.6   // seconds per unit
	DefaultRevealThreshold  = 0.1
	DefaultRevealRootMargin = -100.0 // px
)

// RevealConfig describes one text block and how its units animate in.
type RevealConfig struct {
	Text     string
	Split    SplitMode
	Delay    float64 // per-unit stagger in milliseconds
	Duration float64 // per-unit duration in seconds
	Ease     string
	From, To Style

	// Scroll trigger, used only without a shared Timeline.
	Threshold  float64
	RootMargin float64

	Align     TextAlign
	WrapWidth float64
	Position  Vec2
	Color     Color

	// Timeline, when set, receives the block at StartAt seconds instead of
	// a private scroll-triggered timeline.
	Timeline *Timeline
	StartAt  float64

	// OnStart fires when the scroll trigger starts a private timeline.
	OnStart func()
	// OnComplete fires once, after the last unit finishes.
	OnComplete func()
}

// DefaultRevealConfig returns a character reveal of text that rises 40px
// while fading in, centered, starting when it scrolls into view.
func DefaultRevealConfig(text string) RevealConfig {
	return RevealConfig{
		Text:       text,
		Split:      SplitChars,
		Delay:      DefaultRevealDelay,
		Duration:   DefaultRevealDuration,
		Ease:       DefaultEase,
		From:       Style{Opacity: 0, Y: 40},
		To:         Style{Opacity: 1},
		Threshold:  DefaultRevealThreshold,
		RootMargin: DefaultRevealRootMargin,
		Align:      TextAlignCenter,
		Color:      ColorWhite,
	}
}

// Stagger returns the per-unit delay in seconds.
func (c RevealConfig) Stagger() float64 {
	return c.Delay / 1000
}

// Reveal is a mounted text block: a text node, its split units, and their
// insertions on a timeline.
type Reveal struct {
	cfg RevealConfig

	node     *Node
	splitter Splitter
	targets  []Target

	timeline *Timeline
	setID    InsertionID
	toID     InsertionID
	trigger  IntersectionTrigger

	ticker    *Ticker
	tick      TickHandle
	completed bool
}

// NewReveal creates an unmounted reveal.
func NewReveal(cfg RevealConfig) *Reveal {
	return &Reveal{cfg: cfg}
}

// Config returns the reveal's configuration.
func (r *Reveal) Config() RevealConfig {
	return r.cfg
}

// Mount lays out the text under parent, splits it, and schedules its
// units. With a shared Timeline the block is inserted at StartAt and the
// timeline's owner drives it; otherwise a private timeline waits for the
// scroll trigger and is driven by a tick callback on t. Mounting again
// unmounts first. A nil parent or font aborts the mount with a debug
// diagnostic and leaves nothing registered.
func (r *Reveal) Mount(t *Ticker, parent *Node, font Font) {
	r.Unmount()
	if parent == nil || parent.IsDisposed() || font == nil {
		debugf("reveal: no mount target, skipping")
		return
	}
	if r.cfg.Timeline == nil && t == nil {
		debugf("reveal: no ticker for scroll trigger, skipping")
		return
	}

	n := NewText("reveal", r.cfg.Text, font)
	n.TextBlock.Align = r.cfg.Align
	n.TextBlock.WrapWidth = r.cfg.WrapWidth
	if r.cfg.Color != (Color{}) {
		n.TextBlock.Color = r.cfg.Color
	}
	n.SetPosition(r.cfg.Position.X, r.cfg.Position.Y)
	parent.AddChild(n)
	r.node = n

	r.targets = UnitTargets(r.splitter.Split(n, r.cfg.Split))
	r.completed = false

	spec := TweenSpec{
		To:         r.cfg.To,
		Duration:   r.cfg.Duration,
		Ease:       MustParseEase(r.cfg.Ease),
		Stagger:    r.cfg.Stagger(),
		OnComplete: r.complete,
	}
	if r.cfg.Timeline != nil {
		r.timeline = r.cfg.Timeline
		r.setID, r.toID = r.timeline.Insert(r.targets, r.cfg.StartAt, r.cfg.From, spec)
		return
	}

	r.timeline = NewTimeline()
	r.timeline.Paused = true
	r.setID, r.toID = r.timeline.Insert(r.targets, 0, r.cfg.From, spec)
	r.trigger = IntersectionTrigger{Threshold: r.cfg.Threshold, RootMargin: r.cfg.RootMargin}
	r.ticker = t
	r.tick = t.Add(r.update)
}

// update drives a private timeline: it waits for the trigger, then plays
// the timeline and drops its tick callback once the block completes.
func (r *Reveal) update(dt float64) {
	if r.timeline.Paused {
		top := r.node.WorldPosition().Y
		if !r.trigger.Check(top, r.ticker.Bounds().Y) {
			return
		}
		r.timeline.Paused = false
		debugf("reveal %q: triggered at top=%.1f", r.node.Name, top)
		if r.cfg.OnStart != nil {
			r.cfg.OnStart()
		}
		// The trigger frame renders the set at offset zero.
		dt = 0
	}
	r.timeline.Update(dt)
	if r.completed && r.ticker != nil {
		r.ticker.Remove(r.tick)
		r.tick = 0
	}
}

func (r *Reveal) complete() {
	r.completed = true
	if r.cfg.OnComplete != nil {
		r.cfg.OnComplete()
	}
}

// Node returns the text node, or nil when unmounted.
func (r *Reveal) Node() *Node {
	return r.node
}

// Units returns the split units. The returned slice MUST NOT be mutated.
func (r *Reveal) Units() []*Unit {
	return r.splitter.Units()
}

// Targets returns the units as timeline targets, in split order.
func (r *Reveal) Targets() []Target {
	return r.targets
}

// Completed reports whether the block's last unit has finished.
func (r *Reveal) Completed() bool {
	return r.completed
}

// Triggered reports whether the scroll trigger has fired. Blocks on a
// shared timeline never trigger.
func (r *Reveal) Triggered() bool {
	return r.trigger.Fired()
}

// Timeline returns the timeline the block's insertions live on.
func (r *Reveal) Timeline() *Timeline {
	return r.timeline
}

// Unmount stops the tick callback, kills the block's insertions (only this
// block's on a shared timeline), reverts the split, and removes the text
// node. Safe to call more than once and after an aborted mount.
func (r *Reveal) Unmount() {
	if r.ticker != nil {
		r.ticker.Remove(r.tick)
		r.ticker, r.tick = nil, 0
	}
	if r.timeline != nil {
		r.timeline.Kill(r.setID)
		r.timeline.Kill(r.toID)
		r.timeline.KillTweensOf(r.targets)
		r.timeline = nil
	}
	r.setID, r.toID = 0, 0
	r.splitter.Revert()
	r.targets = nil
	if r.node != nil {
		r.node.Dispose()
		r.node = nil
	}
}

// String describes the block for logs.
func (r *Reveal) String() string {
	return fmt.Sprintf("reveal(%s, %d units, start %.3fs)", r.cfg.Split, len(r.targets), r.cfg.StartAt)
}
