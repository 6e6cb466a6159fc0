package spotlight

import (
	"fmt"

	"github.com/google/uuid"
)

// blockGap is the vertical space between auto-stacked blocks, as a fraction
// of the previous block's line height.
const blockGap = 0.5

// View is one mounted page: a background layer revealed through a Spotlight,
// and text blocks above the mask that reveal either on scroll or chained on
// one timeline. Every mount builds fresh state under a new mount ID; nothing
// survives an Unmount.
type View struct {
	cfg  *Config
	font Font

	id       string
	scene    *Scene
	ticker   *Ticker
	tick     TickHandle
	root     *Node
	bg       *Node
	content  *Node
	spot     *Spotlight
	timeline *Timeline
	reveals  []*Reveal
	offsets  []float64
	started  []bool
}

// NewView creates an unmounted view of cfg whose text uses font.
func NewView(cfg *Config, font Font) *View {
	return &View{cfg: cfg, font: font}
}

// Mount builds the view under scene's root. Mounting again unmounts first.
// A config without blocks aborts after the background is created, like a
// page whose content never arrived; Unmount still cleans up fully.
func (v *View) Mount(scene *Scene) {
	v.Unmount()
	if scene == nil {
		debugf("view: no scene, skipping")
		return
	}
	v.id = uuid.New().String()
	v.scene = scene
	v.ticker = scene.Ticker()

	v.root = NewContainer("view_" + v.id[:8])
	v.bg = NewContainer("background")
	v.root.AddChild(v.bg)
	scene.Root().AddChild(v.root)

	if v.cfg == nil || len(v.cfg.Blocks) == 0 {
		debugf("view %s: no content, aborting mount", v.id)
		return
	}
	rcs, err := v.cfg.RevealConfigs()
	if err != nil {
		debugf("view %s: %v, aborting mount", v.id, err)
		return
	}

	v.spot = NewSpotlight(v.cfg.Apertures, v.cfg.OverlayColor())
	v.spot.Mount(v.ticker, v.root)

	v.content = NewContainer("content")
	v.root.AddChild(v.content)

	// Scroll must be applied before any reveal checks its trigger.
	v.tick = v.ticker.Add(v.update)

	if v.cfg.Chain {
		v.timeline = NewTimeline()
	}
	v.mountBlocks(rcs)
	v.scene.emit(LifecycleEvent{Type: EventViewMounted, MountID: v.id, Block: -1})
}

// mountBlocks mounts each block in its own wrapper. On a chained view each
// block's offset is computed from the previous block's unit count as soon as
// that block is split, so every offset is known before the first tick.
func (v *View) mountBlocks(rcs []RevealConfig) {
	var at float64
	var prev *Reveal
	for i, rc := range rcs {
		wrapper := NewContainer(fmt.Sprintf("block_%d", i))
		v.content.AddChild(wrapper)

		if i > 0 && rc.Position.Y == 0 && prev != nil && prev.Node() != nil {
			tb := prev.Node().TextBlock
			_, h := tb.Measure()
			rc.Position.Y = prev.Config().Position.Y + h + blockGap*tb.lineHeight()
		}

		block := i
		userComplete := rc.OnComplete
		rc.OnComplete = func() {
			v.scene.emit(LifecycleEvent{Type: EventRevealComplete, MountID: v.id, Block: block, Time: v.blockTime(block)})
			if userComplete != nil {
				userComplete()
			}
		}
		if v.timeline != nil {
			rc.Timeline = v.timeline
			rc.StartAt = at
			if i > 0 {
				// Later blocks stay hidden until their offset.
				wrapper.SetAlpha(0)
				v.timeline.To([]Target{NodeTarget(wrapper)}, TweenSpec{To: Style{Opacity: 1}}, at)
			}
		} else {
			rc.OnStart = func() {
				v.markStarted(block)
			}
		}

		r := NewReveal(rc)
		r.Mount(v.ticker, wrapper, v.font)
		v.reveals = append(v.reveals, r)
		v.offsets = append(v.offsets, at)
		v.started = append(v.started, false)

		if v.timeline != nil {
			base := rc.Duration
			if v.cfg.ChainBase > 0 {
				base = v.cfg.ChainBase
			}
			at += ChainOffset(base, rc.Stagger(), len(r.Units()))
		}
		prev = r
	}
}

// update applies the scroll offset and drives the shared timeline.
func (v *View) update(dt float64) {
	b := v.ticker.Bounds()
	if v.cfg.PageHeight > 0 {
		v.ticker.ScrollTo(min(v.ticker.ScrollY(), max(0, v.cfg.PageHeight-b.Y)))
	}
	v.content.SetPosition(0, -v.ticker.ScrollY())

	if v.timeline == nil {
		return
	}
	v.timeline.Update(dt)
	for i, at := range v.offsets {
		if v.timeline != nil && v.timeline.Time() >= at {
			v.markStarted(i)
		}
	}
}

func (v *View) markStarted(block int) {
	if block >= len(v.started) || v.started[block] {
		return
	}
	v.started[block] = true
	v.scene.emit(LifecycleEvent{Type: EventRevealStart, MountID: v.id, Block: block, Time: v.blockTime(block)})
}

func (v *View) blockTime(block int) float64 {
	if v.timeline != nil {
		return v.timeline.Time()
	}
	if block < len(v.reveals) {
		if tl := v.reveals[block].Timeline(); tl != nil {
			return tl.Time()
		}
	}
	return 0
}

// ID returns the current mount ID, or "" when unmounted.
func (v *View) ID() string {
	return v.id
}

// Mounted reports whether the view is mounted, including aborted mounts.
func (v *View) Mounted() bool {
	return v.scene != nil
}

// Background returns the container drawn beneath the mask. Content added to
// it is seen only through the apertures. Nil when unmounted.
func (v *View) Background() *Node {
	return v.bg
}

// Spotlight returns the mounted effect, or nil.
func (v *View) Spotlight() *Spotlight {
	return v.spot
}

// Timeline returns the shared timeline of a chained view, or nil.
func (v *View) Timeline() *Timeline {
	return v.timeline
}

// Reveals returns the mounted blocks. The returned slice MUST NOT be mutated.
func (v *View) Reveals() []*Reveal {
	return v.reveals
}

// Offsets returns each block's start offset on the shared timeline. All
// offsets are zero on an unchained view. The returned slice MUST NOT be
// mutated.
func (v *View) Offsets() []float64 {
	return v.offsets
}

// SetConfig replaces the view's config and remounts it if it was mounted.
func (v *View) SetConfig(cfg *Config) {
	v.cfg = cfg
	if scene := v.scene; scene != nil {
		v.Mount(scene)
	}
}

// Unmount tears the view down: it removes the view's tick callback, the
// spotlight's tick and resize registrations, every block's tweens, and every
// split, then drops the node tree. Each step runs whether or not mount got
// that far, and calling Unmount again is a no-op.
func (v *View) Unmount() {
	if v.ticker != nil {
		v.ticker.Remove(v.tick)
	}
	if v.spot != nil {
		v.spot.Unmount()
	}
	for _, r := range v.reveals {
		r.Unmount()
	}
	if v.root != nil {
		v.root.Dispose()
	}
	if v.scene != nil {
		v.scene.emit(LifecycleEvent{Type: EventViewUnmounted, MountID: v.id, Block: -1})
	}

	v.id = ""
	v.scene, v.ticker, v.tick = nil, nil, 0
	v.root, v.bg, v.content = nil, nil, nil
	v.spot, v.timeline = nil, nil
	v.reveals, v.offsets, v.started = nil, nil, nil
}
