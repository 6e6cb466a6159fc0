package spotlight

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Target is anything a Timeline can animate.
type Target interface {
	Style() Style
	SetStyle(Style)
}

// hinted targets carry transient hints that are cleared when their tween
// completes.
type hinted interface {
	ClearHints()
}

// UnitTargets adapts units to timeline targets, keeping split order.
func UnitTargets(units []*Unit) []Target {
	targets := make([]Target, len(units))
	for i, u := range units {
		targets[i] = u
	}
	return targets
}

// nodeTarget animates a plain node: Opacity drives Alpha, X and Y offset the
// node from where it was when the target was created.
type nodeTarget struct {
	n     *Node
	home  Vec2
	style Style
}

// NodeTarget returns a Target that animates n's alpha and offset.
func NodeTarget(n *Node) Target {
	return &nodeTarget{n: n, home: Vec2{n.X, n.Y}, style: Style{Opacity: n.Alpha}}
}

func (t *nodeTarget) Style() Style { return t.style }

func (t *nodeTarget) SetStyle(s Style) {
	t.style = s
	if t.n == nil || t.n.IsDisposed() {
		return
	}
	t.n.Alpha = s.Opacity
	t.n.X = t.home.X + s.X
	t.n.Y = t.home.Y + s.Y
	t.n.MarkDirty()
}

// TweenSpec describes a staggered transition to an end style.
type TweenSpec struct {
	To       Style
	Duration float64 // seconds per target
	Ease     ease.TweenFunc
	// Stagger delays the target at index i by (i+1)*Stagger seconds.
	Stagger float64
	// OnComplete fires once, after the last target reaches To.
	OnComplete func()
}

// InsertionID identifies one Set or To on a Timeline. The zero value is
// never issued.
type InsertionID uint64

type insertionKind uint8

const (
	insertSet insertionKind = iota
	insertTo
)

type insertion struct {
	id      InsertionID
	kind    insertionKind
	targets []Target
	at      float64

	// insertSet
	style   Style
	applied bool

	// insertTo
	spec   TweenSpec
	tweens [][3]*gween.Tween // lazily created when each target starts
	done   bool
}

// Timeline schedules sets and staggered tweens at absolute offsets from its
// zero point. Offsets never depend on earlier insertions finishing, so a
// caller can place a block exactly where another block's stagger ends.
//
// The timeline does not tick itself; call Update once per frame, usually
// from a Ticker callback.
type Timeline struct {
	time       float64
	insertions []*insertion
	nextID     uint64
	Paused     bool
}

// NewTimeline creates an empty timeline at time zero.
func NewTimeline() *Timeline {
	return &Timeline{}
}

// ChainOffset returns the start offset of a block chained after one with
// unitCount units: baseDuration + perUnitDelay*unitCount. The formula uses
// content size only and not the rendered duration of the previous block.
func ChainOffset(baseDuration, perUnitDelay float64, unitCount int) float64 {
	return baseDuration + perUnitDelay*float64(unitCount)
}

// StaggerStart returns when the target at zero-based index starts, relative
// to its block's offset. Targets count from one, so a block of k targets
// starts its last one at k*perUnitDelay, and a block chained with
// ChainOffset(duration, perUnitDelay, k) starts as that last target ends.
func StaggerStart(index int, perUnitDelay float64) float64 {
	return float64(index+1) * perUnitDelay
}

// Time returns the playhead position in seconds.
func (tl *Timeline) Time() float64 {
	return tl.time
}

// Set applies style to targets when the playhead reaches at. Nothing is
// written before that point.
func (tl *Timeline) Set(targets []Target, style Style, at float64) InsertionID {
	return tl.add(&insertion{kind: insertSet, targets: targets, at: at, style: style})
}

// To tweens targets from whatever style they have when each one starts to
// spec.To. The target at index i starts at at + StaggerStart(i, spec.Stagger).
func (tl *Timeline) To(targets []Target, spec TweenSpec, at float64) InsertionID {
	if spec.Ease == nil {
		spec.Ease = ease.Linear
	}
	return tl.add(&insertion{
		kind:    insertTo,
		targets: targets,
		at:      at,
		spec:    spec,
		tweens:  make([][3]*gween.Tween, len(targets)),
	})
}

// Insert registers a Set of from and a To of spec at the same offset, which
// is how a text block puts itself on a shared timeline.
func (tl *Timeline) Insert(targets []Target, at float64, from Style, spec TweenSpec) (set, to InsertionID) {
	return tl.Set(targets, from, at), tl.To(targets, spec, at)
}

func (tl *Timeline) add(ins *insertion) InsertionID {
	tl.nextID++
	ins.id = InsertionID(tl.nextID)
	tl.insertions = append(tl.insertions, ins)
	// An insertion placed in the past takes effect on the next Update.
	return ins.id
}

// Kill removes an insertion. Its targets keep whatever style they have.
// Unknown ids are ignored.
func (tl *Timeline) Kill(id InsertionID) {
	for i, ins := range tl.insertions {
		if ins.id == id {
			copy(tl.insertions[i:], tl.insertions[i+1:])
			tl.insertions[len(tl.insertions)-1] = nil
			tl.insertions = tl.insertions[:len(tl.insertions)-1]
			return
		}
	}
}

// KillTweensOf removes every insertion that animates any of targets,
// leaving other insertions on the timeline untouched.
func (tl *Timeline) KillTweensOf(targets []Target) {
	if len(targets) == 0 {
		return
	}
	set := make(map[Target]struct{}, len(targets))
	for _, t := range targets {
		set[t] = struct{}{}
	}
	live := tl.insertions[:0]
	for _, ins := range tl.insertions {
		if !touches(ins, set) {
			live = append(live, ins)
		}
	}
	for i := len(live); i < len(tl.insertions); i++ {
		tl.insertions[i] = nil
	}
	tl.insertions = live
}

func touches(ins *insertion, set map[Target]struct{}) bool {
	for _, t := range ins.targets {
		if _, ok := set[t]; ok {
			return true
		}
	}
	return false
}

// Len returns the number of live insertions.
func (tl *Timeline) Len() int {
	return len(tl.insertions)
}

// Duration returns the time at which the last live insertion ends.
func (tl *Timeline) Duration() float64 {
	var end float64
	for _, ins := range tl.insertions {
		e := ins.at
		if ins.kind == insertTo && len(ins.targets) > 0 {
			e += StaggerStart(len(ins.targets)-1, ins.spec.Stagger) + ins.spec.Duration
		}
		end = max(end, e)
	}
	return end
}

// Done reports whether every live tween has completed.
func (tl *Timeline) Done() bool {
	for _, ins := range tl.insertions {
		if ins.kind == insertTo && !ins.done {
			return false
		}
	}
	return true
}

// Update advances the playhead by dt seconds unless paused.
func (tl *Timeline) Update(dt float64) {
	if tl.Paused {
		return
	}
	tl.Seek(tl.time + dt)
}

// Seek moves the playhead forward to t and renders every insertion that
// has started. Insertions are rendered in insertion order, so a Set and a
// To at the same offset apply the Set first.
func (tl *Timeline) Seek(t float64) {
	if t > tl.time {
		tl.time = t
	}
	// Snapshot: OnComplete may kill insertions.
	active := append([]*insertion(nil), tl.insertions...)
	for _, ins := range active {
		if !tl.live(ins) {
			continue
		}
		switch ins.kind {
		case insertSet:
			if !ins.applied && tl.time >= ins.at {
				ins.applied = true
				for _, target := range ins.targets {
					target.SetStyle(ins.style)
				}
			}
		case insertTo:
			tl.renderTo(ins)
		}
	}
}

func (tl *Timeline) live(ins *insertion) bool {
	for _, l := range tl.insertions {
		if l == ins {
			return true
		}
	}
	return false
}

func (tl *Timeline) renderTo(ins *insertion) {
	if ins.done || tl.time < ins.at {
		return
	}
	finished := 0
	for i, target := range ins.targets {
		local := tl.time - (ins.at + StaggerStart(i, ins.spec.Stagger))
		if local < 0 {
			continue
		}
		if ins.spec.Duration <= 0 {
			target.SetStyle(ins.spec.To)
			finished++
			continue
		}
		tw := &ins.tweens[i]
		if tw[0] == nil {
			from := target.Style()
			d := float32(ins.spec.Duration)
			tw[0] = gween.New(float32(from.Opacity), float32(ins.spec.To.Opacity), d, ins.spec.Ease)
			tw[1] = gween.New(float32(from.X), float32(ins.spec.To.X), d, ins.spec.Ease)
			tw[2] = gween.New(float32(from.Y), float32(ins.spec.To.Y), d, ins.spec.Ease)
		}
		var s Style
		v, done := tw[0].Set(float32(local))
		s.Opacity = float64(v)
		v, _ = tw[1].Set(float32(local))
		s.X = float64(v)
		v, _ = tw[2].Set(float32(local))
		s.Y = float64(v)
		if done {
			s = ins.spec.To
			finished++
		}
		target.SetStyle(s)
	}
	if finished < len(ins.targets) {
		return
	}
	ins.done = true
	for _, target := range ins.targets {
		if h, ok := target.(hinted); ok {
			h.ClearHints()
		}
	}
	if ins.spec.OnComplete != nil {
		ins.spec.OnComplete()
	}
}
