package spotlight

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// EntityStore is the interface for optional ECS integration.
// When set on a Scene, lifecycle events are forwarded to the ECS.
type EntityStore interface {
	EmitEvent(event LifecycleEvent)
}

// LifecycleEvent carries choreography lifecycle data for the ECS bridge.
type LifecycleEvent struct {
	Type EventType
	// MountID identifies the View mount that produced the event.
	MountID string
	// Block is the text block index for EventRevealStart and
	// EventRevealComplete, and -1 otherwise.
	Block int
	// Time is the owning timeline's playhead when the event fired.
	Time float64
}

// EventType identifies a lifecycle event.
type EventType uint8

const (
	EventViewMounted    EventType = iota // a View finished mounting
	EventViewUnmounted                   // a View was torn down
	EventRevealStart                     // a block's trigger fired
	EventRevealComplete                  // a block's last unit finished
)

// String returns the event's log name.
func (e EventType) String() string {
	switch e {
	case EventViewMounted:
		return "view_mounted"
	case EventViewUnmounted:
		return "view_unmounted"
	case EventRevealStart:
		return "reveal_start"
	case EventRevealComplete:
		return "reveal_complete"
	}
	return fmt.Sprintf("event(%d)", uint8(e))
}

const defaultCommandCap = 256

// Scene is the top-level object that owns the node tree, the frame ticker,
// and render buffers.
type Scene struct {
	root   *Node
	ticker *Ticker
	store  EntityStore
	debug  bool

	// ClearColor fills the screen before drawing when its alpha is non-zero.
	ClearColor Color

	updateFunc func() error

	// Render state
	commands []RenderCommand

	// Synthetic input and scripted runs
	injectQueue []syntheticEvent
	testRunner  *TestRunner

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir   string
	screenshotQueue []string
}

// NewScene creates a new scene with a pre-created root container. The
// ticker starts with zero bounds; Layout sets them on the first frame.
func NewScene() *Scene {
	return &Scene{
		root:          NewContainer("root"),
		ticker:        NewTicker(0, 0),
		commands:      make([]RenderCommand, 0, defaultCommandCap),
		ScreenshotDir: "screenshots",
	}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// Ticker returns the scene's frame scheduler.
func (s *Scene) Ticker() *Ticker {
	return s.ticker
}

// SetUpdateFunc sets a callback run once per frame before the ticker
// dispatches. A non-nil error stops Run.
func (s *Scene) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// Update runs scripted steps, processes input, calls node OnUpdate hooks,
// and ticks every registered frame callback.
func (s *Scene) Update() error {
	dt := 1.0 / float64(ebiten.TPS())

	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInput()

	// Refresh world transforms so intersection checks see this frame's
	// positions.
	updateWorldTransform(s.root, identityTransform, 1.0, false)
	updateNodes(s.root, dt)

	if s.updateFunc != nil {
		if err := s.updateFunc(); err != nil {
			return err
		}
	}
	s.ticker.Tick(dt)
	return nil
}

// updateNodes calls OnUpdate depth-first. Hooks may dispose their node.
func updateNodes(n *Node, dt float64) {
	if n.OnUpdate != nil {
		n.OnUpdate(dt)
	}
	for i := 0; i < len(n.children); i++ {
		updateNodes(n.children[i], dt)
	}
}

// Draw traverses the scene tree, emits render commands, and submits them to
// the given screen image.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.toRGBA())
	}
	s.commands = s.commands[:0]

	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	treeOrder := 0
	s.traverse(s.root, identityTransform, 1.0, false, &treeOrder)

	if s.debug {
		stats.traverseTime = time.Since(t0)
		stats.commandCount = len(s.commands)
		t0 = time.Now()
	}

	s.submitCommands(screen)

	if s.debug {
		stats.submitTime = time.Since(t0)
		stats.tickCount = s.ticker.Len()
		s.debugLog(stats)
	}

	s.flushScreenshots(screen)
}

// Layout reports the screen size and forwards it to the ticker, which
// notifies resize listeners when it changed.
func (s *Scene) Layout(outsideWidth, outsideHeight int) (int, int) {
	s.ticker.Resize(float64(outsideWidth), float64(outsideHeight))
	return outsideWidth, outsideHeight
}

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

// emit forwards e to the entity store, if any, and logs it in debug mode.
func (s *Scene) emit(e LifecycleEvent) {
	if s.debug {
		debugf("%s mount=%s block=%d t=%.3f", e.Type, e.MountID, e.Block, e.Time)
	}
	if s.store != nil {
		s.store.EmitEvent(e)
	}
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth and child count warnings are printed, and
// per-frame timing stats and lifecycle events are logged to stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply. Only valid
// with a single Scene; multiple Scenes with differing debug modes will
// reflect whichever called SetDebugMode last.
var globalDebug bool

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
}

// game adapts a Scene to ebiten.Game.
type game struct {
	scene *Scene
}

func (g *game) Update() error              { return g.scene.Update() }
func (g *game) Draw(screen *ebiten.Image)  { g.scene.Draw(screen) }
func (g *game) Layout(w, h int) (int, int) { return g.scene.Layout(w, h) }

// Run opens a resizable window and runs the scene until the window closes
// or the update func returns an error.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("spotlight: invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.ShowFPS {
		scene.Root().AddChild(NewFPSWidget())
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(&game{scene: scene}); err != nil {
		return fmt.Errorf("spotlight: run: %w", err)
	}
	return nil
}
