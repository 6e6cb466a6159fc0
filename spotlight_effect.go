package spotlight

// Spotlight mounts a Simulator and a MaskLayer on a Ticker: every frame the
// apertures step and the mask redraws at their new centers, and every
// viewport resize re-clamps the apertures and resizes the mask.
type Spotlight struct {
	configs []ApertureConfig
	overlay Color

	sim    *Simulator
	mask   *MaskLayer
	ticker *Ticker
	tick   TickHandle
	resize ResizeHandle
}

// NewSpotlight creates an unmounted effect. With no configs it uses a single
// DefaultApertureConfig.
func NewSpotlight(cfgs []ApertureConfig, overlay Color) *Spotlight {
	if len(cfgs) == 0 {
		cfgs = []ApertureConfig{DefaultApertureConfig()}
	}
	return &Spotlight{configs: cfgs, overlay: overlay}
}

// Mount builds fresh simulation state sized to the ticker's bounds, draws
// the initial mask immediately, and adds the mask node to parent. Mounting
// an already mounted Spotlight remounts it from its configs.
func (sp *Spotlight) Mount(t *Ticker, parent *Node) {
	sp.Unmount()
	if t == nil || parent == nil || parent.IsDisposed() {
		debugf("spotlight: no mount target, skipping")
		return
	}

	b := t.Bounds()
	sp.ticker = t
	sp.sim = NewSimulator(sp.configs)
	sp.mask = NewMaskLayer(int(b.X), int(b.Y), sp.overlay)
	apertures := sp.sim.Apertures()
	for i := range apertures {
		sp.mask.AddCutout(&apertures[i])
	}
	sp.mask.Redraw()
	parent.AddChild(sp.mask.Node())

	sp.tick = t.Add(sp.update)
	sp.resize = t.OnResize(sp.onResize)
}

// update steps the simulation, then redraws the mask from the new centers.
func (sp *Spotlight) update(float64) {
	sp.sim.Step(sp.ticker.Bounds())
	sp.sync()
	sp.mask.Redraw()
}

func (sp *Spotlight) onResize(b Vec2) {
	sp.sim.Reclamp(b)
	sp.mask.Resize(int(b.X), int(b.Y))
	sp.sync()
	sp.mask.Redraw()
}

func (sp *Spotlight) sync() {
	for _, a := range sp.sim.Apertures() {
		sp.mask.SetCenter(a.ID, a.Position)
	}
}

// Mounted reports whether the effect is currently registered on a ticker.
func (sp *Spotlight) Mounted() bool {
	return sp.ticker != nil
}

// Simulator returns the live simulation, or nil when unmounted.
func (sp *Spotlight) Simulator() *Simulator {
	return sp.sim
}

// Mask returns the live mask layer, or nil when unmounted.
func (sp *Spotlight) Mask() *MaskLayer {
	return sp.mask
}

// Unmount removes the tick callback and resize listener, then disposes the
// mask. Safe to call more than once and after a mount that never happened.
func (sp *Spotlight) Unmount() {
	if sp.ticker != nil {
		sp.ticker.Remove(sp.tick)
		sp.ticker.RemoveResize(sp.resize)
		sp.ticker = nil
	}
	sp.tick, sp.resize = 0, 0
	if sp.mask != nil {
		sp.mask.Dispose()
		sp.mask = nil
	}
	sp.sim = nil
}
