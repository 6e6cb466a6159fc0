package spotlight

// ApertureConfig describes one spotlight effect. All fields are plain numbers
// so configs can be decoded straight from YAML.
type ApertureConfig struct {
	Width           float64 `yaml:"width"`
	Height          float64 `yaml:"height"`
	Fade            float64 `yaml:"fade"`
	Speed           float64 `yaml:"speed"`
	InitialPosition Vec2    `yaml:"initial_position"`
	InitialVelocity Vec2    `yaml:"initial_velocity"`
	// RevealPercentage is in [0, 100]. Nil means 100 (fully revealed).
	RevealPercentage *float64 `yaml:"reveal_percentage"`
}

// DefaultRevealPercentage is used when ApertureConfig.RevealPercentage is nil.
const DefaultRevealPercentage = 100.0

// DefaultApertureConfig returns the single spotlight used when a Spotlight is
// mounted without configs.
func DefaultApertureConfig() ApertureConfig {
	return ApertureConfig{
		Width:           200,
		Height:          200,
		Fade:            80,
		Speed:           1,
		InitialPosition: Vec2{100, 100},
		InitialVelocity: Vec2{2, 1.5},
	}
}

// Percent returns a pointer to p, for filling ApertureConfig.RevealPercentage
// in literals.
func Percent(p float64) *float64 {
	return &p
}

// ApertureID addresses one aperture within a Simulator and the cutout drawn
// for it by a MaskLayer. IDs are dense indices starting at zero.
type ApertureID int

// Aperture is the live state of one spotlight. Dimensions, Speed, Fade and
// RevealPercentage are fixed at creation; Position and Velocity are mutated
// by the Simulator.
type Aperture struct {
	ID               ApertureID
	Width, Height    float64
	Speed            float64
	Fade             float64
	RevealPercentage float64

	Position Vec2
	Velocity Vec2
}

// Radius returns the ellipse's half extents.
func (a *Aperture) Radius() Vec2 {
	return Vec2{a.Width / 2, a.Height / 2}
}

// Simulator owns an arena of apertures and advances them each tick. It holds
// no reference to the viewport; bounds are passed into Step and Reclamp.
type Simulator struct {
	apertures []Aperture
}

// NewSimulator creates one aperture per config. Degenerate configs (zero or
// negative dimensions, NaN positions) are accepted as-is.
func NewSimulator(cfgs []ApertureConfig) *Simulator {
	s := &Simulator{apertures: make([]Aperture, len(cfgs))}
	for i, cfg := range cfgs {
		reveal := DefaultRevealPercentage
		if cfg.RevealPercentage != nil {
			reveal = *cfg.RevealPercentage
		}
		s.apertures[i] = Aperture{
			ID:               ApertureID(i),
			Width:            cfg.Width,
			Height:           cfg.Height,
			Speed:            cfg.Speed,
			Fade:             cfg.Fade,
			RevealPercentage: reveal,
			Position:         cfg.InitialPosition,
			Velocity:         cfg.InitialVelocity,
		}
	}
	return s
}

// Len returns the number of apertures.
func (s *Simulator) Len() int {
	return len(s.apertures)
}

// Apertures returns the aperture arena. The returned slice MUST NOT be
// appended to; elements may be read freely.
func (s *Simulator) Apertures() []Aperture {
	return s.apertures
}

// Aperture returns the aperture with the given id, or nil if out of range.
func (s *Simulator) Aperture(id ApertureID) *Aperture {
	if id < 0 || int(id) >= len(s.apertures) {
		return nil
	}
	return &s.apertures[id]
}

// Step advances every aperture by velocity*speed and reflects it off the
// viewport edges. Reflection only corrects the velocity's sign and clamps the
// position onto the edge, so fast apertures never tunnel out of bounds.
func (s *Simulator) Step(bounds Vec2) {
	for i := range s.apertures {
		a := &s.apertures[i]
		r := a.Radius()
		a.Position = a.Position.Add(a.Velocity.Scale(a.Speed))
		a.Position.X, a.Velocity.X = reflectAxis(a.Position.X, a.Velocity.X, r.X, bounds.X)
		a.Position.Y, a.Velocity.Y = reflectAxis(a.Position.Y, a.Velocity.Y, r.Y, bounds.Y)
	}
}

// Reclamp pulls apertures back inside bounds after a viewport resize.
// Velocities are left untouched.
func (s *Simulator) Reclamp(bounds Vec2) {
	for i := range s.apertures {
		a := &s.apertures[i]
		r := a.Radius()
		a.Position.X = clampAxis(a.Position.X, r.X, bounds.X)
		a.Position.Y = clampAxis(a.Position.Y, r.Y, bounds.Y)
	}
}

// reflectAxis applies the edge rule on one axis. The low edge wins when the
// aperture is wider than the viewport.
func reflectAxis(pos, vel, r, extent float64) (float64, float64) {
	switch {
	case pos-r <= 0:
		return r, abs(vel)
	case pos+r >= extent:
		return extent - r, -abs(vel)
	}
	return pos, vel
}

// clampAxis restricts pos to [r, extent-r], preferring the low edge when the
// range is empty.
func clampAxis(pos, r, extent float64) float64 {
	return max(r, min(extent-r, pos))
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
