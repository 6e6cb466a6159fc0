package spotlight

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config describes a View: the overlay, its apertures, and the text blocks
// revealed beneath them. It decodes from YAML.
type Config struct {
	Overlay   *Color           `yaml:"overlay"`
	Apertures []ApertureConfig `yaml:"apertures"`
	Blocks    []BlockConfig    `yaml:"blocks"`
	// Chain puts every block on one timeline, each starting where the
	// previous block's stagger ends. Otherwise each block waits for its own
	// scroll trigger.
	Chain bool `yaml:"chain"`
	// ChainBase overrides the base duration used for chain offsets. Zero
	// uses each block's own duration.
	ChainBase float64 `yaml:"chain_base"`
	FontSize  float64 `yaml:"font_size"`
	// PageHeight is the scrollable content height. Zero means one viewport.
	PageHeight float64 `yaml:"page_height"`
}

// BlockConfig is the YAML form of a RevealConfig. Omitted fields take the
// DefaultRevealConfig values.
type BlockConfig struct {
	Text       string   `yaml:"text"`
	Split      string   `yaml:"split"`
	Delay      *float64 `yaml:"delay"`
	Duration   *float64 `yaml:"duration"`
	Ease       string   `yaml:"ease"`
	From       *Style   `yaml:"from"`
	To         *Style   `yaml:"to"`
	Threshold  *float64 `yaml:"threshold"`
	RootMargin string   `yaml:"root_margin"`
	Align      string   `yaml:"align"`
	WrapWidth  float64  `yaml:"wrap_width"`
	X          float64  `yaml:"x"`
	Y          float64  `yaml:"y"`
	Color      *Color   `yaml:"color"`
}

// DefaultFontSize is used when Config.FontSize is zero.
const DefaultFontSize = 20.0

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("spotlight: load %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("spotlight: load %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes YAML config data and validates every block.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("spotlight: unmarshal config: %w", err)
	}
	if _, err := cfg.RevealConfigs(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// OverlayColor returns the configured overlay, or ColorOverlay.
func (c *Config) OverlayColor() Color {
	if c.Overlay == nil {
		return ColorOverlay
	}
	return *c.Overlay
}

// FontSizeOrDefault returns FontSize, or DefaultFontSize when unset.
func (c *Config) FontSizeOrDefault() float64 {
	if c.FontSize > 0 {
		return c.FontSize
	}
	return DefaultFontSize
}

// RevealConfigs converts every block, in order. Timeline and StartAt are
// left for the View to fill in.
func (c *Config) RevealConfigs() ([]RevealConfig, error) {
	out := make([]RevealConfig, len(c.Blocks))
	for i, b := range c.Blocks {
		rc, err := b.RevealConfig()
		if err != nil {
			return nil, fmt.Errorf("spotlight: block %d: %w", i, err)
		}
		out[i] = rc
	}
	return out, nil
}

// RevealConfig applies the block's fields over DefaultRevealConfig.
func (b BlockConfig) RevealConfig() (RevealConfig, error) {
	rc := DefaultRevealConfig(b.Text)
	mode, err := ParseSplitMode(b.Split)
	if err != nil {
		return rc, err
	}
	rc.Split = mode
	if _, err := ParseEase(b.Ease); err != nil {
		return rc, err
	}
	if b.Ease != "" {
		rc.Ease = b.Ease
	}
	margin, err := ParseRootMargin(b.RootMargin)
	if err != nil {
		return rc, err
	}
	if b.RootMargin != "" {
		rc.RootMargin = margin
	}
	if b.Delay != nil {
		rc.Delay = *b.Delay
	}
	if b.Duration != nil {
		rc.Duration = *b.Duration
	}
	if b.From != nil {
		rc.From = *b.From
	}
	if b.To != nil {
		rc.To = *b.To
	}
	if b.Threshold != nil {
		rc.Threshold = *b.Threshold
	}
	if b.Align != "" {
		rc.Align = ParseTextAlign(b.Align)
	}
	if b.Color != nil {
		rc.Color = *b.Color
	}
	rc.WrapWidth = b.WrapWidth
	rc.Position = Vec2{b.X, b.Y}
	return rc, nil
}
