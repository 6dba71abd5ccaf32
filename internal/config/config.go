package config

import (
	"errors"
	"fmt"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/attractor/internal/attractor"
	"github.com/san-kum/attractor/internal/palette"
)

const (
	DefaultAttractor  = "trigonometric"
	DefaultIterations = 10_000_000
	DefaultSize       = 1024

	// Interactive previews trade detail for latency.
	PreviewIterations = 100_000
	PreviewSize       = 512
)

var ErrInvalidConfig = errors.New("config: invalid")

// Config describes one render job.
type Config struct {
	Attractor     string           `yaml:"attractor"`
	Iterations    int              `yaml:"iterations"`
	Width         int              `yaml:"width"`
	Height        int              `yaml:"height"`
	Seed          int64            `yaml:"seed"`
	Coefs         []float64        `yaml:"coefs,omitempty"`
	InitState     []float64        `yaml:"init_state,omitempty"`
	Dt            float64          `yaml:"dt,omitempty"`
	RandomCoefs   bool             `yaml:"random_coefs"`
	RandomInit    bool             `yaml:"random_init"`
	RandomPalette bool             `yaml:"random_palette"`
	Palette       *palette.Palette `yaml:"palette,omitempty"`
	Output        string           `yaml:"output,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Attractor:  DefaultAttractor,
		Iterations: DefaultIterations,
		Width:      DefaultSize,
		Height:     DefaultSize,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Iterations <= 0 {
		return fmt.Errorf("%w: iterations must be positive, got %d", ErrInvalidConfig, c.Iterations)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: image size must be positive, got %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.Dt < 0 {
		return fmt.Errorf("%w: dt must not be negative, got %g", ErrInvalidConfig, c.Dt)
	}
	if _, err := attractor.New(c.Attractor); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// OutputPath defaults to <attractor>.png.
func (c *Config) OutputPath() string {
	if c.Output != "" {
		return c.Output
	}
	return c.Attractor + ".png"
}

func (c *Config) Rand() *rand.Rand {
	return rand.New(rand.NewSource(c.Seed))
}

// Apply pushes coefficients, initial state and time step into a.
// Randomization flags take precedence over explicit values.
func (c *Config) Apply(a attractor.Attractor, rng *rand.Rand) error {
	switch {
	case c.RandomCoefs:
		a.ChangeRandomCoefs(rng)
	case len(c.Coefs) > 0:
		if len(c.Coefs) != len(a.Coefs()) {
			return fmt.Errorf("%w: %s takes %d coefficients, got %d", ErrInvalidConfig, a.Name(), len(a.Coefs()), len(c.Coefs))
		}
		for i, v := range c.Coefs {
			if err := a.SetCoef(i, v); err != nil {
				return fmt.Errorf("coefficient a%d: %w", i, err)
			}
		}
	}

	switch {
	case c.RandomInit:
		a.SetRandomInit(rng)
	case len(c.InitState) > 0:
		if len(c.InitState) != a.Dim() {
			return fmt.Errorf("%w: %s has %d state components, got %d", ErrInvalidConfig, a.Name(), a.Dim(), len(c.InitState))
		}
		for i, v := range c.InitState {
			if err := a.SetInitValue(i, v); err != nil {
				return fmt.Errorf("initial value x%d: %w", i, err)
			}
		}
	}

	if c.Dt > 0 {
		if err := a.SetDt(c.Dt); err != nil {
			return fmt.Errorf("dt: %w", err)
		}
	}
	a.Reset()
	return nil
}

// NewAttractor builds and configures the job's attractor.
func (c *Config) NewAttractor(rng *rand.Rand) (attractor.Attractor, error) {
	a, err := attractor.New(c.Attractor)
	if err != nil {
		return nil, err
	}
	if err := c.Apply(a, rng); err != nil {
		return nil, err
	}
	return a, nil
}

func (c *Config) ResolvePalette(rng *rand.Rand) palette.Palette {
	switch {
	case c.RandomPalette:
		return palette.Random(rng)
	case c.Palette != nil:
		return *c.Palette
	default:
		return palette.Default()
	}
}

// ApplyPreset copies the attractor parameters of p into c. Render size,
// seed and output stay as they are.
func (c *Config) ApplyPreset(p *Config) {
	c.Attractor = p.Attractor
	c.Coefs = append([]float64(nil), p.Coefs...)
	c.InitState = append([]float64(nil), p.InitState...)
	c.Dt = p.Dt
	if p.Iterations > 0 {
		c.Iterations = p.Iterations
	}
	if p.Palette != nil {
		plt := *p.Palette
		c.Palette = &plt
	}
}
