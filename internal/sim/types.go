package sim

import "fmt"

// Particle is a single spark. Life counts remaining frames.
type Particle struct {
	X, Y    float64
	VX, VY  float64
	Life    int
	MaxLife int
	Hue     int
}

// Alive reports whether p still has frames left and sits inside the bounds.
func (p Particle) Alive(width, height int) bool {
	if p.Life <= 0 {
		return false
	}
	return p.X >= 0 && p.X < float64(width) && p.Y >= 0 && p.Y < float64(height)
}

// Fade is the remaining life as a fraction of the initial life.
func (p Particle) Fade() float64 {
	if p.MaxLife <= 0 {
		return 0
	}
	return float64(p.Life) / float64(p.MaxLife)
}

type Observer interface {
	OnStep(frame int, particles []Particle, spawned int)
}

type Metric interface {
	Name() string
	Observe(frame int, particles []Particle, spawned int)
	Value() float64
	Reset()
}

// Params tunes the burst generator and the particle physics.
type Params struct {
	Gravity  float64 `yaml:"gravity"`
	Damping  float64 `yaml:"damping"`
	Sparks   int     `yaml:"sparks"`
	LifeMin  int     `yaml:"life_min"`
	LifeMax  int     `yaml:"life_max"`
	SpeedMin float64 `yaml:"speed_min"`
	SpeedMax float64 `yaml:"speed_max"`
	SpawnMin int     `yaml:"spawn_min"`
	SpawnMax int     `yaml:"spawn_max"`
	Hues     int     `yaml:"hues"`
}

func DefaultParams() Params {
	return Params{
		Gravity:  0.12,
		Damping:  0.92,
		Sparks:   120,
		LifeMin:  18,
		LifeMax:  40,
		SpeedMin: 0.6,
		SpeedMax: 1.6,
		SpawnMin: 18,
		SpawnMax: 26,
		Hues:     14,
	}
}

func (p Params) Validate() error {
	switch {
	case p.Sparks <= 0:
		return fmt.Errorf("%w: sparks must be positive, got %d", ErrInvalidParams, p.Sparks)
	case p.LifeMin <= 0 || p.LifeMax < p.LifeMin:
		return fmt.Errorf("%w: life range [%d, %d]", ErrInvalidParams, p.LifeMin, p.LifeMax)
	case p.SpeedMin < 0 || p.SpeedMax < p.SpeedMin:
		return fmt.Errorf("%w: speed range [%g, %g]", ErrInvalidParams, p.SpeedMin, p.SpeedMax)
	case p.SpawnMin <= 0 || p.SpawnMax < p.SpawnMin:
		return fmt.Errorf("%w: spawn range [%d, %d]", ErrInvalidParams, p.SpawnMin, p.SpawnMax)
	case p.Damping <= 0 || p.Damping > 1:
		return fmt.Errorf("%w: damping must be in (0, 1], got %g", ErrInvalidParams, p.Damping)
	case p.Hues <= 0:
		return fmt.Errorf("%w: hues must be positive, got %d", ErrInvalidParams, p.Hues)
	}
	return nil
}
