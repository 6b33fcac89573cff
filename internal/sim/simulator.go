package sim

import (
	"math"
	"math/rand/v2"
)

type Simulator struct {
	params    Params
	width     int
	height    int
	seed      int64
	rng       *rand.Rand
	particles []Particle
	frame     int
	metrics   []Metric
	observers []Observer
}

func New(params Params, width, height int, seed int64) *Simulator {
	s := &Simulator{
		params:    params,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
	s.Initialize(seed, width, height)
	return s
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Initialize reseeds the generator and clears all particles and counters.
func (s *Simulator) Initialize(seed int64, width, height int) {
	s.seed = seed
	s.rng = rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
	s.width = width
	s.height = height
	s.particles = s.particles[:0]
	s.frame = 0
	for _, m := range s.metrics {
		m.Reset()
	}
}

// Step advances the show by one frame: spawn, integrate, cull.
func (s *Simulator) Step() {
	spawned := 0
	if len(s.particles) == 0 || s.frame%max(s.randInt(s.params.SpawnMin, s.params.SpawnMax), 1) == 0 {
		spawned = s.Burst()
	}

	alive := s.particles[:0]
	for _, p := range s.particles {
		p.X += p.VX
		p.Y += p.VY
		p.VX *= s.params.Damping
		p.VY = p.VY*s.params.Damping + s.params.Gravity
		p.Life--
		if p.Alive(s.width, s.height) {
			alive = append(alive, p)
		}
	}
	s.particles = alive
	s.frame++

	for _, m := range s.metrics {
		m.Observe(s.frame, s.particles, spawned)
	}
	for _, obs := range s.observers {
		obs.OnStep(s.frame, s.particles, spawned)
	}
}

// Burst explodes one firework now and returns the number of sparks created.
// Nothing is spawned on a degenerate grid.
func (s *Simulator) Burst() int {
	if s.width <= 0 || s.height <= 0 {
		return 0
	}

	w, h := float64(s.width), float64(s.height)
	x := s.uniform(0.2*w, 0.8*w)
	y := s.uniform(0.2*h, 0.45*h)
	hues := max(s.params.Hues, 1)
	hueShift := s.rng.IntN(hues)

	for i := 0; i < s.params.Sparks; i++ {
		angle := s.uniform(0, 2*math.Pi)
		speed := s.uniform(s.params.SpeedMin, s.params.SpeedMax)
		life := s.randInt(s.params.LifeMin, s.params.LifeMax)
		hue := (hueShift + s.rng.IntN(hues)) % hues
		s.particles = append(s.particles, Particle{
			X:       x,
			Y:       y,
			VX:      math.Cos(angle) * speed,
			VY:      math.Sin(angle) * speed,
			Life:    life,
			MaxLife: life,
			Hue:     hue,
		})
	}
	return s.params.Sparks
}

// Resize moves the bounds and drops particles that no longer fit.
func (s *Simulator) Resize(width, height int) {
	s.width = width
	s.height = height
	alive := s.particles[:0]
	for _, p := range s.particles {
		if p.Alive(width, height) {
			alive = append(alive, p)
		}
	}
	s.particles = alive
}

// Particles returns a copy of the live set.
func (s *Simulator) Particles() []Particle {
	out := make([]Particle, len(s.particles))
	copy(out, s.particles)
	return out
}

func (s *Simulator) Len() int         { return len(s.particles) }
func (s *Simulator) Frame() int       { return s.frame }
func (s *Simulator) Seed() int64      { return s.seed }
func (s *Simulator) Size() (int, int) { return s.width, s.height }

func (s *Simulator) Metrics() map[string]float64 {
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

func (s *Simulator) uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*s.rng.Float64()
}

// randInt draws from the closed range [lo, hi].
func (s *Simulator) randInt(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.IntN(hi-lo+1)
}
