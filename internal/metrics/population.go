package metrics

import "github.com/san-kum/fireworks/internal/sim"

// Population is the mean number of live sparks per frame.
type Population struct {
	name    string
	samples int
	total   float64
}

func NewPopulation() *Population {
	return &Population{name: "population"}
}

func (p *Population) Name() string { return p.name }

func (p *Population) Observe(frame int, particles []sim.Particle, spawned int) {
	p.total += float64(len(particles))
	p.samples++
}

func (p *Population) Value() float64 {
	if p.samples == 0 {
		return 0
	}
	return p.total / float64(p.samples)
}

func (p *Population) Reset() {
	p.total = 0
	p.samples = 0
}

// Peak is the largest number of live sparks seen in one frame.
type Peak struct {
	peak int
}

func NewPeak() *Peak { return &Peak{} }

func (p *Peak) Name() string { return "peak" }

func (p *Peak) Observe(frame int, particles []sim.Particle, spawned int) {
	p.peak = max(p.peak, len(particles))
}

func (p *Peak) Value() float64 { return float64(p.peak) }
func (p *Peak) Reset()         { p.peak = 0 }

// Bursts counts firework explosions.
type Bursts struct {
	count int
}

func NewBursts() *Bursts { return &Bursts{} }

func (b *Bursts) Name() string { return "bursts" }

func (b *Bursts) Observe(frame int, particles []sim.Particle, spawned int) {
	if spawned > 0 {
		b.count++
	}
}

func (b *Bursts) Value() float64 { return float64(b.count) }
func (b *Bursts) Reset()         { b.count = 0 }

// Recorder keeps the per-frame population series for plotting.
type Recorder struct {
	Series []float64
}

func (r *Recorder) OnStep(frame int, particles []sim.Particle, spawned int) {
	r.Series = append(r.Series, float64(len(particles)))
}

func Default() []sim.Metric {
	return []sim.Metric{NewPopulation(), NewPeak(), NewBursts()}
}
