package tui

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/san-kum/fireworks/internal/sim"
	"github.com/san-kum/fireworks/internal/viz"
)

// Phase of the animation loop.
type Phase int

const (
	PhaseRunning Phase = iota
	PhaseDone
)

func (p Phase) String() string {
	if p == PhaseDone {
		return "done"
	}
	return "running"
}

type LiveConfig struct {
	Frames   int
	Interval time.Duration
	Status   bool
	Farewell string
}

// Live drives the fixed-count show: step, draw, sleep.
type Live struct {
	sim      *sim.Simulator
	renderer *viz.Renderer
	out      io.Writer
	cfg      LiveConfig
	phase    Phase
}

func NewLive(s *sim.Simulator, r *viz.Renderer, out io.Writer, cfg LiveConfig) *Live {
	return &Live{
		sim:      s,
		renderer: r,
		out:      out,
		cfg:      cfg,
	}
}

func (l *Live) Phase() Phase { return l.phase }

// Run plays the show and returns the number of frames drawn. Cancelling ctx
// ends the show early without an error. The terminal is restored on every
// return path once it has been acquired.
func (l *Live) Run(ctx context.Context) (n int, err error) {
	l.phase = PhaseRunning
	if l.cfg.Frames <= 0 {
		l.phase = PhaseDone
		return 0, nil
	}

	screen, err := Acquire(l.out)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", viz.ErrOutput, err)
	}
	defer func() {
		if rerr := screen.Release(); rerr != nil && err == nil {
			err = fmt.Errorf("%w: %w", viz.ErrOutput, rerr)
		}
	}()

	w, h := l.sim.Size()
	drawn := 0
	for drawn < l.cfg.Frames {
		if ctx.Err() != nil {
			return drawn, nil
		}

		l.sim.Step()

		status := ""
		if l.cfg.Status {
			status = fmt.Sprintf("Frame %d/%d", drawn+1, l.cfg.Frames)
		}
		if err := l.renderer.Draw(l.out, l.sim.Particles(), w, h, status); err != nil {
			return drawn, err
		}
		drawn++

		if err := sleep(ctx, l.cfg.Interval); err != nil {
			return drawn, nil
		}
	}

	l.phase = PhaseDone
	if l.cfg.Farewell != "" {
		if _, err := io.WriteString(l.out, ResetAttrs+"\n"+l.renderer.Accent(l.cfg.Farewell)); err != nil {
			return drawn, fmt.Errorf("%w: %w", viz.ErrOutput, err)
		}
	}
	return drawn, nil
}

// sleep blocks for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
