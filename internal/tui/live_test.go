package tui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/fireworks/internal/sim"
	"github.com/san-kum/fireworks/internal/viz"
)

// scriptedWriter records output and can fail or react on a given write.
// It has no WriteString, so io.WriteString always reaches Write.
type scriptedWriter struct {
	buf     bytes.Buffer
	writes  int
	failOn  int
	onWrite func(n int)
}

func (w *scriptedWriter) Write(p []byte) (int, error) {
	w.writes++
	if w.onWrite != nil {
		w.onWrite(w.writes)
	}
	if w.writes == w.failOn {
		return 0, errors.New("stream closed")
	}
	return w.buf.Write(p)
}

func (w *scriptedWriter) String() string { return w.buf.String() }
func (w *scriptedWriter) Len() int       { return w.buf.Len() }

func newShow(out *scriptedWriter, cfg LiveConfig) *Live {
	s := sim.New(sim.DefaultParams(), 20, 8, 1)
	r := viz.NewRenderer(viz.Options{Palette: "classic", Glyphs: "@*+.", Color: false})
	return NewLive(s, r, out, cfg)
}

var _ = Describe("Live", func() {
	var out *scriptedWriter

	BeforeEach(func() {
		out = &scriptedWriter{}
	})

	Context("with zero frames", func() {
		It("draws nothing and succeeds", func() {
			live := newShow(out, LiveConfig{Frames: 0})
			n, err := live.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(0))
			Expect(out.Len()).To(Equal(0))
			Expect(live.Phase()).To(Equal(PhaseDone))
		})
	})

	Context("on normal completion", func() {
		It("draws every frame and restores the terminal last", func() {
			live := newShow(out, LiveConfig{Frames: 3, Status: true, Farewell: "Thanks for watching the show!"})
			n, err := live.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(3))
			Expect(live.Phase()).To(Equal(PhaseDone))

			s := out.String()
			Expect(s).To(HavePrefix(ClearScreen + HideCursor))
			Expect(strings.Count(s, viz.CursorHome)).To(Equal(3))
			Expect(s).To(ContainSubstring("Frame 1/3"))
			Expect(s).To(ContainSubstring("Frame 3/3"))
			Expect(s).To(ContainSubstring("Thanks for watching the show!"))
			Expect(s).To(HaveSuffix(RestoreSequence))
		})

		It("writes each frame and its status line in one write", func() {
			live := newShow(out, LiveConfig{Frames: 2, Status: true})
			_, err := live.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(out.writes).To(Equal(4))
			Expect(out.String()).To(MatchRegexp(`(?s)\x1b\[H[^\x1b]*\nFrame 1/2\x1b\[H`))
		})

		It("omits the status line when disabled", func() {
			live := newShow(out, LiveConfig{Frames: 2})
			_, err := live.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(out.String()).NotTo(ContainSubstring("Frame"))
		})

		It("is byte-identical across runs with the same seed", func() {
			other := &scriptedWriter{}
			cfg := LiveConfig{Frames: 25, Status: true}
			_, err := newShow(out, cfg).Run(context.Background())
			Expect(err).NotTo(HaveOccurred())
			_, err = newShow(other, cfg).Run(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(out.String()).To(Equal(other.String()))
		})

		It("sleeps the interval between frames", func() {
			live := newShow(out, LiveConfig{Frames: 3, Interval: 5 * time.Millisecond})
			start := time.Now()
			_, err := live.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(time.Since(start)).To(BeNumerically(">=", 15*time.Millisecond))
		})
	})

	Context("when interrupted", func() {
		It("stops early, exits cleanly and leaves the cursor visible", func() {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			out.onWrite = func(n int) {
				if n == 3 {
					cancel()
				}
			}

			live := newShow(out, LiveConfig{Frames: 100, Interval: time.Second})
			n, err := live.Run(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(2))
			Expect(live.Phase()).To(Equal(PhaseRunning))
			Expect(out.String()).To(HaveSuffix(RestoreSequence))
		})

		It("restores the terminal even when cancelled before the first frame", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			n, err := newShow(out, LiveConfig{Frames: 10}).Run(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(0))
			Expect(out.String()).To(HaveSuffix(RestoreSequence))
			Expect(out.String()).NotTo(ContainSubstring(viz.CursorHome))
		})
	})

	Context("when the output stream fails", func() {
		It("stops immediately with an output error and still restores", func() {
			out.failOn = 3
			n, err := newShow(out, LiveConfig{Frames: 10}).Run(context.Background())
			Expect(err).To(MatchError(viz.ErrOutput))
			Expect(n).To(Equal(1))
			Expect(out.String()).To(HaveSuffix(RestoreSequence))
		})

		It("reports a failure to acquire the terminal", func() {
			out.failOn = 1
			n, err := newShow(out, LiveConfig{Frames: 10}).Run(context.Background())
			Expect(err).To(MatchError(viz.ErrOutput))
			Expect(n).To(Equal(0))
			Expect(out.Len()).To(Equal(0))
		})
	})
})

var _ = Describe("Screen", func() {
	It("hides the cursor on acquire and shows it on release", func() {
		var buf bytes.Buffer
		screen, err := Acquire(&buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(buf.String()).To(Equal(ClearScreen + HideCursor))

		Expect(screen.Release()).To(Succeed())
		Expect(buf.String()).To(HaveSuffix(RestoreSequence))
	})

	It("releases only once", func() {
		var buf bytes.Buffer
		screen, err := Acquire(&buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(screen.Release()).To(Succeed())
		size := buf.Len()
		Expect(screen.Release()).To(Succeed())
		Expect(buf.Len()).To(Equal(size))
	})

	It("tolerates a nil screen", func() {
		var screen *Screen
		Expect(screen.Release()).To(Succeed())
	})
})

var _ = Describe("Phase", func() {
	It("names its states", func() {
		Expect(PhaseRunning.String()).To(Equal("running"))
		Expect(PhaseDone.String()).To(Equal("done"))
	})
})
