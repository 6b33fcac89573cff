// Package sim owns the firework particle simulation.
//
// A [Simulator] holds the live [Particle] set, the frame counter and a
// private random generator. Every random draw comes from that generator, so
// a fixed seed, size and [Params] replay the same show frame for frame:
//
//	s := sim.New(sim.DefaultParams(), 80, 24, 42)
//	for i := 0; i < 200; i++ {
//		s.Step()
//		draw(s.Particles())
//	}
//
// Simulator instances are NOT thread-safe.
package sim
