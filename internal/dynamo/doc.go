// Package dynamo provides the body-side primitives of a rigid-body world.
//
//   - [Force]: a vector acting for a number of ticks, or continuously
//   - [Body]: the capability interface a world integrates over
//   - [Movable]: a body with a position, for integrators
//   - [Particle]: a point-mass Body
//   - [Frame]: a per-tick snapshot consumed by metrics and observers
//
// # Example
//
//	ball := dynamo.NewParticle("ball", 2.0, vecmath.New(0.0, 10.0), vecmath.New(0.0, 0.0))
//	ball.AddForce(dynamo.Impulse(vecmath.New(4.0, 0.0)))
//	w := world.New(vecmath.New(0.0, -9.8))
//	_ = w.AddObject(ball)
//	_ = w.Tick() // ball.Acceleration() == [2 -4.9]
//
// # Force lifetime
//
// A world never expires forces. Callers age them between ticks with [Age].
//
// # Thread Safety
//
// Particles are NOT thread-safe.
package dynamo
