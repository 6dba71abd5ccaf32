// Package attractor implements the catalog of dynamical systems rendered as
// density images.
//
// Every variant satisfies [Attractor]: it owns a [dynamo.State], a
// coefficient vector with per-coefficient ranges, and renders itself through
// the shared [raster] pipeline. Discrete maps advance one iteration per
// [Attractor.Step]; continuous systems advance one fixed time step.
//
//   - [Trigonometric], [Clifford], [Quadratic], [Polar], [Symmetric]:
//     two-dimensional iterated maps
//   - [Duffing], [Lorenz]: explicit Euler integration
//   - [DoublePendulum]: fourth-order Runge-Kutta
//
// # Caching
//
// Quadratic, Polar, Symmetric and DoublePendulum memoize their normalized
// density grid. A later render with the same size and iteration count only
// re-runs tone mapping, so palette edits are cheap. Every setter and
// randomizer invalidates the grid; callers that edit [Attractor.Coefs] or
// the [dynamo.State] in place must call ParamChanged(true).
//
// # Persistence
//
// [ToRecord] and [FromRecord] convert between a variant and its tagged
// [Record]; the display name is the discriminator.
package attractor
