// Package analysis characterizes attractors beyond their density image.
//
//   - [LyapunovExponent]: largest Lyapunov exponent via a perturbed twin
//   - [Search]: random coefficient search for bounded chaotic attractors
//   - [Coverage], [Profiles]: occupancy statistics of a density histogram
//   - [Bifurcation]: sweep of one coefficient, recording visited values
//   - [PoincareSection]: crossings of a continuous trajectory with a plane
//   - [PortraitASCII], [BifurcationToASCII]: terminal plots
//
// # Chaos Detection
//
// A positive largest Lyapunov exponent indicates chaotic dynamics:
//
//	ly, err := analysis.LyapunovExponent(a, 20000, 1000, 1e-8)
//	if err == nil && ly.Exponent > 0 {
//	    // a is chaotic
//	}
package analysis
