// Package viz provides the terminal front end for streaming attractors.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: drives a [sim.Session] from a timer and renders each snapshot
//   - [Canvas]: Braille-based pixel canvas with one color per cell
//   - [Camera]: orbiting perspective projection of phase space
//   - Theme selection with 5 built-in color schemes
//
// The session never runs on its own. Every [TickMsg] asks it for one tick
// and the returned snapshot is projected onto the canvas, newest points
// drawn last.
//
// # Key Bindings
//
//	Space - Start/Stop
//	N/P   - Next/previous vector field
//	Tab   - Select parameter
//	Up/Dn - Nudge parameter by 2% of its range
//	[ ]   - Step the parameter slider
//	B     - Precompute a batch trajectory in the background
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	?     - Show help overlay
package viz
