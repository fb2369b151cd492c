// Package analysis summarizes stored trajectories for the terminal.
//
// [PhasePortrait2D] projects a run onto one coordinate plane and bins it
// into a character grid, so dense sheets of an attractor read darker than
// the transient that led onto it.
package analysis
