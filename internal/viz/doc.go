// Package viz renders runs in the terminal.
//
// CLI summaries use lipgloss, charts use asciigraph, and [Model] is a Bubble
// Tea program that steps a scene live on a Braille [Canvas].
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	N     - Single step while paused
//	R     - Restart the scene
//	T     - Cycle color themes
//	?     - Show help overlay
package viz
