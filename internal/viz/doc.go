// Package viz renders sessions, run plans and stored runs for the terminal.
//
// Volume colours are drawn as swatches in their own RGBA value so a
// geometry listing shows what the viewer will show.
package viz
