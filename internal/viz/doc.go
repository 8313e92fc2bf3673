// Package viz renders species densities in the terminal.
//
// Plots go through asciigraph; densities spanning many decades are drawn on
// a log10 axis. Styles used by the CLI and the browser live in styles.go.
package viz
