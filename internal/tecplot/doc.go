// Package tecplot reads and writes the ASCII Tecplot tables produced by
// global kinetics codes.
//
// Only the subset those codes emit is supported: a VARIABLES block of quoted
// column names, a ZONE line, then every value of the first column, every
// value of the second, and so on (BLOCK packing). The first column is taken
// to be the independent axis, usually time.
package tecplot
