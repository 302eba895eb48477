// Package core implements the assessment engine: the check runner, the
// scoring reduction, descriptive statistics, and population ranking.
// Everything in this package is pure given its inputs except the Execute*
// entrypoints, which wire the engine to storage and output for the CLI.
package core
