// Package constants holds the default locations used by the editor.
package constants

const (
	EffectsPathFile = "./data/effects.txt" // JSON stream of tasks
	InDir           = "./data/in"          // root of the input data directories
	OutDir          = "./data/out"         // where processed images are written
	ResultsPath     = "./benchmark/results.txt"
)
