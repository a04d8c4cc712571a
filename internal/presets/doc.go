// Package presets loads named partial registries and folds them, in the
// order a project lists them, into a single registry. Presets are looked up
// across an ordered list of sources (user preset directories, then the
// presets built into the binary); the first source that has a preset wins.
// Any preset that cannot be loaded aborts resolution with a *LoadError.
package presets
