// Package variants computes the effective registry for a project: the
// baseline registry with the project's presets and direct customizations
// layered on top, frozen so callers cannot change shared data.
package variants
