// Package cli defines the Cobra command tree for the metaregistry CLI. Each
// file in this package registers one top-level command (effective, merge,
// presets, etc.) with the root command. Command implementations delegate to
// internal packages for registry logic and only handle flag parsing, output
// formatting, and logging setup.
package cli
