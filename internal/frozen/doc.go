// Package frozen turns arbitrary nested maps and slices into read-only trees.
// Freeze deep-copies its input once; the resulting Map and List values expose
// lookups and iteration but no mutators, so nothing reachable from them can be
// changed by a caller. Thaw produces an independent mutable copy again.
package frozen
