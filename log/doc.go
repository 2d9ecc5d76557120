// Package log defines the minimal logging abstraction consumed by the retry
// engine and its collaborators.
//
// The library never logs through a concrete backend directly; callers inject
// any Logger implementation. GoLogger (standard library log) and NopLogger are
// provided, and the zap package supplies a structured production adapter.
package log
