// Package arch defines the closed set of architecture component types that
// make up a generated diagram.
//
// Every diagram produced by the pipeline contains exactly one component for
// each of the eleven types, in a fixed canonical order. The first nine types
// form the main request flow (USER_ACTION through DATABASE); EVENT_HANDLER
// and VIEW_UPDATE are auxiliary nodes attached off the main row.
//
// The set is deliberately closed. Layout slots, keyword vocabularies, and
// edge topology are all keyed by ComponentType, so adding or removing a type
// is a coordinated change across those tables, checked at compile time by
// exhaustive switches rather than discovered at runtime.
package arch
