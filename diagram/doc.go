// Package diagram models synthesized architecture diagrams and assembles
// them from extraction results.
//
// A diagram always carries the same structure: one component per
// architecture component type at a fixed canonical position, the request
// chain down the main flow, the response chain back, and the event fan-out
// to the auxiliary lane. Synthesis only varies the content of that structure,
// with components flipping between populated and greyed-out depending on the
// evidence behind them.
//
// The package also provides structural validation, so a pipeline can reject
// a malformed diagram before publishing it, and a JSON export snapshot that
// deep copies the diagram at export time.
package diagram
