// Package scoring turns per-component validation results into diagram
// accuracy scores, health bands, and actionable reports.
//
// The core calculation is a weighted average: each validation result
// contributes its status base score scaled by the validator's confidence
// and by the weight of the component's type, normalized by total weight so
// the score stays in [0, 100]. On top of that the engine derives a
// per-dimension quality breakdown, per-component scores, prioritized
// recommendations, and score trends read from a history store.
//
// Component-type weights start from DefaultComponentWeights and can be
// adjusted at runtime; updates merge into the existing set and are safe to
// race with score calculations.
package scoring
