// Package extraction turns operation documents into per-component evidence
// verdicts.
//
// For each of the eleven architecture component types the engine scans the
// document corpus for that type's keyword vocabulary, scores the strongest
// match into a confidence value, and synthesizes a title, description, and
// source excerpt for the diagram component. Types with no evidence above the
// relevance threshold come back as explicit no-data results with zero
// confidence, so a full extraction always yields exactly one result per type.
//
// Extraction never fails: malformed documents, empty corpora, and cancelled
// contexts degrade to no-data verdicts instead of errors. An optional
// Generator backend can rewrite titles and descriptions, but evidence
// scoring stays keyword-based so results remain deterministic and auditable.
package extraction
