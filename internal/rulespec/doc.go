// Package rulespec loads reaction rule packs from YAML and serves them to
// the engine.
//
// Loading is a three-stage pipeline:
//
//  1. Schema validation: the raw YAML document is unified with an embedded
//     CUE schema. Shape errors (wrong types, unknown fields, negative
//     counts) are rejected before any Go decoding happens.
//  2. Decode: the document decodes into rules types; "string or list"
//     fields land in OneOrMany without call-site type inspection.
//  3. Semantic validation: actor type names are checked against the known
//     set and free-form expressions are compiled to bytecode. All errors
//     are collected, not fail-fast.
//
// The Store holds the loaded collections and supports wholesale reload at
// runtime: only the rule lists swap, nothing else in the engine is
// touched.
package rulespec
