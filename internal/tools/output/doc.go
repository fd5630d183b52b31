// Package output shapes Productboard records for agent consumption.
//
// Projection reduces full entity records to a caller-selected subset of
// named fields, collapses nested references to minimal {id, name} pairs,
// and truncates long free-text fields. All transforms are lossy by
// design: the goal is bounding response size for downstream LLM context
// windows, not fidelity.
package output
