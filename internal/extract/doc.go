// Package extract flattens a sample JSON document into field descriptors.
//
// Walking follows document key order, so the same input always yields the
// same list. Arrays are sampled rather than enumerated: an array of objects
// contributes the fields of its first element only, which makes any schema
// inferred from the descriptors an approximation of the real payload.
package extract
