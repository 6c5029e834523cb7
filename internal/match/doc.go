// Package match pairs source field names with schema fields.
//
// Match is the authoritative matcher used by mapping synthesis: exact,
// then substring, then a table of known domain aliases. Rank is a softer
// scorer (normalized Levenshtein similarity plus type compatibility) used
// only to suggest targets for fields that Match left unmapped.
//
// Key functions:
//   - Matcher.Match: first-match-wins lookup of a schema field
//   - NormalizeIdent: normalizes identifiers for fuzzy comparison
//   - Levenshtein: computes edit distance between strings
//   - ScoreTypeCompatibility: compares a sampled JSON type to a schema field type
//   - Rank: orders schema fields as suggestions for a source field
package match
