// Package diagnostic provides the violation list produced by mapping
// validation and the error taxonomy shared by the engine.
//
// Key capabilities:
//   - Blocking violations (required coverage, duplicate targets)
//   - Non-blocking warnings (stale target references)
//   - Categorized errors for invalid sample JSON, unavailable schemas
//     and malformed node configuration
package diagnostic
