// Package session drives one mapping-editor session.
//
// Edits are modelled as events folded into a State by a pure reducer. The
// Session type wraps the reducer with schema lookups, a debounced sample
// editor and the host's change callback. Saving is only possible while the
// state is valid.
package session
