// Package workflow holds the workflow graph around mapping nodes.
//
// Each node carries a configuration whose concrete type is selected by the
// node kind. Configurations are validated when a workflow is decoded, so the
// rest of the engine only ever sees well-formed nodes.
package workflow
