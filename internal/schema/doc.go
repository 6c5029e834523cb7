// Package schema describes target schemas (their fields, requiredness and
// nesting) and provides the lookups the mapping editor depends on:
// fields per schema type, schemas available for a workflow type, and fields
// common to several schemas.
//
// Catalog is a YAML-backed provider; CachedProvider wraps any provider with
// fetch-once-per-schema-type caching for the lifetime of a mapping session.
package schema
