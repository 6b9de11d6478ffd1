// Package model defines the static model catalog and the tiered
// selection policy.
//
// A [Catalog] maps each subscription tier to an ordered list of
// llmrouter.Descriptor values describing the backends reachable under
// that tier. [Catalog.Select] picks exactly one descriptor for a request
// based on content length, operation, and an optional budget ceiling.
// Catalogs are fixed configuration data: loaded once, read-only for
// the process lifetime.
package model
