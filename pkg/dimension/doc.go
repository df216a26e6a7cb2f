// Package dimension provides the Dimension Registry: the mutable set of named
// data dimensions that visual roles bind to.
//
// # Overview
//
// A [Dimension] is a named, typed slot for data values. Dimensions are created
// either explicitly by chart configuration or implicitly when a role claims a
// default name. The [Registry] is append-only while roles are being resolved:
// dimensions can be defined and have unset metadata filled in by role defaults,
// but never removed or renamed.
//
// Once role resolution is done the registry is frozen with [Registry.Finalize],
// which returns an immutable [Schema]. Groupings are materialized against the
// schema, so later mutation attempts fail with [ErrFinalized].
//
// # Discovery Order
//
// Dimensions keep the order in which they were defined. [Registry.MatchPrefix]
// returns matches in that order, which is what gives wildcard default
// dimensions ("value*") a deterministic multi-dimension grouping.
//
// # Concurrency
//
// A Registry is single-writer: it is mutated only by the role binder during a
// single bind run and is not safe for concurrent use. A Schema is immutable and
// may be shared freely.
package dimension
