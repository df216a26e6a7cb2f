// Package role implements the Visual Role Binder: it decides which data
// dimensions feed which visual roles (series, category, color, size, ...).
//
// # Overview
//
// A chart declares its roles with [Declaration] values. The binder turns each
// declaration into a mutable [Instance] and resolves it in three ordered
// phases that share state:
//
//  1. [Binder.Init] reads the user configuration of every role (a [Value]),
//     resolves "from" references, applies explicit dimension pre-bindings and
//     defaults secondary roles to source from their primary role. The
//     role-sourcing graph is checked for cycles before anything is committed.
//  2. [Binder.DimensionsFinished] resolves the roles that are still open from
//     their default dimension (exact name or "prefix*" wildcard, optionally
//     auto-creating it) or, failing that, from their default source role.
//     Dimension defaults declared by roles are applied when exactly one role
//     explicitly claims a dimension.
//  3. [Binder.Bind] materializes every pre-binding against the finalized
//     [dimension.Schema] and lets sourced roles adopt their source's
//     [Grouping].
//
// [Bind] runs all three phases in one call.
//
// # Terminal States
//
// Every role ends a successful run in exactly one [State]:
//   - [StateBound]: bound to a non-null grouping
//   - [StateNull]: explicitly bound to the null grouping; IsBound is false
//   - [StateUnbound]: nothing resolved the role
//
// Unbound required roles are a policy decision left to the caller; see
// [Set.CheckRequired].
//
// # Grouping Identity
//
// Groupings are compared by pointer. Roles sourced, directly or through a
// chain, from the same role observe the very same *Grouping.
//
// # Errors
//
// A "from" reference to an unknown role fails with ROLE_NOT_FOUND and a cycle
// in the sourcing graph fails with ROLE_CYCLE, both configuration errors in
// [github.com/matzehuels/chartcore/pkg/errors]. Every other problem degrades
// the role to unbound. A failed run leaves role state unreliable and does not
// mutate the dimension registry.
package role
