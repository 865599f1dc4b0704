// Package entitlement resolves what a viewer may access from billing state.
//
// The resolver is the single authority for subscription gating: it reads the
// billing record, normalizes it against the plan catalog, and caches the
// result for a short window. Failures resolve to the inactive entitlement,
// never to paid access.
package entitlement
