// Package cache provides short-lived key/value caches behind an explicit
// capability interface: Get, Set with TTL, and Invalidate.
//
// Two implementations are provided. Memory is an in-process cache with
// per-entry TTL, optional LRU capacity bounding, and change notification via
// Watch. Redis stores JSON-encoded values in a shared Redis instance so
// multiple replicas observe the same cached state.
//
// Caches are constructed once and passed by reference to the components that
// need them; nothing in this package holds global state.
package cache
