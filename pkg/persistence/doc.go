// Package persistence emulates the flash key/value partition the firmware
// keeps its durable state in.
//
// A Partition hands out Namespaces. A Namespace maps short keys (at most
// MaxKeyLen characters) to typed values: opaque blobs and
// 8-bit integers. Namespaces isolate the keys of one component from any other
// persisted state on the same partition.
//
// FilePartition stores each namespace as a single CBOR document under a root
// directory. Every write replaces the document atomically: the new content is
// written to a temporary file, synced, and renamed over the old one, so after
// a power loss a reader observes either the previous or the new value, never
// a mix. MemoryPartition keeps the same semantics in memory and survives
// namespace re-opens, which is how tests simulate a restart.
package persistence
