// Package core contains the canonical versioned object model: field schemas
// with change tracking, the process-wide type registry and version resolver,
// the primitive wire codec, and the remote indirection dispatcher. Adapters
// (stores, transports) must depend on this package; core must not depend on
// storage-specific or transport-specific adapters.
package core
