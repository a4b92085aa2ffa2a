// Package aggregates defines domain-facing aggregate contracts.
//
// These contracts avoid persistence/transport details and represent the write boundaries
// where appointment record invariants must hold atomically.
package aggregates
