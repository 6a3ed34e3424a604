// Package session resolves and owns the active file-search store for a
// session.
//
// The Manager is the only component that reads or writes the persisted store
// identifier. Resolution order: an explicit override wins unconditionally,
// then the persisted identifier, then a freshly created store whose
// identifier is persisted for the next session. Reset always creates a fresh
// store; documents uploaded into the old store stay in that store and become
// unreachable through the new handle.
package session
