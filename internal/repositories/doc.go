// Package repositories implements persistence for the address book.
//
// Both backends satisfy [models.Store] and overwrite the persisted state wholesale on every save:
//   - [SQLiteStore] : contacts and phones tables created by the embedded migrations in the shared package
//   - [JSONLStore] : a versioned JSON Lines file written through a temp file and rename
//
// [Open] selects a backend from the storage section of [shared.Config].
// Failures are wrapped with [shared.ErrPersistence]; a missing JSONL file additionally wraps [shared.ErrStoreNotFound]
// so callers can start with an empty book on first run.
package repositories
