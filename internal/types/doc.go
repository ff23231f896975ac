/*
Package types defines the data structures shared by the viewer packages.

# Persisted

FileRecord:
  - snapshot of an ingested file (name, contents, type, timestamp)
  - stored by the filecache package, never mutated after insert
  - duplicates by name are kept

# In memory

Tab:
  - an open file held by the store
  - ids come from the store counter, never from the list length

Document:
  - the active file reference
  - built from disk, a cached record or a tab; Source tells which
  - SizeKnown is false when the original file size was not retained

Notice:
  - the user-visible error indicator (read failed, cache failed, cache miss)
*/
package types
