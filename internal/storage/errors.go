package storage

import "errors"

var (
	// ErrIndexCorrupted reports an index file that exists but does not parse.
	// Fatal to opening a store; recovery is deleting the index file so the
	// next open rebuilds it from the directory tree.
	ErrIndexCorrupted = errors.New("index corrupted")

	// ErrStoreCorrupted reports a storage directory entry whose name is not
	// a valid id during an index rebuild. Fatal to opening a store.
	ErrStoreCorrupted = errors.New("store corrupted")

	// ErrIssueNotFound reports an issue id absent from the cached index.
	ErrIssueNotFound = errors.New("issue not found")

	// ErrStoreLocked reports that another process holds the store's
	// advisory lock.
	ErrStoreLocked = errors.New("store locked by another process")
)
