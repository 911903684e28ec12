// Package storage defines the entities and the interface for issue
// persistence in praia.
package storage

import (
	"context"
	"iter"
	"time"
)

// Issue is a top-level thread. Its content is comment 0 of the issue.
type Issue struct {
	ID       uint32
	Created  time.Time
	Modified time.Time
	Content  string
}

// Comment is a reply within an issue, ordered by a per-issue sequential id.
// Comment 0 doubles as the issue's own content.
type Comment struct {
	IssueID   uint32
	CommentID uint32
	Created   time.Time
	Modified  time.Time
	Content   string
}

// Store defines the interface for issue persistence.
//
// Issue ids are dense and sequential starting at 0. Comment ids are dense and
// sequential per issue, with id 0 taken by the issue's own content, so the
// first CreateComment on a fresh issue returns 1. Ids are never reused.
//
// Timestamps on Issue and Comment are derived from file metadata at read
// time; entities are never rewritten, so Created and Modified are equal in
// practice.
type Store interface {
	// CreateIssue allocates the next issue id and writes content as its
	// comment 0.
	CreateIssue(ctx context.Context, content string) (uint32, error)

	// CreateComment appends a comment to an existing issue and returns the
	// new comment id. Returns ErrIssueNotFound if issueID is absent from the
	// cached index; an issue present on disk but missing from a stale index
	// is treated as nonexistent until a rebuild.
	CreateComment(ctx context.Context, issueID uint32, content string) (uint32, error)

	// GetIssue reads a single issue directly from disk. A missing issue
	// surfaces the underlying not-found error.
	GetIssue(ctx context.Context, issueID uint32) (*Issue, error)

	// GetComment reads a single comment directly from disk.
	GetComment(ctx context.Context, issueID, commentID uint32) (*Comment, error)

	// Issues enumerates issues lazily over the ids cached when the call is
	// made. Ids whose files are missing on disk are skipped without an
	// element or an error; any other failure is yielded as an element-level
	// error and enumeration continues. The sequence is finite and not
	// restartable.
	Issues(ctx context.Context) iter.Seq2[*Issue, error]

	// Comments enumerates an issue's comments with the same skip semantics
	// as Issues. An issueID absent from the cached index fails the whole
	// call with ErrIssueNotFound before any element is produced.
	Comments(ctx context.Context, issueID uint32) (iter.Seq2[*Comment, error], error)

	// SaveIndex persists the in-memory index. Creates never save implicitly;
	// callers are expected to save before exit. A crash between a create and
	// a save leaves the index file stale, which a later rebuild recovers.
	SaveIndex(ctx context.Context) error

	// Close releases the store's resources, including its advisory lock.
	Close() error
}
