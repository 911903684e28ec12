// Package filesystem implements the storage.Store interface on the local
// filesystem. Each issue is a directory named after its decimal id; each
// comment is a flat text file named after its id, with comment 0 holding the
// issue's own content. An index.txt file caches entity counts so opening the
// store avoids a full directory rescan.
package filesystem

import (
	"context"
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"praia/internal/logger"
	"praia/internal/storage"
)

// Store implements storage.Store on a root directory.
//
// A sync.RWMutex serializes goroutines within the process; a flock on the
// index's lock file keeps a second process from opening the same root and
// racing on id allocation. The lock is held from Open until Close.
type Store struct {
	root  string
	flock *flock.Flock
	log   logger.Logger

	mu  sync.RWMutex
	idx *index
}

var _ storage.Store = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for index lifecycle events.
func WithLogger(log logger.Logger) Option {
	return func(s *Store) { s.log = log }
}

// Open opens the store rooted at root, creating the directory if needed.
// If an index file is present it is loaded, and a malformed one is fatal
// (ErrIndexCorrupted); otherwise the index is rebuilt from a directory scan
// and persisted immediately so later opens are fast.
func Open(root string, opts ...Option) (*Store, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}

	s := &Store{
		root:  root,
		flock: flock.New(filepath.Join(root, lockFileName)),
		log:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	locked, err := s.flock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire store lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("%s: %w", root, storage.ErrStoreLocked)
	}

	idx, err := openIndex(root)
	if err != nil {
		s.flock.Unlock()
		return nil, err
	}
	s.idx = idx
	s.log.Debug("store opened", "root", root, "issues", idx.issues)
	return s, nil
}

// openIndex loads the persisted index if one exists, else rebuilds and
// persists it.
func openIndex(root string) (*index, error) {
	path := filepath.Join(root, IndexFile)

	if _, err := os.Stat(path); err == nil {
		return loadIndex(path)
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	idx, err := rebuildIndex(root)
	if err != nil {
		return nil, err
	}
	if err := idx.save(path); err != nil {
		return nil, err
	}
	return idx, nil
}

// Close releases the store's advisory lock. The index is not saved
// implicitly; call SaveIndex first if counters changed.
func (s *Store) Close() error {
	return s.flock.Unlock()
}

// Root returns the store's root directory.
func (s *Store) Root() string {
	return s.root
}

// IssueCount returns the cached next unused issue id.
func (s *Store) IssueCount() uint32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.idx.issues
}

func (s *Store) issueDir(issueID uint32) string {
	return filepath.Join(s.root, strconv.FormatUint(uint64(issueID), 10))
}

func (s *Store) commentPath(issueID, commentID uint32) string {
	return filepath.Join(s.issueDir(issueID), strconv.FormatUint(uint64(commentID), 10))
}

// writeNew writes content to a file that must not already exist. A collision
// means the index and the directory tree are out of sync, so it surfaces as
// an error instead of overwriting.
func writeNew(path, content string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// readEntry reads a comment file's content and timestamp. Birth time is not
// portably available, so created and modified both come from mtime; entities
// are never rewritten, so the two would be equal anyway.
func readEntry(path string) (string, time.Time, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", time.Time{}, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", time.Time{}, err
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return "", time.Time{}, err
	}
	return string(data), info.ModTime(), nil
}

// CreateIssue allocates the next issue id, creates its directory and writes
// content as comment 0. Counters are only advanced after both writes succeed.
// An issue directory left behind by an earlier failed create is reused;
// comment 0's exclusive-create write still guards against clobbering a real
// issue the index does not know about.
func (s *Store) CreateIssue(ctx context.Context, content string) (uint32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	issueID := s.idx.issues

	if err := os.Mkdir(s.issueDir(issueID), 0755); err != nil && !os.IsExist(err) {
		return 0, fmt.Errorf("create issue %d: %w", issueID, err)
	}
	if err := writeNew(s.commentPath(issueID, 0), content); err != nil {
		return 0, fmt.Errorf("write issue %d: %w", issueID, err)
	}

	s.idx.comments[issueID] = 1
	s.idx.issues = issueID + 1

	s.log.Debug("issue created", "issue", issueID)
	return issueID, nil
}

// CreateComment allocates the next comment id for issueID and writes content.
// The cached index is authoritative: an issue on disk but absent from the
// index is reported as ErrIssueNotFound until a rebuild.
func (s *Store) CreateComment(ctx context.Context, issueID uint32, content string) (uint32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	commentID, ok := s.idx.comments[issueID]
	if !ok {
		return 0, fmt.Errorf("issue %d: %w", issueID, storage.ErrIssueNotFound)
	}

	if err := writeNew(s.commentPath(issueID, commentID), content); err != nil {
		return 0, fmt.Errorf("write comment %d/%d: %w", issueID, commentID, err)
	}

	s.idx.comments[issueID] = commentID + 1

	s.log.Debug("comment created", "issue", issueID, "comment", commentID)
	return commentID, nil
}

// GetIssue reads a single issue's comment 0 directly from disk, without
// consulting the cached index.
func (s *Store) GetIssue(ctx context.Context, issueID uint32) (*storage.Issue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	content, mtime, err := readEntry(s.commentPath(issueID, 0))
	if err != nil {
		return nil, fmt.Errorf("issue %d: %w", issueID, err)
	}
	return &storage.Issue{
		ID:       issueID,
		Created:  mtime,
		Modified: mtime,
		Content:  content,
	}, nil
}

// GetComment reads a single comment directly from disk.
func (s *Store) GetComment(ctx context.Context, issueID, commentID uint32) (*storage.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	content, mtime, err := readEntry(s.commentPath(issueID, commentID))
	if err != nil {
		return nil, fmt.Errorf("comment %d/%d: %w", issueID, commentID, err)
	}
	return &storage.Comment{
		IssueID:   issueID,
		CommentID: commentID,
		Created:   mtime,
		Modified:  mtime,
		Content:   content,
	}, nil
}

// Issues returns a lazy sequence over all issues. The issue count is
// snapshotted under a briefly-held read lock, then files are read without the
// lock, so a slow consumer never starves writers; creates that land mid-
// iteration are invisible to it. Missing ids are skipped silently.
func (s *Store) Issues(ctx context.Context) iter.Seq2[*storage.Issue, error] {
	s.mu.RLock()
	count := s.idx.issues
	s.mu.RUnlock()

	return func(yield func(*storage.Issue, error) bool) {
		for issueID := uint32(0); issueID < count; issueID++ {
			if err := ctx.Err(); err != nil {
				yield(nil, err)
				return
			}

			content, mtime, err := readEntry(s.commentPath(issueID, 0))
			if err != nil {
				if os.IsNotExist(err) {
					continue // gap on disk, not an error
				}
				if !yield(nil, fmt.Errorf("issue %d: %w", issueID, err)) {
					return
				}
				continue
			}

			issue := &storage.Issue{
				ID:       issueID,
				Created:  mtime,
				Modified: mtime,
				Content:  content,
			}
			if !yield(issue, nil) {
				return
			}
		}
	}
}

// Comments returns a lazy sequence over an issue's comments, with the same
// snapshot and skip semantics as Issues. An unknown issueID fails the call
// itself with ErrIssueNotFound.
func (s *Store) Comments(ctx context.Context, issueID uint32) (iter.Seq2[*storage.Comment, error], error) {
	s.mu.RLock()
	count, ok := s.idx.comments[issueID]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("issue %d: %w", issueID, storage.ErrIssueNotFound)
	}

	return func(yield func(*storage.Comment, error) bool) {
		for commentID := uint32(0); commentID < count; commentID++ {
			if err := ctx.Err(); err != nil {
				yield(nil, err)
				return
			}

			content, mtime, err := readEntry(s.commentPath(issueID, commentID))
			if err != nil {
				if os.IsNotExist(err) {
					continue
				}
				if !yield(nil, fmt.Errorf("comment %d/%d: %w", issueID, commentID, err)) {
					return
				}
				continue
			}

			comment := &storage.Comment{
				IssueID:   issueID,
				CommentID: commentID,
				Created:   mtime,
				Modified:  mtime,
				Content:   content,
			}
			if !yield(comment, nil) {
				return
			}
		}
	}, nil
}

// SaveIndex persists the in-memory index to the index file.
func (s *Store) SaveIndex(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.idx.save(filepath.Join(s.root, IndexFile)); err != nil {
		return err
	}
	s.log.Debug("index saved", "issues", s.idx.issues)
	return nil
}
