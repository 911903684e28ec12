package filesystem

import (
	"bufio"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"praia/internal/storage"
)

// IndexFile is the name of the cached count file inside the storage root.
// Deleting it is the deliberate recovery action for a corrupted index: the
// next Open rebuilds it from the directory tree.
const IndexFile = "index.txt"

// lockFileName guards the store against concurrent processes.
const lockFileName = IndexFile + ".lock"

// index caches the next unused issue id and, per issue, the next unused
// comment id. The on-disk directory tree is the ground truth; the index must
// always be reconstructable from it by rebuildIndex.
type index struct {
	issues   uint32
	comments map[uint32]uint32
}

// parseID parses a decimal entry name as an id.
func parseID(name string) (uint32, error) {
	n, err := strconv.ParseUint(name, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(n), nil
}

// loadIndex parses the line-oriented index file: a count line followed by one
// "<issue_id> <comment_count>" line per issue. Any malformation is
// ErrIndexCorrupted; there is no silent fallback to a directory rescan.
func loadIndex(path string) (*index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%s: missing count line: %w", path, storage.ErrIndexCorrupted)
	}
	issues, err := parseID(sc.Text())
	if err != nil {
		return nil, fmt.Errorf("%s: bad issue count %q: %w", path, sc.Text(), storage.ErrIndexCorrupted)
	}

	idx := &index{issues: issues, comments: make(map[uint32]uint32)}
	for sc.Scan() {
		line := sc.Text()

		// Exactly two fields separated by a single space.
		fields := strings.Split(line, " ")
		if len(fields) != 2 {
			return nil, fmt.Errorf("%s: bad line %q: %w", path, line, storage.ErrIndexCorrupted)
		}
		id, err := parseID(fields[0])
		if err != nil {
			return nil, fmt.Errorf("%s: bad issue id %q: %w", path, fields[0], storage.ErrIndexCorrupted)
		}
		count, err := parseID(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%s: bad comment count %q: %w", path, fields[1], storage.ErrIndexCorrupted)
		}
		idx.comments[id] = count
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return idx, nil
}

// rebuildIndex reconstructs the index by scanning the directory tree under
// root. Counts are max observed id + 1, so ids stay monotonic even when the
// tree has gaps. Housekeeping files (the index, its lock, temp files) are
// skipped; any other entry that does not parse as an id is fatal.
func rebuildIndex(root string) (*index, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	idx := &index{comments: make(map[uint32]uint32)}
	for _, entry := range entries {
		name := entry.Name()
		if name == IndexFile || name == lockFileName || strings.HasPrefix(name, ".") {
			continue
		}

		issueID, err := parseID(name)
		if err != nil {
			return nil, fmt.Errorf("unexpected entry %q in %s: %w", name, root, storage.ErrStoreCorrupted)
		}
		if issueID+1 > idx.issues {
			idx.issues = issueID + 1
		}

		comments, err := os.ReadDir(filepath.Join(root, name))
		if err != nil {
			return nil, err
		}
		var count uint32
		for _, c := range comments {
			commentID, err := parseID(c.Name())
			if err != nil {
				return nil, fmt.Errorf("unexpected entry %q in issue %d: %w", c.Name(), issueID, storage.ErrStoreCorrupted)
			}
			if commentID+1 > count {
				count = commentID + 1
			}
		}
		idx.comments[issueID] = count
	}
	return idx, nil
}

// save writes the index atomically using write-to-temp-then-rename. Lines are
// emitted in sorted id order for stable diffs; loadIndex does not care.
func (idx *index) save(path string) error {
	var buf strings.Builder
	fmt.Fprintf(&buf, "%d\n", idx.issues)

	ids := make([]uint32, 0, len(idx.comments))
	for id := range idx.comments {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		fmt.Fprintf(&buf, "%d %d\n", id, idx.comments[id])
	}

	randBytes := make([]byte, 4)
	_, _ = rand.Read(randBytes)
	tmpName := fmt.Sprintf(".%s.tmp.%s", filepath.Base(path), hex.EncodeToString(randBytes))
	tmpPath := filepath.Join(filepath.Dir(path), tmpName)

	if err := os.WriteFile(tmpPath, []byte(buf.String()), 0644); err != nil {
		return fmt.Errorf("write temp index: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp index: %w", err)
	}
	return nil
}
