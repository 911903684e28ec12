package filesystem

import (
	"context"
	"sync"
	"testing"
)

// TestConcurrentCreateIssues tests that parallel creators receive dense,
// unique ids with no reuse.
func TestConcurrentCreateIssues(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	const goroutines = 16
	const perGoroutine = 4

	var mu sync.Mutex
	seen := make(map[uint32]bool)

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				id, err := s.CreateIssue(ctx, "concurrent issue")
				if err != nil {
					t.Errorf("CreateIssue failed: %v", err)
					return
				}
				mu.Lock()
				if seen[id] {
					t.Errorf("issue id %d allocated twice", id)
				}
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	total := uint32(goroutines * perGoroutine)
	if len(seen) != int(total) {
		t.Fatalf("allocated %d unique ids, want %d", len(seen), total)
	}
	for id := uint32(0); id < total; id++ {
		if !seen[id] {
			t.Errorf("id %d missing: allocation left a gap", id)
		}
	}
}

// TestConcurrentCreateComments tests the same density for a single issue's
// comment sequence.
func TestConcurrentCreateComments(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	issueID, err := s.CreateIssue(ctx, "body")
	if err != nil {
		t.Fatalf("CreateIssue failed: %v", err)
	}

	const goroutines = 8
	const perGoroutine = 8

	var mu sync.Mutex
	seen := make(map[uint32]bool)

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				id, err := s.CreateComment(ctx, issueID, "concurrent reply")
				if err != nil {
					t.Errorf("CreateComment failed: %v", err)
					return
				}
				mu.Lock()
				if seen[id] {
					t.Errorf("comment id %d allocated twice", id)
				}
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	// Ids 1..N, since 0 is the issue body.
	total := uint32(goroutines * perGoroutine)
	for id := uint32(1); id <= total; id++ {
		if !seen[id] {
			t.Errorf("comment id %d missing", id)
		}
	}
}

// TestConcurrentReadersAndWriters tests that enumeration runs safely against
// concurrent creates: every issue visible in a snapshot is fully written.
func TestConcurrentReadersAndWriters(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 50; i++ {
			if _, err := s.CreateIssue(ctx, "written"); err != nil {
				t.Errorf("CreateIssue failed: %v", err)
				return
			}
		}
	}()

	for i := 0; i < 20; i++ {
		for issue, err := range s.Issues(ctx) {
			if err != nil {
				t.Fatalf("unexpected enumeration error: %v", err)
			}
			if issue.Content != "written" {
				t.Fatalf("observed partially written issue %d: %q", issue.ID, issue.Content)
			}
		}
	}
	<-done
}
