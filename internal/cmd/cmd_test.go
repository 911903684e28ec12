package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"praia/internal/config"
	"praia/internal/storage/filesystem"
)

func setupTestApp(t *testing.T) (*App, *filesystem.Store) {
	t.Helper()
	dir := t.TempDir()
	store, err := filesystem.Open(dir)
	if err != nil {
		t.Fatalf("failed to open storage: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return &App{
		Store:  store,
		Config: config.Config{Dir: dir, DB: "."},
		Out:    &bytes.Buffer{},
		Err:    &bytes.Buffer{},
	}, store
}

func TestIssueCmd_CreatesAndPrintsID(t *testing.T) {
	app, store := setupTestApp(t)
	out := app.Out.(*bytes.Buffer)

	cmd := newIssueCmd(NewTestProvider(app))
	cmd.SetIn(strings.NewReader("login is broken\nmore detail\n"))
	if err := cmd.Execute(); err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if got := strings.TrimSpace(out.String()); got != "0" {
		t.Errorf("output = %q, want %q", got, "0")
	}

	issue, err := store.GetIssue(context.Background(), 0)
	if err != nil {
		t.Fatalf("GetIssue failed: %v", err)
	}
	if issue.Content != "login is broken\nmore detail\n" {
		t.Errorf("issue content = %q", issue.Content)
	}
}

func TestIssueCmd_EmptyInputAborts(t *testing.T) {
	app, store := setupTestApp(t)

	cmd := newIssueCmd(NewTestProvider(app))
	cmd.SetIn(strings.NewReader("   \n\t\n"))
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for empty input")
	}

	if got := store.IssueCount(); got != 0 {
		t.Errorf("IssueCount() = %d, want 0 after aborted create", got)
	}
}

func TestCommentCmd_AppendsAndPrintsID(t *testing.T) {
	app, store := setupTestApp(t)
	out := app.Out.(*bytes.Buffer)
	errOut := app.Err.(*bytes.Buffer)

	if _, err := store.CreateIssue(context.Background(), "hello\n"); err != nil {
		t.Fatalf("CreateIssue failed: %v", err)
	}

	cmd := newCommentCmd(NewTestProvider(app))
	cmd.SetArgs([]string{"0"})
	cmd.SetIn(strings.NewReader("world\n"))
	if err := cmd.Execute(); err != nil {
		t.Fatalf("comment failed: %v", err)
	}

	if got := strings.TrimSpace(out.String()); got != "1" {
		t.Errorf("output = %q, want %q", got, "1")
	}
	// The issue header is echoed on stderr for confirmation.
	if !strings.Contains(errOut.String(), "/0\thello") {
		t.Errorf("expected issue header on stderr, got %q", errOut.String())
	}
}

func TestCommentCmd_UnknownIssue(t *testing.T) {
	app, _ := setupTestApp(t)

	cmd := newCommentCmd(NewTestProvider(app))
	cmd.SetArgs([]string{"7"})
	cmd.SetIn(strings.NewReader("orphan\n"))
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for unknown issue")
	}
}

func TestCommentCmd_RejectsBadID(t *testing.T) {
	app, _ := setupTestApp(t)

	cmd := newCommentCmd(NewTestProvider(app))
	cmd.SetArgs([]string{"abc"})
	if err := cmd.Execute(); err == nil || !strings.Contains(err.Error(), "invalid id") {
		t.Errorf("error = %v, want invalid id", err)
	}
}

func TestListCmd_Issues(t *testing.T) {
	app, store := setupTestApp(t)
	out := app.Out.(*bytes.Buffer)

	ctx := context.Background()
	if _, err := store.CreateIssue(ctx, "first issue\nbody\n"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.CreateIssue(ctx, "second issue\n"); err != nil {
		t.Fatal(err)
	}

	cmd := newListCmd(NewTestProvider(app))
	if err := cmd.Execute(); err != nil {
		t.Fatalf("list failed: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "/0\tfirst issue") {
		t.Errorf("missing issue 0 line in %q", got)
	}
	if !strings.Contains(got, "/1\tsecond issue") {
		t.Errorf("missing issue 1 line in %q", got)
	}
	if strings.Contains(got, "body") {
		t.Errorf("list should show only the first line, got %q", got)
	}
}

func TestListCmd_Comments(t *testing.T) {
	app, store := setupTestApp(t)
	out := app.Out.(*bytes.Buffer)

	ctx := context.Background()
	if _, err := store.CreateIssue(ctx, "hello\n"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.CreateComment(ctx, 0, "world\n"); err != nil {
		t.Fatal(err)
	}

	cmd := newListCmd(NewTestProvider(app))
	cmd.SetArgs([]string{"0"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("list failed: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "/0/0") || !strings.Contains(got, "/0/1") {
		t.Errorf("missing comment headers in %q", got)
	}
	if !strings.Contains(got, "\thello") || !strings.Contains(got, "\tworld") {
		t.Errorf("missing indented bodies in %q", got)
	}
}

func TestListCmd_UnknownIssue(t *testing.T) {
	app, _ := setupTestApp(t)

	cmd := newListCmd(NewTestProvider(app))
	cmd.SetArgs([]string{"9"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for unknown issue")
	}
}

func TestShowCmd_Issue(t *testing.T) {
	app, store := setupTestApp(t)
	out := app.Out.(*bytes.Buffer)

	if _, err := store.CreateIssue(context.Background(), "full body\nwith lines\n"); err != nil {
		t.Fatal(err)
	}

	cmd := newShowCmd(NewTestProvider(app))
	cmd.SetArgs([]string{"0"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("show failed: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "full body\nwith lines") {
		t.Errorf("missing body in %q", got)
	}
}

func TestShowCmd_Comment(t *testing.T) {
	app, store := setupTestApp(t)
	out := app.Out.(*bytes.Buffer)

	ctx := context.Background()
	if _, err := store.CreateIssue(ctx, "hello\n"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.CreateComment(ctx, 0, "world\n"); err != nil {
		t.Fatal(err)
	}

	cmd := newShowCmd(NewTestProvider(app))
	cmd.SetArgs([]string{"0", "1"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("show failed: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "/0/1") || !strings.Contains(got, "world") {
		t.Errorf("missing comment in %q", got)
	}
}

func TestInitCmd_CreatesConfigAndStore(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	var out bytes.Buffer
	provider := &AppProvider{Out: &out, Err: &bytes.Buffer{}}
	cmd := newInitCmd(provider)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, config.ConfigFile)); err != nil {
		t.Errorf("expected %s to exist: %v", config.ConfigFile, err)
	}
	if _, err := os.Stat(filepath.Join(dir, config.DefaultDB, filesystem.IndexFile)); err != nil {
		t.Errorf("expected seeded index to exist: %v", err)
	}

	// Running init again must refuse to clobber the config.
	cmd = newInitCmd(provider)
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error when config already exists")
	}
}

func TestVersionCmd(t *testing.T) {
	var out bytes.Buffer
	provider := &AppProvider{Out: &out, Err: &bytes.Buffer{}}

	cmd := newVersionCmd(provider)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(out.String(), "praia version") {
		t.Errorf("output = %q, want version string", out.String())
	}
}

func TestReindexCmd_RecoversCorruptIndex(t *testing.T) {
	dir := t.TempDir()

	// Seed a store with data and a save, then corrupt the index.
	store, err := filesystem.Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if _, err := store.CreateIssue(ctx, "survivor\n"); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveIndex(ctx); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}
	if err := writeCorruptIndex(dir); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	provider := &AppProvider{Dir: dir, Out: &out, Err: &bytes.Buffer{}}
	cmd := newReindexCmd(provider)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("reindex failed: %v", err)
	}

	if !strings.Contains(out.String(), "1 issues") {
		t.Errorf("output = %q, want rebuilt count of 1", out.String())
	}

	// The store must open cleanly again.
	reopened, err := filesystem.Open(dir)
	if err != nil {
		t.Fatalf("Open after reindex failed: %v", err)
	}
	defer reopened.Close()
	if got := reopened.IssueCount(); got != 1 {
		t.Errorf("IssueCount() = %d, want 1", got)
	}
}

func writeCorruptIndex(dir string) error {
	return os.WriteFile(filepath.Join(dir, filesystem.IndexFile), []byte("not a count\n"), 0644)
}

func TestParseID(t *testing.T) {
	if id, err := parseID("42"); err != nil || id != 42 {
		t.Errorf("parseID(42) = %d, %v", id, err)
	}
	for _, bad := range []string{"", "-1", "abc", "1.5", "4294967296"} {
		if _, err := parseID(bad); err == nil {
			t.Errorf("parseID(%q) should fail", bad)
		}
	}
}

func TestFirstLine(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"one line", "one line"},
		{"title\nrest", "title"},
		{"  padded  \nrest", "padded"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := firstLine(tc.in); got != tc.want {
			t.Errorf("firstLine(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
