package engine

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestRunCleanTree(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"a.go": "// CODESYNC(auth-flow)\nfunc a() {}\n",
		"b.go": "// CODESYNC(auth-flow)\nfunc b() {}\n",
	})

	res, err := Run(Options{RepoDir: dir, Jobs: 2})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if !res.Clean() {
		t.Fatalf("expected clean result, got issues: %+v", res.Issues)
	}
	if res.TotalComments != 2 || res.TotalLabels != 1 {
		t.Fatalf("totals = %d comments / %d labels", res.TotalComments, res.TotalLabels)
	}
	if res.FilesScanned != 2 {
		t.Fatalf("FilesScanned = %d, want 2", res.FilesScanned)
	}
}

func TestRunWrongOccurrenceCount(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"a.go": "// CODESYNC(db-schema, 3)\n",
		"b.go": "// CODESYNC(db-schema, 3)\n",
	})

	res, err := Run(Options{RepoDir: dir})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(res.Issues) != 1 {
		t.Fatalf("expected 1 issue, got %d: %+v", len(res.Issues), res.Issues)
	}
	issue := res.Issues[0]
	if issue.Kind != IssueWrongCount {
		t.Fatalf("Kind = %s, want wrong_occurrence_count", issue.Kind)
	}
	if issue.Declared != 3 || issue.Actual != 2 {
		t.Fatalf("declared/actual = %d/%d, want 3/2", issue.Declared, issue.Actual)
	}
	want := "expected 3 comments with label `db-schema`, found 2"
	if got := issue.Message(); got != want {
		t.Fatalf("Message = %q, want %q", got, want)
	}
}

// count の食い違いがあるラベルでは count_mismatch だけを報告し、
// wrong_occurrence_count は抑制される。
func TestRunCountMismatchが優先される(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"a.go": "// CODESYNC(cache, 2)\n",
		"b.go": "// CODESYNC(cache, 3)\n",
	})

	res, err := Run(Options{RepoDir: dir})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(res.Issues) != 1 {
		t.Fatalf("expected exactly 1 issue, got %d: %+v", len(res.Issues), res.Issues)
	}
	issue := res.Issues[0]
	if issue.Kind != IssueCountMismatch {
		t.Fatalf("Kind = %s, want count_mismatch", issue.Kind)
	}
	if len(issue.Conflicts) != 2 {
		t.Fatalf("Conflicts = %+v, want 2 entries", issue.Conflicts)
	}
	if issue.Conflicts[0].Count != 2 || issue.Conflicts[1].Count != 3 {
		t.Fatalf("conflict counts = %d,%d, want 2,3", issue.Conflicts[0].Count, issue.Conflicts[1].Count)
	}
}

func TestRunMalformedComment(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"a.go": "// CODESYNC(x, zero)\n",
	})

	res, err := Run(Options{RepoDir: dir})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(res.Issues) != 1 {
		t.Fatalf("expected 1 issue, got %d", len(res.Issues))
	}
	if res.Issues[0].Kind != IssueMalformed {
		t.Fatalf("Kind = %s, want malformed", res.Issues[0].Kind)
	}
	if res.TotalComments != 0 {
		t.Fatalf("invalid matches must not count as comments, got %d", res.TotalComments)
	}
}

// 同じツリーを何度走査しても結果は一致する。ワーカー数にも依存しない。
func TestRunは決定的(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"src/a.go":  "// CODESYNC(alpha)\n// CODESYNC(beta, 1)\n",
		"src/b.go":  "// CODESYNC(alpha)\nCODESYNC(broken\n",
		"docs/c.md": "<!-- CODESYNC(beta, 1) -->\n",
	})

	var first *Result
	for _, jobs := range []int{1, 4, 8} {
		res, err := Run(Options{RepoDir: dir, Jobs: jobs})
		if err != nil {
			t.Fatalf("Run(jobs=%d) error: %v", jobs, err)
		}
		res.ElapsedMS = 0
		if first == nil {
			first = res
			continue
		}
		if !reflect.DeepEqual(first, res) {
			t.Fatalf("results differ between jobs=1 and jobs=%d:\n%+v\n%+v", jobs, first, res)
		}
	}
	// ラベルは辞書順、不正出現の Issue が先頭。
	if len(first.Groups) != 2 || first.Groups[0].Label != "alpha" || first.Groups[1].Label != "beta" {
		t.Fatalf("groups out of order: %+v", first.Groups)
	}
	if len(first.Issues) == 0 || first.Issues[0].Kind != IssueMalformed {
		t.Fatalf("malformed issue should come first: %+v", first.Issues)
	}
}

func TestRunSkipsBinaryAndOversized(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"bin.dat": "CODESYNC(bin)\x00after",
		"big.txt": "// CODESYNC(big)\n                                        \n",
		"ok.txt":  "CODESYNC(ok, 1)\n",
	})

	res, err := Run(Options{RepoDir: dir, MaxFileBytes: 20})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	labels := res.Labels()
	if len(labels) != 1 || labels[0] != "ok" {
		t.Fatalf("labels = %v, want [ok]", labels)
	}
}

func TestRunCustomTag(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"a.txt": "SYNC-MARK(pair, 1)\nCODESYNC(ignored, 1)\n",
	})

	res, err := Run(Options{RepoDir: dir, Tag: "SYNC-MARK"})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	labels := res.Labels()
	if len(labels) != 1 || labels[0] != "pair" {
		t.Fatalf("labels = %v, want [pair]", labels)
	}
}

func TestRunRejectsBadTag(t *testing.T) {
	if _, err := Run(Options{RepoDir: ".", Tag: "BAD TAG"}); err == nil {
		t.Fatal("Run should reject tags containing whitespace")
	}
}

func TestRunEmptyTree(t *testing.T) {
	res, err := Run(Options{RepoDir: t.TempDir()})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if !res.Clean() || res.FilesScanned != 0 || len(res.Groups) != 0 {
		t.Fatalf("empty tree should yield an empty clean result: %+v", res)
	}
}

func TestQueryLabels(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"a.go": "// CODESYNC(zeta, 1)\n// CODESYNC(alpha, 1)\n",
	})

	res, err := Run(Options{RepoDir: dir})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	labels := res.Labels()
	if !reflect.DeepEqual(labels, []string{"alpha", "zeta"}) {
		t.Fatalf("Labels = %v, want [alpha zeta]", labels)
	}

	comments, err := res.CommentsForLabel("alpha")
	if err != nil {
		t.Fatalf("CommentsForLabel error: %v", err)
	}
	if len(comments) != 1 || comments[0].Label != "alpha" {
		t.Fatalf("comments = %+v", comments)
	}

	if _, err := res.CommentsForLabel("nope"); !errors.Is(err, ErrUnknownLabel) {
		t.Fatalf("expected ErrUnknownLabel, got %v", err)
	}
}
