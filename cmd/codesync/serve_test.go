package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"codesync/internal/web"
)

func TestAPICheckHandler(t *testing.T) {
	repoDir := t.TempDir()
	src := "// CODESYNC(auth, 3)\n"
	if err := os.WriteFile(filepath.Join(repoDir, "main.go"), []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	handler := apiCheckHandler(repoDir)
	req := httptest.NewRequest("GET", "/api/check", nil)
	rr := httptest.NewRecorder()
	handler(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	var resp struct {
		Clean  bool `json:"clean"`
		Issues []struct {
			Kind     string `json:"kind"`
			Label    string `json:"label"`
			Declared int    `json:"declared"`
			Actual   int    `json:"actual"`
		} `json:"issues"`
		TotalComments int `json:"total_comments"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, rr.Body.String())
	}
	if resp.Clean {
		t.Fatal("expected issues")
	}
	if len(resp.Issues) != 1 || resp.Issues[0].Kind != "wrong_occurrence_count" {
		t.Fatalf("issues = %+v", resp.Issues)
	}
	if resp.Issues[0].Label != "auth" || resp.Issues[0].Declared != 3 || resp.Issues[0].Actual != 1 {
		t.Fatalf("issue fields = %+v", resp.Issues[0])
	}
	if resp.TotalComments != 1 {
		t.Fatalf("TotalComments = %d", resp.TotalComments)
	}
}

func TestAPICheckHandlerはクエリを検証する(t *testing.T) {
	handler := apiCheckHandler(t.TempDir())

	for _, query := range []string{"jobs=0", "exclude_typical=maybe", "tag=BAD+TAG"} {
		req := httptest.NewRequest("GET", "/api/check?"+query, nil)
		rr := httptest.NewRecorder()
		handler(rr, req)
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("query %q: status = %d, want 400", query, rr.Code)
		}
		var resp map[string]string
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatalf("query %q: invalid error JSON: %v", query, err)
		}
		if resp["error"] == "" {
			t.Fatalf("query %q: missing error message", query)
		}
	}
}

func TestAPICheckHandlerCleanTree(t *testing.T) {
	repoDir := t.TempDir()
	for _, name := range []string{"a.txt", "b.txt"} {
		if err := os.WriteFile(filepath.Join(repoDir, name), []byte("CODESYNC(pair)\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	handler := apiCheckHandler(repoDir)
	rr := httptest.NewRecorder()
	handler(rr, httptest.NewRequest("GET", "/api/check", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var resp struct {
		Clean  bool              `json:"clean"`
		Issues []json.RawMessage `json:"issues"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !resp.Clean || len(resp.Issues) != 0 {
		t.Fatalf("expected clean result: %s", rr.Body.String())
	}
}

func TestWebUIはアセットを配信する(t *testing.T) {
	mux := http.NewServeMux()
	web.Register(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	res, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("index status = %d", res.StatusCode)
	}
	if got := res.Header.Get("Content-Security-Policy"); !strings.Contains(got, "script-src 'self'") {
		t.Fatalf("CSP missing: %q", got)
	}

	for _, path := range []string{"/assets/styles.css", "/assets/ui.js"} {
		res, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatal(err)
		}
		res.Body.Close()
		if res.StatusCode != http.StatusOK {
			t.Fatalf("%s status = %d", path, res.StatusCode)
		}
	}
}
