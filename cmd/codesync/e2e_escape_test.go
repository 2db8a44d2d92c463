//go:build e2e

package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os/exec"
	"testing"
	"time"

	"github.com/chromedp/chromedp"

	"codesync/internal/web"
)

func TestRenderはHTMLエスケープでXSSを防止する(t *testing.T) {
	t.Parallel()

	if !hasBrowser() {
		t.Skip("Chrome/Chromiumが見つからないためスキップします")
	}

	mux := http.NewServeMux()
	web.Register(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	// chromedp navigation can take some time in CI environments.
	ctx, cancel = context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	fixture := `({
		clean: false,
		issues: [{
			kind: 'malformed',
			label: '<img src=x onerror=alert(1)>',
			raw: '(x, <script>alert(1)</script>)',
			locations: [{file: 'dir/<file>&.go', line: 12, col: 3}],
		}],
		total_comments: 1,
		total_labels: 1,
		files_scanned: 1,
	})`

	var kind, label, detail, location string
	var labelCellHTML string
	var nodeCount int

	err := chromedp.Run(ctx,
		chromedp.Navigate(srv.URL),
		chromedp.WaitVisible(`#out`, chromedp.ByID),
		chromedp.Evaluate(fmt.Sprintf(`const data = %s; document.getElementById('out').innerHTML = render(data);`, fixture), nil),
		chromedp.Text(`#out tbody tr td:nth-child(1)`, &kind, chromedp.ByQuery),
		chromedp.Text(`#out tbody tr td:nth-child(2)`, &label, chromedp.ByQuery),
		chromedp.InnerHTML(`#out tbody tr td:nth-child(2)`, &labelCellHTML, chromedp.ByQuery),
		chromedp.Text(`#out tbody tr td:nth-child(3)`, &detail, chromedp.ByQuery),
		chromedp.Text(`#out tbody tr td:nth-child(4) code`, &location, chromedp.ByQuery),
		chromedp.Evaluate(`document.querySelectorAll('#out img, #out script').length`, &nodeCount),
	)
	if err != nil {
		t.Fatalf("chromedpの実行に失敗しました: %v", err)
	}

	if kind != "malformed" {
		t.Fatalf("kind = %q", kind)
	}
	if label != "<img src=x onerror=alert(1)>" {
		t.Fatalf("ラベルがテキストとして表示されていません: %q", label)
	}
	if labelCellHTML != "&lt;img src=x onerror=alert(1)&gt;" {
		t.Fatalf("ラベルがエスケープされていません: %q", labelCellHTML)
	}
	if detail != "(x, <script>alert(1)</script>)" {
		t.Fatalf("raw がテキストとして表示されていません: %q", detail)
	}
	if location != "dir/<file>&.go:12:3" {
		t.Fatalf("location = %q", location)
	}
	if nodeCount != 0 {
		t.Fatalf("悪意ある要素が DOM に生成されています: %d", nodeCount)
	}
}

func hasBrowser() bool {
	for _, name := range []string{"google-chrome", "chromium", "chromium-browser", "chrome"} {
		if _, err := exec.LookPath(name); err == nil {
			return true
		}
	}
	return false
}
