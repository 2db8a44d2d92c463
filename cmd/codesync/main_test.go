package main

import (
	"flag"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestMultiFlag(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	var m multiFlag
	fs.Var(&m, "path", "")
	if err := fs.Parse([]string{"-path", "src", "-path", "docs"}); err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if !reflect.DeepEqual([]string(m), []string{"src", "docs"}) {
		t.Fatalf("multiFlag = %v", m)
	}
}

// 明示的に指定したフラグだけがレイヤに載る。
func TestEngineFlagsLayer(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	var ef engineFlags
	registerEngineFlags(fs, &ef)
	if err := fs.Parse([]string{"-tag", "SYNC", "-jobs", "3", "-exclude", "vendor/**"}); err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	layer := ef.layer(fs)
	if layer.Tag == nil || *layer.Tag != "SYNC" {
		t.Fatalf("Tag = %v", layer.Tag)
	}
	if layer.Jobs == nil || *layer.Jobs != 3 {
		t.Fatalf("Jobs = %v", layer.Jobs)
	}
	if layer.Excludes == nil || !reflect.DeepEqual(*layer.Excludes, []string{"vendor/**"}) {
		t.Fatalf("Excludes = %v", layer.Excludes)
	}
	// 未指定フィールドは nil のまま。
	if layer.Repo != nil || layer.Output != nil || layer.ExcludeTypical != nil {
		t.Fatalf("untouched fields must stay nil: %+v", layer)
	}
}

// フラグ > 環境変数 > 設定ファイル > 既定値の順で解決される。
func TestResolveSettingsの優先順位(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, ".codesync.yaml")
	if err := os.WriteFile(cfgPath, []byte("tag: FILE\njobs: 2\noutput: csv\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("CODESYNC_CONFIG", "")
	t.Setenv("CODESYNC_TAG", "ENV")
	t.Setenv("CODESYNC_OUTPUT", "")
	t.Setenv("CODESYNC_JOBS", "")
	t.Setenv("CODESYNC_COLOR", "never")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	var ef engineFlags
	registerEngineFlags(fs, &ef)
	if err := fs.Parse([]string{"-config", cfgPath, "-tag", "FLAG", "-repo", dir}); err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	st, err := resolveSettings(fs, &ef)
	if err != nil {
		t.Fatalf("resolveSettings error: %v", err)
	}
	if st.opts.Tag != "FLAG" {
		t.Fatalf("Tag = %q, flags must win", st.opts.Tag)
	}
	if st.opts.Jobs != 2 {
		t.Fatalf("Jobs = %d, config file value expected", st.opts.Jobs)
	}
	if st.output != "csv" {
		t.Fatalf("output = %q", st.output)
	}
	if st.colors {
		t.Fatal("CODESYNC_COLOR=never must disable colors")
	}
}

func TestResolveSettingsRejectsBadValues(t *testing.T) {
	t.Setenv("CODESYNC_CONFIG", "")
	t.Setenv("CODESYNC_TAG", "")
	t.Setenv("CODESYNC_OUTPUT", "")
	t.Setenv("CODESYNC_COLOR", "")
	t.Setenv("CODESYNC_JOBS", "abc")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	var ef engineFlags
	registerEngineFlags(fs, &ef)
	if err := fs.Parse(nil); err != nil {
		t.Fatal(err)
	}
	if _, err := resolveSettings(fs, &ef); err == nil {
		t.Fatal("CODESYNC_JOBS=abc should be rejected")
	}
}
