// Package walk discovers the files a run will scan. Inside a git work
// tree it defers to git so ignore rules stay authoritative; elsewhere it
// falls back to a plain directory walk.
package walk

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"codesync/internal/execx"
)

var typicalExcludePatterns = []string{
	":(glob,exclude)vendor/**",
	":(glob,exclude)node_modules/**",
	":(glob,exclude)dist/**",
	":(glob,exclude)build/**",
	":(glob,exclude)target/**",
	":(glob,exclude)*.min.*",
}

var typicalExcludeDirs = map[string]struct{}{
	"vendor":       {},
	"node_modules": {},
	"dist":         {},
	"build":        {},
	"target":       {},
}

// List returns the relative slash-separated paths of every candidate file
// under root, in traversal order. Excludes are git pathspec globs; with
// typical set, common vendored/generated trees are excluded too.
func List(ctx context.Context, root string, includes, excludes []string, typical bool) ([]string, error) {
	return ListWith(ctx, execx.DefaultRunner(), root, includes, excludes, typical)
}

// ListWith is List with an injectable command runner.
func ListWith(ctx context.Context, r execx.Runner, root string, includes, excludes []string, typical bool) ([]string, error) {
	if insideWorkTree(ctx, r, root) {
		return gitListFiles(ctx, r, root, includes, excludes, typical)
	}
	return walkDir(root, includes, excludes, typical)
}

func insideWorkTree(ctx context.Context, r execx.Runner, root string) bool {
	out, err := execx.Git(ctx, r, root, "rev-parse", "--is-inside-work-tree")
	return err == nil && strings.TrimSpace(string(out)) == "true"
}

func gitListFiles(ctx context.Context, r execx.Runner, root string, includes, excludes []string, typical bool) ([]string, error) {
	args := []string{"-c", "core.quotePath=false", "ls-files", "-z", "--cached", "--others", "--exclude-standard"}
	args = append(args, buildPathspecs(includes, excludes, typical)...)
	out, err := execx.Git(ctx, r, root, args...)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	if len(out) == 0 {
		return nil, nil
	}
	parts := bytes.Split(out, []byte{0})
	paths := make([]string, 0, len(parts))
	for _, p := range parts {
		if len(p) == 0 {
			continue
		}
		paths = append(paths, filepath.ToSlash(string(p)))
	}
	return paths, nil
}

func buildPathspecs(includes, excludes []string, typical bool) []string {
	normalized := make([]string, 0, len(includes))
	for _, raw := range includes {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		normalized = append(normalized, filepath.ToSlash(trimmed))
	}

	out := make([]string, 0, len(normalized)+len(excludes)+len(typicalExcludePatterns)+2)
	out = append(out, "--")
	if len(normalized) == 0 {
		out = append(out, ".")
	} else {
		out = append(out, normalized...)
	}
	if typical {
		out = append(out, typicalExcludePatterns...)
	}
	for _, raw := range excludes {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		trimmed = filepath.ToSlash(trimmed)
		if strings.HasPrefix(trimmed, ":!") || strings.HasPrefix(trimmed, ":(exclude)") || strings.HasPrefix(trimmed, ":(glob,exclude)") {
			out = append(out, trimmed)
			continue
		}
		out = append(out, ":(glob,exclude)"+trimmed)
	}
	return out
}

func walkDir(root string, includes, excludes []string, typical bool) ([]string, error) {
	globs := make([]string, 0, len(excludes))
	for _, raw := range excludes {
		trimmed := strings.TrimSpace(raw)
		trimmed = strings.TrimPrefix(trimmed, ":(glob,exclude)")
		trimmed = strings.TrimPrefix(trimmed, ":(exclude)")
		trimmed = strings.TrimPrefix(trimmed, ":!")
		if trimmed != "" {
			globs = append(globs, filepath.ToSlash(trimmed))
		}
	}

	var paths []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(root, p)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if rel == "." {
				return nil
			}
			base := d.Name()
			if base == ".git" {
				return fs.SkipDir
			}
			if typical {
				if _, skip := typicalExcludeDirs[base]; skip {
					return fs.SkipDir
				}
			}
			if matchAnyGlob(globs, rel) {
				return fs.SkipDir
			}
			return nil
		}
		if typical && strings.Contains(d.Name(), ".min.") {
			return nil
		}
		if matchAnyGlob(globs, rel) {
			return nil
		}
		if !matchIncludes(includes, rel) {
			return nil
		}
		paths = append(paths, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return paths, nil
}

func matchIncludes(includes []string, rel string) bool {
	effective := 0
	for _, raw := range includes {
		inc := strings.TrimSpace(raw)
		if inc == "" {
			continue
		}
		effective++
		inc = filepath.ToSlash(inc)
		if inc == "." || rel == inc || strings.HasPrefix(rel, strings.TrimSuffix(inc, "/")+"/") {
			return true
		}
		if ok, _ := path.Match(inc, rel); ok {
			return true
		}
	}
	return effective == 0
}

func matchAnyGlob(globs []string, rel string) bool {
	for _, g := range globs {
		if ok, _ := path.Match(g, rel); ok {
			return true
		}
		if ok, _ := path.Match(g, path.Base(rel)); ok {
			return true
		}
		// foo/** style prefix excludes
		if strings.HasSuffix(g, "/**") && strings.HasPrefix(rel, strings.TrimSuffix(g, "/**")+"/") {
			return true
		}
		if strings.HasSuffix(g, "/**") && rel == strings.TrimSuffix(g, "/**") {
			return true
		}
	}
	return false
}
