package engine

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"codesync/internal/model"
	"codesync/internal/scan"
	"codesync/internal/util"
	"codesync/internal/walk"
)

const maxJobs = 64

// Run は指定されたオプションに従ってツリーを走査し、CODESYNC 注釈の
// 集計と検証結果を返します。
//
// 戻り値の Result は 1 回分の不変スナップショットです。注釈の文法違反や
// カウント不整合はエラーではなく Result.Issues に集約され、エラーを返す
// のはファイル探索そのものが失敗した場合だけです。
func Run(opts Options) (*Result, error) {
	return RunContext(context.Background(), opts)
}

// RunContext は Run のコンテキスト付き版です。キャンセルは走査中の
// ワーカーと git の呼び出しに伝播します。
func RunContext(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()
	if strings.TrimSpace(opts.Tag) == "" {
		opts.Tag = scan.Keyword
	}
	if err := validateTag(opts.Tag); err != nil {
		return nil, err
	}
	if opts.Jobs <= 0 {
		opts.Jobs = runtime.NumCPU()
	}
	if opts.Jobs > maxJobs {
		opts.Jobs = maxJobs
	}
	if strings.TrimSpace(opts.RepoDir) == "" {
		opts.RepoDir = "."
	}

	files, err := walk.List(ctx, opts.RepoDir, opts.Paths, opts.Excludes, opts.ExcludeTypical)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return finishResult(nil, nil, 0, start), nil
	}

	matches, errs := collectMatches(ctx, opts, files)
	return finishResult(matches, errs, len(files), start), nil
}

type scanJob struct {
	path string
}

type scanResult struct {
	matches []model.Match
	err     *ScanError
}

// collectMatches は各ユニットを独立したワーカーで走査し、全ユニット分が
// 出揃ったところで (file, line, col) の正規順に並べ替えます。集約順が
// ワーカーのスケジューリングに依存しないための合流バリアです。
func collectMatches(ctx context.Context, opts Options, files []string) ([]model.Match, []ScanError) {
	jobs := make(chan scanJob)
	results := make(chan scanResult)

	workers := opts.Jobs
	if workers > len(files) {
		workers = len(files)
	}
	if workers < 1 {
		workers = 1
	}
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for job := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
				}
				matches, scanErr := scanFile(opts, job.path)
				results <- scanResult{matches: matches, err: scanErr}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case jobs <- scanJob{path: path}:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	prog := util.NewProgress(len(files), opts.Progress)
	var all []model.Match
	var errs []ScanError
	for res := range results {
		if len(res.matches) > 0 {
			all = append(all, res.matches...)
		}
		if res.err != nil {
			errs = append(errs, *res.err)
		}
		prog.Advance()
	}
	prog.Done()

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Loc.Less(all[j].Loc)
	})
	sort.SliceStable(errs, func(i, j int) bool {
		if errs[i].File == errs[j].File {
			return errs[i].Stage < errs[j].Stage
		}
		return errs[i].File < errs[j].File
	})
	return all, errs
}

// scanFile は 1 ユニットの純粋なパイプライン。共有状態には触れない。
func scanFile(opts Options, relPath string) ([]model.Match, *ScanError) {
	full := filepath.Join(opts.RepoDir, relPath)
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, &ScanError{File: relPath, Stage: "read", Message: strings.TrimSpace(err.Error())}
	}
	if bytes.IndexByte(data, 0) >= 0 {
		return nil, nil
	}
	if opts.MaxFileBytes > 0 && len(data) > opts.MaxFileBytes {
		return nil, nil
	}
	return scan.AllKeyword(relPath, data, opts.Tag), nil
}

func finishResult(matches []model.Match, errs []ScanError, files int, start time.Time) *Result {
	snap := aggregate(matches)
	res := &Result{
		Groups:       snap.sortedGroups(),
		Issues:       validateSnapshot(snap),
		FilesScanned: files,
		ElapsedMS:    time.Since(start).Milliseconds(),
		Errors:       errs,
		ErrorCount:   len(errs),
	}
	for _, g := range res.Groups {
		res.TotalComments += len(g.Comments)
	}
	res.TotalLabels = len(res.Groups)
	return res
}

func validateTag(tag string) error {
	for i := 0; i < len(tag); i++ {
		switch tag[i] {
		case '(', ')', ' ', '\t', '\r', '\n':
			return fmt.Errorf("invalid tag %q: must not contain parentheses or whitespace", tag)
		}
	}
	return nil
}
