package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"lintsweep/internal/ignorefile"
	"lintsweep/internal/model"
	"lintsweep/internal/registry"
	"lintsweep/internal/report"
	"lintsweep/internal/resolve"
	"lintsweep/internal/scanner"
	"lintsweep/internal/util"
)

const maxWorkers = 64

// ErrNoReadableFiles はどのファイルも読めなかったときの実行全体の失敗です。
var ErrNoReadableFiles = errors.New("no files could be read")

// Run は指定されたオプションに従ってソースツリーを走査し、
// 抑制ディレクティブの Report を返します。
//
// ファイル単位の失敗は Report.Anomalies に集約され走査は継続します。
// ctx がキャンセルされた場合、部分的な Report は返しません。
func Run(ctx context.Context, opts Options) (*report.Report, error) {
	start := time.Now()
	if opts.Root == "" {
		opts.Root = "."
	}
	if opts.Jobs <= 0 {
		opts.Jobs = runtime.NumCPU()
	}
	if opts.Jobs > maxWorkers {
		opts.Jobs = maxWorkers
	}

	sc, err := scanner.New(registry.New(opts.CustomGrammars))
	if err != nil {
		return nil, err
	}

	sources, ignores, walkAnomalies, err := walkTree(opts)
	if err != nil {
		return nil, err
	}

	anomalies := walkAnomalies
	fileList := make([]string, len(sources))
	for i, sf := range sources {
		fileList[i] = sf.rel
	}

	ignoreFindings, ignoreAnomalies := resolveIgnoreLists(opts.Root, ignores, fileList)
	anomalies = append(anomalies, ignoreAnomalies...)

	inline, scanAnomalies, readFailures, err := scanSources(ctx, opts, sc, sources)
	if err != nil {
		return nil, err
	}
	anomalies = append(anomalies, scanAnomalies...)

	if len(sources) > 0 && readFailures == len(sources) {
		return nil, fmt.Errorf("%w: %d files failed", ErrNoReadableFiles, readFailures)
	}

	findings := report.Aggregate(inline, ignoreFindings)
	report.SortAnomalies(anomalies)

	return &report.Report{
		Findings:   findings,
		Total:      len(findings),
		Anomalies:  anomalies,
		ScannedNum: len(sources) - readFailures,
		ElapsedMS:  time.Since(start).Milliseconds(),
	}, nil
}

type scanResult struct {
	findings  []model.Finding
	anomalies []model.Anomaly
	readFail  bool
}

// scanSources fans file scans out over a bounded worker pool and collects
// the partial results. The collection loop is the only synchronization
// point; each file scan is a pure function of its own content.
func scanSources(ctx context.Context, opts Options, sc *scanner.Scanner, sources []sourceFile) ([]model.Finding, []model.Anomaly, int, error) {
	if len(sources) == 0 {
		return nil, nil, 0, nil
	}
	prog := util.NewProgress(len(sources), opts.Progress)
	jobs := make(chan sourceFile)
	results := make(chan scanResult)

	var wg sync.WaitGroup
	wg.Add(opts.Jobs)
	for i := 0; i < opts.Jobs; i++ {
		go func() {
			defer wg.Done()
			for sf := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
				}
				results <- scanOne(opts.Root, sf, sc)
				prog.Advance()
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, sf := range sources {
			select {
			case <-ctx.Done():
				return
			case jobs <- sf:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var findings []model.Finding
	var anomalies []model.Anomaly
	readFailures := 0
	for res := range results {
		findings = append(findings, res.findings...)
		anomalies = append(anomalies, res.anomalies...)
		if res.readFail {
			readFailures++
		}
	}
	prog.Done()

	if err := ctx.Err(); err != nil {
		return nil, nil, 0, err
	}
	return findings, anomalies, readFailures, nil
}

// scanOne reads, scans and resolves a single file.
func scanOne(root string, sf sourceFile, sc *scanner.Scanner) scanResult {
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(sf.rel)))
	if err != nil {
		return scanResult{readFail: true, anomalies: []model.Anomaly{{
			Kind:    model.AnomalyScanFailure,
			File:    sf.rel,
			Message: readErrMessage(err),
		}}}
	}
	if !utf8.Valid(data) {
		return scanResult{readFail: true, anomalies: []model.Anomaly{{
			Kind:    model.AnomalyScanFailure,
			File:    sf.rel,
			Message: "content is not valid UTF-8",
		}}}
	}
	matches, anomalies := sc.Scan(sf.rel, data, sf.eco)
	findings, resolveAnomalies := resolve.File(matches, len(scanner.SplitLines(data)))
	return scanResult{findings: findings, anomalies: append(anomalies, resolveAnomalies...)}
}

// resolveIgnoreLists parses every discovered ignore-list file and applies
// its patterns to the files below the ignore file's own directory.
func resolveIgnoreLists(root string, ignores []ignoreFile, fileList []string) ([]model.Finding, []model.Anomaly) {
	var findings []model.Finding
	var anomalies []model.Anomaly
	for _, ign := range ignores {
		data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(ign.rel)))
		if err != nil {
			anomalies = append(anomalies, model.Anomaly{
				Kind:    model.AnomalyIgnoreListFailure,
				File:    ign.rel,
				Message: readErrMessage(err),
			})
			continue
		}
		rules := ignorefile.Parse(ign.rel, data)
		scoped, prefix := scopeFiles(ign.dir, fileList)
		for _, f := range rules.Resolve(scoped) {
			f.File = prefix + f.File
			findings = append(findings, f)
		}
	}
	return findings, anomalies
}

// scopeFiles narrows the file list to paths under dir, rebased onto it.
func scopeFiles(dir string, files []string) ([]string, string) {
	if dir == "." || dir == "" {
		return files, ""
	}
	prefix := dir + "/"
	var out []string
	for _, f := range files {
		if strings.HasPrefix(f, prefix) {
			out = append(out, strings.TrimPrefix(f, prefix))
		}
	}
	return out, prefix
}

func readErrMessage(err error) string {
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		return "unknown error"
	}
	return msg
}
