// Package linkcheck wires the per-kind link processors into one run: it
// discovers the files to scan, hands every extracted link to the processor
// that claimed it and folds the verdicts into Stats.
package linkcheck

import (
	"bufio"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"linkcheck/pkg/cache"
	"linkcheck/pkg/config"
	"linkcheck/pkg/datadog"
	"linkcheck/pkg/errs"
	"linkcheck/pkg/github"
	"linkcheck/pkg/local"
	"linkcheck/pkg/web"
)

// webWorkers caps concurrent web requests; everything else runs in order.
const webWorkers = 8

type LinkProcessor interface {
	Process(ctx context.Context, url string, testFileName string) error

	ExtractLinks(line string) []string
}

type Stats struct {
	Files      int
	Lines      int
	TotalLinks int
	Broken     int
	Warnings   int
	CacheHits  int64
}

// Failed reports whether the run should exit non-zero.
func (s Stats) Failed() bool {
	return s.Broken > 0
}

type LinkCheck struct {
	processors []LinkProcessor
	web        *web.LinkProcessor
	files      FileProcessor
	cfg        *config.Config
	logger     *zap.Logger
}

// New assembles the processors. Registration order decides who claims a
// link when extractors overlap: github, then datadog, then plain web, then
// local paths.
func New(rt *Runtime, cfg *config.Config, store *cache.Store, logger *zap.Logger) LinkCheck {
	processors := make([]LinkProcessor, 0, 4)

	gh, err := github.New(rt.CorpGitHubURL, rt.CorpPAT, rt.PAT, rt.Timeout, logger)
	if err != nil {
		logger.Error("can't instantiate the GitHub checker, GitHub links will be skipped", zap.Error(err))
	} else {
		processors = append(processors, gh)
	}

	processors = append(processors, datadog.New(rt.DDAPIKey, rt.DDAppKey, logger))

	var webProc *web.LinkProcessor
	if cfg.FollowWebLinks {
		webProc = web.New(cfg, store, rt.Timeout, logger)
		processors = append(processors, webProc)
	}

	processors = append(processors, local.New(rt.Dir, cfg, logger))

	files := ProcessFilesPipeline(
		WalkDirectoryProcessor(rt),
		IncludeExplicitFilesProcessor(rt.Files),
		FilterByMaskProcessor(rt.FileMasks),
		ExcludePathsProcessor(rt.ExcludePaths),
	)

	return LinkCheck{processors: processors, web: webProc, files: files, cfg: cfg, logger: logger}
}

// GetFiles returns the list of files to process.
func (v *LinkCheck) GetFiles() ([]string, error) {
	return v.files(nil)
}

// ProcessFiles scans every file line by line and checks each extracted
// link. Web links go through a bounded worker pool, the rest run inline.
func (v *LinkCheck) ProcessFiles(ctx context.Context, filesList []string) Stats {
	stats := Stats{}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(webWorkers)

	record := func(link, fileName string, line int, err error) {
		mu.Lock()
		defer mu.Unlock()
		switch v.classify(err) {
		case outcomeBroken:
			stats.Broken++
			v.logger.Warn("broken link", zap.String("error", err.Error()), zap.String("filename", fileName), zap.Int("line", line))
		case outcomeWarning:
			stats.Warnings++
			v.logger.Warn("link can't be verified", zap.String("error", err.Error()), zap.String("filename", fileName), zap.Int("line", line))
		default:
			if err != nil {
				v.logger.Debug("warning dropped by policy", zap.String("link", link), zap.String("filename", fileName), zap.Int("line", line), zap.Error(err))
			} else {
				v.logger.Debug("link validation successful", zap.String("link", link), zap.String("filename", fileName), zap.Int("line", line))
			}
		}
	}

	for _, fileName := range filesList {
		v.logger.Debug("Processing file:", zap.String("fileName", fileName))
		stats.Files++
		f, err := os.Open(fileName)
		if err != nil {
			v.logger.Error("Error opening file", zap.String("file", fileName), zap.Error(err))
			continue
		}

		lines := 0
		linksFound := 0
		scanner := bufio.NewScanner(f)
		codeSnippet := false
		for scanner.Scan() {
			line := scanner.Text()
			if strings.HasPrefix(line, "```") {
				codeSnippet = !codeSnippet
			}
			if codeSnippet {
				lines++
				continue
			}
			for link, processor := range v.processLine(line) {
				linksFound++
				link := link
				processor := processor
				lineNo := lines
				file := fileName
				if v.web != nil && processor == LinkProcessor(v.web) {
					g.Go(func() error {
						record(link, file, lineNo, processor.Process(gctx, link, file))
						return nil
					})
					continue
				}
				record(link, file, lineNo, processor.Process(ctx, link, file))
			}
			lines++
		}
		if err := scanner.Err(); err != nil {
			v.logger.Warn("scan failed", zap.String("file", fileName), zap.Error(err))
		}
		if err := f.Close(); err != nil {
			v.logger.Warn("close failed", zap.String("file", fileName), zap.Error(err))
		}
		stats.Lines = stats.Lines + lines
		stats.TotalLinks = stats.TotalLinks + linksFound

		if v.logger.Core().Enabled(zap.DebugLevel) {
			v.logger.Debug("Processed: ", zap.Int("lines", lines), zap.Int("links", linksFound), zap.String("fileName", fileName))
		} else {
			v.logger.Info("Processed: ", zap.String("fileName", fileName))
		}
	}

	_ = g.Wait()

	if v.web != nil {
		stats.CacheHits = v.web.CacheHits()
	}
	return stats
}

// processLine maps every link found on the line to the processor that
// claimed it. The first claim wins.
func (v *LinkCheck) processLine(line string) map[string]LinkProcessor {
	found := make(map[string]LinkProcessor)
	for _, p := range v.processors {
		for _, link := range p.ExtractLinks(line) {
			if _, ok := found[link]; !ok {
				found[link] = p
			}
		}
	}
	return found
}

type outcome int

const (
	outcomeOK outcome = iota
	outcomeBroken
	outcomeWarning
)

// classify sorts a verdict into ok, broken or warning. Broken links always
// fail the run; warning-grade findings follow the configured policy.
func (v *LinkCheck) classify(err error) outcome {
	if err == nil {
		return outcomeOK
	}

	if errors.Is(err, errs.ErrNotFound) ||
		errors.Is(err, errs.ErrEmptyBody) ||
		errors.Is(err, errs.ErrMissingFragment) ||
		errors.Is(err, errs.ErrEmptyFragment) ||
		errors.Is(err, errs.ErrFragmentOnDir) ||
		errors.Is(err, errs.ErrParentTraversal) {
		return outcomeBroken
	}

	switch v.cfg.WarningPolicy {
	case config.PolicyIgnore:
		return outcomeOK
	case config.PolicyError:
		return outcomeBroken
	default:
		return outcomeWarning
	}
}

// FileProcessor is one stage of the file discovery chain: it receives the
// set collected so far and returns the refined set.
type FileProcessor func(files []string) ([]string, error)

// ProcessFilesPipeline chains the stages left to right.
func ProcessFilesPipeline(procs ...FileProcessor) FileProcessor {
	return func(files []string) ([]string, error) {
		var err error
		for _, p := range procs {
			files, err = p(files)
			if err != nil {
				return nil, err
			}
		}
		return files, nil
	}
}

// WalkDirectoryProcessor walks rt.Dir collecting files that match the
// masks. When explicit files are configured the walk is skipped and the
// input passes through untouched.
func WalkDirectoryProcessor(rt *Runtime) FileProcessor {
	return func(files []string) ([]string, error) {
		if len(rt.Files) != 0 {
			return files, nil
		}
		var result []string
		err := filepath.WalkDir(rt.Dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// Just skip files/dirs we can't read
				return nil
			}
			if d.IsDir() {
				return nil
			}
			if matchesFileMask(d.Name(), rt.FileMasks) {
				result = append(result, path)
			}
			return nil
		})
		return result, err
	}
}

// IncludeExplicitFilesProcessor seeds the chain with the explicitly listed
// files when nothing was collected yet.
func IncludeExplicitFilesProcessor(files []string) FileProcessor {
	return func(input []string) ([]string, error) {
		if len(input) == 0 {
			return files, nil
		}
		return input, nil
	}
}

// FilterByMaskProcessor keeps the files whose base name matches one of the
// masks. No masks means no filtering.
func FilterByMaskProcessor(masks []string) FileProcessor {
	return func(input []string) ([]string, error) {
		if len(masks) == 0 || len(input) == 0 {
			return input, nil
		}
		var res []string
		for _, fileName := range input {
			baseName := filepath.Base(fileName)
			for _, mask := range masks {
				match, err := filepath.Match(mask, baseName)
				if err != nil {
					return nil, err
				}
				if match {
					res = append(res, fileName)
					break
				}
			}
		}
		return res, nil
	}
}

// ExcludePathsProcessor drops the listed paths from the set. Matching is
// exact, duplicates in the input survive.
func ExcludePathsProcessor(exclude []string) FileProcessor {
	return func(input []string) ([]string, error) {
		if len(exclude) == 0 {
			return input, nil
		}
		drop := make(map[string]bool, len(exclude))
		for _, e := range exclude {
			drop[e] = true
		}
		res := make([]string, 0, len(input))
		for _, f := range input {
			if !drop[f] {
				res = append(res, f)
			}
		}
		return res, nil
	}
}

// matchesFileMask checks if a filename matches any of the provided file masks
func matchesFileMask(filename string, masks []string) bool {
	baseName := filepath.Base(filename)
	for _, mask := range masks {
		matched, err := filepath.Match(mask, baseName)
		if err == nil && matched {
			return true
		}
	}
	return false
}

// subtraction returns the elements of left that are not in right. The
// result is deduplicated and unordered.
func subtraction(left, right []string) []string {
	if len(left) == 0 || len(right) == 0 {
		return left
	}
	accu := make(map[string]bool, len(left))
	for _, l := range left {
		accu[l] = true
	}
	for _, r := range right {
		delete(accu, r)
	}
	result := make([]string, 0, len(accu))
	for k := range accu {
		result = append(result, k)
	}
	return result
}
