// Package local implements local link validation.
// Local links point to files in the same repository relative to the file
// that contains them. Example: [README](../../README.md)
package local

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"linkcheck/pkg/config"
	"linkcheck/pkg/errs"
	"linkcheck/pkg/markdown"
	"linkcheck/pkg/regex"
)

// #L10 and #L10-L20 address lines, not headings.
var lineAnchor = regexp.MustCompile(`^L\d+`)

type LinkProcessor struct {
	root   string
	cfg    *config.Config
	logger *zap.Logger
}

// New creates a processor for local links. root is the directory the scan
// started from; links resolving outside of it are rejected unless
// traverse-parent-directories is enabled.
func New(root string, cfg *config.Config, logger *zap.Logger) *LinkProcessor {
	return &LinkProcessor{
		root:   root,
		cfg:    cfg,
		logger: logger,
	}
}

func (proc *LinkProcessor) Process(_ context.Context, link string, testFileName string) error {
	proc.logger.Debug("validating local link", zap.String("link", link), zap.String("file", testFileName))

	path, fragment, err := proc.parseLink(link)
	if err != nil {
		return err
	}

	target := proc.resolveTargetPath(path, testFileName)
	if err := proc.checkScope(link, target); err != nil {
		return err
	}

	return proc.validateTarget(target, fragment)
}

// parseLink splits a link into its path and fragment parts.
func (proc *LinkProcessor) parseLink(link string) (string, string, error) {
	path, fragment, found := strings.Cut(link, "#")
	if !found {
		return path, "", nil
	}
	if fragment == "" {
		return "", "", errs.NewEmptyFragment(link)
	}
	return path, fragment, nil
}

// resolveTargetPath resolves linkPath against the directory of the file the
// link was found in. Absolute paths are taken as-is.
func (proc *LinkProcessor) resolveTargetPath(linkPath string, testFileName string) string {
	if filepath.IsAbs(linkPath) {
		return filepath.Clean(linkPath)
	}
	return filepath.Join(filepath.Dir(testFileName), linkPath)
}

// checkScope rejects targets that escape the scan root when
// traverse-parent-directories is off.
func (proc *LinkProcessor) checkScope(link string, target string) error {
	if proc.root == "" || proc.cfg == nil || proc.cfg.TraverseParentDirectories {
		return nil
	}

	absRoot, err := filepath.Abs(proc.root)
	if err != nil {
		return err
	}
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return err
	}
	rel, err := filepath.Rel(absRoot, absTarget)
	if err != nil {
		return errs.NewParentTraversal(link)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return errs.NewParentTraversal(link)
	}
	return nil
}

// validateTarget checks that the target exists and, for markdown files, that
// the fragment matches one of its headings.
func (proc *LinkProcessor) validateTarget(targetPath string, fragment string) error {
	info, err := os.Stat(targetPath)
	if err != nil {
		if os.IsNotExist(err) {
			return errs.NewNotFound(targetPath)
		}
		return err
	}

	if info.IsDir() {
		if fragment != "" {
			return errs.NewFragmentOnDir(fmt.Sprintf("%s#%s", targetPath, fragment))
		}
		return nil
	}

	if fragment == "" {
		return nil
	}
	if lineAnchor.MatchString(fragment) {
		return nil
	}
	if strings.ToLower(filepath.Ext(targetPath)) != ".md" {
		// fragments on other file types can't be resolved to anything
		return nil
	}

	f, err := os.Open(targetPath)
	if err != nil {
		return err
	}
	defer f.Close()

	found, err := markdown.HasAnchor(f, fragment)
	if err != nil {
		return fmt.Errorf("can't read '%s': %w", targetPath, err)
	}
	if !found {
		return errs.NewMissingFragment(targetPath, fragment)
	}
	return nil
}

func (proc *LinkProcessor) ExtractLinks(line string) []string {
	matches := regex.LocalPath.FindAllStringSubmatch(line, -1)
	if len(matches) == 0 {
		return nil
	}

	urls := make([]string, 0, len(matches))
	for _, match := range matches {
		if len(match) > 1 && match[1] != "" {
			urls = append(urls, match[1])
		}
	}
	return urls
}
