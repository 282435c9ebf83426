package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/go-github/v68/github"

	"linkcheck/pkg/errs"
	"linkcheck/pkg/markdown"
)

type ghHandler func(
	ctx context.Context,
	c Client,
	owner, repo, ref, path, fragment string,
) error

type handlerEntry struct {
	name string
	fn   ghHandler
}

// #L10 and #L10-L20 address lines, not headings.
var lineAnchor = regexp.MustCompile(`^L\d+`)

func handleNothing(_ context.Context, _ Client, _, _, _, _, _ string) error {
	return nil
}

func handleRepoExist(ctx context.Context, c Client, owner, repo, _, _, _ string) error {
	_, _, err := c.Repositories(ctx, owner, repo)
	return err
}

func handleContents(ctx context.Context, c Client, owner, repo, ref, path, fragment string) error {
	file, _, _, err := c.GetContents(ctx, owner, repo, ref, path)
	if err != nil {
		return err
	}
	if fragment == "" || file == nil {
		// directory listings can't be checked any deeper
		return nil
	}
	if lineAnchor.MatchString(fragment) {
		return nil
	}
	if !strings.HasSuffix(strings.ToLower(path), ".md") {
		return nil
	}
	content, err := file.GetContent()
	if err != nil {
		return fmt.Errorf("can't decode '%s': %w", path, err)
	}
	found, err := markdown.HasAnchor(strings.NewReader(content), fragment)
	if err != nil {
		return err
	}
	if !found {
		return errs.NewMissingFragment(path, fragment)
	}
	return nil
}

func handleCommit(ctx context.Context, c Client, owner, repo, ref, _, _ string) error {
	if ref == "" {
		// /commits without a ref is just the history page
		_, _, err := c.Repositories(ctx, owner, repo)
		return err
	}
	_, _, err := c.GetCommit(ctx, owner, repo, ref, &github.ListOptions{})
	return err
}

func handleCompareCommits(ctx context.Context, c Client, owner, repo, ref, _, _ string) error {
	base, head, found := strings.Cut(ref, "...")
	if !found {
		// /compare/<head> diffs against the default branch
		repository, _, err := c.Repositories(ctx, owner, repo)
		if err != nil {
			return err
		}
		base, head = repository.GetDefaultBranch(), ref
	}
	if base == "" || head == "" {
		return fmt.Errorf("invalid compare range %q", ref)
	}
	_, _, err := c.CompareCommits(ctx, owner, repo, base, head, &github.ListOptions{})
	return err
}

// handleWorkflow validates the UI forms under /actions:
//   - /actions
//   - /actions/workflows/<file>
//   - /actions/workflows/<file>/badge.svg
//   - /actions/runs/<id> and deeper
//
// if the workflow exists, then the badge exists too
func handleWorkflow(ctx context.Context, c Client, owner, repo, ref, path, _ string) error {
	path = strings.Trim(path, "/")
	switch ref {
	case "workflows":
		path = strings.TrimSuffix(path, "/badge.svg")
		_, _, err := c.GetWorkflowByFileName(ctx, owner, repo, path)
		return err
	case "runs":
		return handleWorkflowRun(ctx, c, owner, repo, path)
	}
	// /actions root and the remaining tabs (caches, variables, ...) only
	// need the repo
	_, _, err := c.Repositories(ctx, owner, repo)
	return err
}

// handleWorkflowRun resolves /actions/runs/<id> pages: the run itself,
// /job/<jobID>, /attempts/<n> and their /logs and /usage suffixes.
func handleWorkflowRun(ctx context.Context, c Client, owner, repo, path string) error {
	segs := strings.Split(path, "/")
	runID, err := strconv.ParseInt(segs[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid workflow run id %q: %w", segs[0], err)
	}
	if _, _, err = c.GetWorkflowRunByID(ctx, owner, repo, runID); err != nil {
		return err
	}
	if len(segs) < 3 {
		// bare run page or /usage
		return nil
	}
	switch segs[1] {
	case "job":
		jobID, err := strconv.ParseInt(segs[2], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid job id %q: %w", segs[2], err)
		}
		_, _, err = c.GetWorkflowJobByID(ctx, owner, repo, jobID)
		return err
	case "attempts":
		attempt, err := strconv.ParseInt(segs[2], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid run attempt %q: %w", segs[2], err)
		}
		_, _, err = c.ListWorkflowJobsAttempt(ctx, owner, repo, runID, attempt, &github.ListOptions{})
		return err
	}
	return nil
}

// handleReleases handles
// /<owner>/<repo>/releases
// /<owner>/<repo>/releases/tag/<tag>
// /<owner>/<repo>/releases/latest
// etc
func handleReleases(ctx context.Context, c Client, owner, repo, ref, path, _ string) error {
	ref = strings.Trim(ref, "/")
	path = strings.Trim(path, "/")
	switch {
	// /<owner>/<repo>/releases  (list page)
	case ref == "" && path == "":
		// we assume that if the repo exists, then at least an empty list
		// of releases exists as well
		_, _, err := c.Repositories(ctx, owner, repo)
		return err
	// /<owner>/<repo>/releases/tag/<tag>
	case ref == "tag" && path != "":
		_, _, err := c.GetReleaseByTag(ctx, owner, repo, path)
		return err
	// /<owner>/<repo>/releases/latest
	case ref == "" && path == "latest":
		_, _, err := c.GetLatestRelease(ctx, owner, repo)
		return err
	// /<owner>/<repo>/releases/download/<tag>/<assetName>
	case ref == "download" && path != "":
		// validate the tag part exists
		segs := strings.SplitN(path, "/", 2)
		_, _, err := c.GetReleaseByTag(ctx, owner, repo, segs[0])
		return err
	// some instances use /releases/<tag> without "tag/", handle that too
	case ref == "" && path != "":
		_, _, err := c.GetReleaseByTag(ctx, owner, repo, path)
		return err
	}
	return fmt.Errorf("unsupported releases URL variant: ref=%q path=%q", ref, path)
}

func handleIssue(ctx context.Context, c Client, owner, repo, ref, _, fragment string) error {
	if ref == "" {
		_, _, err := c.Repositories(ctx, owner, repo)
		return err
	}
	n, err := strconv.Atoi(ref)
	if err != nil {
		return fmt.Errorf("invalid issue number %q: %w", ref, err)
	}
	if _, _, err = c.GetIssue(ctx, owner, repo, n); err != nil {
		return err
	}
	return checkCommentAnchor(ctx, c, owner, repo, fragment)
}

func handlePull(ctx context.Context, c Client, owner, repo, ref, _, fragment string) error {
	n, err := strconv.Atoi(ref)
	if err != nil {
		return fmt.Errorf("invalid PR number %q: %w", ref, err)
	}
	if _, _, err = c.GetPR(ctx, owner, repo, n); err != nil {
		return err
	}
	return checkCommentAnchor(ctx, c, owner, repo, fragment)
}

// checkCommentAnchor resolves #issuecomment-<id> and #discussion_r<id>
// anchors, those address a concrete comment and can be fetched via the API.
func checkCommentAnchor(ctx context.Context, c Client, owner, repo, fragment string) error {
	switch {
	case strings.HasPrefix(fragment, "issuecomment-"):
		id, err := strconv.ParseInt(strings.TrimPrefix(fragment, "issuecomment-"), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid comment anchor %q: %w", fragment, err)
		}
		_, _, err = c.GetIssueComment(ctx, owner, repo, id)
		return err
	case strings.HasPrefix(fragment, "discussion_r"):
		id, err := strconv.ParseInt(strings.TrimPrefix(fragment, "discussion_r"), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid comment anchor %q: %w", fragment, err)
		}
		_, _, err = c.GetPRComment(ctx, owner, repo, id)
		return err
	}
	return nil
}

func handleMilestone(ctx context.Context, c Client, owner, repo, ref, _, _ string) error {
	n, err := strconv.Atoi(ref)
	if err != nil {
		return fmt.Errorf("invalid milestone number %q: %w", ref, err)
	}
	_, _, err = c.GetMilestone(ctx, owner, repo, n)
	return err
}

func handleSecurityAdvisories(ctx context.Context, c Client, owner, repo, ref, _, _ string) error {
	opts := &github.ListRepositorySecurityAdvisoriesOptions{}
	opts.PerPage = 100
	for {
		advisories, resp, err := c.ListRepositorySecurityAdvisories(ctx, owner, repo, opts)
		if err != nil {
			return err
		}
		for _, adv := range advisories {
			if strings.EqualFold(adv.GetGHSAID(), ref) {
				return nil
			}
		}
		if resp == nil || resp.After == "" {
			break
		}
		opts.After = resp.After
	}
	return errs.NewNotFound(fmt.Sprintf("%s/%s/security/advisories/%s", owner, repo, ref))
}

func handleUser(ctx context.Context, c Client, owner, _, _, _, _ string) error {
	_, _, err := c.GetUser(ctx, owner)
	return err
}

func handleOrgExist(ctx context.Context, c Client, owner, _, _, _, _ string) error {
	_, _, err := c.GetOrg(ctx, owner)
	return err
}

// handleWiki falls back to the repo flag, the wiki itself has no REST surface.
func handleWiki(ctx context.Context, c Client, owner, repo, _, _, _ string) error {
	repository, _, err := c.Repositories(ctx, owner, repo)
	if err != nil {
		return err
	}
	if !repository.GetHasWiki() {
		return errs.NewNotFound(fmt.Sprintf("%s/%s/wiki", owner, repo))
	}
	return nil
}

func handleAttestations(ctx context.Context, c Client, owner, repo, _, _, _ string) error {
	// the API addresses attestations by subject digest, the numeric UI id
	// can't be resolved, so only the repo is checked
	_, _, err := c.Repositories(ctx, owner, repo)
	return err
}

func mapGHError(url string, err error) error {
	if err == nil {
		return nil
	}
	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &rateErr) || errors.As(err, &abuseErr) {
		return errs.NewUnverified(url, "rate limited")
	}
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		switch {
		case ghErr.Response.StatusCode == http.StatusNotFound || ghErr.Response.StatusCode == http.StatusGone:
			return errs.NewNotFound(url)
		case ghErr.Response.StatusCode == http.StatusUnauthorized || ghErr.Response.StatusCode == http.StatusForbidden:
			return errs.NewUnverified(url, "requires auth")
		case ghErr.Response.StatusCode >= http.StatusInternalServerError:
			return errs.NewUnverified(url, fmt.Sprintf("server returned %d", ghErr.Response.StatusCode))
		}
	}
	return err
}
