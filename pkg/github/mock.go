package github

import (
	"context"

	"github.com/google/go-github/v68/github"
	"github.com/stretchr/testify/mock"
)

type MockClient struct {
	mock.Mock
}

func (m *MockClient) Repositories(ctx context.Context, owner, repo string) (*github.Repository, *github.Response, error) {
	args := m.Called(ctx, owner, repo)
	repository, _ := args.Get(0).(*github.Repository)
	resp, _ := args.Get(1).(*github.Response)
	return repository, resp, args.Error(2)
}

func (m *MockClient) GetContents(ctx context.Context, owner, repo, ref, path string) (*github.RepositoryContent, []*github.RepositoryContent, *github.Response, error) {
	args := m.Called(ctx, owner, repo, ref, path)
	file, _ := args.Get(0).(*github.RepositoryContent)
	dir, _ := args.Get(1).([]*github.RepositoryContent)
	resp, _ := args.Get(2).(*github.Response)
	return file, dir, resp, args.Error(3)
}

func (m *MockClient) GetCommit(ctx context.Context, owner, repo, sha string, opts *github.ListOptions) (*github.RepositoryCommit, *github.Response, error) {
	args := m.Called(ctx, owner, repo, sha, opts)
	commit, _ := args.Get(0).(*github.RepositoryCommit)
	resp, _ := args.Get(1).(*github.Response)
	return commit, resp, args.Error(2)
}

func (m *MockClient) CompareCommits(ctx context.Context, owner, repo, base, head string, opts *github.ListOptions) (*github.CommitsComparison, *github.Response, error) {
	args := m.Called(ctx, owner, repo, base, head, opts)
	cmp, _ := args.Get(0).(*github.CommitsComparison)
	resp, _ := args.Get(1).(*github.Response)
	return cmp, resp, args.Error(2)
}

func (m *MockClient) GetReleaseByTag(ctx context.Context, owner, repo, tag string) (*github.RepositoryRelease, *github.Response, error) {
	args := m.Called(ctx, owner, repo, tag)
	release, _ := args.Get(0).(*github.RepositoryRelease)
	resp, _ := args.Get(1).(*github.Response)
	return release, resp, args.Error(2)
}

func (m *MockClient) GetLatestRelease(ctx context.Context, owner, repo string) (*github.RepositoryRelease, *github.Response, error) {
	args := m.Called(ctx, owner, repo)
	release, _ := args.Get(0).(*github.RepositoryRelease)
	resp, _ := args.Get(1).(*github.Response)
	return release, resp, args.Error(2)
}

func (m *MockClient) GetIssue(ctx context.Context, owner, repo string, number int) (*github.Issue, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number)
	issue, _ := args.Get(0).(*github.Issue)
	resp, _ := args.Get(1).(*github.Response)
	return issue, resp, args.Error(2)
}

func (m *MockClient) GetIssueComment(ctx context.Context, owner, repo string, commentID int64) (*github.IssueComment, *github.Response, error) {
	args := m.Called(ctx, owner, repo, commentID)
	comment, _ := args.Get(0).(*github.IssueComment)
	resp, _ := args.Get(1).(*github.Response)
	return comment, resp, args.Error(2)
}

func (m *MockClient) GetPR(ctx context.Context, owner, repo string, number int) (*github.PullRequest, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number)
	pr, _ := args.Get(0).(*github.PullRequest)
	resp, _ := args.Get(1).(*github.Response)
	return pr, resp, args.Error(2)
}

func (m *MockClient) GetPRComment(ctx context.Context, owner, repo string, commentID int64) (*github.PullRequestComment, *github.Response, error) {
	args := m.Called(ctx, owner, repo, commentID)
	comment, _ := args.Get(0).(*github.PullRequestComment)
	resp, _ := args.Get(1).(*github.Response)
	return comment, resp, args.Error(2)
}

func (m *MockClient) GetMilestone(ctx context.Context, owner, repo string, number int) (*github.Milestone, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number)
	milestone, _ := args.Get(0).(*github.Milestone)
	resp, _ := args.Get(1).(*github.Response)
	return milestone, resp, args.Error(2)
}

func (m *MockClient) ListRepositorySecurityAdvisories(ctx context.Context, owner, repo string, opt *github.ListRepositorySecurityAdvisoriesOptions) ([]*github.SecurityAdvisory, *github.Response, error) {
	args := m.Called(ctx, owner, repo, opt)
	advisories, _ := args.Get(0).([]*github.SecurityAdvisory)
	resp, _ := args.Get(1).(*github.Response)
	return advisories, resp, args.Error(2)
}

func (m *MockClient) GetWorkflowByFileName(ctx context.Context, owner, repo, workflowFileName string) (*github.Workflow, *github.Response, error) {
	args := m.Called(ctx, owner, repo, workflowFileName)
	workflow, _ := args.Get(0).(*github.Workflow)
	resp, _ := args.Get(1).(*github.Response)
	return workflow, resp, args.Error(2)
}

func (m *MockClient) GetWorkflowRunByID(ctx context.Context, owner, repo string, runID int64) (*github.WorkflowRun, *github.Response, error) {
	args := m.Called(ctx, owner, repo, runID)
	run, _ := args.Get(0).(*github.WorkflowRun)
	resp, _ := args.Get(1).(*github.Response)
	return run, resp, args.Error(2)
}

func (m *MockClient) GetWorkflowJobByID(ctx context.Context, owner, repo string, jobID int64) (*github.WorkflowJob, *github.Response, error) {
	args := m.Called(ctx, owner, repo, jobID)
	job, _ := args.Get(0).(*github.WorkflowJob)
	resp, _ := args.Get(1).(*github.Response)
	return job, resp, args.Error(2)
}

func (m *MockClient) ListWorkflowJobsAttempt(ctx context.Context, owner, repo string, runID, attemptNumber int64, opts *github.ListOptions) (*github.Jobs, *github.Response, error) {
	args := m.Called(ctx, owner, repo, runID, attemptNumber, opts)
	jobs, _ := args.Get(0).(*github.Jobs)
	resp, _ := args.Get(1).(*github.Response)
	return jobs, resp, args.Error(2)
}

func (m *MockClient) GetUser(ctx context.Context, user string) (*github.User, *github.Response, error) {
	args := m.Called(ctx, user)
	u, _ := args.Get(0).(*github.User)
	resp, _ := args.Get(1).(*github.Response)
	return u, resp, args.Error(2)
}

func (m *MockClient) GetOrg(ctx context.Context, org string) (*github.Organization, *github.Response, error) {
	args := m.Called(ctx, org)
	o, _ := args.Get(0).(*github.Organization)
	resp, _ := args.Get(1).(*github.Response)
	return o, resp, args.Error(2)
}
