package github

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/google/go-github/v68/github"
	"github.com/stretchr/testify/mock"

	"linkcheck/pkg/errs"
)

const (
	testOwner = "your-ko"
	testRepo  = "link-validator"
)

func Test_handleNothing(t *testing.T) {
	t.Parallel()

	if err := handleNothing(context.Background(), nil, "", "", "", "", ""); err != nil {
		t.Fatalf("handleNothing() = %v, want nil", err)
	}
}

func Test_handleRepoExist(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("repo exists", func(t *testing.T) {
		t.Parallel()
		m := new(MockClient)
		m.On("Repositories", mock.Anything, testOwner, testRepo).Return(&github.Repository{}, nil, nil)

		if err := handleRepoExist(ctx, m, testOwner, testRepo, "", "", ""); err != nil {
			t.Fatalf("handleRepoExist() = %v", err)
		}
		m.AssertExpectations(t)
	})

	t.Run("lookup fails", func(t *testing.T) {
		t.Parallel()
		m := new(MockClient)
		wantErr := errors.New("boom")
		m.On("Repositories", mock.Anything, testOwner, testRepo).Return(nil, nil, wantErr)

		if err := handleRepoExist(ctx, m, testOwner, testRepo, "", "", ""); !errors.Is(err, wantErr) {
			t.Fatalf("expected %v, got %v", wantErr, err)
		}
	})
}

func Test_handleContents(t *testing.T) {
	type fields struct {
		status         int
		body           string
		base64encoding bool
	}
	type args struct {
		path     string
		fragment string
	}
	tests := []struct {
		name    string
		fields  fields
		args    args
		wantErr bool
		wantIs  error
	}{
		{
			name: "file exists",
			fields: fields{
				status:         http.StatusOK,
				body:           content,
				base64encoding: true,
			},
			args: args{path: "README.md"},
		},
		{
			name: "anchor present",
			fields: fields{
				status:         http.StatusOK,
				body:           content,
				base64encoding: true,
			},
			args: args{path: "README.md", fragment: "header2"},
		},
		{
			name: "anchor lookup is case-insensitive",
			fields: fields{
				status:         http.StatusOK,
				body:           content,
				base64encoding: true,
			},
			args: args{path: "README.md", fragment: "HEADER2"},
		},
		{
			name: "anchor missing",
			fields: fields{
				status:         http.StatusOK,
				body:           content,
				base64encoding: true,
			},
			args:    args{path: "README.md", fragment: "nope-anchor"},
			wantErr: true,
			wantIs:  errs.ErrMissingFragment,
		},
		{
			name: "line anchor is skipped",
			fields: fields{
				status:         http.StatusOK,
				body:           content,
				base64encoding: true,
			},
			args: args{path: "README.md", fragment: "L10"},
		},
		{
			name: "line range anchor is skipped",
			fields: fields{
				status:         http.StatusOK,
				body:           content,
				base64encoding: true,
			},
			args: args{path: "README.md", fragment: "L10-L20"},
		},
		{
			name: "anchors on non-markdown files are skipped",
			fields: fields{
				status:         http.StatusOK,
				body:           "package main",
				base64encoding: true,
			},
			args: args{path: "main.go", fragment: "header2"},
		},
		{
			name: "directory listing",
			fields: fields{
				status: http.StatusOK,
				body:   `[{"type":"file","name":"README.md"}]`,
			},
			args: args{path: "docs", fragment: "header2"},
		},
		{
			name: "file does not exist",
			fields: fields{
				status:         http.StatusNotFound,
				body:           content,
				base64encoding: true,
			},
			args:    args{path: "README.md"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			testServer := getTestServer(tt.fields.status, tt.fields.base64encoding, tt.fields.body)
			t.Cleanup(testServer.Close)

			proc := mockValidator(t, testServer, "")
			err := handleContents(context.Background(), proc.client, testOwner, testRepo, "main", tt.args.path, tt.args.fragment)

			if (err != nil) != tt.wantErr {
				t.Fatalf("handleContents() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantIs != nil && !errors.Is(err, tt.wantIs) {
				t.Fatalf("expected errors.Is(err, %v), got %v", tt.wantIs, err)
			}
		})
	}
}

func Test_handleReleases(t *testing.T) {
	type args struct {
		ref  string
		path string
	}
	tests := []struct {
		name        string
		status      int
		args        args
		wantErr     bool
		wantMessage string
	}{
		{
			name:   "releases list page",
			status: http.StatusOK,
			args:   args{},
		},
		{
			name:   "particular release by tag",
			status: http.StatusOK,
			args:   args{ref: "tag", path: "1.0.0"},
		},
		{
			name:   "latest release",
			status: http.StatusOK,
			args:   args{path: "latest"},
		},
		{
			name:   "download artifact checks the tag",
			status: http.StatusOK,
			args:   args{ref: "download", path: "1.0.0/sbom.spdx.json"},
		},
		{
			name:   "release referenced without tag segment",
			status: http.StatusOK,
			args:   args{path: "1.0.0"},
		},
		{
			name:    "missing tag",
			status:  http.StatusNotFound,
			args:    args{ref: "tag", path: "0.0.0"},
			wantErr: true,
		},
		{
			name:        "unsupported variant",
			status:      http.StatusOK,
			args:        args{ref: "weird", path: "x"},
			wantErr:     true,
			wantMessage: "unsupported releases URL variant",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			testServer := getTestServer(tt.status, false, "{}")
			t.Cleanup(testServer.Close)

			proc := mockValidator(t, testServer, "")
			err := handleReleases(context.Background(), proc.client, testOwner, testRepo, tt.args.ref, tt.args.path, "")

			if (err != nil) != tt.wantErr {
				t.Fatalf("handleReleases() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantMessage != "" && !strings.Contains(err.Error(), tt.wantMessage) {
				t.Fatalf("error %q does not contain %q", err, tt.wantMessage)
			}
		})
	}
}

func Test_handleCommit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("without ref only the repo is checked", func(t *testing.T) {
		t.Parallel()
		m := new(MockClient)
		m.On("Repositories", mock.Anything, testOwner, testRepo).Return(&github.Repository{}, nil, nil)

		if err := handleCommit(ctx, m, testOwner, testRepo, "", "", ""); err != nil {
			t.Fatalf("handleCommit() = %v", err)
		}
		m.AssertExpectations(t)
		m.AssertNotCalled(t, "GetCommit", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("with ref the commit is fetched", func(t *testing.T) {
		t.Parallel()
		m := new(MockClient)
		sha := "a96366f66ffacd461de10a1dd561ab5a598e9167"
		m.On("GetCommit", mock.Anything, testOwner, testRepo, sha, mock.Anything).Return(&github.RepositoryCommit{}, nil, nil)

		if err := handleCommit(ctx, m, testOwner, testRepo, sha, "", ""); err != nil {
			t.Fatalf("handleCommit() = %v", err)
		}
		m.AssertExpectations(t)
	})
}

func Test_handleCompareCommits(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("explicit range", func(t *testing.T) {
		t.Parallel()
		m := new(MockClient)
		m.On("CompareCommits", mock.Anything, testOwner, testRepo, "main", "dev", mock.Anything).Return(&github.CommitsComparison{}, nil, nil)

		if err := handleCompareCommits(ctx, m, testOwner, testRepo, "main...dev", "", ""); err != nil {
			t.Fatalf("handleCompareCommits() = %v", err)
		}
		m.AssertExpectations(t)
		m.AssertNotCalled(t, "Repositories", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("head only compares against the default branch", func(t *testing.T) {
		t.Parallel()
		m := new(MockClient)
		m.On("Repositories", mock.Anything, testOwner, testRepo).
			Return(&github.Repository{DefaultBranch: github.Ptr("main")}, nil, nil)
		m.On("CompareCommits", mock.Anything, testOwner, testRepo, "main", "dev", mock.Anything).Return(&github.CommitsComparison{}, nil, nil)

		if err := handleCompareCommits(ctx, m, testOwner, testRepo, "dev", "", ""); err != nil {
			t.Fatalf("handleCompareCommits() = %v", err)
		}
		m.AssertExpectations(t)
	})

	t.Run("empty range", func(t *testing.T) {
		t.Parallel()
		m := new(MockClient)
		m.On("Repositories", mock.Anything, testOwner, testRepo).
			Return(&github.Repository{DefaultBranch: github.Ptr("main")}, nil, nil)

		err := handleCompareCommits(ctx, m, testOwner, testRepo, "", "", "")
		if err == nil || !strings.Contains(err.Error(), "invalid compare range") {
			t.Fatalf("expected invalid range error, got %v", err)
		}
	})

	t.Run("compare fails", func(t *testing.T) {
		t.Parallel()
		m := new(MockClient)
		wantErr := errors.New("boom")
		m.On("CompareCommits", mock.Anything, testOwner, testRepo, "main", "dev", mock.Anything).Return(nil, nil, wantErr)

		if err := handleCompareCommits(ctx, m, testOwner, testRepo, "main...dev", "", ""); !errors.Is(err, wantErr) {
			t.Fatalf("expected %v, got %v", wantErr, err)
		}
	})
}

func Test_handleWorkflow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("badge suffix is trimmed", func(t *testing.T) {
		t.Parallel()
		m := new(MockClient)
		m.On("GetWorkflowByFileName", mock.Anything, testOwner, testRepo, "main.yaml").Return(&github.Workflow{}, nil, nil)

		if err := handleWorkflow(ctx, m, testOwner, testRepo, "workflows", "main.yaml/badge.svg", ""); err != nil {
			t.Fatalf("handleWorkflow() = %v", err)
		}
		m.AssertExpectations(t)
	})

	t.Run("workflow file", func(t *testing.T) {
		t.Parallel()
		m := new(MockClient)
		m.On("GetWorkflowByFileName", mock.Anything, testOwner, testRepo, "main.yaml").Return(&github.Workflow{}, nil, nil)

		if err := handleWorkflow(ctx, m, testOwner, testRepo, "workflows", "main.yaml", ""); err != nil {
			t.Fatalf("handleWorkflow() = %v", err)
		}
		m.AssertExpectations(t)
	})

	t.Run("actions root only checks the repo", func(t *testing.T) {
		t.Parallel()
		m := new(MockClient)
		m.On("Repositories", mock.Anything, testOwner, testRepo).Return(&github.Repository{}, nil, nil)

		if err := handleWorkflow(ctx, m, testOwner, testRepo, "", "", ""); err != nil {
			t.Fatalf("handleWorkflow() = %v", err)
		}
		m.AssertExpectations(t)
	})
}

func Test_handleWorkflowRun(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("bare run page", func(t *testing.T) {
		t.Parallel()
		m := new(MockClient)
		m.On("GetWorkflowRunByID", mock.Anything, testOwner, testRepo, int64(19221003183)).Return(&github.WorkflowRun{}, nil, nil)

		if err := handleWorkflowRun(ctx, m, testOwner, testRepo, "19221003183"); err != nil {
			t.Fatalf("handleWorkflowRun() = %v", err)
		}
		m.AssertExpectations(t)
	})

	t.Run("run usage page", func(t *testing.T) {
		t.Parallel()
		m := new(MockClient)
		m.On("GetWorkflowRunByID", mock.Anything, testOwner, testRepo, int64(19221003178)).Return(&github.WorkflowRun{}, nil, nil)

		if err := handleWorkflowRun(ctx, m, testOwner, testRepo, "19221003178/usage"); err != nil {
			t.Fatalf("handleWorkflowRun() = %v", err)
		}
		m.AssertExpectations(t)
	})

	t.Run("job logs", func(t *testing.T) {
		t.Parallel()
		m := new(MockClient)
		m.On("GetWorkflowRunByID", mock.Anything, testOwner, testRepo, int64(19221003178)).Return(&github.WorkflowRun{}, nil, nil)
		m.On("GetWorkflowJobByID", mock.Anything, testOwner, testRepo, int64(54938961245)).Return(&github.WorkflowJob{}, nil, nil)

		if err := handleWorkflowRun(ctx, m, testOwner, testRepo, "19221003178/job/54938961245"); err != nil {
			t.Fatalf("handleWorkflowRun() = %v", err)
		}
		m.AssertExpectations(t)
	})

	t.Run("run attempt", func(t *testing.T) {
		t.Parallel()
		m := new(MockClient)
		m.On("GetWorkflowRunByID", mock.Anything, testOwner, testRepo, int64(19221003178)).Return(&github.WorkflowRun{}, nil, nil)
		m.On("ListWorkflowJobsAttempt", mock.Anything, testOwner, testRepo, int64(19221003178), int64(1), mock.Anything).Return(&github.Jobs{}, nil, nil)

		if err := handleWorkflowRun(ctx, m, testOwner, testRepo, "19221003178/attempts/1"); err != nil {
			t.Fatalf("handleWorkflowRun() = %v", err)
		}
		m.AssertExpectations(t)
	})

	t.Run("invalid run id", func(t *testing.T) {
		t.Parallel()
		m := new(MockClient)

		err := handleWorkflowRun(ctx, m, testOwner, testRepo, "abc")
		if err == nil || !strings.Contains(err.Error(), "invalid workflow run id") {
			t.Fatalf("expected invalid run id error, got %v", err)
		}
	})

	t.Run("invalid job id", func(t *testing.T) {
		t.Parallel()
		m := new(MockClient)
		m.On("GetWorkflowRunByID", mock.Anything, testOwner, testRepo, int64(1)).Return(&github.WorkflowRun{}, nil, nil)

		err := handleWorkflowRun(ctx, m, testOwner, testRepo, "1/job/xyz")
		if err == nil || !strings.Contains(err.Error(), "invalid job id") {
			t.Fatalf("expected invalid job id error, got %v", err)
		}
	})

	t.Run("run lookup fails", func(t *testing.T) {
		t.Parallel()
		m := new(MockClient)
		wantErr := errors.New("boom")
		m.On("GetWorkflowRunByID", mock.Anything, testOwner, testRepo, int64(1)).Return(nil, nil, wantErr)

		if err := handleWorkflowRun(ctx, m, testOwner, testRepo, "1/job/2"); !errors.Is(err, wantErr) {
			t.Fatalf("expected %v, got %v", wantErr, err)
		}
	})
}

func Test_handleIssue(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("issues list only checks the repo", func(t *testing.T) {
		t.Parallel()
		m := new(MockClient)
		m.On("Repositories", mock.Anything, testOwner, testRepo).Return(&github.Repository{}, nil, nil)

		if err := handleIssue(ctx, m, testOwner, testRepo, "", "", ""); err != nil {
			t.Fatalf("handleIssue() = %v", err)
		}
		m.AssertExpectations(t)
	})

	t.Run("particular issue", func(t *testing.T) {
		t.Parallel()
		m := new(MockClient)
		m.On("GetIssue", mock.Anything, testOwner, testRepo, 123).Return(&github.Issue{}, nil, nil)

		if err := handleIssue(ctx, m, testOwner, testRepo, "123", "", ""); err != nil {
			t.Fatalf("handleIssue() = %v", err)
		}
		m.AssertExpectations(t)
	})

	t.Run("issue with comment anchor", func(t *testing.T) {
		t.Parallel()
		m := new(MockClient)
		m.On("GetIssue", mock.Anything, testOwner, testRepo, 123).Return(&github.Issue{}, nil, nil)
		m.On("GetIssueComment", mock.Anything, testOwner, testRepo, int64(456)).Return(&github.IssueComment{}, nil, nil)

		if err := handleIssue(ctx, m, testOwner, testRepo, "123", "", "issuecomment-456"); err != nil {
			t.Fatalf("handleIssue() = %v", err)
		}
		m.AssertExpectations(t)
	})

	t.Run("invalid issue number", func(t *testing.T) {
		t.Parallel()
		m := new(MockClient)

		err := handleIssue(ctx, m, testOwner, testRepo, "abc", "", "")
		if err == nil || !strings.Contains(err.Error(), "invalid issue number") {
			t.Fatalf("expected invalid issue number error, got %v", err)
		}
	})
}

func Test_handlePull(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("particular PR", func(t *testing.T) {
		t.Parallel()
		m := new(MockClient)
		m.On("GetPR", mock.Anything, testOwner, testRepo, 1).Return(&github.PullRequest{}, nil, nil)

		if err := handlePull(ctx, m, testOwner, testRepo, "1", "", ""); err != nil {
			t.Fatalf("handlePull() = %v", err)
		}
		m.AssertExpectations(t)
	})

	t.Run("PR with review comment anchor", func(t *testing.T) {
		t.Parallel()
		m := new(MockClient)
		m.On("GetPR", mock.Anything, testOwner, testRepo, 1).Return(&github.PullRequest{}, nil, nil)
		m.On("GetPRComment", mock.Anything, testOwner, testRepo, int64(777)).Return(&github.PullRequestComment{}, nil, nil)

		if err := handlePull(ctx, m, testOwner, testRepo, "1", "", "discussion_r777"); err != nil {
			t.Fatalf("handlePull() = %v", err)
		}
		m.AssertExpectations(t)
	})

	t.Run("invalid PR number", func(t *testing.T) {
		t.Parallel()
		m := new(MockClient)

		err := handlePull(ctx, m, testOwner, testRepo, "", "", "")
		if err == nil || !strings.Contains(err.Error(), "invalid PR number") {
			t.Fatalf("expected invalid PR number error, got %v", err)
		}
	})
}

func Test_checkCommentAnchor(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("heading-like anchors are ignored", func(t *testing.T) {
		t.Parallel()
		m := new(MockClient)

		if err := checkCommentAnchor(ctx, m, testOwner, testRepo, "some-heading"); err != nil {
			t.Fatalf("checkCommentAnchor() = %v", err)
		}
		m.AssertNotCalled(t, "GetIssueComment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		m.AssertNotCalled(t, "GetPRComment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("invalid comment id", func(t *testing.T) {
		t.Parallel()
		m := new(MockClient)

		err := checkCommentAnchor(ctx, m, testOwner, testRepo, "issuecomment-abc")
		if err == nil || !strings.Contains(err.Error(), "invalid comment anchor") {
			t.Fatalf("expected invalid comment anchor error, got %v", err)
		}
	})

	t.Run("comment lookup fails", func(t *testing.T) {
		t.Parallel()
		m := new(MockClient)
		wantErr := errors.New("boom")
		m.On("GetIssueComment", mock.Anything, testOwner, testRepo, int64(9)).Return(nil, nil, wantErr)

		if err := checkCommentAnchor(ctx, m, testOwner, testRepo, "issuecomment-9"); !errors.Is(err, wantErr) {
			t.Fatalf("expected %v, got %v", wantErr, err)
		}
	})
}

func Test_handleMilestone(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("particular milestone", func(t *testing.T) {
		t.Parallel()
		m := new(MockClient)
		m.On("GetMilestone", mock.Anything, testOwner, testRepo, 4).Return(&github.Milestone{}, nil, nil)

		if err := handleMilestone(ctx, m, testOwner, testRepo, "4", "", ""); err != nil {
			t.Fatalf("handleMilestone() = %v", err)
		}
		m.AssertExpectations(t)
	})

	t.Run("invalid milestone number", func(t *testing.T) {
		t.Parallel()
		m := new(MockClient)

		err := handleMilestone(ctx, m, testOwner, testRepo, "x", "", "")
		if err == nil || !strings.Contains(err.Error(), "invalid milestone number") {
			t.Fatalf("expected invalid milestone number error, got %v", err)
		}
	})
}

func Test_handleSecurityAdvisories(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("advisory found", func(t *testing.T) {
		t.Parallel()
		m := new(MockClient)
		m.On("ListRepositorySecurityAdvisories", mock.Anything, testOwner, testRepo, mock.Anything).
			Return([]*github.SecurityAdvisory{{GHSAID: github.Ptr("GHSA-xxxx-yyyy-zzzz")}}, nil, nil)

		if err := handleSecurityAdvisories(ctx, m, testOwner, testRepo, "ghsa-XXXX-yyyy-zzzz", "", ""); err != nil {
			t.Fatalf("handleSecurityAdvisories() = %v", err)
		}
		m.AssertExpectations(t)
	})

	t.Run("advisory on the second page", func(t *testing.T) {
		t.Parallel()
		m := new(MockClient)
		m.On("ListRepositorySecurityAdvisories", mock.Anything, testOwner, testRepo, mock.Anything).
			Return([]*github.SecurityAdvisory{{GHSAID: github.Ptr("GHSA-aaaa-bbbb-cccc")}}, &github.Response{After: "cursor1"}, nil).Once()
		m.On("ListRepositorySecurityAdvisories", mock.Anything, testOwner, testRepo, mock.Anything).
			Return([]*github.SecurityAdvisory{{GHSAID: github.Ptr("GHSA-xxxx-yyyy-zzzz")}}, nil, nil).Once()

		if err := handleSecurityAdvisories(ctx, m, testOwner, testRepo, "GHSA-xxxx-yyyy-zzzz", "", ""); err != nil {
			t.Fatalf("handleSecurityAdvisories() = %v", err)
		}
		m.AssertExpectations(t)
	})

	t.Run("advisory missing", func(t *testing.T) {
		t.Parallel()
		m := new(MockClient)
		m.On("ListRepositorySecurityAdvisories", mock.Anything, testOwner, testRepo, mock.Anything).
			Return([]*github.SecurityAdvisory{{GHSAID: github.Ptr("GHSA-aaaa-bbbb-cccc")}}, nil, nil)

		err := handleSecurityAdvisories(ctx, m, testOwner, testRepo, "GHSA-xxxx-yyyy-zzzz", "", "")
		if !errors.Is(err, errs.ErrNotFound) {
			t.Fatalf("expected errs.ErrNotFound, got %v", err)
		}
	})

	t.Run("list fails", func(t *testing.T) {
		t.Parallel()
		m := new(MockClient)
		wantErr := errors.New("boom")
		m.On("ListRepositorySecurityAdvisories", mock.Anything, testOwner, testRepo, mock.Anything).Return(nil, nil, wantErr)

		if err := handleSecurityAdvisories(ctx, m, testOwner, testRepo, "GHSA-xxxx-yyyy-zzzz", "", ""); !errors.Is(err, wantErr) {
			t.Fatalf("expected %v, got %v", wantErr, err)
		}
	})
}

func Test_handleUser(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("user exists", func(t *testing.T) {
		t.Parallel()
		m := new(MockClient)
		m.On("GetUser", mock.Anything, testOwner).Return(&github.User{}, nil, nil)

		if err := handleUser(ctx, m, testOwner, "", "", "", ""); err != nil {
			t.Fatalf("handleUser() = %v", err)
		}
		m.AssertExpectations(t)
	})

	t.Run("lookup fails", func(t *testing.T) {
		t.Parallel()
		m := new(MockClient)
		wantErr := errors.New("boom")
		m.On("GetUser", mock.Anything, testOwner).Return(nil, nil, wantErr)

		if err := handleUser(ctx, m, testOwner, "", "", "", ""); !errors.Is(err, wantErr) {
			t.Fatalf("expected %v, got %v", wantErr, err)
		}
	})
}

func Test_handleOrgExist(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("org exists", func(t *testing.T) {
		t.Parallel()
		m := new(MockClient)
		m.On("GetOrg", mock.Anything, testOwner).Return(&github.Organization{}, nil, nil)

		if err := handleOrgExist(ctx, m, testOwner, "", "", "", ""); err != nil {
			t.Fatalf("handleOrgExist() = %v", err)
		}
		m.AssertExpectations(t)
	})

	t.Run("lookup fails", func(t *testing.T) {
		t.Parallel()
		m := new(MockClient)
		wantErr := errors.New("boom")
		m.On("GetOrg", mock.Anything, testOwner).Return(nil, nil, wantErr)

		if err := handleOrgExist(ctx, m, testOwner, "", "", "", ""); !errors.Is(err, wantErr) {
			t.Fatalf("expected %v, got %v", wantErr, err)
		}
	})
}

func Test_handleWiki(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("wiki enabled", func(t *testing.T) {
		t.Parallel()
		m := new(MockClient)
		m.On("Repositories", mock.Anything, testOwner, testRepo).
			Return(&github.Repository{HasWiki: github.Ptr(true)}, nil, nil)

		if err := handleWiki(ctx, m, testOwner, testRepo, "", "", ""); err != nil {
			t.Fatalf("handleWiki() = %v", err)
		}
	})

	t.Run("wiki disabled", func(t *testing.T) {
		t.Parallel()
		m := new(MockClient)
		m.On("Repositories", mock.Anything, testOwner, testRepo).
			Return(&github.Repository{HasWiki: github.Ptr(false)}, nil, nil)

		if err := handleWiki(ctx, m, testOwner, testRepo, "", "", ""); !errors.Is(err, errs.ErrNotFound) {
			t.Fatalf("expected errs.ErrNotFound, got %v", err)
		}
	})

	t.Run("repo lookup fails", func(t *testing.T) {
		t.Parallel()
		m := new(MockClient)
		wantErr := errors.New("boom")
		m.On("Repositories", mock.Anything, testOwner, testRepo).Return(nil, nil, wantErr)

		if err := handleWiki(ctx, m, testOwner, testRepo, "", "", ""); !errors.Is(err, wantErr) {
			t.Fatalf("expected %v, got %v", wantErr, err)
		}
	})
}

func Test_mapGHError(t *testing.T) {
	t.Parallel()

	ghErr := func(status int) *github.ErrorResponse {
		return &github.ErrorResponse{Response: &http.Response{StatusCode: status}}
	}

	tests := []struct {
		name   string
		err    error
		wantIs error
	}{
		{
			name: "nil stays nil",
		},
		{
			name:   "404 becomes not found",
			err:    ghErr(http.StatusNotFound),
			wantIs: errs.ErrNotFound,
		},
		{
			name:   "410 becomes not found",
			err:    ghErr(http.StatusGone),
			wantIs: errs.ErrNotFound,
		},
		{
			name:   "401 becomes unverified",
			err:    ghErr(http.StatusUnauthorized),
			wantIs: errs.ErrUnverified,
		},
		{
			name:   "403 becomes unverified",
			err:    ghErr(http.StatusForbidden),
			wantIs: errs.ErrUnverified,
		},
		{
			name:   "500 becomes unverified",
			err:    ghErr(http.StatusInternalServerError),
			wantIs: errs.ErrUnverified,
		},
		{
			name:   "rate limit becomes unverified",
			err:    &github.RateLimitError{},
			wantIs: errs.ErrUnverified,
		},
		{
			name:   "abuse rate limit becomes unverified",
			err:    &github.AbuseRateLimitError{},
			wantIs: errs.ErrUnverified,
		},
		{
			name:   "handler sentinels pass through",
			err:    errs.NewMissingFragment("README.md", "nope"),
			wantIs: errs.ErrMissingFragment,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := mapGHError("https://github.com/your-ko/link-validator", tt.err)
			if tt.err == nil {
				if got != nil {
					t.Fatalf("mapGHError(nil) = %v, want nil", got)
				}
				return
			}
			if !errors.Is(got, tt.wantIs) {
				t.Fatalf("expected errors.Is(%v, %v)", got, tt.wantIs)
			}
		})
	}

	t.Run("unknown errors pass through unchanged", func(t *testing.T) {
		t.Parallel()
		in := errors.New("boom")
		if got := mapGHError("https://github.com/your-ko/link-validator", in); got != in {
			t.Fatalf("mapGHError() = %v, want %v", got, in)
		}
	})
}
