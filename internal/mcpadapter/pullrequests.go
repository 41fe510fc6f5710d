package mcpadapter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/povarna/bitbucket-dc-mcp/internal/bitbucket"
	"github.com/povarna/bitbucket-dc-mcp/internal/models"
)

func prPath(projectKey, repositorySlug string, id int) string {
	return bitbucket.RepoPath(projectKey, repositorySlug) + "/pull-requests/" + strconv.Itoa(id)
}

type GetPullRequestsInput struct {
	ProjectKey     string `json:"project_key" jsonschema:"the project key"`
	RepositorySlug string `json:"repository_slug" jsonschema:"the repository slug"`
	State          string `json:"state,omitempty" jsonschema:"PR state filter: OPEN, DECLINED, MERGED, or ALL (default: OPEN)"`
	Direction      string `json:"direction,omitempty" jsonschema:"INCOMING (to this repo) or OUTGOING (from this repo)"`
	Order          string `json:"order,omitempty" jsonschema:"order: NEWEST or OLDEST"`
	FilterText     string `json:"filter_text,omitempty" jsonschema:"filter PRs by title text"`
	Start          int    `json:"start,omitempty" jsonschema:"pagination start index"`
	Limit          int    `json:"limit,omitempty" jsonschema:"max results (1-100)"`
	ResponseFormat string `json:"response_format,omitempty" jsonschema:"output format: markdown (default) or json"`
}

func NewGetPullRequestsHandler(client BitbucketClient) func(context.Context, *mcp.CallToolRequest, GetPullRequestsInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input GetPullRequestsInput) (*mcp.CallToolResult, any, error) {
		params := url.Values{}
		if input.State != "" {
			params.Set("state", input.State)
		}
		if input.Direction != "" {
			params.Set("direction", input.Direction)
		}
		if input.Order != "" {
			params.Set("order", input.Order)
		}
		if input.FilterText != "" {
			params.Set("filterText", input.FilterText)
		}
		data, err := client.GetPaged(ctx, bitbucket.RepoPath(input.ProjectKey, input.RepositorySlug)+"/pull-requests", params, input.Start, limitOr(input.Limit, 25))
		if err != nil {
			return nil, nil, err
		}
		return render(models.KindPullRequestList, data, input.ResponseFormat)
	}
}

type GetPullRequestInput struct {
	ProjectKey     string `json:"project_key" jsonschema:"the project key"`
	RepositorySlug string `json:"repository_slug" jsonschema:"the repository slug"`
	PullRequestID  int    `json:"pull_request_id" jsonschema:"the pull request ID number"`
	ResponseFormat string `json:"response_format,omitempty" jsonschema:"output format: markdown (default) or json"`
}

func NewGetPullRequestHandler(client BitbucketClient) func(context.Context, *mcp.CallToolRequest, GetPullRequestInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input GetPullRequestInput) (*mcp.CallToolResult, any, error) {
		data, err := client.Get(ctx, prPath(input.ProjectKey, input.RepositorySlug, input.PullRequestID), nil)
		if err != nil {
			return nil, nil, err
		}
		return render(models.KindPullRequestDetail, data, input.ResponseFormat)
	}
}

type GetPullRequestCommentsInput struct {
	ProjectKey     string `json:"project_key" jsonschema:"the project key"`
	RepositorySlug string `json:"repository_slug" jsonschema:"the repository slug"`
	PullRequestID  int    `json:"pull_request_id" jsonschema:"the pull request ID number"`
	Start          int    `json:"start,omitempty" jsonschema:"pagination start index"`
	Limit          int    `json:"limit,omitempty" jsonschema:"max results (1-100)"`
	ResponseFormat string `json:"response_format,omitempty" jsonschema:"output format: markdown (default) or json"`
}

// NewGetPullRequestCommentsHandler returns the PR activity feed: comments
// (general and inline), approvals, and state changes in chronological order.
func NewGetPullRequestCommentsHandler(client BitbucketClient) func(context.Context, *mcp.CallToolRequest, GetPullRequestCommentsInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input GetPullRequestCommentsInput) (*mcp.CallToolResult, any, error) {
		data, err := client.GetPaged(ctx, prPath(input.ProjectKey, input.RepositorySlug, input.PullRequestID)+"/activities", nil, input.Start, limitOr(input.Limit, 25))
		if err != nil {
			return nil, nil, err
		}
		return render(models.KindPullRequestComments, data, input.ResponseFormat)
	}
}

type GetPullRequestChangesInput struct {
	ProjectKey     string `json:"project_key" jsonschema:"the project key"`
	RepositorySlug string `json:"repository_slug" jsonschema:"the repository slug"`
	PullRequestID  int    `json:"pull_request_id" jsonschema:"the pull request ID number"`
	ChangeScope    string `json:"change_scope,omitempty" jsonschema:"UNREVIEWED to only show unreviewed changes, or ALL"`
	WithComments   *bool  `json:"with_comments,omitempty" jsonschema:"include comment counts per file"`
	Start          int    `json:"start,omitempty" jsonschema:"pagination start index"`
	Limit          int    `json:"limit,omitempty" jsonschema:"max results (1-1000)"`
	ResponseFormat string `json:"response_format,omitempty" jsonschema:"output format: markdown (default) or json"`
}

func NewGetPullRequestChangesHandler(client BitbucketClient) func(context.Context, *mcp.CallToolRequest, GetPullRequestChangesInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input GetPullRequestChangesInput) (*mcp.CallToolResult, any, error) {
		params := url.Values{}
		if input.ChangeScope != "" {
			params.Set("changeScope", input.ChangeScope)
		}
		if input.WithComments != nil {
			params.Set("withComments", strconv.FormatBool(*input.WithComments))
		}
		data, err := client.GetPaged(ctx, prPath(input.ProjectKey, input.RepositorySlug, input.PullRequestID)+"/changes", params, input.Start, limitOr(input.Limit, 25))
		if err != nil {
			return nil, nil, err
		}
		return render(models.KindChangeList, data, input.ResponseFormat)
	}
}

type GetPullRequestDiffInput struct {
	ProjectKey     string `json:"project_key" jsonschema:"the project key"`
	RepositorySlug string `json:"repository_slug" jsonschema:"the repository slug"`
	PullRequestID  int    `json:"pull_request_id" jsonschema:"the pull request ID number"`
	Path           string `json:"path" jsonschema:"file path to get the diff for"`
	ContextLines   *int   `json:"context_lines,omitempty" jsonschema:"number of context lines around changes (default: 10)"`
	DiffType       string `json:"diff_type,omitempty" jsonschema:"EFFECTIVE (merge result) or RANGE (commit range)"`
	Whitespace     string `json:"whitespace,omitempty" jsonschema:"whitespace handling: SHOW, IGNORE_ALL, or IGNORE_TRAILING"`
	ResponseFormat string `json:"response_format,omitempty" jsonschema:"output format: markdown (default) or json"`
}

func NewGetPullRequestDiffHandler(client BitbucketClient) func(context.Context, *mcp.CallToolRequest, GetPullRequestDiffInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input GetPullRequestDiffInput) (*mcp.CallToolResult, any, error) {
		params := url.Values{}
		if input.ContextLines != nil {
			params.Set("contextLines", strconv.Itoa(*input.ContextLines))
		}
		if input.DiffType != "" {
			params.Set("diffType", input.DiffType)
		}
		if input.Whitespace != "" {
			params.Set("whitespace", input.Whitespace)
		}
		diff, err := client.GetRaw(ctx, prPath(input.ProjectKey, input.RepositorySlug, input.PullRequestID)+"/diff/"+input.Path, params)
		if err != nil {
			return nil, nil, err
		}
		payload := map[string]any{
			"path":          input.Path,
			"pullRequestId": float64(input.PullRequestID),
			"diff":          diff,
		}
		return render(models.KindPullRequestDiff, payload, input.ResponseFormat)
	}
}

type PostPullRequestCommentInput struct {
	ProjectKey     string `json:"project_key" jsonschema:"the project key"`
	RepositorySlug string `json:"repository_slug" jsonschema:"the repository slug"`
	PullRequestID  int    `json:"pull_request_id" jsonschema:"the pull request ID number"`
	Text           string `json:"text" jsonschema:"the comment text (supports Markdown)"`
	ParentID       *int   `json:"parent_id,omitempty" jsonschema:"parent comment ID to reply to"`
	FilePath       string `json:"file_path,omitempty" jsonschema:"file path for inline comment"`
	Line           *int   `json:"line,omitempty" jsonschema:"line number for inline comment"`
	LineType       string `json:"line_type,omitempty" jsonschema:"ADDED, REMOVED, or CONTEXT for inline comments"`
}

// NewPostPullRequestCommentHandler posts a general comment, a reply, or an
// inline comment anchored to a file and line.
func NewPostPullRequestCommentHandler(client BitbucketClient) func(context.Context, *mcp.CallToolRequest, PostPullRequestCommentInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input PostPullRequestCommentInput) (*mcp.CallToolResult, any, error) {
		body := map[string]any{"text": input.Text}
		if input.ParentID != nil {
			body["parent"] = map[string]any{"id": *input.ParentID}
		}
		if input.FilePath != "" {
			anchor := map[string]any{"path": input.FilePath, "fileType": "TO"}
			if input.Line != nil {
				anchor["line"] = *input.Line
			}
			if input.LineType != "" {
				anchor["lineType"] = input.LineType
			}
			body["anchor"] = anchor
		}
		data, err := client.Post(ctx, prPath(input.ProjectKey, input.RepositorySlug, input.PullRequestID)+"/comments", body, nil)
		if err != nil {
			return nil, nil, err
		}
		id := any("unknown")
		if v, ok := data["id"]; ok {
			id = v
		}
		return textResult(fmt.Sprintf("Comment posted successfully (ID: %v)", id)), nil, nil
	}
}

type CreatePullRequestInput struct {
	ProjectKey     string   `json:"project_key" jsonschema:"the project key"`
	RepositorySlug string   `json:"repository_slug" jsonschema:"the repository slug"`
	Title          string   `json:"title" jsonschema:"PR title"`
	FromRef        string   `json:"from_ref" jsonschema:"source branch (e.g. 'feature/my-branch')"`
	ToRef          string   `json:"to_ref" jsonschema:"target branch (e.g. 'main' or 'develop')"`
	Description    string   `json:"description,omitempty" jsonschema:"PR description (supports Markdown)"`
	Reviewers      []string `json:"reviewers,omitempty" jsonschema:"list of reviewer usernames to add"`
}

func NewCreatePullRequestHandler(client BitbucketClient) func(context.Context, *mcp.CallToolRequest, CreatePullRequestInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input CreatePullRequestInput) (*mcp.CallToolResult, any, error) {
		body := map[string]any{
			"title":   input.Title,
			"fromRef": map[string]any{"id": input.FromRef},
			"toRef":   map[string]any{"id": input.ToRef},
		}
		if input.Description != "" {
			body["description"] = input.Description
		}
		if len(input.Reviewers) > 0 {
			body["reviewers"] = reviewerRecords(input.Reviewers)
		}
		data, err := client.Post(ctx, bitbucket.RepoPath(input.ProjectKey, input.RepositorySlug)+"/pull-requests", body, nil)
		if err != nil {
			return nil, nil, err
		}
		detail, err := renderMarkdown(models.KindPullRequestDetail, data)
		if err != nil {
			return nil, nil, err
		}
		text := fmt.Sprintf("Pull request created successfully (ID: #%v)\n\n%s", data["id"], detail)
		return textResult(text), nil, nil
	}
}

type UpdatePullRequestInput struct {
	ProjectKey     string   `json:"project_key" jsonschema:"the project key"`
	RepositorySlug string   `json:"repository_slug" jsonschema:"the repository slug"`
	PullRequestID  int      `json:"pull_request_id" jsonschema:"the pull request ID number"`
	Version        int      `json:"version" jsonschema:"current version of the PR for optimistic locking (get from bitbucket_get_pull_request)"`
	Title          string   `json:"title,omitempty" jsonschema:"new PR title"`
	Description    *string  `json:"description,omitempty" jsonschema:"new PR description"`
	Reviewers      []string `json:"reviewers,omitempty" jsonschema:"full list of reviewer usernames (replaces existing)"`
}

// NewUpdatePullRequestHandler updates title, description, or reviewers. The
// current PR is fetched first so required fields carry over into the PUT.
func NewUpdatePullRequestHandler(client BitbucketClient) func(context.Context, *mcp.CallToolRequest, UpdatePullRequestInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input UpdatePullRequestInput) (*mcp.CallToolResult, any, error) {
		path := prPath(input.ProjectKey, input.RepositorySlug, input.PullRequestID)
		current, err := client.Get(ctx, path, nil)
		if err != nil {
			return nil, nil, err
		}

		title := input.Title
		if title == "" {
			title, _ = current["title"].(string)
		}
		body := map[string]any{
			"version": input.Version,
			"title":   title,
			"fromRef": current["fromRef"],
			"toRef":   current["toRef"],
		}
		if input.Description != nil {
			body["description"] = *input.Description
		}
		switch {
		case input.Reviewers != nil:
			body["reviewers"] = reviewerRecords(input.Reviewers)
		case current["reviewers"] != nil:
			body["reviewers"] = current["reviewers"]
		}

		data, err := client.Put(ctx, path, body)
		if err != nil {
			return nil, nil, err
		}
		detail, err := renderMarkdown(models.KindPullRequestDetail, data)
		if err != nil {
			return nil, nil, err
		}
		return textResult("Pull request updated successfully.\n\n" + detail), nil, nil
	}
}

type GetRequiredReviewersInput struct {
	ProjectKey     string `json:"project_key" jsonschema:"the project key"`
	RepositorySlug string `json:"repository_slug" jsonschema:"the repository slug"`
	SourceRef      string `json:"source_ref" jsonschema:"source branch ref ID"`
	TargetRef      string `json:"target_ref" jsonschema:"target branch ref ID"`
	ResponseFormat string `json:"response_format,omitempty" jsonschema:"output format: markdown (default) or json"`
}

// NewGetRequiredReviewersHandler lists the mandatory reviewers configured
// for a branch combination, for use before creating a PR.
func NewGetRequiredReviewersHandler(client BitbucketClient) func(context.Context, *mcp.CallToolRequest, GetRequiredReviewersInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input GetRequiredReviewersInput) (*mcp.CallToolResult, any, error) {
		params := url.Values{}
		params.Set("sourceRefId", input.SourceRef)
		params.Set("targetRefId", input.TargetRef)
		data, err := client.GetAny(ctx, bitbucket.RepoPath(input.ProjectKey, input.RepositorySlug)+"/conditions", params)
		if err != nil {
			return nil, nil, err
		}

		// The conditions endpoint returns a top-level array on some server
		// versions and a paged wrapper on others.
		var conditions []any
		switch v := data.(type) {
		case []any:
			conditions = v
		case map[string]any:
			if values, ok := v["values"].([]any); ok {
				conditions = values
			} else {
				conditions = []any{v}
			}
		}
		payload := map[string]any{"conditions": conditions}
		return render(models.KindReviewerList, payload, input.ResponseFormat)
	}
}

func reviewerRecords(names []string) []map[string]any {
	records := make([]map[string]any, 0, len(names))
	for _, name := range names {
		records = append(records, map[string]any{"user": map[string]any{"name": name}})
	}
	return records
}
