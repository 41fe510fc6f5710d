package mcpadapter

import (
	"context"
	"net/url"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/povarna/bitbucket-dc-mcp/internal/bitbucket"
	"github.com/povarna/bitbucket-dc-mcp/internal/models"
)

type BrowseInput struct {
	ProjectKey     string `json:"project_key" jsonschema:"the project key"`
	RepositorySlug string `json:"repository_slug" jsonschema:"the repository slug"`
	Path           string `json:"path,omitempty" jsonschema:"path to browse (e.g. 'src/main/java'), empty for root"`
	At             string `json:"at,omitempty" jsonschema:"branch, tag, or commit to browse at (default: default branch)"`
	Start          int    `json:"start,omitempty" jsonschema:"pagination start index"`
	Limit          int    `json:"limit,omitempty" jsonschema:"max results (1-1000)"`
	ResponseFormat string `json:"response_format,omitempty" jsonschema:"output format: markdown (default) or json"`
}

func NewBrowseHandler(client BitbucketClient) func(context.Context, *mcp.CallToolRequest, BrowseInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input BrowseInput) (*mcp.CallToolResult, any, error) {
		endpoint := bitbucket.RepoPath(input.ProjectKey, input.RepositorySlug) + "/browse"
		if input.Path != "" {
			endpoint += "/" + input.Path
		}
		params := url.Values{}
		if input.At != "" {
			params.Set("at", input.At)
		}
		data, err := client.GetPaged(ctx, endpoint, params, input.Start, limitOr(input.Limit, 500))
		if err != nil {
			return nil, nil, err
		}
		return render(models.KindDirectory, data, input.ResponseFormat)
	}
}

type GetFileContentInput struct {
	ProjectKey     string `json:"project_key" jsonschema:"the project key"`
	RepositorySlug string `json:"repository_slug" jsonschema:"the repository slug"`
	Path           string `json:"path" jsonschema:"file path (e.g. 'src/main/App.java')"`
	At             string `json:"at,omitempty" jsonschema:"branch, tag, or commit (default: default branch)"`
	ResponseFormat string `json:"response_format,omitempty" jsonschema:"output format: markdown (default) or json"`
}

func NewGetFileContentHandler(client BitbucketClient) func(context.Context, *mcp.CallToolRequest, GetFileContentInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input GetFileContentInput) (*mcp.CallToolResult, any, error) {
		params := url.Values{}
		if input.At != "" {
			params.Set("at", input.At)
		}
		content, err := client.GetRaw(ctx, bitbucket.RepoPath(input.ProjectKey, input.RepositorySlug)+"/raw/"+input.Path, params)
		if err != nil {
			return nil, nil, err
		}
		payload := map[string]any{
			"path":    input.Path,
			"at":      input.At,
			"content": content,
		}
		return render(models.KindFileContent, payload, input.ResponseFormat)
	}
}

type ListFilesInput struct {
	ProjectKey     string `json:"project_key" jsonschema:"the project key"`
	RepositorySlug string `json:"repository_slug" jsonschema:"the repository slug"`
	Path           string `json:"path,omitempty" jsonschema:"sub-path to list from (default: repository root)"`
	At             string `json:"at,omitempty" jsonschema:"branch, tag, or commit (default: default branch)"`
	Start          int    `json:"start,omitempty" jsonschema:"pagination start index"`
	Limit          int    `json:"limit,omitempty" jsonschema:"max results (1-5000)"`
	ResponseFormat string `json:"response_format,omitempty" jsonschema:"output format: markdown (default) or json"`
}

func NewListFilesHandler(client BitbucketClient) func(context.Context, *mcp.CallToolRequest, ListFilesInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ListFilesInput) (*mcp.CallToolResult, any, error) {
		endpoint := bitbucket.RepoPath(input.ProjectKey, input.RepositorySlug) + "/files"
		if input.Path != "" {
			endpoint += "/" + input.Path
		}
		params := url.Values{}
		if input.At != "" {
			params.Set("at", input.At)
		}
		data, err := client.GetPaged(ctx, endpoint, params, input.Start, limitOr(input.Limit, 500))
		if err != nil {
			return nil, nil, err
		}
		// Shallow copy so the listing path travels with the payload without
		// touching the API reply.
		payload := make(map[string]any, len(data)+1)
		for k, v := range data {
			payload[k] = v
		}
		payload["path"] = input.Path
		return render(models.KindFileList, payload, input.ResponseFormat)
	}
}

type GetBranchesInput struct {
	ProjectKey     string `json:"project_key" jsonschema:"the project key"`
	RepositorySlug string `json:"repository_slug" jsonschema:"the repository slug"`
	FilterText     string `json:"filter_text,omitempty" jsonschema:"filter branches by name (substring match)"`
	OrderBy        string `json:"order_by,omitempty" jsonschema:"ALPHABETICAL or MODIFICATION (default: MODIFICATION)"`
	Start          int    `json:"start,omitempty" jsonschema:"pagination start index"`
	Limit          int    `json:"limit,omitempty" jsonschema:"max results (1-1000)"`
	ResponseFormat string `json:"response_format,omitempty" jsonschema:"output format: markdown (default) or json"`
}

func NewGetBranchesHandler(client BitbucketClient) func(context.Context, *mcp.CallToolRequest, GetBranchesInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input GetBranchesInput) (*mcp.CallToolResult, any, error) {
		params := url.Values{}
		params.Set("details", "true")
		if input.FilterText != "" {
			params.Set("filterText", input.FilterText)
		}
		if input.OrderBy != "" {
			params.Set("orderBy", input.OrderBy)
		}
		data, err := client.GetPaged(ctx, bitbucket.RepoPath(input.ProjectKey, input.RepositorySlug)+"/branches", params, input.Start, limitOr(input.Limit, 25))
		if err != nil {
			return nil, nil, err
		}
		return render(models.KindBranchList, data, input.ResponseFormat)
	}
}

type GetTagsInput struct {
	ProjectKey     string `json:"project_key" jsonschema:"the project key"`
	RepositorySlug string `json:"repository_slug" jsonschema:"the repository slug"`
	FilterText     string `json:"filter_text,omitempty" jsonschema:"filter tags by name (substring match)"`
	OrderBy        string `json:"order_by,omitempty" jsonschema:"ALPHABETICAL or MODIFICATION"`
	Start          int    `json:"start,omitempty" jsonschema:"pagination start index"`
	Limit          int    `json:"limit,omitempty" jsonschema:"max results (1-1000)"`
	ResponseFormat string `json:"response_format,omitempty" jsonschema:"output format: markdown (default) or json"`
}

func NewGetTagsHandler(client BitbucketClient) func(context.Context, *mcp.CallToolRequest, GetTagsInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input GetTagsInput) (*mcp.CallToolResult, any, error) {
		params := url.Values{}
		if input.FilterText != "" {
			params.Set("filterText", input.FilterText)
		}
		if input.OrderBy != "" {
			params.Set("orderBy", input.OrderBy)
		}
		data, err := client.GetPaged(ctx, bitbucket.RepoPath(input.ProjectKey, input.RepositorySlug)+"/tags", params, input.Start, limitOr(input.Limit, 25))
		if err != nil {
			return nil, nil, err
		}
		return render(models.KindTagList, data, input.ResponseFormat)
	}
}
