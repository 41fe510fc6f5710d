package mcpadapter

import (
	"context"
	"net/url"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/povarna/bitbucket-dc-mcp/internal/bitbucket"
	"github.com/povarna/bitbucket-dc-mcp/internal/models"
)

type GetCommitsInput struct {
	ProjectKey     string `json:"project_key" jsonschema:"the project key"`
	RepositorySlug string `json:"repository_slug" jsonschema:"the repository slug"`
	Path           string `json:"path,omitempty" jsonschema:"filter commits affecting this file path"`
	Since          string `json:"since,omitempty" jsonschema:"commit hash or ref, exclude commits reachable from this"`
	Until          string `json:"until,omitempty" jsonschema:"commit hash or ref, include commits reachable from this (default: default branch HEAD)"`
	Start          int    `json:"start,omitempty" jsonschema:"pagination start index"`
	Limit          int    `json:"limit,omitempty" jsonschema:"max results (1-100)"`
	ResponseFormat string `json:"response_format,omitempty" jsonschema:"output format: markdown (default) or json"`
}

func NewGetCommitsHandler(client BitbucketClient) func(context.Context, *mcp.CallToolRequest, GetCommitsInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input GetCommitsInput) (*mcp.CallToolResult, any, error) {
		params := url.Values{}
		if input.Path != "" {
			params.Set("path", input.Path)
		}
		if input.Since != "" {
			params.Set("since", input.Since)
		}
		if input.Until != "" {
			params.Set("until", input.Until)
		}
		data, err := client.GetPaged(ctx, bitbucket.RepoPath(input.ProjectKey, input.RepositorySlug)+"/commits", params, input.Start, limitOr(input.Limit, 25))
		if err != nil {
			return nil, nil, err
		}
		return render(models.KindCommitList, data, input.ResponseFormat)
	}
}
