package mcpadapter

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/povarna/bitbucket-dc-mcp/internal/bitbucket"
	"github.com/povarna/bitbucket-dc-mcp/internal/models"
)

type GetRepositoriesInput struct {
	ProjectKey     string `json:"project_key" jsonschema:"the project key (e.g. 'PROJ')"`
	Start          int    `json:"start,omitempty" jsonschema:"pagination start index"`
	Limit          int    `json:"limit,omitempty" jsonschema:"max results to return (1-1000)"`
	ResponseFormat string `json:"response_format,omitempty" jsonschema:"output format: markdown (default) or json"`
}

func NewGetRepositoriesHandler(client BitbucketClient) func(context.Context, *mcp.CallToolRequest, GetRepositoriesInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input GetRepositoriesInput) (*mcp.CallToolResult, any, error) {
		data, err := client.GetPaged(ctx, "/rest/api/latest/projects/"+input.ProjectKey+"/repos", nil, input.Start, limitOr(input.Limit, 25))
		if err != nil {
			return nil, nil, err
		}
		return render(models.KindRepositoryList, data, input.ResponseFormat)
	}
}

type GetRepositoryInput struct {
	ProjectKey     string `json:"project_key" jsonschema:"the project key (e.g. 'PROJ')"`
	RepositorySlug string `json:"repository_slug" jsonschema:"the repository slug"`
	ResponseFormat string `json:"response_format,omitempty" jsonschema:"output format: markdown (default) or json"`
}

func NewGetRepositoryHandler(client BitbucketClient) func(context.Context, *mcp.CallToolRequest, GetRepositoryInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input GetRepositoryInput) (*mcp.CallToolResult, any, error) {
		data, err := client.Get(ctx, bitbucket.RepoPath(input.ProjectKey, input.RepositorySlug), nil)
		if err != nil {
			return nil, nil, err
		}
		return render(models.KindRepositoryDetail, data, input.ResponseFormat)
	}
}
