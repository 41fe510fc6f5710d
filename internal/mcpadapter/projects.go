package mcpadapter

import (
	"context"
	"net/url"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/povarna/bitbucket-dc-mcp/internal/models"
)

type GetProjectsInput struct {
	Name           string `json:"name,omitempty" jsonschema:"filter projects by name (substring match)"`
	Permission     string `json:"permission,omitempty" jsonschema:"filter by permission: PROJECT_VIEW, PROJECT_ADMIN, REPO_READ, etc."`
	Start          int    `json:"start,omitempty" jsonschema:"pagination start index"`
	Limit          int    `json:"limit,omitempty" jsonschema:"max results to return (1-1000)"`
	ResponseFormat string `json:"response_format,omitempty" jsonschema:"output format: markdown (default) or json"`
}

func NewGetProjectsHandler(client BitbucketClient) func(context.Context, *mcp.CallToolRequest, GetProjectsInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input GetProjectsInput) (*mcp.CallToolResult, any, error) {
		params := url.Values{}
		if input.Name != "" {
			params.Set("name", input.Name)
		}
		if input.Permission != "" {
			params.Set("permission", input.Permission)
		}
		data, err := client.GetPaged(ctx, "/rest/api/latest/projects", params, input.Start, limitOr(input.Limit, 25))
		if err != nil {
			return nil, nil, err
		}
		return render(models.KindProjectList, data, input.ResponseFormat)
	}
}

type GetProjectInput struct {
	ProjectKey     string `json:"project_key" jsonschema:"the project key (e.g. 'PROJ')"`
	ResponseFormat string `json:"response_format,omitempty" jsonschema:"output format: markdown (default) or json"`
}

func NewGetProjectHandler(client BitbucketClient) func(context.Context, *mcp.CallToolRequest, GetProjectInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input GetProjectInput) (*mcp.CallToolResult, any, error) {
		data, err := client.Get(ctx, "/rest/api/latest/projects/"+input.ProjectKey, nil)
		if err != nil {
			return nil, nil, err
		}
		return render(models.KindProjectDetail, data, input.ResponseFormat)
	}
}
