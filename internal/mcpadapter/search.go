package mcpadapter

import (
	"context"
	"net/url"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/povarna/bitbucket-dc-mcp/internal/models"
	"github.com/povarna/bitbucket-dc-mcp/internal/query"
)

type CodeSearchInput struct {
	Query          string `json:"query" jsonschema:"Lucene-style search query; supports ext:/lang:/path:/repo:/project: filters and upper-case AND, OR, NOT with () grouping"`
	Limit          int    `json:"limit,omitempty" jsonschema:"number of results per page (1-100)"`
	Start          int    `json:"start,omitempty" jsonschema:"starting index for pagination (use nextStart from previous results)"`
	ResponseFormat string `json:"response_format,omitempty" jsonschema:"output format: markdown (default) or json"`
}

// NewCodeSearchHandler searches code across all repositories via the Search
// API. The query passes through the translator untouched apart from the
// empty-string check; the remote index owns the syntax.
func NewCodeSearchHandler(client BitbucketClient) func(context.Context, *mcp.CallToolRequest, CodeSearchInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input CodeSearchInput) (*mcp.CallToolResult, any, error) {
		q, err := query.Translate(input.Query)
		if err != nil {
			return nil, nil, err
		}

		body := map[string]any{
			"query": q,
			"entities": map[string]any{
				"code": map[string]any{
					"start": input.Start,
					"limit": limitOr(input.Limit, 25),
				},
			},
		}
		params := url.Values{}
		params.Set("avatarSize", "64")
		data, err := client.Post(ctx, "/rest/search/latest/search", body, params)
		if err != nil {
			return nil, nil, err
		}

		code, ok := data["code"].(map[string]any)
		if !ok {
			// Search feature disabled or no code entity in the reply.
			code = map[string]any{}
		}
		payload := map[string]any{
			"query": q,
			"code":  code,
		}
		return render(models.KindSearchResults, payload, input.ResponseFormat)
	}
}
