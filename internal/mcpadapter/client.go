// Package mcpadapter exposes the Bitbucket Data Center REST API as MCP
// tools. Each tool makes one client call and renders the reply through the
// response formatter.
package mcpadapter

import (
	"context"
	"net/url"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/povarna/bitbucket-dc-mcp/internal/format"
	"github.com/povarna/bitbucket-dc-mcp/internal/models"
)

// BitbucketClient is the HTTP collaborator the tool handlers call into.
type BitbucketClient interface {
	Get(ctx context.Context, path string, params url.Values) (map[string]any, error)
	GetAny(ctx context.Context, path string, params url.Values) (any, error)
	GetPaged(ctx context.Context, path string, params url.Values, start, limit int) (map[string]any, error)
	GetRaw(ctx context.Context, path string, params url.Values) (string, error)
	Post(ctx context.Context, path string, body any, params url.Values) (map[string]any, error)
	Put(ctx context.Context, path string, body any) (map[string]any, error)
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func limitOr(limit, def int) int {
	if limit <= 0 {
		return def
	}
	return limit
}

// render is the shared tail of every read tool: wrap the payload in an
// envelope and produce the requested output shape.
func render(kind models.Kind, payload any, responseFormat string) (*mcp.CallToolResult, any, error) {
	text, err := format.Render(models.Envelope{
		Kind:    kind,
		Payload: payload,
		Mode:    models.ParseMode(responseFormat),
	})
	if err != nil {
		return nil, nil, err
	}
	return textResult(text), nil, nil
}

func renderMarkdown(kind models.Kind, payload any) (string, error) {
	return format.Render(models.Envelope{
		Kind:    kind,
		Payload: payload,
		Mode:    models.ModeMarkdown,
	})
}
