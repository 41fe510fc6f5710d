package mcpadapter

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func boolPtr(b bool) *bool {
	return &b
}

func readOnlyAnnotations(title string) *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		Title:           title,
		ReadOnlyHint:    true,
		DestructiveHint: boolPtr(false),
		IdempotentHint:  true,
		OpenWorldHint:   boolPtr(true),
	}
}

func writeAnnotations(title string) *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		Title:           title,
		DestructiveHint: boolPtr(false),
		OpenWorldHint:   boolPtr(true),
	}
}

// NewServer creates the MCP server with every Bitbucket tool registered.
func NewServer(version string, client BitbucketClient) *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "bitbucket-dc-mcp",
			Version: version,
		},
		&mcp.ServerOptions{
			Instructions: "MCP server for Bitbucket Data Center. Provides tools to search code, " +
				"browse files, manage pull requests, view commits, and explore projects " +
				"and repositories. Supports Lucene-style code search with filters like " +
				"ext:java, lang:python, repo:name, project:KEY, and boolean operators.",
		},
	)

	mcp.AddTool(server, &mcp.Tool{
		Name: "bitbucket_code_search",
		Description: "Search code across all Bitbucket repositories using the search API. " +
			"Returns matching files with surrounding code context and line numbers.",
		Annotations: readOnlyAnnotations("Code Search"),
	}, NewCodeSearchHandler(client))

	mcp.AddTool(server, &mcp.Tool{
		Name: "bitbucket_browse",
		Description: "Browse the file tree of a repository. Lists files and directories at " +
			"the given path; if the path points to a file, returns its content instead.",
		Annotations: readOnlyAnnotations("Browse Files"),
	}, NewBrowseHandler(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "bitbucket_get_file_content",
		Description: "Get the raw content of a file from a repository at a branch, tag, or commit.",
		Annotations: readOnlyAnnotations("Get File Content"),
	}, NewGetFileContentHandler(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "bitbucket_list_files",
		Description: "Recursively list all file paths in a repository or sub-directory.",
		Annotations: readOnlyAnnotations("List Files"),
	}, NewListFilesHandler(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "bitbucket_get_branches",
		Description: "List branches in a repository with their latest commit hash.",
		Annotations: readOnlyAnnotations("Get Branches"),
	}, NewGetBranchesHandler(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "bitbucket_get_tags",
		Description: "List tags in a repository with their associated commit hash.",
		Annotations: readOnlyAnnotations("Get Tags"),
	}, NewGetTagsHandler(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "bitbucket_get_projects",
		Description: "List Bitbucket projects the authenticated user has access to.",
		Annotations: readOnlyAnnotations("Get Projects"),
	}, NewGetProjectsHandler(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "bitbucket_get_project",
		Description: "Get details of a specific Bitbucket project by its key.",
		Annotations: readOnlyAnnotations("Get Project"),
	}, NewGetProjectHandler(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "bitbucket_get_repositories",
		Description: "List repositories within a Bitbucket project.",
		Annotations: readOnlyAnnotations("Get Repositories"),
	}, NewGetRepositoriesHandler(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "bitbucket_get_repository",
		Description: "Get details of a specific repository including clone URLs and configuration.",
		Annotations: readOnlyAnnotations("Get Repository"),
	}, NewGetRepositoryHandler(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "bitbucket_get_pull_requests",
		Description: "List pull requests for a repository, filtered by state, direction, and text.",
		Annotations: readOnlyAnnotations("Get Pull Requests"),
	}, NewGetPullRequestsHandler(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "bitbucket_get_pull_request",
		Description: "Get full details of a pull request including description and reviewers.",
		Annotations: readOnlyAnnotations("Get Pull Request"),
	}, NewGetPullRequestHandler(client))

	mcp.AddTool(server, &mcp.Tool{
		Name: "bitbucket_get_pull_request_comments",
		Description: "Get comments and activity for a pull request, including inline code " +
			"comments with file path and line information.",
		Annotations: readOnlyAnnotations("Get PR Comments"),
	}, NewGetPullRequestCommentsHandler(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "bitbucket_get_pull_request_changes",
		Description: "Get the list of files added, modified, deleted, or renamed in a pull request.",
		Annotations: readOnlyAnnotations("Get PR Changes"),
	}, NewGetPullRequestChangesHandler(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "bitbucket_get_pull_request_diff",
		Description: "Get the unified text diff for a specific file in a pull request.",
		Annotations: readOnlyAnnotations("Get PR Diff"),
	}, NewGetPullRequestDiffHandler(client))

	mcp.AddTool(server, &mcp.Tool{
		Name: "bitbucket_post_pull_request_comment",
		Description: "Post a comment on a pull request: general, a reply to an existing " +
			"comment, or inline at a specific file and line.",
		Annotations: writeAnnotations("Post PR Comment"),
	}, NewPostPullRequestCommentHandler(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "bitbucket_create_pull_request",
		Description: "Create a new pull request from a source branch to a target branch.",
		Annotations: writeAnnotations("Create Pull Request"),
	}, NewCreatePullRequestHandler(client))

	mcp.AddTool(server, &mcp.Tool{
		Name: "bitbucket_update_pull_request",
		Description: "Update a pull request's title, description, or reviewers. Requires the " +
			"current PR version number for optimistic locking.",
		Annotations: writeAnnotations("Update Pull Request"),
	}, NewUpdatePullRequestHandler(client))

	mcp.AddTool(server, &mcp.Tool{
		Name: "bitbucket_get_required_reviewers",
		Description: "Get required reviewers for a potential pull request between two branches, " +
			"from merge checks and default reviewer rules.",
		Annotations: readOnlyAnnotations("Get Required Reviewers"),
	}, NewGetRequiredReviewersHandler(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "bitbucket_get_commits",
		Description: "List commits for a repository in reverse chronological order, optionally scoped to a path or commit range.",
		Annotations: readOnlyAnnotations("Get Commits"),
	}, NewGetCommitsHandler(client))

	return server
}
