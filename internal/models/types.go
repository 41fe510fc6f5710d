package models

// Mode selects the tool output shape.
type Mode string

const (
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
)

// ParseMode maps a tool's response_format parameter to a Mode,
// defaulting to markdown.
func ParseMode(s string) Mode {
	if s == string(ModeJSON) {
		return ModeJSON
	}
	return ModeMarkdown
}

// Kind identifies the response category a payload belongs to. Each kind has
// a dedicated markdown renderer.
type Kind string

const (
	KindDirectory           Kind = "directory"
	KindFileContent         Kind = "file_content"
	KindFileList            Kind = "file_list"
	KindPullRequestList     Kind = "pull_request_list"
	KindPullRequestDetail   Kind = "pull_request_detail"
	KindPullRequestComments Kind = "pull_request_comments"
	KindPullRequestDiff     Kind = "pull_request_diff"
	KindChangeList          Kind = "change_list"
	KindCommitList          Kind = "commit_list"
	KindBranchList          Kind = "branch_list"
	KindTagList             Kind = "tag_list"
	KindProjectList         Kind = "project_list"
	KindProjectDetail       Kind = "project_detail"
	KindRepositoryList      Kind = "repository_list"
	KindRepositoryDetail    Kind = "repository_detail"
	KindSearchResults       Kind = "search_results"
	KindReviewerList        Kind = "reviewer_list"
)

// Envelope is created per tool invocation from the raw API reply and
// consumed once by the formatter. It is never persisted.
type Envelope struct {
	Kind    Kind
	Payload any
	Mode    Mode
}
