// Package format renders Bitbucket API payloads as markdown or passes them
// through as JSON. Rendering is a pure function of (kind, payload): no state,
// deterministic output, payloads are never mutated.
package format

import (
	"encoding/json"
	"fmt"

	"github.com/povarna/bitbucket-dc-mcp/internal/models"
)

// FormatError reports a payload that lacks a field the selected renderer
// requires. Callers surface it instead of rendering a blank row.
type FormatError struct {
	Field string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("payload is missing required field %q", e.Field)
}

func missingField(name string) error {
	return &FormatError{Field: name}
}

// Render produces the tool output for an envelope. JSON mode serializes the
// payload as-is; markdown mode dispatches to the renderer for the kind.
func Render(e models.Envelope) (string, error) {
	if e.Mode == models.ModeJSON {
		out, err := json.MarshalIndent(e.Payload, "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshal payload: %w", err)
		}
		return string(out), nil
	}

	payload, ok := e.Payload.(map[string]any)
	if !ok {
		return "", missingField("payload")
	}

	switch e.Kind {
	case models.KindDirectory:
		return renderBrowse(payload)
	case models.KindFileContent:
		return renderFileContent(payload)
	case models.KindFileList:
		return renderFileList(payload)
	case models.KindPullRequestList:
		return renderPullRequests(payload)
	case models.KindPullRequestDetail:
		return renderPullRequestDetail(payload)
	case models.KindPullRequestComments:
		return renderPullRequestActivities(payload)
	case models.KindPullRequestDiff:
		return renderPullRequestDiff(payload)
	case models.KindChangeList:
		return renderPullRequestChanges(payload)
	case models.KindCommitList:
		return renderCommits(payload)
	case models.KindBranchList:
		return renderBranches(payload)
	case models.KindTagList:
		return renderTags(payload)
	case models.KindProjectList:
		return renderProjects(payload)
	case models.KindProjectDetail:
		return renderProjectDetail(payload)
	case models.KindRepositoryList:
		return renderRepositories(payload)
	case models.KindRepositoryDetail:
		return renderRepositoryDetail(payload)
	case models.KindSearchResults:
		return renderSearchResults(payload)
	case models.KindReviewerList:
		return renderRequiredReviewers(payload)
	default:
		return "", fmt.Errorf("unknown response kind %q", e.Kind)
	}
}
