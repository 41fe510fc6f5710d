package format

import (
	"fmt"
	"strings"
)

func renderBranches(payload map[string]any) (string, error) {
	branches, total, isLast, err := pagedValues(payload)
	if err != nil {
		return "", err
	}

	lines := []string{fmt.Sprintf("# Branches (%d total)\n", total)}
	for _, v := range branches {
		b, _ := v.(map[string]any)
		displayID, err := requireString(b, "displayId")
		if err != nil {
			return "", err
		}
		def := ""
		if optBool(b, "isDefault") {
			def = " ⭐ **default**"
		}
		lines = append(lines, fmt.Sprintf("- `%s` — latest commit: `%s`%s",
			displayID, shortHash(optString(b, "latestCommit")), def))
	}
	lines = paginationHint(lines, isLast, "branches")
	return strings.Join(lines, "\n"), nil
}

func renderTags(payload map[string]any) (string, error) {
	tags, total, isLast, err := pagedValues(payload)
	if err != nil {
		return "", err
	}

	lines := []string{fmt.Sprintf("# Tags (%d total)\n", total)}
	for _, v := range tags {
		t, _ := v.(map[string]any)
		displayID, err := requireString(t, "displayId")
		if err != nil {
			return "", err
		}
		lines = append(lines, fmt.Sprintf("- `%s` — commit: `%s`",
			displayID, shortHash(optString(t, "latestCommit"))))
	}
	lines = paginationHint(lines, isLast, "tags")
	return strings.Join(lines, "\n"), nil
}

// renderCommits keeps the API's ordering; the server returns commits in
// reverse chronological order and re-sorting here would mask server-side
// ordering bugs.
func renderCommits(payload map[string]any) (string, error) {
	commits, total, isLast, err := pagedValues(payload)
	if err != nil {
		return "", err
	}

	lines := []string{fmt.Sprintf("# Commits (%d total)\n", total)}
	for _, v := range commits {
		c, _ := v.(map[string]any)
		hash := optString(c, "displayId")
		if hash == "" {
			hash = optString(c, "id")
		}
		if hash == "" {
			return "", missingField("id")
		}
		author := optString(optMap(c, "author"), "name")
		if author == "" {
			author = "unknown"
		}
		lines = append(lines, fmt.Sprintf("- `%s` %s **%s** — %s",
			shortHash(hash), timestamp(c, "authorTimestamp"), author, firstLine(optString(c, "message"))))
	}
	lines = paginationHint(lines, isLast, "commits")
	return strings.Join(lines, "\n"), nil
}
