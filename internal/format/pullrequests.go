package format

import (
	"fmt"
	"strings"
)

// prRefs extracts the source and target branch names. Both refs are
// identity-bearing for a pull request and must be present.
func prRefs(pr map[string]any) (string, string, error) {
	from := optMap(pr, "fromRef")
	if from == nil {
		return "", "", missingField("fromRef")
	}
	to := optMap(pr, "toRef")
	if to == nil {
		return "", "", missingField("toRef")
	}
	return optString(from, "displayId"), optString(to, "displayId"), nil
}

func prSummaryLine(pr map[string]any) (string, error) {
	id, err := requireInt(pr, "id")
	if err != nil {
		return "", err
	}
	title, err := requireString(pr, "title")
	if err != nil {
		return "", err
	}
	state, err := requireString(pr, "state")
	if err != nil {
		return "", err
	}
	from, to, err := prRefs(pr)
	if err != nil {
		return "", err
	}

	author := userDisplayName(optMap(optMap(pr, "author"), "user"))
	if author == "" {
		author = "unknown"
	}
	return fmt.Sprintf("- **#%d** [%s] %s (`%s` → `%s`) by %s — %s",
		id, state, title, from, to, author, timestamp(pr, "updatedDate")), nil
}

func renderPullRequests(payload map[string]any) (string, error) {
	prs, total, isLast, err := pagedValues(payload)
	if err != nil {
		return "", err
	}

	lines := []string{fmt.Sprintf("# Pull Requests (%d total)\n", total)}
	for _, v := range prs {
		pr, _ := v.(map[string]any)
		line, err := prSummaryLine(pr)
		if err != nil {
			return "", err
		}
		lines = append(lines, line)
	}
	lines = paginationHint(lines, isLast, "pull requests")
	return strings.Join(lines, "\n"), nil
}

func renderPullRequestDetail(pr map[string]any) (string, error) {
	id, err := requireInt(pr, "id")
	if err != nil {
		return "", err
	}
	title, err := requireString(pr, "title")
	if err != nil {
		return "", err
	}
	state, err := requireString(pr, "state")
	if err != nil {
		return "", err
	}
	from, to, err := prRefs(pr)
	if err != nil {
		return "", err
	}
	reviewers, err := requireList(pr, "reviewers")
	if err != nil {
		return "", err
	}

	author := userDisplayName(optMap(optMap(pr, "author"), "user"))
	if author == "" {
		author = "unknown"
	}
	desc := optString(pr, "description")
	if desc == "" {
		desc = "No description."
	}

	var reviewerLines []string
	for _, v := range reviewers {
		r, _ := v.(map[string]any)
		status := fmt.Sprintf("(%s)", orDefault(optString(r, "status"), "UNAPPROVED"))
		if optBool(r, "approved") {
			status = "✅ Approved"
		}
		reviewerLines = append(reviewerLines,
			fmt.Sprintf("  - %s %s", userDisplayName(optMap(r, "user")), status))
	}
	reviewerSection := "No reviewers assigned."
	if len(reviewerLines) > 0 {
		reviewerSection = strings.Join(reviewerLines, "\n")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# PR #%d — %s\n\n", id, title)
	fmt.Fprintf(&b, "- **State:** %s\n", state)
	fmt.Fprintf(&b, "- **Author:** %s\n", author)
	fmt.Fprintf(&b, "- **Branch:** `%s` → `%s`\n", from, to)
	fmt.Fprintf(&b, "- **Created:** %s\n", timestamp(pr, "createdDate"))
	fmt.Fprintf(&b, "- **Updated:** %s\n", timestamp(pr, "updatedDate"))
	fmt.Fprintf(&b, "- **Locked:** %t\n\n", optBool(pr, "locked"))
	fmt.Fprintf(&b, "## Description\n\n%s\n\n", desc)
	fmt.Fprintf(&b, "## Reviewers (%d)\n\n%s", len(reviewers), reviewerSection)
	return b.String(), nil
}

func renderPullRequestChanges(payload map[string]any) (string, error) {
	changes, total, isLast, err := pagedValues(payload)
	if err != nil {
		return "", err
	}

	lines := []string{fmt.Sprintf("# PR Changes (%d files)\n", total)}
	for _, v := range changes {
		c, _ := v.(map[string]any)
		pathInfo := optMap(c, "path")
		if pathInfo == nil {
			return "", missingField("path")
		}
		filePath := orDefault(optString(pathInfo, "toString"), optString(pathInfo, "name"))
		rename := ""
		if src := optString(optMap(c, "srcPath"), "toString"); src != "" {
			rename = fmt.Sprintf(" (was `%s`)", src)
		}
		lines = append(lines, fmt.Sprintf("- **%s** `%s`%s [%s]",
			orDefault(optString(c, "type"), "?"), filePath, rename, optString(c, "nodeType")))
	}
	lines = paginationHint(lines, isLast, "changes")
	return strings.Join(lines, "\n"), nil
}

// renderPullRequestActivities formats the PR activity feed in the order the
// API returned it. Comment activities show author, timestamp, and the inline
// anchor when the comment is attached to a file and line.
func renderPullRequestActivities(payload map[string]any) (string, error) {
	activities, total, isLast, err := pagedValues(payload)
	if err != nil {
		return "", err
	}

	lines := []string{fmt.Sprintf("# PR Activity (%d items)\n", total)}
	for _, v := range activities {
		a, _ := v.(map[string]any)
		action, err := requireString(a, "action")
		if err != nil {
			return "", err
		}
		userName := userDisplayName(optMap(a, "user"))
		if userName == "" {
			userName = "unknown"
		}
		ts := timestamp(a, "createdDate")

		comment := optMap(a, "comment")
		if comment == nil {
			lines = append(lines, fmt.Sprintf("- **%s** by %s — %s", action, userName, ts))
			continue
		}

		text := optString(comment, "text")
		if len(text) > 200 {
			text = text[:200]
		}
		location := ""
		if anchor := optMap(comment, "anchor"); anchor != nil {
			if path := optString(anchor, "path"); path != "" {
				location = fmt.Sprintf(" on `%s`", path)
				if line := optInt(anchor, "line", 0); line > 0 {
					location += fmt.Sprintf(" line %d", line)
				}
			}
		}
		lines = append(lines, fmt.Sprintf("### %s by %s — %s%s\n\n%s\n", action, userName, ts, location, text))
	}
	lines = paginationHint(lines, isLast, "activities")
	return strings.Join(lines, "\n"), nil
}

func renderPullRequestDiff(payload map[string]any) (string, error) {
	path, err := requireString(payload, "path")
	if err != nil {
		return "", err
	}
	diff, err := requireString(payload, "diff")
	if err != nil {
		return "", err
	}
	header := fmt.Sprintf("# Diff: `%s`", path)
	if id := optInt(payload, "pullRequestId", 0); id > 0 {
		header = fmt.Sprintf("# Diff: `%s` (PR #%d)", path, id)
	}
	return fmt.Sprintf("%s\n\n```diff\n%s\n```", header, diff), nil
}

func renderRequiredReviewers(payload map[string]any) (string, error) {
	conditions, err := requireList(payload, "conditions")
	if err != nil {
		return "", err
	}

	lines := []string{"# Required Reviewers\n"}
	for _, v := range conditions {
		cond, _ := v.(map[string]any)
		for _, rv := range optList(cond, "reviewers") {
			r, _ := rv.(map[string]any)
			display := userDisplayName(r)
			if display == "" {
				display = "unknown"
			}
			lines = append(lines, fmt.Sprintf("- **%s** (`%s`)", display, optString(r, "name")))
		}
		if approvals := optInt(cond, "requiredApprovals", 0); approvals > 0 {
			lines = append(lines, fmt.Sprintf("\n*Required approvals: %d*", approvals))
		}
	}
	if len(lines) == 1 {
		lines = append(lines, "No required reviewers configured for this branch combination.")
	}
	return strings.Join(lines, "\n"), nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
