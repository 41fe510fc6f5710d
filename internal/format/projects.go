package format

import (
	"fmt"
	"strings"
)

func projectLine(p map[string]any) (string, error) {
	key, err := requireString(p, "key")
	if err != nil {
		return "", err
	}
	name, err := requireString(p, "name")
	if err != nil {
		return "", err
	}
	visibility := "Private"
	if optBool(p, "public") {
		visibility = "Public"
	}
	line := fmt.Sprintf("- **%s** (`%s`) — %s", name, key, visibility)
	if desc := optString(p, "description"); desc != "" {
		line += " — " + desc
	}
	return line, nil
}

func renderProjects(payload map[string]any) (string, error) {
	projects, total, isLast, err := pagedValues(payload)
	if err != nil {
		return "", err
	}

	lines := []string{fmt.Sprintf("# Projects (%d total)\n", total)}
	for _, v := range projects {
		p, _ := v.(map[string]any)
		line, err := projectLine(p)
		if err != nil {
			return "", err
		}
		lines = append(lines, line)
	}
	lines = paginationHint(lines, isLast, "projects")
	return strings.Join(lines, "\n"), nil
}

func renderProjectDetail(payload map[string]any) (string, error) {
	return projectLine(payload)
}

func repositoryLine(r map[string]any) (string, error) {
	slug, err := requireString(r, "slug")
	if err != nil {
		return "", err
	}
	name, err := requireString(r, "name")
	if err != nil {
		return "", err
	}
	archived := ""
	if optBool(r, "archived") {
		archived = " [ARCHIVED]"
	}
	projectKey := optString(optMap(r, "project"), "key")
	line := fmt.Sprintf("- **%s** (`%s`) in `%s` — %s%s",
		name, slug, projectKey, optString(r, "state"), archived)
	if desc := optString(r, "description"); desc != "" {
		line += " — " + desc
	}
	return line, nil
}

func renderRepositories(payload map[string]any) (string, error) {
	repos, total, isLast, err := pagedValues(payload)
	if err != nil {
		return "", err
	}

	lines := []string{fmt.Sprintf("# Repositories (%d total)\n", total)}
	for _, v := range repos {
		r, _ := v.(map[string]any)
		line, err := repositoryLine(r)
		if err != nil {
			return "", err
		}
		lines = append(lines, line)
	}
	lines = paginationHint(lines, isLast, "repositories")
	return strings.Join(lines, "\n"), nil
}

func renderRepositoryDetail(payload map[string]any) (string, error) {
	slug, err := requireString(payload, "slug")
	if err != nil {
		return "", err
	}
	name, err := requireString(payload, "name")
	if err != nil {
		return "", err
	}
	project := optMap(payload, "project")

	scm := optString(payload, "scmId")
	if scm == "" {
		scm = "git"
	}

	desc := optString(payload, "description")
	if desc == "" {
		desc = "N/A"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", name)
	fmt.Fprintf(&b, "- **Slug:** `%s`\n", slug)
	fmt.Fprintf(&b, "- **Project:** %s (`%s`)\n", optString(project, "name"), optString(project, "key"))
	fmt.Fprintf(&b, "- **State:** %s\n", optString(payload, "state"))
	fmt.Fprintf(&b, "- **SCM:** %s\n", scm)
	fmt.Fprintf(&b, "- **Forkable:** %t\n", optBool(payload, "forkable"))
	fmt.Fprintf(&b, "- **Public:** %t\n", optBool(payload, "public"))
	fmt.Fprintf(&b, "- **Archived:** %t\n", optBool(payload, "archived"))
	fmt.Fprintf(&b, "- **Description:** %s", desc)

	if clones := optList(optMap(payload, "links"), "clone"); len(clones) > 0 {
		b.WriteString("\n**Clone URLs:**")
		for _, v := range clones {
			c, _ := v.(map[string]any)
			fmt.Fprintf(&b, "\n  - %s: `%s`", optString(c, "name"), optString(c, "href"))
		}
	}
	return b.String(), nil
}
