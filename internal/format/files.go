package format

import (
	"fmt"
	"strings"
)

// renderBrowse formats the browse endpoint response: a directory listing
// when the payload has children, a fenced code block when it has file lines.
func renderBrowse(payload map[string]any) (string, error) {
	displayPath := orDefault(optString(optMap(payload, "path"), "toString"), "/")

	children := optMap(payload, "children")
	if children != nil {
		entries, total, isLast, err := pagedValues(children)
		if err != nil {
			return "", err
		}
		lines := []string{fmt.Sprintf("# Browse: `%s` (%d entries)\n", displayPath, total)}
		for _, v := range entries {
			entry, _ := v.(map[string]any)
			pathInfo := optMap(entry, "path")
			if pathInfo == nil {
				return "", missingField("path")
			}
			name := orDefault(optString(pathInfo, "toString"), optString(pathInfo, "name"))
			entryType, err := requireString(entry, "type")
			if err != nil {
				return "", err
			}
			if entryType == "DIRECTORY" {
				lines = append(lines, fmt.Sprintf("- 📁 `%s/`", name))
				continue
			}
			sizeStr := ""
			if size, ok := entry["size"].(float64); ok {
				sizeStr = fmt.Sprintf(" (%s)", humanSize(int64(size)))
			}
			lines = append(lines, fmt.Sprintf("- 📄 `%s`%s", name, sizeStr))
		}
		lines = paginationHint(lines, isLast, "entries")
		return strings.Join(lines, "\n"), nil
	}

	if fileLines := optList(payload, "lines"); len(fileLines) > 0 {
		content := []string{fmt.Sprintf("# File: `%s`\n\n```", displayPath)}
		for _, v := range fileLines {
			line, _ := v.(map[string]any)
			content = append(content, optString(line, "text"))
		}
		content = append(content, "```")
		return strings.Join(content, "\n"), nil
	}

	return fmt.Sprintf("# Browse: `%s`\n\nEmpty or binary file.", displayPath), nil
}

// renderFileContent wraps raw file content in a fenced code block, tagged
// with the file extension when the path has one.
func renderFileContent(payload map[string]any) (string, error) {
	path, err := requireString(payload, "path")
	if err != nil {
		return "", err
	}
	content, err := requireString(payload, "content")
	if err != nil {
		return "", err
	}
	ext := ""
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		ext = path[i+1:]
	}
	return fmt.Sprintf("# File: `%s`\n\n```%s\n%s\n```", path, ext, content), nil
}

func renderFileList(payload map[string]any) (string, error) {
	files, total, isLast, err := pagedValues(payload)
	if err != nil {
		return "", err
	}
	displayPath := orDefault(optString(payload, "path"), "/")

	lines := []string{fmt.Sprintf("# Files in `%s` (%d total)\n", displayPath, total)}
	for _, v := range files {
		f, _ := v.(string)
		lines = append(lines, fmt.Sprintf("- `%s`", f))
	}
	lines = paginationHint(lines, isLast, "files")
	return strings.Join(lines, "\n"), nil
}
