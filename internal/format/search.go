package format

import (
	"fmt"
	"sort"
	"strings"
)

// renderSearchResults formats code search hits: one numbered section per
// matching file, with hit contexts grouped into blocks of nearby lines.
func renderSearchResults(payload map[string]any) (string, error) {
	queryText, err := requireString(payload, "query")
	if err != nil {
		return "", err
	}
	code := optMap(payload, "code")
	if code == nil {
		return "", missingField("code")
	}

	results := optList(code, "values")
	total := optInt(code, "count", 0)
	isLast := true
	if v, ok := code["isLastPage"].(bool); ok {
		isLast = v
	}

	more := ""
	if !isLast {
		more = " | **More pages available**"
	}
	header := fmt.Sprintf("# Search Results for %q\n\n**Total Results:** %d | **Showing:** %d results%s\n\n---\n",
		queryText, total, len(results), more)

	var sections []string
	for i, v := range results {
		result, _ := v.(map[string]any)
		filePath, err := requireString(result, "file")
		if err != nil {
			return "", err
		}
		repo := optMap(result, "repository")
		project := optMap(repo, "project")

		var b strings.Builder
		fmt.Fprintf(&b, "## %d. %s\n", i+1, filePath)
		fmt.Fprintf(&b, "**Project:** %s | **Repository:** %s | **Matches:** %d\n\n",
			optString(project, "key"), optString(repo, "name"), optInt(result, "hitCount", 0))

		for j, block := range contextBlocks(optList(result, "hitContexts")) {
			if j > 0 {
				b.WriteString("---\n\n")
			}
			b.WriteString("```\n")
			for _, ctx := range block {
				fmt.Fprintf(&b, "%4d    %s\n", ctx.line, cleanHTML(ctx.text))
			}
			b.WriteString("```\n\n")
		}
		sections = append(sections, b.String())
	}

	return header + strings.Join(sections, "\n---\n\n") + "\n---\n\n*Search completed*", nil
}

type hitContext struct {
	line int64
	text string
}

// contextBlocks flattens the nested hit context groups, orders them by line
// number, and splits them into blocks wherever consecutive hits are more
// than three lines apart. The input payload is never modified.
func contextBlocks(hitContexts []any) [][]hitContext {
	var all []hitContext
	for _, groupVal := range hitContexts {
		group, _ := groupVal.([]any)
		for _, v := range group {
			ctx, _ := v.(map[string]any)
			all = append(all, hitContext{
				line: optInt(ctx, "line", 0),
				text: optString(ctx, "text"),
			})
		}
	}
	if len(all) == 0 {
		return nil
	}

	sort.SliceStable(all, func(i, j int) bool { return all[i].line < all[j].line })

	blocks := [][]hitContext{{all[0]}}
	for _, ctx := range all[1:] {
		last := blocks[len(blocks)-1]
		if ctx.line-last[len(last)-1].line <= 3 {
			blocks[len(blocks)-1] = append(last, ctx)
		} else {
			blocks = append(blocks, []hitContext{ctx})
		}
	}
	return blocks
}

var htmlCleaner = strings.NewReplacer(
	"<em>", "",
	"</em>", "",
	"&quot;", `"`,
	"&lt;", "<",
	"&gt;", ">",
	"&amp;", "&",
)

// cleanHTML strips the highlight tags and entities the search index embeds
// in result text.
func cleanHTML(text string) string {
	return htmlCleaner.Replace(text)
}
