package format

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/povarna/bitbucket-dc-mcp/internal/models"
)

func TestRenderSearchResults(t *testing.T) {
	payload := decode(t, `{
		"query": "NewClient",
		"code": {
			"count": 2, "isLastPage": false,
			"values": [{
				"file": "internal/client.go",
				"hitCount": 2,
				"repository": {"name": "core", "project": {"key": "PROJ"}},
				"hitContexts": [[
					{"line": 10, "text": "func <em>NewClient</em>(cfg Config) *Client {"},
					{"line": 11, "text": "\treturn &amp;Client{}"},
					{"line": 40, "text": "c := <em>NewClient</em>(cfg)"}
				]]
			}]
		}
	}`)

	out := render(t, models.KindSearchResults, payload)

	for _, want := range []string{
		`# Search Results for "NewClient"`,
		"**Total Results:** 2 | **Showing:** 1 results | **More pages available**",
		"## 1. internal/client.go",
		"**Project:** PROJ | **Repository:** core | **Matches:** 2",
		"  10    func NewClient(cfg Config) *Client {",
		"  40    c := NewClient(cfg)",
		"*Search completed*",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "<em>") || strings.Contains(out, "&amp;") {
		t.Errorf("highlight markup leaked into output:\n%s", out)
	}
	// Lines 10-11 group together; line 40 is more than three lines away
	// and starts a new fenced block.
	if got := strings.Count(out, "```"); got != 4 {
		t.Errorf("fence count: %d, want 4 (two blocks)", got)
	}
}

func TestRenderSearchResults_MissingQuery(t *testing.T) {
	payload := decode(t, `{"code": {"values": []}}`)

	_, err := Render(models.Envelope{Kind: models.KindSearchResults, Payload: payload, Mode: models.ModeMarkdown})
	if err == nil {
		t.Fatal("expected error for missing query")
	}
}

func TestContextBlocks_DoesNotMutatePayload(t *testing.T) {
	raw := `[[{"line": 30, "text": "late"}, {"line": 5, "text": "early"}]]`
	var hitContexts []any
	if err := json.Unmarshal([]byte(raw), &hitContexts); err != nil {
		t.Fatal(err)
	}
	var original []any
	if err := json.Unmarshal([]byte(raw), &original); err != nil {
		t.Fatal(err)
	}

	blocks := contextBlocks(hitContexts)

	if len(blocks) != 2 {
		t.Fatalf("blocks: %d, want 2", len(blocks))
	}
	if blocks[0][0].line != 5 || blocks[1][0].line != 30 {
		t.Errorf("blocks not ordered by line: %+v", blocks)
	}
	if !reflect.DeepEqual(hitContexts, original) {
		t.Error("input payload was modified")
	}
}

func TestCleanHTML(t *testing.T) {
	got := cleanHTML(`if x &lt; y &amp;&amp; y &gt; 0 { <em>match</em> } // &quot;q&quot;`)
	want := `if x < y && y > 0 { match } // "q"`
	if got != want {
		t.Errorf("cleanHTML: %q, want %q", got, want)
	}
}
