package bitbucket

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/povarna/bitbucket-dc-mcp/internal/config"
	"github.com/rs/zerolog"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	logger := zerolog.Nop()
	return NewClient(config.Config{BaseURL: srv.URL, APIToken: "test-token"}, &logger)
}

func TestClient_Get_SendsBearerToken(t *testing.T) {
	var gotAuth, gotAccept string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte(`{"key": "PROJ"}`))
	})

	data, err := client.Get(context.Background(), "/rest/api/latest/projects/PROJ", nil)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if gotAuth != "Bearer test-token" {
		t.Errorf("Authorization: %q, want Bearer test-token", gotAuth)
	}
	if gotAccept != "application/json" {
		t.Errorf("Accept: %q", gotAccept)
	}
	if data["key"] != "PROJ" {
		t.Errorf("key: %v, want PROJ", data["key"])
	}
}

func TestClient_GetPaged_AddsStartAndLimit(t *testing.T) {
	var gotQuery url.Values
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"values": []}`))
	})

	params := url.Values{}
	params.Set("filterText", "main")
	_, err := client.GetPaged(context.Background(), "/rest/api/latest/projects/PROJ/repos/repo/branches", params, 50, 25)
	if err != nil {
		t.Fatalf("GetPaged failed: %v", err)
	}
	if gotQuery.Get("start") != "50" || gotQuery.Get("limit") != "25" {
		t.Errorf("pagination params: start=%s limit=%s", gotQuery.Get("start"), gotQuery.Get("limit"))
	}
	if gotQuery.Get("filterText") != "main" {
		t.Errorf("filterText: %s, want main", gotQuery.Get("filterText"))
	}
	// The caller's params must not gain pagination keys.
	if params.Get("start") != "" {
		t.Error("caller params were mutated")
	}
}

func TestClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{
			name:    "unauthorized",
			status:  http.StatusUnauthorized,
			body:    `{}`,
			message: "Authentication failed: check your Personal Access Token",
		},
		{
			name:    "forbidden joins error messages",
			status:  http.StatusForbidden,
			body:    `{"errors": [{"message": "no access"}, {"message": "ask admin"}]}`,
			message: "Permission denied: no access; ask admin",
		},
		{
			name:    "not found with single message",
			status:  http.StatusNotFound,
			body:    `{"message": "Repository does not exist"}`,
			message: "Not found: Repository does not exist",
		},
		{
			name:    "server error passes body through",
			status:  http.StatusInternalServerError,
			body:    `boom`,
			message: "boom",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(test.status)
				w.Write([]byte(test.body))
			})

			_, err := client.Get(context.Background(), "/rest/api/latest/projects/X", nil)
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("error: %v, want *APIError", err)
			}
			if apiErr.StatusCode != test.status {
				t.Errorf("StatusCode: %d, want %d", apiErr.StatusCode, test.status)
			}
			if apiErr.Message != test.message {
				t.Errorf("Message: %q, want %q", apiErr.Message, test.message)
			}
		})
	}
}

func TestClient_GetRaw(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("package main\n"))
	})

	content, err := client.GetRaw(context.Background(), "/rest/api/latest/projects/P/repos/r/raw/main.go", nil)
	if err != nil {
		t.Fatalf("GetRaw failed: %v", err)
	}
	if content != "package main\n" {
		t.Errorf("content: %q", content)
	}
}

func TestClient_Post_EncodesBody(t *testing.T) {
	var gotBody string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		buf, _ := io.ReadAll(r.Body)
		gotBody = string(buf)
		w.Write([]byte(`{"id": 7}`))
	})

	data, err := client.Post(context.Background(), "/rest/api/latest/x", map[string]any{"text": "hi"}, nil)
	if err != nil {
		t.Fatalf("Post failed: %v", err)
	}
	if gotBody != `{"text":"hi"}` {
		t.Errorf("body: %s", gotBody)
	}
	if data["id"] != float64(7) {
		t.Errorf("id: %v", data["id"])
	}
}

func TestClient_GetAny_TopLevelArray(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"reviewers": []}]`))
	})

	data, err := client.GetAny(context.Background(), "/rest/api/latest/projects/P/repos/r/conditions", nil)
	if err != nil {
		t.Fatalf("GetAny failed: %v", err)
	}
	list, ok := data.([]any)
	if !ok || len(list) != 1 {
		t.Errorf("data: %#v, want one-element list", data)
	}
}

func TestRepoPath(t *testing.T) {
	got := RepoPath("PROJ", "my-repo")
	if got != "/rest/api/latest/projects/PROJ/repos/my-repo" {
		t.Errorf("RepoPath: %s", got)
	}
}
