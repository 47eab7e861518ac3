package adapters

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"issuecomb/app/issue"
	"issuecomb/app/registry"
)

func TestGitLabFetch(t *testing.T) {
	var gotPath, gotLabels, gotState string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotLabels = r.URL.Query().Get("labels")
		gotState = r.URL.Query().Get("state")

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[
			{"id": 900001, "iid": 42, "title": "Fix typo in docs", "web_url": "https://example.com/42",
			 "labels": ["good first issue"], "created_at": "2024-03-01T10:00:00Z",
			 "updated_at": "2024-03-02T10:00:00Z", "author": {"username": "bob"}}
		]`)
	}))
	defer server.Close()

	project := registry.ProjectConfig{
		Slug:           "vlc",
		Name:           "VLC",
		Platform:       issue.PlatformGitLab,
		APIBase:        server.URL,
		ProjectID:      "videolan/vlc",
		BeginnerLabels: []string{"good first issue", "easy"},
	}

	adapter := NewGitLab(server.Client())
	issues, err := adapter.Fetch(context.Background(), project)
	if err != nil {
		t.Fatal(err)
	}

	// The project path is URL-encoded into a single path segment and all
	// labels go out comma-joined in one request.
	if gotPath != "/projects/videolan%2Fvlc/issues" {
		t.Errorf("Expected encoded project path, got '%s'", gotPath)
	}
	if gotLabels != "good first issue,easy" {
		t.Errorf("Expected comma-joined labels, got '%s'", gotLabels)
	}
	if gotState != "opened" {
		t.Errorf("Expected state 'opened', got '%s'", gotState)
	}

	if len(issues) != 1 {
		t.Fatalf("Expected 1 issue, got %d", len(issues))
	}
	// The per-project IID, not the instance-wide ID, forms the identifier.
	if issues[0].ID != "gitlab-vlc-42" {
		t.Errorf("Expected ID 'gitlab-vlc-42', got '%s'", issues[0].ID)
	}
	if issues[0].Author != "bob" {
		t.Errorf("Expected author 'bob', got '%s'", issues[0].Author)
	}
}
