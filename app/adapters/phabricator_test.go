package adapters

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"issuecomb/app/issue"
	"issuecomb/app/registry"
)

func phabricatorProject(apiBase string) registry.ProjectConfig {
	return registry.ProjectConfig{
		Slug:           "mediawiki",
		Name:           "MediaWiki",
		Platform:       issue.PlatformPhabricator,
		APIBase:        apiBase + "/api",
		ProjectID:      "PHID-PROJ-abc",
		BeginnerLabels: []string{"good first task"},
	}
}

func TestPhabricatorFetchRequiresToken(t *testing.T) {
	adapter := NewPhabricator(http.DefaultClient, "")
	_, err := adapter.Fetch(context.Background(), phabricatorProject("https://example.com"))

	// No token means no request at all.
	var precondition *issue.PreconditionError
	if !errors.As(err, &precondition) {
		t.Fatalf("Expected PreconditionError, got %v", err)
	}
	if precondition.Platform != issue.PlatformPhabricator {
		t.Errorf("Expected platform phabricator, got %s", precondition.Platform)
	}
}

func TestPhabricatorFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatal(err)
		}
		if r.PostFormValue("api.token") != "api-token-xyz" {
			t.Errorf("Expected api.token in form body, got '%s'", r.PostFormValue("api.token"))
		}
		if r.PostFormValue("constraints[projects][0]") != "PHID-PROJ-abc" {
			t.Errorf("Unexpected project constraint: '%s'", r.PostFormValue("constraints[projects][0]"))
		}

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"result": {"data": [
			{"id": 360001, "phid": "PHID-TASK-1",
			 "fields": {"name": "Fix typo in installer docs",
			            "description": {"raw": "The word tempalte is misspelled"},
			            "dateCreated": 1709287200, "dateModified": 1709373600,
			            "authorPHID": "PHID-USER-9"}}
		]}, "error_code": null, "error_info": null}`)
	}))
	defer server.Close()

	adapter := NewPhabricator(server.Client(), "api-token-xyz")
	issues, err := adapter.Fetch(context.Background(), phabricatorProject(server.URL))
	if err != nil {
		t.Fatal(err)
	}

	if len(issues) != 1 {
		t.Fatalf("Expected 1 issue, got %d", len(issues))
	}

	iss := issues[0]
	if iss.ID != "phabricator-mediawiki-360001" {
		t.Errorf("Expected ID 'phabricator-mediawiki-360001', got '%s'", iss.ID)
	}
	// The task URL strips the /api suffix from the API base.
	expectedURL := server.URL + "/T360001"
	if iss.URL != expectedURL {
		t.Errorf("Expected URL '%s', got '%s'", expectedURL, iss.URL)
	}
	if iss.CreatedAt != "2024-03-01T10:00:00Z" {
		t.Errorf("Expected Unix seconds converted to RFC 3339, got '%s'", iss.CreatedAt)
	}
	if iss.Author != "PHID-USER-9" {
		t.Errorf("Expected author 'PHID-USER-9', got '%s'", iss.Author)
	}
}

func TestPhabricatorFetchEmbeddedError(t *testing.T) {
	// Conduit reports failures inside a 200 response.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"result": null, "error_code": "ERR-INVALID-AUTH", "error_info": "API token is invalid"}`)
	}))
	defer server.Close()

	adapter := NewPhabricator(server.Client(), "bad-token")
	_, err := adapter.Fetch(context.Background(), phabricatorProject(server.URL))

	var upstream *issue.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("Expected UpstreamError, got %v", err)
	}
	if upstream.Code != "ERR-INVALID-AUTH" {
		t.Errorf("Expected code 'ERR-INVALID-AUTH', got '%s'", upstream.Code)
	}
}
