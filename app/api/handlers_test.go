package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"issuecomb/app/aggregator"
	"issuecomb/app/issue"
	"issuecomb/app/marking"
	"issuecomb/app/registry"
)

type fakeAggregator struct {
	result *aggregator.Result
	one    []issue.Issue
	err    error
	calls  int
}

func (f *fakeAggregator) Aggregate(ctx context.Context, pool string, difficulty issue.Difficulty) (*aggregator.Result, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeAggregator) AggregateOne(ctx context.Context, slug string) ([]issue.Issue, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.one, nil
}

type fakeMarking struct {
	marked   map[string]issue.MarkStatus
	unmarked []string
}

func newFakeMarking() *fakeMarking {
	return &fakeMarking{marked: make(map[string]issue.MarkStatus)}
}

func (f *fakeMarking) Mark(issueID string, status issue.MarkStatus, reason string) (*marking.MarkResult, error) {
	f.marked[issueID] = status
	return &marking.MarkResult{IssueID: issueID, Status: status, MarkedAt: "2024-03-01T10:00:00Z", Reason: reason}, nil
}

func (f *fakeMarking) Unmark(issueID string) (bool, error) {
	f.unmarked = append(f.unmarked, issueID)
	_, ok := f.marked[issueID]
	delete(f.marked, issueID)
	return ok, nil
}

func (f *fakeMarking) ListMarked(status issue.MarkStatus) (*issue.MarkedList, error) {
	list := &issue.MarkedList{Issues: []issue.MarkedIssue{}}
	for id, s := range f.marked {
		if s == status {
			list.Issues = append(list.Issues, issue.MarkedIssue{IssueID: id, Status: s})
		}
	}
	return list, nil
}

func newTestServer(agg AggregatorInterface, apiKey string) (http.Handler, *fakeMarking) {
	reg := registry.NewFrom(registry.ProjectConfig{
		Slug:     "proj",
		Name:     "Project",
		Platform: issue.PlatformGitHub,
		Pools:    []string{"test"},
	})
	markingStore := newFakeMarking()
	handler := NewHandler(reg, agg, markingStore, NewResultCache(time.Minute))
	return NewServer(handler, apiKey), markingStore
}

func doRequest(t *testing.T, server http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)
	return w
}

func TestGetIssuesSuccess(t *testing.T) {
	agg := &fakeAggregator{result: &aggregator.Result{
		Issues: []issue.Issue{{ID: "github-proj-1", Title: "Fix typo"}},
		Errors: []aggregator.ProjectError{{Project: "bad", Error: "boom"}},
	}}
	server, _ := newTestServer(agg, "")

	w := doRequest(t, server, http.MethodGet, "/issues?pool=test", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Issues []issue.Issue             `json:"issues"`
			Count  int                       `json:"count"`
			Errors []aggregator.ProjectError `json:"errors"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}

	if !resp.Success {
		t.Error("Expected success true")
	}
	if resp.Data.Count != 1 {
		t.Errorf("Expected count 1, got %d", resp.Data.Count)
	}
	// Partial failures ride along in the payload of a 200 response.
	if len(resp.Data.Errors) != 1 || resp.Data.Errors[0].Project != "bad" {
		t.Errorf("Expected project error for 'bad', got %v", resp.Data.Errors)
	}
}

func TestGetIssuesServesCachedResult(t *testing.T) {
	agg := &fakeAggregator{result: &aggregator.Result{Issues: []issue.Issue{}}}
	server, _ := newTestServer(agg, "")

	doRequest(t, server, http.MethodGet, "/issues?pool=test", "", nil)
	doRequest(t, server, http.MethodGet, "/issues?pool=test", "", nil)

	if agg.calls != 1 {
		t.Errorf("Expected a single aggregation for repeated requests, got %d", agg.calls)
	}
}

func TestGetIssuesInvalidDifficulty(t *testing.T) {
	server, _ := newTestServer(&fakeAggregator{}, "")

	w := doRequest(t, server, http.MethodGet, "/issues?difficulty=impossible", "", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", w.Code)
	}

	// "unknown" is a score outcome, not a filter value.
	w = doRequest(t, server, http.MethodGet, "/issues?difficulty=unknown", "", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for difficulty=unknown, got %d", w.Code)
	}
}

func TestGetIssuesUnknownPool(t *testing.T) {
	agg := &fakeAggregator{err: &issue.NotFoundError{Kind: "pool", Value: "nope"}}
	server, _ := newTestServer(agg, "")

	w := doRequest(t, server, http.MethodGet, "/issues?pool=nope", "", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}

func TestGetProjectIssuesUpstreamFailure(t *testing.T) {
	agg := &fakeAggregator{err: &issue.UpstreamError{Platform: issue.PlatformGitHub, StatusCode: 502}}
	server, _ := newTestServer(agg, "")

	w := doRequest(t, server, http.MethodGet, "/issues/proj", "", nil)
	if w.Code != http.StatusBadGateway {
		t.Errorf("Expected 502, got %d", w.Code)
	}
}

func TestMarkAndUnmarkIssue(t *testing.T) {
	server, markingStore := newTestServer(&fakeAggregator{}, "")

	w := doRequest(t, server, http.MethodPost, "/issues/github-proj-1/mark",
		`{"status": "ignored", "reason": "stale"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if markingStore.marked["github-proj-1"] != issue.MarkStatusIgnored {
		t.Error("Expected issue to be marked ignored")
	}

	w = doRequest(t, server, http.MethodDelete, "/issues/github-proj-1/mark", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if len(markingStore.unmarked) != 1 {
		t.Error("Expected unmark to reach the store")
	}
}

func TestMarkIssueInvalidStatus(t *testing.T) {
	server, _ := newTestServer(&fakeAggregator{}, "")

	w := doRequest(t, server, http.MethodPost, "/issues/id-1/mark", `{"status": "done"}`, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", w.Code)
	}

	w = doRequest(t, server, http.MethodPost, "/issues/id-1/mark", `not json`, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for invalid body, got %d", w.Code)
	}
}

func TestListMarked(t *testing.T) {
	server, markingStore := newTestServer(&fakeAggregator{}, "")
	markingStore.marked["id-1"] = issue.MarkStatusProcess

	w := doRequest(t, server, http.MethodGet, "/issues/marked?status=process", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var resp struct {
		Data struct {
			Count int `json:"count"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Data.Count != 1 {
		t.Errorf("Expected 1 marked issue, got %d", resp.Data.Count)
	}

	w = doRequest(t, server, http.MethodGet, "/issues/marked?status=bogus", "", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for invalid status, got %d", w.Code)
	}
}

func TestMarkingEndpointsRequireAPIKey(t *testing.T) {
	server, _ := newTestServer(&fakeAggregator{}, "secret")

	w := doRequest(t, server, http.MethodPost, "/issues/id-1/mark", `{"status": "ignored"}`, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without key, got %d", w.Code)
	}

	w = doRequest(t, server, http.MethodPost, "/issues/id-1/mark", `{"status": "ignored"}`,
		map[string]string{"X-API-Key": "wrong"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 with wrong key, got %d", w.Code)
	}

	w = doRequest(t, server, http.MethodPost, "/issues/id-1/mark", `{"status": "ignored"}`,
		map[string]string{"X-API-Key": "secret"})
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 with valid key, got %d", w.Code)
	}

	w = doRequest(t, server, http.MethodPost, "/issues/id-1/mark", `{"status": "ignored"}`,
		map[string]string{"Authorization": "Bearer secret"})
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 with bearer token, got %d", w.Code)
	}

	// Read endpoints stay open.
	w = doRequest(t, server, http.MethodGet, "/projects", "", nil)
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 for read endpoint, got %d", w.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	server, _ := newTestServer(&fakeAggregator{}, "")

	w := doRequest(t, server, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", w.Code)
	}
}
