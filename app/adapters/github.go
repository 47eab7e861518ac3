package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"issuecomb/app/issue"
	"issuecomb/app/registry"
	"issuecomb/app/scoring"
)

// GitHub fetches issues from the GitHub REST API. GitHub combines the
// labels query parameter with AND semantics, so the adapter issues one
// request per beginner label and unions the results to get OR behavior.
type GitHub struct {
	client *http.Client
	token  string
}

func NewGitHub(client *http.Client, token string) *GitHub {
	return &GitHub{client: client, token: token}
}

type githubLabel struct {
	Name string `json:"name"`
}

type githubUser struct {
	Login string `json:"login"`
}

type githubIssue struct {
	ID          int64           `json:"id"`
	Number      int64           `json:"number"`
	Title       string          `json:"title"`
	Body        string          `json:"body"`
	HTMLURL     string          `json:"html_url"`
	Labels      []githubLabel   `json:"labels"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at"`
	User        *githubUser     `json:"user"`
	PullRequest json.RawMessage `json:"pull_request"`
}

func (a *GitHub) Fetch(ctx context.Context, project registry.ProjectConfig) ([]issue.Issue, error) {
	opts := headerOpts{accept: "application/vnd.github.v3+json"}
	if a.token != "" {
		opts.auth = "token " + a.token
	}

	var all []githubIssue
	for _, label := range project.BeginnerLabels {
		fetchURL := fmt.Sprintf("%s/repos/%s/issues?labels=%s&state=open&per_page=100",
			project.APIBase, project.ProjectID, url.QueryEscape(label))

		req, err := newRequest(ctx, http.MethodGet, fetchURL, nil, opts)
		if err != nil {
			return nil, err
		}

		resp, err := a.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch issues: %w", err)
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			slog.Error("GitHub API error", "project", project.ProjectID, "status", resp.StatusCode, "body", string(body))
			return nil, &issue.UpstreamError{Platform: issue.PlatformGitHub, StatusCode: resp.StatusCode}
		}

		var page []githubIssue
		err = json.NewDecoder(resp.Body).Decode(&page)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}

		all = append(all, page...)
	}

	// An issue carrying several beginner labels shows up once per query.
	seen := make(map[int64]bool, len(all))
	issues := make([]issue.Issue, 0, len(all))
	for _, gh := range all {
		if seen[gh.ID] {
			continue
		}
		seen[gh.ID] = true

		// The issues endpoint also returns pull requests.
		if gh.PullRequest != nil {
			continue
		}

		issues = append(issues, a.normalize(gh, project))
	}

	return issues, nil
}

func (a *GitHub) normalize(gh githubIssue, project registry.ProjectConfig) issue.Issue {
	labels := make([]string, len(gh.Labels))
	for i, l := range gh.Labels {
		labels[i] = l.Name
	}

	result := scoring.Score(scoring.Input{
		Title:          gh.Title,
		Body:           gh.Body,
		Labels:         labels,
		BeginnerLabels: project.BeginnerLabels,
	})

	author := "unknown"
	if gh.User != nil && gh.User.Login != "" {
		author = gh.User.Login
	}

	return issue.Issue{
		ID:                issue.NewID(issue.PlatformGitHub, project.Slug, fmt.Sprintf("%d", gh.Number)),
		Platform:          issue.PlatformGitHub,
		Project:           project.Name,
		Title:             gh.Title,
		URL:               gh.HTMLURL,
		Difficulty:        result.Difficulty,
		DifficultyScore:   result.Score,
		DifficultySignals: result.Signals,
		Labels:            labels,
		CreatedAt:         issue.NormalizeTimestamp(gh.CreatedAt),
		UpdatedAt:         issue.NormalizeTimestamp(gh.UpdatedAt),
		Author:            author,
	}
}
