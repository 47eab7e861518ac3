package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"issuecomb/app/issue"
	"issuecomb/app/registry"
	"issuecomb/app/scoring"
)

// GitLab fetches issues from the GitLab REST API. Unlike GitHub, the
// labels parameter natively supports OR semantics via a comma-joined
// list, and pull requests live on a separate endpoint, so a single
// request suffices.
type GitLab struct {
	client *http.Client
}

func NewGitLab(client *http.Client) *GitLab {
	return &GitLab{client: client}
}

type gitlabAuthor struct {
	Username string `json:"username"`
}

type gitlabIssue struct {
	ID          int64         `json:"id"`
	IID         int64         `json:"iid"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	WebURL      string        `json:"web_url"`
	Labels      []string      `json:"labels"`
	CreatedAt   string        `json:"created_at"`
	UpdatedAt   string        `json:"updated_at"`
	Author      *gitlabAuthor `json:"author"`
}

func (a *GitLab) Fetch(ctx context.Context, project registry.ProjectConfig) ([]issue.Issue, error) {
	labels := strings.Join(project.BeginnerLabels, ",")
	fetchURL := fmt.Sprintf("%s/projects/%s/issues?labels=%s&state=opened&per_page=100",
		project.APIBase, url.PathEscape(project.ProjectID), url.QueryEscape(labels))

	req, err := newRequest(ctx, http.MethodGet, fetchURL, nil, headerOpts{})
	if err != nil {
		return nil, err
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch issues: %w", err)
	}
	defer resp.Body.Close()

	if err := checkResponse(resp, issue.PlatformGitLab); err != nil {
		return nil, err
	}

	var data []gitlabIssue
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	issues := make([]issue.Issue, 0, len(data))
	for _, gl := range data {
		issues = append(issues, a.normalize(gl, project))
	}
	return issues, nil
}

func (a *GitLab) normalize(gl gitlabIssue, project registry.ProjectConfig) issue.Issue {
	result := scoring.Score(scoring.Input{
		Title:          gl.Title,
		Body:           gl.Description,
		Labels:         gl.Labels,
		BeginnerLabels: project.BeginnerLabels,
	})

	author := "unknown"
	if gl.Author != nil && gl.Author.Username != "" {
		author = gl.Author.Username
	}

	return issue.Issue{
		ID:                issue.NewID(issue.PlatformGitLab, project.Slug, fmt.Sprintf("%d", gl.IID)),
		Platform:          issue.PlatformGitLab,
		Project:           project.Name,
		Title:             gl.Title,
		URL:               gl.WebURL,
		Difficulty:        result.Difficulty,
		DifficultyScore:   result.Score,
		DifficultySignals: result.Signals,
		Labels:            gl.Labels,
		CreatedAt:         issue.NormalizeTimestamp(gl.CreatedAt),
		UpdatedAt:         issue.NormalizeTimestamp(gl.UpdatedAt),
		Author:            author,
	}
}
