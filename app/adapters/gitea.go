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

// Gitea fetches issues from the Gitea API. Comma-joined labels give OR
// semantics in one request, but like GitHub the issues endpoint mixes in
// pull requests, which are dropped here.
type Gitea struct {
	client *http.Client
}

func NewGitea(client *http.Client) *Gitea {
	return &Gitea{client: client}
}

type giteaLabel struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type giteaUser struct {
	Login string `json:"login"`
}

type giteaIssue struct {
	ID          int64           `json:"id"`
	Number      int64           `json:"number"`
	Title       string          `json:"title"`
	Body        string          `json:"body"`
	HTMLURL     string          `json:"html_url"`
	Labels      []giteaLabel    `json:"labels"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at"`
	User        *giteaUser      `json:"user"`
	PullRequest json.RawMessage `json:"pull_request"`
}

func (a *Gitea) Fetch(ctx context.Context, project registry.ProjectConfig) ([]issue.Issue, error) {
	labels := strings.Join(project.BeginnerLabels, ",")
	fetchURL := fmt.Sprintf("%s/repos/%s/issues?labels=%s&state=open&limit=50",
		project.APIBase, project.ProjectID, url.QueryEscape(labels))

	req, err := newRequest(ctx, http.MethodGet, fetchURL, nil, headerOpts{})
	if err != nil {
		return nil, err
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch issues: %w", err)
	}
	defer resp.Body.Close()

	if err := checkResponse(resp, issue.PlatformGitea); err != nil {
		return nil, err
	}

	var data []giteaIssue
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	issues := make([]issue.Issue, 0, len(data))
	for _, gt := range data {
		if gt.PullRequest != nil {
			continue
		}
		issues = append(issues, a.normalize(gt, project))
	}
	return issues, nil
}

func (a *Gitea) normalize(gt giteaIssue, project registry.ProjectConfig) issue.Issue {
	labels := make([]string, len(gt.Labels))
	for i, l := range gt.Labels {
		labels[i] = l.Name
	}

	result := scoring.Score(scoring.Input{
		Title:          gt.Title,
		Body:           gt.Body,
		Labels:         labels,
		BeginnerLabels: project.BeginnerLabels,
	})

	author := "unknown"
	if gt.User != nil && gt.User.Login != "" {
		author = gt.User.Login
	}

	return issue.Issue{
		ID:                issue.NewID(issue.PlatformGitea, project.Slug, fmt.Sprintf("%d", gt.Number)),
		Platform:          issue.PlatformGitea,
		Project:           project.Name,
		Title:             gt.Title,
		URL:               gt.HTMLURL,
		Difficulty:        result.Difficulty,
		DifficultyScore:   result.Score,
		DifficultySignals: result.Signals,
		Labels:            labels,
		CreatedAt:         issue.NormalizeTimestamp(gt.CreatedAt),
		UpdatedAt:         issue.NormalizeTimestamp(gt.UpdatedAt),
		Author:            author,
	}
}
