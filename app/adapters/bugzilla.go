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

// Bugzilla fetches bugs from the Bugzilla REST API, filtering by the
// project's beginner keywords. Some deployments answer automated clients
// with an HTML challenge page under a 200 status, so the response's
// content type is validated before decoding.
type Bugzilla struct {
	client *http.Client
}

func NewBugzilla(client *http.Client) *Bugzilla {
	return &Bugzilla{client: client}
}

type bugzillaBug struct {
	ID             int64    `json:"id"`
	Summary        string   `json:"summary"`
	Status         string   `json:"status"`
	CreationTime   string   `json:"creation_time"`
	LastChangeTime string   `json:"last_change_time"`
	Creator        string   `json:"creator"`
	Keywords       []string `json:"keywords"`
	Component      string   `json:"component"`
	Product        string   `json:"product"`
	Severity       string   `json:"severity"`
	Priority       string   `json:"priority"`
}

type bugzillaResponse struct {
	Bugs []bugzillaBug `json:"bugs"`
}

func (a *Bugzilla) Fetch(ctx context.Context, project registry.ProjectConfig) ([]issue.Issue, error) {
	keywords := strings.Join(project.BeginnerLabels, ",")
	fetchURL := fmt.Sprintf("%s/bug?keywords=%s&status=NEW&status=ASSIGNED&status=REOPENED&limit=100",
		project.APIBase, url.QueryEscape(keywords))

	req, err := newRequest(ctx, http.MethodGet, fetchURL, nil, headerOpts{
		accept:  "application/json",
		browser: true,
	})
	if err != nil {
		return nil, err
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bugs: %w", err)
	}
	defer resp.Body.Close()

	if err := checkResponse(resp, issue.PlatformBugzilla); err != nil {
		return nil, err
	}
	if err := validateJSONResponse(resp, issue.PlatformBugzilla); err != nil {
		return nil, err
	}

	var data bugzillaResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	issues := make([]issue.Issue, 0, len(data.Bugs))
	for _, bug := range data.Bugs {
		issues = append(issues, a.normalize(bug, project))
	}
	return issues, nil
}

func (a *Bugzilla) normalize(bug bugzillaBug, project registry.ProjectConfig) issue.Issue {
	// Bugzilla has no free-form labels; keywords plus component and
	// non-default severity stand in.
	labels := append([]string{}, bug.Keywords...)
	if bug.Component != "" {
		labels = append(labels, bug.Component)
	}
	if bug.Severity != "" && bug.Severity != "normal" {
		labels = append(labels, bug.Severity)
	}

	result := scoring.Score(scoring.Input{
		Title:          bug.Summary,
		Labels:         labels,
		BeginnerLabels: project.BeginnerLabels,
	})

	author := "unknown"
	if bug.Creator != "" {
		author = bug.Creator
	}

	bugURL := fmt.Sprintf("%s/show_bug.cgi?id=%d", strings.TrimSuffix(project.APIBase, "/rest"), bug.ID)

	return issue.Issue{
		ID:                issue.NewID(issue.PlatformBugzilla, project.Slug, fmt.Sprintf("%d", bug.ID)),
		Platform:          issue.PlatformBugzilla,
		Project:           project.Name,
		Title:             bug.Summary,
		URL:               bugURL,
		Difficulty:        result.Difficulty,
		DifficultyScore:   result.Score,
		DifficultySignals: result.Signals,
		Labels:            labels,
		CreatedAt:         issue.NormalizeTimestamp(bug.CreationTime),
		UpdatedAt:         issue.NormalizeTimestamp(bug.LastChangeTime),
		Author:            author,
	}
}
