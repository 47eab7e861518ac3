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

// Phabricator fetches tasks via the maniphest.search conduit method: an
// authenticated POST with form-encoded constraints. The API reports its
// own error code/info pair inside a 200 response, which must fail the
// call even though the HTTP status looks fine.
type Phabricator struct {
	client *http.Client
	token  string
}

func NewPhabricator(client *http.Client, token string) *Phabricator {
	return &Phabricator{client: client, token: token}
}

type phabricatorDescription struct {
	Raw string `json:"raw"`
}

type phabricatorFields struct {
	Name         string                  `json:"name"`
	Description  *phabricatorDescription `json:"description"`
	DateCreated  int64                   `json:"dateCreated"`
	DateModified int64                   `json:"dateModified"`
	AuthorPHID   string                  `json:"authorPHID"`
}

type phabricatorTask struct {
	ID     int64             `json:"id"`
	PHID   string            `json:"phid"`
	Fields phabricatorFields `json:"fields"`
}

type phabricatorResponse struct {
	Result struct {
		Data []phabricatorTask `json:"data"`
	} `json:"result"`
	ErrorCode string `json:"error_code"`
	ErrorInfo string `json:"error_info"`
}

func (a *Phabricator) Fetch(ctx context.Context, project registry.ProjectConfig) ([]issue.Issue, error) {
	if a.token == "" {
		return nil, &issue.PreconditionError{Platform: issue.PlatformPhabricator, Missing: "an API token"}
	}

	params := url.Values{}
	params.Set("api.token", a.token)
	params.Set("constraints[projects][0]", project.ProjectID)
	params.Set("constraints[statuses][0]", "open")
	params.Set("limit", "100")

	fetchURL := project.APIBase + "/maniphest.search"
	req, err := newRequest(ctx, http.MethodPost, fetchURL, strings.NewReader(params.Encode()), headerOpts{
		accept:      "application/json",
		contentType: "application/x-www-form-urlencoded",
	})
	if err != nil {
		return nil, err
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tasks: %w", err)
	}
	defer resp.Body.Close()

	if err := checkResponse(resp, issue.PlatformPhabricator); err != nil {
		return nil, err
	}

	var data phabricatorResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if data.ErrorCode != "" {
		return nil, &issue.UpstreamError{
			Platform: issue.PlatformPhabricator,
			Code:     data.ErrorCode,
			Detail:   data.ErrorInfo,
		}
	}

	issues := make([]issue.Issue, 0, len(data.Result.Data))
	for _, task := range data.Result.Data {
		issues = append(issues, a.normalize(task, project))
	}
	return issues, nil
}

func (a *Phabricator) normalize(task phabricatorTask, project registry.ProjectConfig) issue.Issue {
	body := ""
	if task.Fields.Description != nil {
		body = task.Fields.Description.Raw
	}

	// Tasks are fetched by project tag and carry no per-item labels, so
	// the project's beginner labels stand in as pseudo-labels.
	result := scoring.Score(scoring.Input{
		Title:          task.Fields.Name,
		Body:           body,
		Labels:         project.BeginnerLabels,
		BeginnerLabels: project.BeginnerLabels,
	})

	author := "unknown"
	if task.Fields.AuthorPHID != "" {
		author = task.Fields.AuthorPHID
	}

	taskURL := fmt.Sprintf("%s/T%d", strings.TrimSuffix(project.APIBase, "/api"), task.ID)

	return issue.Issue{
		ID:                issue.NewID(issue.PlatformPhabricator, project.Slug, fmt.Sprintf("%d", task.ID)),
		Platform:          issue.PlatformPhabricator,
		Project:           project.Name,
		Title:             task.Fields.Name,
		URL:               taskURL,
		Difficulty:        result.Difficulty,
		DifficultyScore:   result.Score,
		DifficultySignals: result.Signals,
		Labels:            project.BeginnerLabels,
		CreatedAt:         issue.FromUnixSeconds(task.Fields.DateCreated),
		UpdatedAt:         issue.FromUnixSeconds(task.Fields.DateModified),
		Author:            author,
	}
}
