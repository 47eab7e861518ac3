package adapters

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"issuecomb/app/issue"
	"issuecomb/app/registry"
	"issuecomb/app/scoring"
)

// Trac fetches tickets through the CSV query API. Keyword filtering uses
// "contains" semantics with no OR across keywords, so the adapter runs
// one query per beginner label and dedups by ticket id. Like Bugzilla,
// a blocked request may come back as an HTML page under a 200 status.
type Trac struct {
	client *http.Client
}

func NewTrac(client *http.Client) *Trac {
	return &Trac{client: client}
}

var tracKeywordSplitRe = regexp.MustCompile(`[\s,]+`)

func (a *Trac) Fetch(ctx context.Context, project registry.ProjectConfig) ([]issue.Issue, error) {
	var all []map[string]string

	for _, label := range project.BeginnerLabels {
		// ~keyword means "contains" in Trac query syntax.
		fetchURL := fmt.Sprintf("%s?status=new&status=open&status=assigned&keywords=~%s&format=csv"+
			"&col=id&col=summary&col=status&col=keywords&col=reporter&col=time&col=changetime"+
			"&col=type&col=priority&col=component&max=100",
			project.APIBase, url.QueryEscape(label))

		req, err := newRequest(ctx, http.MethodGet, fetchURL, nil, headerOpts{
			accept:  "text/csv",
			browser: true,
		})
		if err != nil {
			return nil, err
		}

		resp, err := a.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch tickets: %w", err)
		}

		if err := checkResponse(resp, issue.PlatformTrac); err != nil {
			resp.Body.Close()
			return nil, err
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read response body: %w", err)
		}

		if err := validateNotHTML(string(body), issue.PlatformTrac); err != nil {
			return nil, err
		}

		all = append(all, parseCSV(string(body))...)
	}

	seen := make(map[string]bool, len(all))
	issues := make([]issue.Issue, 0, len(all))
	for _, ticket := range all {
		id := ticket["id"]
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		issues = append(issues, a.normalize(ticket, project))
	}

	return issues, nil
}

func (a *Trac) normalize(ticket map[string]string, project registry.ProjectConfig) issue.Issue {
	// Tickets carry no label array; keywords, type, non-default priority,
	// and component are concatenated into one.
	var labels []string
	if kw := ticket["Keywords"]; kw != "" {
		for _, part := range tracKeywordSplitRe.Split(kw, -1) {
			if part != "" {
				labels = append(labels, part)
			}
		}
	}
	if t := ticket["Type"]; t != "" {
		labels = append(labels, t)
	}
	if p := ticket["Priority"]; p != "" && p != "normal" {
		labels = append(labels, p)
	}
	if c := ticket["Component"]; c != "" {
		labels = append(labels, c)
	}

	result := scoring.Score(scoring.Input{
		Title:          ticket["Summary"],
		Labels:         labels,
		BeginnerLabels: project.BeginnerLabels,
	})

	author := "unknown"
	if reporter := ticket["Reporter"]; reporter != "" {
		author = reporter
	}

	base := strings.TrimSuffix(strings.TrimSuffix(project.APIBase, "/query"), "/")
	ticketURL := fmt.Sprintf("%s/ticket/%s", base, ticket["id"])

	return issue.Issue{
		ID:                issue.NewID(issue.PlatformTrac, project.Slug, ticket["id"]),
		Platform:          issue.PlatformTrac,
		Project:           project.Name,
		Title:             ticket["Summary"],
		URL:               ticketURL,
		Difficulty:        result.Difficulty,
		DifficultyScore:   result.Score,
		DifficultySignals: result.Signals,
		Labels:            labels,
		CreatedAt:         issue.NormalizeTimestamp(ticket["Created"]),
		UpdatedAt:         issue.NormalizeTimestamp(ticket["Modified"]),
		Author:            author,
	}
}
