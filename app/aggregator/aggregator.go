// Package aggregator fans out per-project fetches for a pool, isolates
// per-project failures, and merges the surviving results into one
// sorted issue list.
package aggregator

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"sync"

	"issuecomb/app/adapters"
	"issuecomb/app/database"
	"issuecomb/app/issue"
	"issuecomb/app/registry"
)

type Aggregator struct {
	registry *registry.Registry
	adapters *adapters.Set
	store    database.KVStore // may be nil; the fallback gate then always goes live
}

func New(reg *registry.Registry, set *adapters.Set, store database.KVStore) *Aggregator {
	return &Aggregator{registry: reg, adapters: set, store: store}
}

// ProjectError records one project's fetch failure inside an otherwise
// successful pool aggregation.
type ProjectError struct {
	Project string `json:"project"`
	Error   string `json:"error"`
}

type Result struct {
	Issues []issue.Issue
	Errors []ProjectError
}

type projectResult struct {
	slug   string
	issues []issue.Issue
	err    error
}

// Aggregate fetches every project in a pool concurrently and merges the
// results. A single project's failure becomes an entry in the result's
// error list and never aborts the other fetches. The optional difficulty
// filter is applied after the merge, and the final list is sorted by
// update time, newest first.
func (a *Aggregator) Aggregate(ctx context.Context, pool string, difficulty issue.Difficulty) (*Result, error) {
	projects := a.registry.ByPool(pool)
	if len(projects) == 0 {
		return nil, &issue.NotFoundError{Kind: "pool", Value: pool}
	}

	// One slot per project keeps merge order deterministic without any
	// locking; each goroutine writes only its own slot.
	results := make([]projectResult, len(projects))
	var wg sync.WaitGroup
	for i, project := range projects {
		wg.Add(1)
		go func(i int, project registry.ProjectConfig) {
			defer wg.Done()
			issues, err := a.fetchProject(ctx, project)
			results[i] = projectResult{slug: project.Slug, issues: issues, err: err}
		}(i, project)
	}
	wg.Wait()

	result := &Result{Issues: []issue.Issue{}}
	seen := make(map[string]bool)
	for _, pr := range results {
		if pr.err != nil {
			slog.Warn("Project fetch failed", "project", pr.slug, "error", pr.err)
			result.Errors = append(result.Errors, ProjectError{Project: pr.slug, Error: pr.err.Error()})
			continue
		}
		for _, iss := range pr.issues {
			if seen[iss.ID] {
				continue
			}
			seen[iss.ID] = true
			result.Issues = append(result.Issues, iss)
		}
	}

	if difficulty != "" {
		filtered := result.Issues[:0]
		for _, iss := range result.Issues {
			if iss.Difficulty == difficulty {
				filtered = append(filtered, iss)
			}
		}
		result.Issues = filtered
	}

	// Stable sort so issues with equal (or equally unparseable) update
	// times keep their relative order.
	sort.SliceStable(result.Issues, func(i, j int) bool {
		return issue.SortTime(result.Issues[i].UpdatedAt).After(issue.SortTime(result.Issues[j].UpdatedAt))
	})

	return result, nil
}

// AggregateOne fetches a single project by slug. Unlike pool
// aggregation, an adapter failure here is the call's failure.
func (a *Aggregator) AggregateOne(ctx context.Context, slug string) ([]issue.Issue, error) {
	project, ok := a.registry.BySlug(slug)
	if !ok {
		return nil, &issue.NotFoundError{Kind: "project", Value: slug}
	}
	return a.fetchProject(ctx, project)
}

// fetchProject routes one project's fetch through the cache fallback
// gate for platforms that block automated traffic, then to the live
// adapter.
func (a *Aggregator) fetchProject(ctx context.Context, project registry.ProjectConfig) ([]issue.Issue, error) {
	if project.Platform.BlocksAutomation() {
		if issues, ok := a.cachedIssues(project.Slug); ok {
			return issues, nil
		}
	}

	adapter, err := a.adapters.For(project.Platform)
	if err != nil {
		return nil, err
	}
	return adapter.Fetch(ctx, project)
}

// cachedIssues reads a previously stored snapshot. Any failure here is
// swallowed: a live-fetch fallback always exists.
func (a *Aggregator) cachedIssues(slug string) ([]issue.Issue, bool) {
	if a.store == nil {
		return nil, false
	}

	data, found, err := a.store.Get("cached:" + slug)
	if err != nil {
		slog.Warn("Failed to read cached snapshot", "slug", slug, "error", err)
		return nil, false
	}
	if !found {
		return nil, false
	}

	var snapshot issue.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		slog.Warn("Failed to decode cached snapshot", "slug", slug, "error", err)
		return nil, false
	}
	if snapshot.Issues == nil {
		return nil, false
	}

	slog.Debug("Using cached snapshot", "slug", slug, "cached_at", snapshot.CachedAt, "issues", len(snapshot.Issues))
	return snapshot.Issues, true
}
