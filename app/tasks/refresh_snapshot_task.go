package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"issuecomb/app/adapters"
	"issuecomb/app/database"
	"issuecomb/app/issue"
	"issuecomb/app/registry"
)

var _ TaskInterface = (*RefreshSnapshotTask)(nil)

// RefreshSnapshotTask fetches a project's issues live and stores the
// result as a snapshot. Snapshots back serving for platforms that block
// automated request traffic.
type RefreshSnapshotTask struct {
	Task
	project  registry.ProjectConfig
	adapters *adapters.Set
	store    database.KVStore
}

func NewRefreshSnapshotTask(project registry.ProjectConfig, set *adapters.Set, store database.KVStore) *RefreshSnapshotTask {
	return &RefreshSnapshotTask{
		Task:     NewTask(TaskTypeRefreshSnapshot, project.Slug),
		project:  project,
		adapters: set,
		store:    store,
	}
}

func (t *RefreshSnapshotTask) Execute(ctx context.Context) error {
	adapter, err := t.adapters.For(t.project.Platform)
	if err != nil {
		return err
	}

	issues, err := adapter.Fetch(ctx, t.project)
	if err != nil {
		return fmt.Errorf("failed to fetch issues for %s: %w", t.project.Slug, err)
	}

	snapshot := issue.Snapshot{
		Issues:   issues,
		CachedAt: time.Now().UTC().Format(time.RFC3339),
		Source:   "live",
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot for %s: %w", t.project.Slug, err)
	}

	if err := t.store.Put("cached:"+t.project.Slug, data); err != nil {
		return fmt.Errorf("failed to store snapshot for %s: %w", t.project.Slug, err)
	}

	slog.Info("Snapshot refreshed", "project", t.project.Slug, "issues", len(issues), "duration", t.GetDuration().String())
	return nil
}
