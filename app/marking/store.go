// Package marking persists user decisions about individual issues.
// An issue can be marked "ignored" or "process"; marking it with one
// status removes it from the other list.
package marking

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"issuecomb/app/database"
	"issuecomb/app/issue"
)

type Store struct {
	kv  database.KVStore
	now func() time.Time
}

func NewStore(kv database.KVStore) *Store {
	return &Store{kv: kv, now: time.Now}
}

type MarkResult struct {
	IssueID  string           `json:"issueId"`
	Status   issue.MarkStatus `json:"status"`
	MarkedAt string           `json:"markedAt"`
	Reason   string           `json:"reason,omitempty"`
}

// Mark records a status for an issue, moving it out of the opposite
// list if present. Re-marking with the same status updates the entry in
// place.
func (s *Store) Mark(issueID string, status issue.MarkStatus, reason string) (*MarkResult, error) {
	if s.kv == nil {
		return nil, &issue.StoreUnavailableError{Op: "mark"}
	}

	opposite := issue.MarkStatusProcess
	if status == issue.MarkStatusProcess {
		opposite = issue.MarkStatusIgnored
	}

	if err := s.removeFrom(opposite, issueID); err != nil {
		return nil, err
	}

	list, err := s.readList(status)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC().Format(time.RFC3339)
	entry := issue.MarkedIssue{IssueID: issueID, Status: status, Reason: reason, MarkedAt: now}
	updated := false
	for i := range list.Issues {
		if list.Issues[i].IssueID == issueID {
			list.Issues[i] = entry
			updated = true
			break
		}
	}
	if !updated {
		list.Issues = append(list.Issues, entry)
	}
	list.UpdatedAt = now

	if err := s.writeList(status, list); err != nil {
		return nil, err
	}

	slog.Debug("Marked issue", "issue_id", issueID, "status", status)
	return &MarkResult{IssueID: issueID, Status: status, MarkedAt: now, Reason: reason}, nil
}

// Unmark removes an issue from both lists. It reports whether the issue
// was present in either.
func (s *Store) Unmark(issueID string) (bool, error) {
	if s.kv == nil {
		return false, &issue.StoreUnavailableError{Op: "unmark"}
	}

	removed := false
	for _, status := range []issue.MarkStatus{issue.MarkStatusIgnored, issue.MarkStatusProcess} {
		list, err := s.readList(status)
		if err != nil {
			return false, err
		}
		kept := list.Issues[:0]
		for _, entry := range list.Issues {
			if entry.IssueID == issueID {
				removed = true
				continue
			}
			kept = append(kept, entry)
		}
		if len(kept) == len(list.Issues) {
			continue
		}
		list.Issues = kept
		list.UpdatedAt = s.now().UTC().Format(time.RFC3339)
		if err := s.writeList(status, list); err != nil {
			return false, err
		}
	}
	return removed, nil
}

// ListMarked returns the stored list for a status. An absent key yields
// an empty list, not an error.
func (s *Store) ListMarked(status issue.MarkStatus) (*issue.MarkedList, error) {
	if s.kv == nil {
		return nil, &issue.StoreUnavailableError{Op: "list marked"}
	}
	return s.readList(status)
}

// removeFrom drops an issue from one status list, writing back only when
// the issue was actually present.
func (s *Store) removeFrom(status issue.MarkStatus, issueID string) error {
	list, err := s.readList(status)
	if err != nil {
		return err
	}
	kept := list.Issues[:0]
	for _, entry := range list.Issues {
		if entry.IssueID == issueID {
			continue
		}
		kept = append(kept, entry)
	}
	if len(kept) == len(list.Issues) {
		return nil
	}
	list.Issues = kept
	list.UpdatedAt = s.now().UTC().Format(time.RFC3339)
	return s.writeList(status, list)
}

func (s *Store) readList(status issue.MarkStatus) (*issue.MarkedList, error) {
	empty := &issue.MarkedList{Issues: []issue.MarkedIssue{}}

	data, found, err := s.kv.Get(listKey(status))
	if err != nil {
		slog.Warn("Failed to read marked list", "status", status, "error", err)
		return empty, nil
	}
	if !found {
		return empty, nil
	}

	var list issue.MarkedList
	if err := json.Unmarshal(data, &list); err != nil {
		slog.Warn("Failed to decode marked list", "status", status, "error", err)
		return empty, nil
	}
	if list.Issues == nil {
		list.Issues = []issue.MarkedIssue{}
	}
	return &list, nil
}

func (s *Store) writeList(status issue.MarkStatus, list *issue.MarkedList) error {
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to encode marked list: %w", err)
	}
	if err := s.kv.Put(listKey(status), data); err != nil {
		return fmt.Errorf("failed to store marked list: %w", err)
	}
	return nil
}

func listKey(status issue.MarkStatus) string {
	return "marked:" + string(status)
}
