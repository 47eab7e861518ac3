package api

import (
	"context"

	"issuecomb/app/aggregator"
	"issuecomb/app/issue"
	"issuecomb/app/marking"
	"issuecomb/app/registry"
)

type AggregatorInterface interface {
	Aggregate(ctx context.Context, pool string, difficulty issue.Difficulty) (*aggregator.Result, error)
	AggregateOne(ctx context.Context, slug string) ([]issue.Issue, error)
}

var _ AggregatorInterface = (*aggregator.Aggregator)(nil)

type MarkingStoreInterface interface {
	Mark(issueID string, status issue.MarkStatus, reason string) (*marking.MarkResult, error)
	Unmark(issueID string) (bool, error)
	ListMarked(status issue.MarkStatus) (*issue.MarkedList, error)
}

var _ MarkingStoreInterface = (*marking.Store)(nil)

type Handler struct {
	registry    *registry.Registry
	aggregator  AggregatorInterface
	marking     MarkingStoreInterface
	resultCache *ResultCache
}
