// Package adapters turns raw per-platform tracker responses into
// canonical issues. One adapter per platform, selected through a lookup
// table keyed by the platform tag; an unknown tag fails loudly instead
// of silently fetching nothing.
package adapters

import (
	"context"
	"fmt"
	"net/http"

	"issuecomb/app/issue"
	"issuecomb/app/registry"
)

type Adapter interface {
	Fetch(ctx context.Context, project registry.ProjectConfig) ([]issue.Issue, error)
}

// Options carries the credentials adapters need. The Phabricator token
// is a hard precondition checked by that adapter; the GitHub token is
// optional and only raises rate limits.
type Options struct {
	GitHubToken      string
	PhabricatorToken string
}

// Set holds one adapter per supported platform.
type Set struct {
	adapters map[issue.Platform]Adapter
}

func NewSet(client *http.Client, opts Options) *Set {
	return &Set{
		adapters: map[issue.Platform]Adapter{
			issue.PlatformGitHub:      NewGitHub(client, opts.GitHubToken),
			issue.PlatformGitLab:      NewGitLab(client),
			issue.PlatformGitea:       NewGitea(client),
			issue.PlatformPhabricator: NewPhabricator(client, opts.PhabricatorToken),
			issue.PlatformBugzilla:    NewBugzilla(client),
			issue.PlatformTrac:        NewTrac(client),
		},
	}
}

// For returns the adapter for a platform, failing on unknown tags.
func (s *Set) For(platform issue.Platform) (Adapter, error) {
	adapter, ok := s.adapters[platform]
	if !ok {
		return nil, fmt.Errorf("no adapter registered for platform %q", platform)
	}
	return adapter, nil
}
