package registry

import "issuecomb/app/issue"

// ProjectConfig is static configuration for one tracked project. Loaded
// once at startup, never mutated afterwards.
type ProjectConfig struct {
	Slug            string         `yaml:"slug"`
	Name            string         `yaml:"name"`
	Platform        issue.Platform `yaml:"platform"`
	APIBase         string         `yaml:"api_base"`
	ProjectID       string         `yaml:"project_id"`
	BeginnerLabels  []string       `yaml:"beginner_labels"`
	ContributingURL string         `yaml:"contributing_url"`
	Pools           []string       `yaml:"pools"`
}

// Pool is a named grouping of projects used to scope aggregation queries.
type Pool struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}
