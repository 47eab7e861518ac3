// Package registry holds the static table of tracked projects. The
// built-in defaults can be extended or overridden by YAML files in a
// projects directory, one project per file.
package registry

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"issuecomb/app/issue"
)

type Registry struct {
	projects []ProjectConfig
	bySlug   map[string]int
	pools    []Pool
}

// New builds a registry holding the built-in project table.
func New() *Registry {
	r := &Registry{bySlug: make(map[string]int)}
	r.pools = append(r.pools, defaultPools...)
	for _, p := range defaultProjects {
		r.add(p)
	}
	return r
}

// NewFrom builds a registry holding only the given projects. Pools are
// derived from the projects' memberships.
func NewFrom(projects ...ProjectConfig) *Registry {
	r := &Registry{bySlug: make(map[string]int)}
	for _, p := range projects {
		r.add(p)
	}
	return r
}

// LoadDir reads project YAML files from dir and merges them into the
// registry. A file whose slug matches an existing project replaces it;
// otherwise it is appended. A missing directory is not an error.
func (r *Registry) LoadDir(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.yml"))
	if err != nil {
		return fmt.Errorf("failed to find YML files: %w", err)
	}
	yamlFiles, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return fmt.Errorf("failed to find YAML files: %w", err)
	}
	files = append(files, yamlFiles...)

	for _, file := range files {
		project, err := r.loadFile(file)
		if err != nil {
			return fmt.Errorf("error loading %s: %w", file, err)
		}

		r.add(*project)
		slog.Debug("Project configuration loaded", "slug", project.Slug, "platform", project.Platform)
	}

	return nil
}

func (r *Registry) loadFile(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var project ProjectConfig
	if err := yaml.Unmarshal(data, &project); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if project.Slug == "" {
		// Derive the slug from the filename when the file does not set one.
		base := filepath.Base(path)
		project.Slug = base[:len(base)-len(filepath.Ext(base))]
	}

	if err := validate(&project); err != nil {
		return nil, fmt.Errorf("invalid project config %s: %w", path, err)
	}

	return &project, nil
}

func validate(project *ProjectConfig) error {
	if project.Name == "" {
		return fmt.Errorf("project name is required")
	}
	if project.APIBase == "" {
		return fmt.Errorf("api_base is required")
	}
	if _, err := issue.ParsePlatform(string(project.Platform)); err != nil {
		return err
	}
	if len(project.BeginnerLabels) == 0 {
		return fmt.Errorf("at least one beginner label is required")
	}
	if len(project.Pools) == 0 {
		return fmt.Errorf("at least one pool membership is required")
	}
	return nil
}

func (r *Registry) add(project ProjectConfig) {
	if i, ok := r.bySlug[project.Slug]; ok {
		r.projects[i] = project
	} else {
		r.bySlug[project.Slug] = len(r.projects)
		r.projects = append(r.projects, project)
	}

	for _, pool := range project.Pools {
		if !r.hasPool(pool) {
			r.pools = append(r.pools, Pool{Value: pool, Label: pool})
		}
	}
}

func (r *Registry) hasPool(value string) bool {
	for _, p := range r.pools {
		if p.Value == value {
			return true
		}
	}
	return false
}

// ByPool returns the projects belonging to a pool. Pool "all" returns
// everything; an unknown pool yields an empty list, which callers treat
// as "pool not found".
func (r *Registry) ByPool(pool string) []ProjectConfig {
	if pool == "all" {
		out := make([]ProjectConfig, len(r.projects))
		copy(out, r.projects)
		return out
	}

	var out []ProjectConfig
	for _, p := range r.projects {
		for _, member := range p.Pools {
			if member == pool {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// BySlug looks up a single project by its slug.
func (r *Registry) BySlug(slug string) (ProjectConfig, bool) {
	i, ok := r.bySlug[slug]
	if !ok {
		return ProjectConfig{}, false
	}
	return r.projects[i], true
}

// Projects returns every registered project in registration order.
func (r *Registry) Projects() []ProjectConfig {
	out := make([]ProjectConfig, len(r.projects))
	copy(out, r.projects)
	return out
}

// Pools returns the known pools with their display labels.
func (r *Registry) Pools() []Pool {
	out := make([]Pool, len(r.pools))
	copy(out, r.pools)
	return out
}
