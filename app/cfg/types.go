package cfg

type Cfg struct {
	// Database configuration
	DBPath string

	// Application configuration
	ProjectsDir      string
	Port             string
	WorkerCount      int
	SnapshotInterval int
	ResultCacheTTL   int
	APIAccessKey     string

	// Platform credentials
	GitHubToken      string
	PhabricatorToken string

	// Application metadata
	Timezone string
	Debug    bool
	Version  string
}
