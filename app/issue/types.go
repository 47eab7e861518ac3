package issue

import "fmt"

// Platform identifies the upstream issue tracker an issue came from.
type Platform string

const (
	PlatformGitHub      Platform = "github"
	PlatformGitLab      Platform = "gitlab"
	PlatformGitea       Platform = "gitea"
	PlatformPhabricator Platform = "phabricator"
	PlatformBugzilla    Platform = "bugzilla"
	PlatformTrac        Platform = "trac"
)

func ParsePlatform(s string) (Platform, error) {
	switch Platform(s) {
	case PlatformGitHub, PlatformGitLab, PlatformGitea, PlatformPhabricator, PlatformBugzilla, PlatformTrac:
		return Platform(s), nil
	}
	return "", fmt.Errorf("unknown platform: %q", s)
}

// BlocksAutomation reports whether the platform is known to reject
// server-side requests. Fetches for these platforms go through the
// cache fallback gate first.
func (p Platform) BlocksAutomation() bool {
	return p == PlatformBugzilla || p == PlatformTrac
}

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
	DifficultyUnknown      Difficulty = "unknown"
)

func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(s) {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced, DifficultyUnknown:
		return Difficulty(s), nil
	}
	return "", fmt.Errorf("unknown difficulty: %q", s)
}

// Issue is the canonical representation shared by every component.
// Constructed fresh on each fetch, never mutated afterwards.
type Issue struct {
	ID                string     `json:"id"`
	Platform          Platform   `json:"platform"`
	Project           string     `json:"project"`
	Title             string     `json:"title"`
	URL               string     `json:"url"`
	Difficulty        Difficulty `json:"difficulty"`
	DifficultyScore   int        `json:"difficultyScore"`
	DifficultySignals []string   `json:"difficultySignals"`
	Labels            []string   `json:"labels"`
	CreatedAt         string     `json:"createdAt"`
	UpdatedAt         string     `json:"updatedAt"`
	Author            string     `json:"author"`
}

// NewID builds the globally unique issue identifier used as the
// dedup and marking key.
func NewID(platform Platform, slug, nativeID string) string {
	return fmt.Sprintf("%s-%s-%s", platform, slug, nativeID)
}

// ScoringResult is the output of the difficulty scorer. Ephemeral,
// produced per issue, never persisted on its own.
type ScoringResult struct {
	Difficulty Difficulty `json:"difficulty"`
	Score      int        `json:"score"`
	Signals    []string   `json:"signals"`
}

type MarkStatus string

const (
	MarkStatusIgnored MarkStatus = "ignored"
	MarkStatusProcess MarkStatus = "process"
)

func ParseMarkStatus(s string) (MarkStatus, error) {
	switch MarkStatus(s) {
	case MarkStatusIgnored, MarkStatusProcess:
		return MarkStatus(s), nil
	}
	return "", fmt.Errorf("unknown mark status: %q", s)
}

type MarkedIssue struct {
	IssueID  string     `json:"issueId"`
	Status   MarkStatus `json:"status"`
	MarkedAt string     `json:"markedAt"`
	Reason   string     `json:"reason,omitempty"`
}

// MarkedList is the persisted value under marked:{status}.
type MarkedList struct {
	Issues    []MarkedIssue `json:"issues"`
	UpdatedAt string        `json:"updatedAt"`
}

// Snapshot is the persisted value under cached:{slug}, holding
// already-normalized issues for platforms that block live fetches.
type Snapshot struct {
	Issues   []Issue `json:"issues"`
	CachedAt string  `json:"cachedAt"`
	Source   string  `json:"source"`
}
