package issue

import "testing"

func TestNewID(t *testing.T) {
	id := NewID(PlatformGitHub, "pytorch", "12345")
	if id != "github-pytorch-12345" {
		t.Errorf("Expected 'github-pytorch-12345', got '%s'", id)
	}
}

func TestParsePlatform(t *testing.T) {
	for _, valid := range []string{"github", "gitlab", "gitea", "phabricator", "bugzilla", "trac"} {
		if _, err := ParsePlatform(valid); err != nil {
			t.Errorf("Expected %q to parse, got error: %v", valid, err)
		}
	}

	if _, err := ParsePlatform("sourceforge"); err == nil {
		t.Error("Expected error for unknown platform")
	}
}

func TestBlocksAutomation(t *testing.T) {
	tests := []struct {
		platform Platform
		expected bool
	}{
		{PlatformGitHub, false},
		{PlatformGitLab, false},
		{PlatformGitea, false},
		{PlatformPhabricator, false},
		{PlatformBugzilla, true},
		{PlatformTrac, true},
	}

	for _, tt := range tests {
		if got := tt.platform.BlocksAutomation(); got != tt.expected {
			t.Errorf("%s.BlocksAutomation(): expected %v, got %v", tt.platform, tt.expected, got)
		}
	}
}

func TestParseMarkStatus(t *testing.T) {
	if _, err := ParseMarkStatus("ignored"); err != nil {
		t.Errorf("Expected 'ignored' to parse, got error: %v", err)
	}
	if _, err := ParseMarkStatus("process"); err != nil {
		t.Errorf("Expected 'process' to parse, got error: %v", err)
	}
	if _, err := ParseMarkStatus("done"); err == nil {
		t.Error("Expected error for unknown mark status")
	}
}
