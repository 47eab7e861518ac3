package adapters

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"issuecomb/app/issue"
	"issuecomb/app/registry"
)

func tracProject(apiBase string) registry.ProjectConfig {
	return registry.ProjectConfig{
		Slug:           "ffmpeg",
		Name:           "FFmpeg",
		Platform:       issue.PlatformTrac,
		APIBase:        apiBase + "/query",
		BeginnerLabels: []string{"easy", "beginner"},
	}
}

const tracCSVHeader = "id,Summary,Status,Keywords,Reporter,Created,Modified,Type,Priority,Component\r\n"

func TestTracFetchPerLabelDedup(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		keywords := r.URL.Query().Get("keywords")

		w.Header().Set("Content-Type", "text/csv")
		switch keywords {
		case "~easy":
			fmt.Fprint(w, tracCSVHeader+
				"501,Fix typo in filter docs,new,\"easy, beginner\",carol,2024-03-01 10:00:00,2024-03-02 10:00:00,defect,minor,avfilter\r\n")
		case "~beginner":
			fmt.Fprint(w, tracCSVHeader+
				"501,Fix typo in filter docs,new,\"easy, beginner\",carol,2024-03-01 10:00:00,2024-03-02 10:00:00,defect,minor,avfilter\r\n"+
				"502,Support new muxer flag,new,beginner,dave,2024-03-01 11:00:00,2024-03-01 11:00:00,enhancement,normal,avformat\r\n")
		default:
			fmt.Fprint(w, tracCSVHeader)
		}
	}))
	defer server.Close()

	adapter := NewTrac(server.Client())
	issues, err := adapter.Fetch(context.Background(), tracProject(server.URL))
	if err != nil {
		t.Fatal(err)
	}

	if requests != 2 {
		t.Errorf("Expected one query per beginner label, got %d requests", requests)
	}

	// Ticket 501 matches both labels but must show up once.
	if len(issues) != 2 {
		t.Fatalf("Expected 2 issues, got %d", len(issues))
	}

	first := issues[0]
	if first.ID != "trac-ffmpeg-501" {
		t.Errorf("Expected ID 'trac-ffmpeg-501', got '%s'", first.ID)
	}
	// Keywords split apart, then type, non-default priority and component.
	if !reflect.DeepEqual(first.Labels, []string{"easy", "beginner", "defect", "minor", "avfilter"}) {
		t.Errorf("Unexpected labels: %v", first.Labels)
	}
	if first.Author != "carol" {
		t.Errorf("Expected author 'carol', got '%s'", first.Author)
	}
	expectedURL := server.URL + "/ticket/501"
	if first.URL != expectedURL {
		t.Errorf("Expected URL '%s', got '%s'", expectedURL, first.URL)
	}
	if first.UpdatedAt != "2024-03-02T10:00:00Z" {
		t.Errorf("Expected normalized timestamp, got '%s'", first.UpdatedAt)
	}

	// Ticket 502 has priority "normal", which is not a label.
	second := issues[1]
	if !reflect.DeepEqual(second.Labels, []string{"beginner", "enhancement", "avformat"}) {
		t.Errorf("Unexpected labels for second issue: %v", second.Labels)
	}
}

func TestTracFetchRejectsHTML(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><body>Access denied</body></html>`)
	}))
	defer server.Close()

	adapter := NewTrac(server.Client())
	_, err := adapter.Fetch(context.Background(), tracProject(server.URL))

	var malformed *issue.MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("Expected MalformedResponseError, got %v", err)
	}
}

func TestTracFetchUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer server.Close()

	adapter := NewTrac(server.Client())
	_, err := adapter.Fetch(context.Background(), tracProject(server.URL))

	var upstream *issue.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("Expected UpstreamError, got %v", err)
	}
	if upstream.StatusCode != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", upstream.StatusCode)
	}
}
