package analytics

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"cosmic-portfolio/internal/storage"
)

func TestAnalyzeDailyLogs(t *testing.T) {
	testDate := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	events := []storage.Event{
		{Timestamp: testDate.Add(1 * time.Hour), SessionID: "a", Page: "home", Directive: "welcome"},
		{Timestamp: testDate.Add(2 * time.Hour), SessionID: "a", Page: "home", Directive: "greeting", Source: "local"},
		{Timestamp: testDate.Add(3 * time.Hour), SessionID: "a", Page: "home", Directive: "skills", Source: "local"},
		{Timestamp: testDate.Add(4 * time.Hour), SessionID: "b", Page: "deep-learning", Directive: "project:asl", Source: "local"},
		{Timestamp: testDate.Add(5 * time.Hour), SessionID: "b", Page: "deep-learning", Directive: "relay", Source: "relay"},
		{Timestamp: testDate.Add(6 * time.Hour), SessionID: "b", Page: "deep-learning", Directive: "unavailable", Source: "relay", Failed: true},
		// next day, ignored
		{Timestamp: testDate.AddDate(0, 0, 1), SessionID: "c", Directive: "fallback"},
	}

	stats := AnalyzeDailyLogs(events, testDate.Add(13*time.Hour))

	if stats.Date != "2024-01-15" {
		t.Errorf("Expected date '2024-01-15', got '%s'", stats.Date)
	}
	if stats.TotalMessages != 5 {
		t.Errorf("Expected 5 messages, got %d", stats.TotalMessages)
	}
	if stats.UniqueSessions != 2 {
		t.Errorf("Expected 2 sessions, got %d", stats.UniqueSessions)
	}
	if stats.Greetings != 1 {
		t.Errorf("Expected 1 greeting, got %d", stats.Greetings)
	}
	if stats.RelayReplies != 1 || stats.RelayFailures != 1 {
		t.Errorf("Expected 1 relay reply and 1 failure, got %d/%d", stats.RelayReplies, stats.RelayFailures)
	}
	if stats.ByDirective["skills"] != 1 || stats.ByDirective["project:asl"] != 1 {
		t.Errorf("Unexpected directive counts: %v", stats.ByDirective)
	}
	if _, ok := stats.ByDirective["unavailable"]; ok {
		t.Errorf("failed replies must not count as a directive")
	}
	if stats.ByPage["deep-learning"] != 3 || stats.ByPage["home"] != 2 {
		t.Errorf("Unexpected page counts: %v", stats.ByPage)
	}
	b := stats.Sessions["b"]
	if b.Messages != 3 || b.Failures != 1 || b.Page != "deep-learning" {
		t.Errorf("Unexpected session stats: %+v", b)
	}
}

func TestGenerateReportSummary(t *testing.T) {
	stats := &DailyStats{
		Date:           "2024-01-15",
		TotalMessages:  4,
		UniqueSessions: 2,
		ByDirective:    map[string]int{"skills": 1, "greeting": 3},
		ByPage:         map[string]int{"home": 4},
	}

	summary := stats.GenerateReportSummary()

	for _, want := range []string{"2024-01-15", "- Messages: 4", "- Sessions: 2", "- home: 4"} {
		if !strings.Contains(summary, want) {
			t.Errorf("Summary should contain %q:\n%s", want, summary)
		}
	}
	if strings.Index(summary, "greeting: 3") > strings.Index(summary, "skills: 1") {
		t.Errorf("topics should be ordered by count:\n%s", summary)
	}
}

func TestToJSON(t *testing.T) {
	stats := AnalyzeDailyLogs(nil, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	raw, err := stats.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}
	var back DailyStats
	if err := json.Unmarshal([]byte(raw), &back); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if back.Date != "2024-01-15" {
		t.Errorf("date lost: %q", back.Date)
	}
}
