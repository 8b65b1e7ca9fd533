package analytics

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"cosmic-portfolio/internal/storage"
	"cosmic-portfolio/internal/widget"
)

// DailyStats summarizes one day of widget traffic.
type DailyStats struct {
	Date           string                  `json:"date"`
	TotalMessages  int                     `json:"total_messages"`
	UniqueSessions int                     `json:"unique_sessions"`
	Greetings      int                     `json:"greetings"`
	RelayReplies   int                     `json:"relay_replies"`
	RelayFailures  int                     `json:"relay_failures"`
	ByDirective    map[string]int          `json:"by_directive"`
	ByPage         map[string]int          `json:"by_page"`
	Sessions       map[string]SessionStats `json:"sessions"`
}

type SessionStats struct {
	SessionID string `json:"session_id"`
	Page      string `json:"page,omitempty"`
	Messages  int    `json:"messages"`
	Failures  int    `json:"failures"`
}

// AnalyzeDailyLogs counts the events of the calendar day containing
// targetDate, in targetDate's location.
func AnalyzeDailyLogs(events []storage.Event, targetDate time.Time) *DailyStats {
	startOfDay := time.Date(targetDate.Year(), targetDate.Month(), targetDate.Day(), 0, 0, 0, 0, targetDate.Location())
	endOfDay := startOfDay.AddDate(0, 0, 1)

	stats := &DailyStats{
		Date:        startOfDay.Format("2006-01-02"),
		ByDirective: make(map[string]int),
		ByPage:      make(map[string]int),
		Sessions:    make(map[string]SessionStats),
	}

	for _, event := range events {
		if event.Timestamp.Before(startOfDay) || !event.Timestamp.Before(endOfDay) {
			continue
		}

		if event.Directive == widget.DirectiveWelcome {
			stats.Greetings++
			continue
		}

		stats.TotalMessages++
		if event.Failed {
			stats.RelayFailures++
		} else if event.Directive != "" {
			stats.ByDirective[event.Directive]++
		}
		if event.Source == widget.SourceRelay && !event.Failed {
			stats.RelayReplies++
		}
		if event.Page != "" {
			stats.ByPage[event.Page]++
		}

		s, ok := stats.Sessions[event.SessionID]
		if !ok {
			s = SessionStats{SessionID: event.SessionID, Page: event.Page}
		}
		s.Messages++
		if event.Failed {
			s.Failures++
		}
		stats.Sessions[event.SessionID] = s
	}

	stats.UniqueSessions = len(stats.Sessions)
	return stats
}

// GenerateReportSummary renders the stats as a short plain-text report.
func (ds *DailyStats) GenerateReportSummary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Portfolio assistant usage for %s:\n\n", ds.Date)
	fmt.Fprintf(&b, "Activity:\n")
	fmt.Fprintf(&b, "- Messages: %d\n", ds.TotalMessages)
	fmt.Fprintf(&b, "- Sessions: %d\n", ds.UniqueSessions)
	fmt.Fprintf(&b, "- Widgets opened: %d\n", ds.Greetings)
	fmt.Fprintf(&b, "- AI replies: %d\n", ds.RelayReplies)
	fmt.Fprintf(&b, "- AI failures: %d\n", ds.RelayFailures)

	if len(ds.ByDirective) > 0 {
		b.WriteString("\nTop topics:\n")
		for _, kv := range sortedCounts(ds.ByDirective) {
			fmt.Fprintf(&b, "- %s: %d\n", kv.key, kv.n)
		}
	}
	if len(ds.ByPage) > 0 {
		b.WriteString("\nPages:\n")
		for _, kv := range sortedCounts(ds.ByPage) {
			fmt.Fprintf(&b, "- %s: %d\n", kv.key, kv.n)
		}
	}
	return b.String()
}

// ToJSON is the indented JSON form of the stats.
func (ds *DailyStats) ToJSON() (string, error) {
	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

type count struct {
	key string
	n   int
}

// sortedCounts orders by count, then key.
func sortedCounts(m map[string]int) []count {
	out := make([]count, 0, len(m))
	for k, n := range m {
		out = append(out, count{k, n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].n != out[j].n {
			return out[i].n > out[j].n
		}
		return out[i].key < out[j].key
	})
	return out
}
