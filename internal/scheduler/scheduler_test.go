package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestAddRejectsBadSpec(t *testing.T) {
	s := New(nil)
	if err := s.Add("not a spec", "bad", func(context.Context) error { return nil }); err == nil {
		t.Fatalf("expected error for invalid spec")
	}
}

func TestJobsRun(t *testing.T) {
	s := New(nil)
	var ran atomic.Int32
	if err := s.Add("@every 1s", "tick", func(context.Context) error {
		ran.Add(1)
		return errors.New("failures are only logged")
	}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.Add("0 21 * * *", "report", func(context.Context) error { return nil }); err != nil {
		t.Fatalf("add: %v", err)
	}

	s.Start()
	jobs := s.Jobs()
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %v", jobs)
	}
	if next := jobs["report"]; next.UTC().Hour() != 21 {
		t.Fatalf("report should run at 21:00 UTC, next=%v", next)
	}

	deadline := time.Now().Add(3 * time.Second)
	for ran.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(20 * time.Millisecond)
	}
	s.Stop()
	if ran.Load() == 0 {
		t.Fatalf("tick job never ran")
	}
}

func TestStartLogsNextRuns(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	s := New(zap.New(core))
	if err := s.Add("0 21 * * *", "daily-report", func(context.Context) error { return nil }); err != nil {
		t.Fatalf("add: %v", err)
	}
	s.Start()
	defer s.Stop()

	entries := logs.FilterMessage("job next run").All()
	if len(entries) != 1 {
		t.Fatalf("expected one next-run entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["job"] != "daily-report" {
		t.Fatalf("unexpected job field: %v", fields)
	}
	next, ok := fields["next"].(time.Time)
	if !ok || next.UTC().Hour() != 21 {
		t.Fatalf("next run should be 21:00 UTC, got %v", fields["next"])
	}
}
