package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileRecorder_AppendAndLoad(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "logs", "chat.jsonl")
	rec, err := NewFileRecorder(p)
	if err != nil {
		t.Fatalf("init recorder: %v", err)
	}
	defer rec.Close()

	ev1 := Event{Timestamp: time.Unix(1, 0).UTC(), SessionID: "a", Directive: "greeting"}
	ev2 := Event{Timestamp: time.Unix(2, 0).UTC(), SessionID: "b", Failed: true}
	if err := rec.AppendInteraction(ev1); err != nil {
		t.Fatalf("append1: %v", err)
	}
	if err := rec.AppendInteraction(ev2); err != nil {
		t.Fatalf("append2: %v", err)
	}

	events, err := rec.LoadInteractions()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("want 2, got %d", len(events))
	}
	if events[0].SessionID != "a" || events[1].SessionID != "b" {
		t.Fatalf("order mismatch: %+v", events)
	}
	if events[0].Directive != "greeting" || !events[1].Failed {
		t.Fatalf("fields lost: %+v", events)
	}

	// ensure file exists and non-empty
	st, err := os.Stat(p)
	if err != nil || st.Size() == 0 {
		t.Fatalf("file not written")
	}
}

func TestFileRecorder_SkipsBrokenLines(t *testing.T) {
	p := filepath.Join(t.TempDir(), "chat.jsonl")
	if err := os.WriteFile(p, []byte("{not json}\n\n{\"session_id\":\"x\"}\n"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	rec, err := NewFileRecorder(p)
	if err != nil {
		t.Fatalf("init recorder: %v", err)
	}
	defer rec.Close()
	events, err := rec.LoadInteractions()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(events) != 1 || events[0].SessionID != "x" {
		t.Fatalf("unexpected events: %+v", events)
	}
}

func TestFileRecorder_Close(t *testing.T) {
	rec, err := NewFileRecorder(filepath.Join(t.TempDir(), "chat.jsonl"))
	if err != nil {
		t.Fatalf("init recorder: %v", err)
	}
	if err := rec.AppendInteraction(Event{SessionID: "a"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if err := rec.AppendInteraction(Event{SessionID: "b"}); err == nil {
		t.Fatal("append after close should fail")
	}
	events, err := rec.LoadInteractions()
	if err != nil || len(events) != 1 {
		t.Fatalf("load after close: %v %+v", err, events)
	}
}

func TestSQLiteRecorder_AppendAndLoad(t *testing.T) {
	rec, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "data", "chat.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer rec.Close()

	in := []Event{
		{Timestamp: time.Unix(20, 0).UTC(), SessionID: "s2", Page: "home", Directive: "skills", Source: "local"},
		{Timestamp: time.Unix(10, 0).UTC(), SessionID: "s1", Page: "deep-learning", Directive: "greeting", Source: "local"},
		{Timestamp: time.Unix(30, 0).UTC(), SessionID: "s1", Source: "relay", Failed: true},
	}
	for _, ev := range in {
		if err := rec.AppendInteraction(ev); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	out, err := rec.LoadInteractions()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("want 3, got %d", len(out))
	}
	if out[0].SessionID != "s1" || out[1].SessionID != "s2" || out[2].SessionID != "s1" {
		t.Fatalf("not chronological: %+v", out)
	}
	if !out[0].Timestamp.Equal(time.Unix(10, 0)) || out[0].Page != "deep-learning" {
		t.Fatalf("fields lost: %+v", out[0])
	}
	if !out[2].Failed || out[2].Source != "relay" {
		t.Fatalf("failed flag lost: %+v", out[2])
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	r, err := Open(DriverJSONL, filepath.Join(dir, "a.jsonl"))
	if err != nil {
		t.Fatalf("jsonl: %v", err)
	}
	fr, ok := r.(*FileRecorder)
	if !ok {
		t.Fatalf("want *FileRecorder, got %T", r)
	}
	fr.Close()

	r, err = Open(DriverSQLite, filepath.Join(dir, "a.db"))
	if err != nil {
		t.Fatalf("sqlite: %v", err)
	}
	r.(*SQLiteRecorder).Close()

	r, err = Open(DriverNone, "")
	if err != nil {
		t.Fatalf("none: %v", err)
	}
	if err := r.AppendInteraction(Event{}); err != nil {
		t.Fatalf("nop append: %v", err)
	}

	if _, err := Open("mongo", ""); !errors.Is(err, ErrUnknownDriver) {
		t.Fatalf("want ErrUnknownDriver, got %v", err)
	}
}
