package history

import (
	"sync"
	"testing"
)

func TestManagerOpenAndReset(t *testing.T) {
	h := NewManager()

	a := h.Open("a")
	a.Append(Turn{Role: RoleUser, Text: "hello"})
	a.Append(Turn{Role: RoleAssistant, Text: "hi", HTML: "hi"})
	b := h.Open("b")
	b.Append(Turn{Role: RoleUser, Text: "foo"})
	b.Append(Turn{Role: RoleAssistant, Text: "bar", HTML: "bar"})

	turnsA := a.Turns()
	turnsB := b.Turns()

	if len(turnsA) != 2 || len(turnsB) != 2 {
		t.Fatalf("unexpected lengths: A=%d B=%d", len(turnsA), len(turnsB))
	}
	if turnsA[0].Role != RoleUser || turnsA[0].Text != "hello" {
		t.Fatalf("unexpected A[0]: %+v", turnsA[0])
	}
	if turnsA[1].Role != RoleAssistant || turnsA[1].Text != "hi" {
		t.Fatalf("unexpected A[1]: %+v", turnsA[1])
	}
	if turnsB[0].Text != "foo" || turnsB[1].Text != "bar" {
		t.Fatalf("unexpected B: %+v", turnsB)
	}
	if turnsA[0].At.IsZero() {
		t.Fatalf("timestamp not set")
	}

	// Ensure copy semantics (modifying returned slice does not affect internal state)
	turnsA[0] = Turn{Role: RoleUser, Text: "mutated"}
	if a.Turns()[0].Text != "hello" {
		t.Fatalf("internal state mutated via returned slice")
	}

	if h.Open("a") != a {
		t.Fatalf("open should return the existing log")
	}

	h.Reset("a")
	if fresh := h.Open("a"); fresh == a || len(fresh.Turns()) != 0 {
		t.Fatalf("reset did not clear session a")
	}
	if h.Open("b") != b || len(b.Turns()) != 2 {
		t.Fatalf("reset should not affect other sessions")
	}
}

func TestLogConcurrentAppend(t *testing.T) {
	l := NewLog()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Append(Turn{Role: RoleUser, Text: "x"})
		}()
	}
	wg.Wait()
	if got := len(l.Turns()); got != 50 {
		t.Fatalf("expected 50 turns, got %d", got)
	}
}
