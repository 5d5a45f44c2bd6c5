package session

import (
	"testing"
	"time"
)

func TestStateLifecycle(t *testing.T) {
	s := New("abc")
	if s.Status != StatusUnresolved {
		t.Fatalf("new state status = %s", s.Status)
	}
	if s.HasPendingQuestion() {
		t.Fatal("fresh state has no pending question")
	}

	s.AskQuestion("Which pages?", []string{"keep pages 1", "all pages"}, "split this")
	if !s.HasPendingQuestion() {
		t.Fatal("question should be pending")
	}
	if s.ClarificationStreak != 1 {
		t.Errorf("streak = %d, want 1", s.ClarificationStreak)
	}

	s.AskQuestion("Please select one of the options above.", s.PendingOptions, s.PendingBaseInstruction)
	if s.ClarificationStreak != 2 {
		t.Errorf("streak = %d, want 2", s.ClarificationStreak)
	}

	s.Lock("keep pages 1")
	if s.Status != StatusResolved || s.LockedAction != "keep pages 1" {
		t.Fatalf("lock state = %s %q", s.Status, s.LockedAction)
	}
	if s.HasPendingQuestion() {
		t.Error("locking clears the pending question")
	}

	s.Unlock()
	if s.Status != StatusUnresolved || s.LockedAction != "" {
		t.Errorf("unlock state = %s %q", s.Status, s.LockedAction)
	}

	s.ClearQuestion()
	if s.ClarificationStreak != 0 {
		t.Errorf("streak after clear = %d, want 0", s.ClarificationStreak)
	}
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore(time.Minute, time.Minute)

	if _, ok := store.Get("missing"); ok {
		t.Fatal("empty store returned a session")
	}

	s := New("abc")
	s.AskQuestion("Which pages?", []string{"keep pages 1"}, "split this")
	store.Save(s)

	got, ok := store.Get("abc")
	if !ok {
		t.Fatal("saved session not found")
	}
	if got.PendingQuestion != "Which pages?" {
		t.Errorf("PendingQuestion = %q", got.PendingQuestion)
	}

	store.Delete("abc")
	if _, ok := store.Get("abc"); ok {
		t.Error("deleted session still present")
	}
}

func TestLoadOrCreate(t *testing.T) {
	store := NewMemoryStore(time.Minute, time.Minute)

	s := LoadOrCreate(store, "fresh")
	if s.ID != "fresh" || s.Status != StatusUnresolved {
		t.Fatalf("unexpected fresh state %+v", s)
	}

	s.Lock("compress")
	store.Save(s)

	again := LoadOrCreate(store, "fresh")
	if again.Status != StatusResolved || again.LockedAction != "compress" {
		t.Errorf("reloaded state = %s %q", again.Status, again.LockedAction)
	}
}
