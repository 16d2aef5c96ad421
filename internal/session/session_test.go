package session

import (
	"context"
	"strings"
	"testing"
)

func TestCreateRegistersSession(t *testing.T) {
	store := NewStore()
	sess, err := store.Create(context.Background(), "pdf_summarizer", "pdf_user")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !strings.HasPrefix(sess.ID, "pdf_session_") {
		t.Fatalf("unexpected session id %q", sess.ID)
	}
	if !store.Valid(sess) {
		t.Fatalf("session should be valid immediately after Create returns")
	}
	if store.Len() != 1 {
		t.Fatalf("expected 1 live session, got %d", store.Len())
	}
}

func TestCreateUniqueIDs(t *testing.T) {
	store := NewStore()
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		sess, err := store.Create(context.Background(), "pdf_summarizer", "pdf_user")
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if _, ok := seen[sess.ID]; ok {
			t.Fatalf("duplicate session id %q", sess.ID)
		}
		seen[sess.ID] = struct{}{}
	}
}

func TestDiscardInvalidatesSession(t *testing.T) {
	store := NewStore()
	sess, err := store.Create(context.Background(), "pdf_summarizer", "pdf_user")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	store.Discard(sess)
	if store.Valid(sess) {
		t.Fatalf("session should be invalid after Discard")
	}
	if store.Len() != 0 {
		t.Fatalf("expected no live sessions, got %d", store.Len())
	}
	// discarding twice is harmless
	store.Discard(sess)
}

func TestValidRejectsForeignSession(t *testing.T) {
	store := NewStore()
	other := NewStore()
	sess, err := other.Create(context.Background(), "pdf_summarizer", "pdf_user")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if store.Valid(sess) {
		t.Fatalf("session from another store should not validate")
	}
	if store.Valid(nil) {
		t.Fatalf("nil session should not validate")
	}
}

func TestCreateRequiresIdentity(t *testing.T) {
	store := NewStore()
	if _, err := store.Create(context.Background(), "", "pdf_user"); err == nil {
		t.Fatalf("expected error for empty app name")
	}
	if _, err := store.Create(context.Background(), "pdf_summarizer", ""); err == nil {
		t.Fatalf("expected error for empty user id")
	}
}

func TestCreateHonorsCancelledContext(t *testing.T) {
	store := NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := store.Create(ctx, "pdf_summarizer", "pdf_user"); err == nil {
		t.Fatalf("expected error for cancelled context")
	}
	if store.Len() != 0 {
		t.Fatalf("cancelled create must not register a session")
	}
}
