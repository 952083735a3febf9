package session

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/tradewind-labs/storefront/kv"
)

var testIdentity = Record{
	ID:          "u1",
	Email:       "alice@example.com",
	DisplayName: "Alice",
	Role:        "buyer",
	CreatedAt:   time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
}

func TestJSONRoundTripAcrossRestart(t *testing.T) {
	ctx := context.Background()
	storage := kv.NewMemory()

	first := NewStore(storage, "", nil, nil)
	if err := first.Set(ctx, testIdentity); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// A fresh store over the same storage simulates process restart.
	second := NewStore(storage, "", nil, nil)
	rec, err := second.Hydrate(ctx)
	if err != nil {
		t.Fatalf("Hydrate failed: %v", err)
	}
	if rec == nil {
		t.Fatal("expected restored session")
	}
	if rec.ID != "u1" || rec.Email != "alice@example.com" || rec.Role != "buyer" {
		t.Fatalf("unexpected record %+v", rec)
	}
	if !rec.CreatedAt.Equal(testIdentity.CreatedAt) {
		t.Fatalf("createdAt not reconstructed: %v", rec.CreatedAt)
	}

	current, ok := second.Current()
	if !ok || current.ID != "u1" {
		t.Fatalf("Current after hydrate: %+v ok=%v", current, ok)
	}
}

func TestHydrateMissingRecord(t *testing.T) {
	store := NewStore(kv.NewMemory(), "", nil, nil)
	rec, err := store.Hydrate(context.Background())
	if err != nil || rec != nil {
		t.Fatalf("expected unauthenticated start, got rec=%+v err=%v", rec, err)
	}
	if _, ok := store.Current(); ok {
		t.Fatal("expected no current session")
	}
}

func TestHydrateRemovesMalformedRecord(t *testing.T) {
	ctx := context.Background()
	storage := kv.NewMemory()
	if err := storage.Set(ctx, DefaultStorageKey, "{not json"); err != nil {
		t.Fatalf("seed storage: %v", err)
	}

	store := NewStore(storage, "", nil, nil)
	rec, err := store.Hydrate(ctx)
	if err != nil {
		t.Fatalf("malformed record must not error: %v", err)
	}
	if rec != nil {
		t.Fatalf("malformed record restored: %+v", rec)
	}
	if _, ok, _ := storage.Get(ctx, DefaultStorageKey); ok {
		t.Fatal("malformed record should be removed from storage")
	}
}

func TestHydrateRejectsRecordWithoutIdentity(t *testing.T) {
	ctx := context.Background()
	storage := kv.NewMemory()
	// Valid JSON, but no identity inside.
	if err := storage.Set(ctx, DefaultStorageKey, "{}"); err != nil {
		t.Fatalf("seed storage: %v", err)
	}

	store := NewStore(storage, "", nil, nil)
	if rec, err := store.Hydrate(ctx); err != nil || rec != nil {
		t.Fatalf("expected empty record dropped, got rec=%+v err=%v", rec, err)
	}
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	storage := kv.NewMemory()
	store := NewStore(storage, "", nil, nil)

	if err := store.Set(ctx, testIdentity); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, ok := store.Current(); ok {
		t.Fatal("expected no session after Clear")
	}
	if _, ok, _ := storage.Get(ctx, DefaultStorageKey); ok {
		t.Fatal("expected durable record removed")
	}
}

func TestSignedRoundTrip(t *testing.T) {
	ctx := context.Background()
	storage := kv.NewMemory()
	key := []byte("test-signing-key")

	first := NewStore(storage, "", key, nil)
	if err := first.Set(ctx, testIdentity); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	raw, ok, _ := storage.Get(ctx, DefaultStorageKey)
	if !ok || strings.Count(raw, ".") != 2 {
		t.Fatalf("expected a signed token in storage, got %q", raw)
	}

	second := NewStore(storage, "", key, nil)
	rec, err := second.Hydrate(ctx)
	if err != nil || rec == nil {
		t.Fatalf("Hydrate failed: rec=%+v err=%v", rec, err)
	}
	if rec.ID != "u1" || !rec.CreatedAt.Equal(testIdentity.CreatedAt) {
		t.Fatalf("unexpected record %+v", rec)
	}
}

func TestSignedRecordTamperingDropsSession(t *testing.T) {
	ctx := context.Background()
	storage := kv.NewMemory()
	key := []byte("test-signing-key")

	store := NewStore(storage, "", key, nil)
	if err := store.Set(ctx, testIdentity); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	raw, _, _ := storage.Get(ctx, DefaultStorageKey)
	tampered := raw[:len(raw)-2] + "xx"
	if err := storage.Set(ctx, DefaultStorageKey, tampered); err != nil {
		t.Fatalf("seed tampered record: %v", err)
	}

	fresh := NewStore(storage, "", key, nil)
	rec, err := fresh.Hydrate(ctx)
	if err != nil {
		t.Fatalf("tampered record must not error: %v", err)
	}
	if rec != nil {
		t.Fatal("tampered record must not restore a session")
	}
	if _, ok, _ := storage.Get(ctx, DefaultStorageKey); ok {
		t.Fatal("tampered record should be removed")
	}
}

func TestSignedRecordRejectedWithWrongKey(t *testing.T) {
	ctx := context.Background()
	storage := kv.NewMemory()

	writer := NewStore(storage, "", []byte("key-one"), nil)
	if err := writer.Set(ctx, testIdentity); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	reader := NewStore(storage, "", []byte("key-two"), nil)
	if rec, err := reader.Hydrate(ctx); err != nil || rec != nil {
		t.Fatalf("wrong key should drop session, got rec=%+v err=%v", rec, err)
	}
}
