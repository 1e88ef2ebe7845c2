package credstore

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

func setupTestRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	s := miniredis.RunT(t)
	store, err := NewRedisStore("redis://" + s.Addr())
	if err != nil {
		t.Fatalf("failed to create redis store: %v", err)
	}
	return store, s
}

func TestNewRedisStore(t *testing.T) {
	s := miniredis.RunT(t)
	defer s.Close()

	store, err := NewRedisStore("redis://" + s.Addr())
	if err != nil {
		t.Fatalf("NewRedisStore failed: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.Ping(ctx); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
}

func TestSaveAndLoadCredentials(t *testing.T) {
	store, s := setupTestRedis(t)
	defer store.Close()
	defer s.Close()

	ctx := context.Background()
	identity := []byte(`{"id":7,"username":"sara","role":"Admin"}`)

	if err := store.SaveCredentials(ctx, identity, "tok-abc"); err != nil {
		t.Fatalf("SaveCredentials failed: %v", err)
	}

	gotIdentity, gotToken, err := store.LoadCredentials(ctx)
	if err != nil {
		t.Fatalf("LoadCredentials failed: %v", err)
	}
	if string(gotIdentity) != string(identity) {
		t.Errorf("expected identity %s, got %s", identity, gotIdentity)
	}
	if gotToken != "tok-abc" {
		t.Errorf("expected token tok-abc, got %s", gotToken)
	}
}

func TestLoadEmptyStore(t *testing.T) {
	store, s := setupTestRedis(t)
	defer store.Close()
	defer s.Close()

	identity, token, err := store.LoadCredentials(context.Background())
	if err != nil {
		t.Fatalf("LoadCredentials failed: %v", err)
	}
	if identity != nil || token != "" {
		t.Errorf("expected empty pair, got %q / %q", identity, token)
	}
}

func TestLoadHalfPair(t *testing.T) {
	store, s := setupTestRedis(t)
	defer store.Close()
	defer s.Close()

	// Only the token half present
	s.Set("console:session:token", "orphan-token")

	identity, token, err := store.LoadCredentials(context.Background())
	if err != nil {
		t.Fatalf("LoadCredentials failed: %v", err)
	}
	if identity != nil {
		t.Errorf("expected missing identity, got %q", identity)
	}
	if token != "orphan-token" {
		t.Errorf("expected orphan token back, got %q", token)
	}
}

func TestClearCredentialsIsIdempotent(t *testing.T) {
	store, s := setupTestRedis(t)
	defer store.Close()
	defer s.Close()

	ctx := context.Background()
	if err := store.SaveCredentials(ctx, []byte(`{}`), "t"); err != nil {
		t.Fatalf("SaveCredentials failed: %v", err)
	}

	if err := store.ClearCredentials(ctx); err != nil {
		t.Fatalf("first ClearCredentials failed: %v", err)
	}
	if err := store.ClearCredentials(ctx); err != nil {
		t.Fatalf("second ClearCredentials failed: %v", err)
	}

	identity, token, err := store.LoadCredentials(ctx)
	if err != nil {
		t.Fatalf("LoadCredentials failed: %v", err)
	}
	if identity != nil || token != "" {
		t.Errorf("expected cleared store, got %q / %q", identity, token)
	}
}
