package redis

import (
	"context"
	"testing"
	"time"
)

func TestIdempotencyStoreReturnsExistingResponse(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	if err := client.Set(ctx, store.prefix+"entry-create", `{"id":"ent-1"}`, time.Minute).Err(); err != nil {
		t.Fatalf("seed key: %v", err)
	}

	exists, resp, err := store.CheckAndSet(ctx, "entry-create", nil, time.Minute)
	if err != nil {
		t.Fatalf("CheckAndSet: %v", err)
	}
	if !exists {
		t.Fatal("expected key to exist")
	}
	if string(resp) != `{"id":"ent-1"}` {
		t.Fatalf("unexpected stored response: %s", resp)
	}
}

func TestIdempotencyStoreClaimsNewKey(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	exists, resp, err := store.CheckAndSet(ctx, "fresh", nil, time.Minute)
	if err != nil || exists || resp != nil {
		t.Fatalf("first claim should succeed: exists=%v resp=%v err=%v", exists, resp, err)
	}

	// The key is now locked with the in-flight marker.
	val, err := client.Get(ctx, store.prefix+"fresh").Result()
	if err != nil {
		t.Fatalf("read back claimed key: %v", err)
	}
	if val != processingMarker {
		t.Fatalf("expected %q marker, got %q", processingMarker, val)
	}
}

func TestIdempotencyStoreStoresResponseDirectly(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	exists, _, err := store.CheckAndSet(ctx, "direct", []byte("body"), time.Minute)
	if err != nil || exists {
		t.Fatalf("unexpected result: exists=%v err=%v", exists, err)
	}

	val, err := client.Get(ctx, store.prefix+"direct").Result()
	if err != nil || val != "body" {
		t.Fatalf("expected stored body, got val=%q err=%v", val, err)
	}
}

func TestIdempotencyStoreUpdate(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	if _, _, err := store.CheckAndSet(ctx, "done", nil, time.Minute); err != nil {
		t.Fatalf("claim: %v", err)
	}
	if err := store.Update(ctx, "done", []byte(`{"status":"PAID"}`), time.Minute); err != nil {
		t.Fatalf("update: %v", err)
	}

	val, err := client.Get(ctx, store.prefix+"done").Result()
	if err != nil || val != `{"status":"PAID"}` {
		t.Fatalf("expected updated response, got val=%q err=%v", val, err)
	}
}
