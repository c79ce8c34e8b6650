//go:build integration

package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/zoobzio/tweak"
)

func setupRedis(t *testing.T) *redis.Client {
	t.Helper()
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	if err != nil {
		t.Fatalf("failed to start redis container: %v", err)
	}
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	endpoint, err := container.Endpoint(ctx, "")
	if err != nil {
		t.Fatalf("failed to get endpoint: %v", err)
	}

	client := redis.NewClient(&redis.Options{Addr: endpoint})
	t.Cleanup(func() { client.Close() })

	if err := client.ConfigSet(ctx, "notify-keyspace-events", "KEA").Err(); err != nil {
		t.Fatalf("failed to enable keyspace notifications: %v", err)
	}
	return client
}

func TestWatcher_EmitsInitialValueAndChanges(t *testing.T) {
	client := setupRedis(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.Set(ctx, "params", `{"speed": 1}`, 0).Err(); err != nil {
		t.Fatalf("failed to set initial value: %v", err)
	}

	ch, err := New(client, "params").Watch(ctx)
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	select {
	case data := <-ch:
		if string(data) != `{"speed": 1}` {
			t.Errorf("unexpected initial value %q", data)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for initial value")
	}

	if err := client.Set(ctx, "params", `{"speed": 2}`, 0).Err(); err != nil {
		t.Fatalf("failed to update value: %v", err)
	}

	select {
	case data := <-ch:
		if string(data) != `{"speed": 2}` {
			t.Errorf("unexpected updated value %q", data)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for change")
	}
}

func TestStore_TargetWritesKey(t *testing.T) {
	client := setupRedis(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s, err := Open(ctx, client, "params", tweak.JSONCodec{})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	s.Target("speed").Write(3.0)

	reopened, err := Open(ctx, client, "params", tweak.JSONCodec{})
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if v, _ := reopened.Get("speed"); v != 3.0 {
		t.Errorf("expected 3, got %v", v)
	}
}

func TestStore_FollowerRefreshesBinding(t *testing.T) {
	client := setupRedis(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s, err := Open(ctx, client, "params", tweak.JSONCodec{})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	value := tweak.NewValue(0.0)
	binding := tweak.NewInputBinding(s.Target("speed"), value,
		func(v any) float64 { f, _ := v.(float64); return f },
		func(v float64) float64 { return v },
	)
	defer binding.Dispose()

	go s.Follower(binding).Run(ctx) //nolint:errcheck // ends with the context

	time.Sleep(100 * time.Millisecond)
	if err := client.Set(ctx, "params", `{"speed": 7}`, 0).Err(); err != nil {
		t.Fatalf("failed to update value: %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for value.RawValue() != 7 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if value.RawValue() != 7 {
		t.Errorf("expected refreshed 7, got %v", value.RawValue())
	}
}

func TestWatcher_SkipsIdenticalWrites(t *testing.T) {
	client := setupRedis(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.Set(ctx, "params", `{"speed": 1}`, 0).Err(); err != nil {
		t.Fatalf("failed to set initial value: %v", err)
	}
	ch, err := New(client, "params").Watch(ctx)
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	select {
	case <-ch:
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for initial value")
	}

	for _, doc := range []string{`{"speed": 1}`, `{"speed": 1}`, `{"speed": 3}`} {
		if err := client.Set(ctx, "params", doc, 0).Err(); err != nil {
			t.Fatalf("failed to set value: %v", err)
		}
	}

	select {
	case data := <-ch:
		if string(data) != `{"speed": 3}` {
			t.Errorf("expected identical writes skipped, got %q", data)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for change")
	}
}
