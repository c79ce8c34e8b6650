//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/zoobzio/tweak"
)

func setupPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("failed to create pool: %v", err)
	}
	t.Cleanup(pool.Close)

	if _, err := pool.Exec(ctx, Schema); err != nil {
		t.Fatalf("failed to setup schema: %v", err)
	}
	return pool
}

func TestOpen_MissingRowIsEmpty(t *testing.T) {
	pool := setupPostgres(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s, err := Open(ctx, pool, "scene", tweak.JSONCodec{})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if keys := s.Keys(); len(keys) != 0 {
		t.Errorf("expected empty document, got keys %v", keys)
	}
}

func TestStore_SetUpsertsRow(t *testing.T) {
	pool := setupPostgres(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s, err := Open(ctx, pool, "scene", tweak.JSONCodec{})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := s.Set(ctx, "speed", 1.0); err != nil {
		t.Fatalf("first Set failed: %v", err)
	}
	if err := s.Set(ctx, "speed", 2.0); err != nil {
		t.Fatalf("second Set failed: %v", err)
	}

	reopened, err := Open(ctx, pool, "scene", tweak.JSONCodec{})
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if v, _ := reopened.Get("speed"); v != 2.0 {
		t.Errorf("expected 2, got %v", v)
	}
}

func TestWatcher_EmitsNotifiedChanges(t *testing.T) {
	pool := setupPostgres(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := pool.Exec(ctx, "INSERT INTO tweak_params (key, value) VALUES ($1, $2)", "scene", []byte(`{"speed": 1}`)); err != nil {
		t.Fatalf("failed to insert row: %v", err)
	}

	ch, err := New(pool, "scene").Watch(ctx)
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

	// A row with another key must not be emitted.
	if _, err := pool.Exec(ctx, "INSERT INTO tweak_params (key, value) VALUES ($1, $2)", "other", []byte(`{}`)); err != nil {
		t.Fatalf("failed to insert other row: %v", err)
	}
	if _, err := pool.Exec(ctx, "UPDATE tweak_params SET value = $2 WHERE key = $1", "scene", []byte(`{"speed": 2}`)); err != nil {
		t.Fatalf("failed to update row: %v", err)
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

func TestWatcher_ClosesWhenConnectionLost(t *testing.T) {
	pool := setupPostgres(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := pool.Exec(ctx, "INSERT INTO tweak_params (key, value) VALUES ($1, $2)", "scene", []byte(`{"speed": 1}`)); err != nil {
		t.Fatalf("failed to insert row: %v", err)
	}

	ch, err := New(pool, "scene").Watch(ctx)
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	select {
	case <-ch:
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for initial value")
	}

	if _, err := pool.Exec(ctx, `SELECT pg_terminate_backend(pid) FROM pg_stat_activity
		WHERE pid <> pg_backend_pid() AND query LIKE 'LISTEN%'`); err != nil {
		t.Fatalf("failed to terminate listener: %v", err)
	}

	deadline := time.After(10 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				if ctx.Err() != nil {
					t.Fatal("expected watch to end before its context")
				}
				return
			}
		case <-deadline:
			t.Fatal("watch kept running after its connection was lost")
		}
	}
}
