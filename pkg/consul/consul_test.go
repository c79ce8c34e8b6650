//go:build integration

package consul

import (
	"context"
	"testing"
	"time"

	"github.com/hashicorp/consul/api"
	"github.com/testcontainers/testcontainers-go"
	tcconsul "github.com/testcontainers/testcontainers-go/modules/consul"
	"github.com/zoobzio/tweak"
)

func setupConsul(t *testing.T) *api.Client {
	t.Helper()
	ctx := context.Background()

	container, err := tcconsul.Run(ctx, "hashicorp/consul:1.15")
	if err != nil {
		t.Fatalf("failed to start consul container: %v", err)
	}
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	endpoint, err := container.ApiEndpoint(ctx)
	if err != nil {
		t.Fatalf("failed to get endpoint: %v", err)
	}

	client, err := api.NewClient(&api.Config{Address: endpoint})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return client
}

func TestWatcher_EmitsInitialValueAndChanges(t *testing.T) {
	client := setupConsul(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := client.KV().Put(&api.KVPair{Key: "params/scene", Value: []byte(`{"speed": 1}`)}, nil); err != nil {
		t.Fatalf("failed to put initial value: %v", err)
	}

	ch, err := New(client, "params/scene", WithWaitTime(2*time.Second)).Watch(ctx)
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

	if _, err := client.KV().Put(&api.KVPair{Key: "params/scene", Value: []byte(`{"speed": 2}`)}, nil); err != nil {
		t.Fatalf("failed to update value: %v", err)
	}

	select {
	case data := <-ch:
		if string(data) != `{"speed": 2}` {
			t.Errorf("unexpected updated value %q", data)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("timeout waiting for change")
	}
}

func TestStore_TargetWritesEntry(t *testing.T) {
	client := setupConsul(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s, err := Open(ctx, client, "params/scene", tweak.JSONCodec{})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	s.Target("speed").Write(4.5)

	pair, _, err := client.KV().Get("params/scene", nil)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if pair == nil || string(pair.Value) != "{\n  \"speed\": 4.5\n}" {
		t.Errorf("unexpected stored entry %v", pair)
	}
}
