// Package postgres keeps tweak parameter documents in a PostgreSQL table and
// follows them with LISTEN/NOTIFY.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zoobzio/capitan"
	"github.com/zoobzio/tweak"
)

// DefaultTable is the table holding documents unless WithTable is given.
const DefaultTable = "tweak_params"

// Schema creates the default table and a trigger notifying the channel
// tweak_params_changed with the key of every inserted or updated row.
const Schema = `
CREATE TABLE IF NOT EXISTS tweak_params (
	key   TEXT PRIMARY KEY,
	value BYTEA NOT NULL
);

CREATE OR REPLACE FUNCTION tweak_params_notify() RETURNS trigger AS $$
BEGIN
	PERFORM pg_notify('tweak_params_changed', NEW.key);
	RETURN NEW;
END;
$$ LANGUAGE plpgsql;

DROP TRIGGER IF EXISTS tweak_params_change ON tweak_params;
CREATE TRIGGER tweak_params_change
	AFTER INSERT OR UPDATE ON tweak_params
	FOR EACH ROW EXECUTE FUNCTION tweak_params_notify();
`

// DefaultChannel is the notification channel used by Schema.
const DefaultChannel = "tweak_params_changed"

// Watcher watches one row of the documents table. A trigger must notify the
// channel with the row's key on every change; see Schema.
type Watcher struct {
	pool    *pgxpool.Pool
	channel string
	key     string
	table   string
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithTable sets the documents table. Defaults to DefaultTable.
func WithTable(table string) Option {
	return func(w *Watcher) {
		w.table = table
	}
}

// WithChannel sets the notification channel. Defaults to DefaultChannel.
func WithChannel(channel string) Option {
	return func(w *Watcher) {
		w.channel = channel
	}
}

// New creates a Watcher for the row keyed key.
func New(pool *pgxpool.Pool, key string, opts ...Option) *Watcher {
	w := &Watcher{
		pool:    pool,
		channel: DefaultChannel,
		key:     key,
		table:   DefaultTable,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Watch listens on the channel, emitting the row's current value and its
// value after every notification carrying the key.
func (w *Watcher) Watch(ctx context.Context) (<-chan []byte, error) {
	conn, err := w.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{w.channel}.Sanitize()); err != nil {
		conn.Release()
		return nil, fmt.Errorf("listen %s: %w", w.channel, err)
	}

	out := make(chan []byte)
	go w.run(ctx, conn, out)
	return out, nil
}

// run forwards the row after every notification for the key. A failed
// connection ends the watch; a failed read skips the notification.
func (w *Watcher) run(ctx context.Context, conn *pgxpool.Conn, out chan<- []byte) {
	defer close(out)
	defer conn.Release()

	if !w.forward(ctx, out) {
		return
	}
	for {
		n, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			if ctx.Err() == nil {
				capitan.Emit(ctx, tweak.WatchStopped,
					tweak.KeyStore.Field(w.source()),
					tweak.KeyError.Field(err.Error()),
				)
			}
			return
		}
		if n.Payload != w.key {
			continue
		}
		if !w.forward(ctx, out) {
			return
		}
	}
}

// forward reads the row and sends it. It reports false once ctx is done.
func (w *Watcher) forward(ctx context.Context, out chan<- []byte) bool {
	value, err := w.fetch(ctx)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return true
	case err != nil:
		if ctx.Err() != nil {
			return false
		}
		capitan.Emit(ctx, tweak.WatchSkipped,
			tweak.KeyStore.Field(w.source()),
			tweak.KeyError.Field(err.Error()),
		)
		return true
	case value == nil:
		return true
	}
	select {
	case out <- value:
		return true
	case <-ctx.Done():
		return false
	}
}

func (w *Watcher) source() string {
	return "postgres:" + w.table + "/" + w.key
}

func (w *Watcher) fetch(ctx context.Context) ([]byte, error) {
	return fetch(ctx, w.pool, w.table, w.key)
}

func fetch(ctx context.Context, pool *pgxpool.Pool, table, key string) ([]byte, error) {
	var value []byte
	query := fmt.Sprintf("SELECT value FROM %s WHERE key = $1", pgx.Identifier{table}.Sanitize())
	if err := pool.QueryRow(ctx, query, key).Scan(&value); err != nil {
		return nil, err
	}
	return value, nil
}

// Sink upserts documents into the documents table.
type Sink struct {
	pool  *pgxpool.Pool
	table string
	key   string
}

func (s Sink) Save(ctx context.Context, data []byte) error {
	query := fmt.Sprintf(
		"INSERT INTO %s (key, value) VALUES ($1, $2) ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value",
		pgx.Identifier{s.table}.Sanitize(),
	)
	_, err := s.pool.Exec(ctx, query, s.key, data)
	return err
}

// Store is a tweak.Store kept in one row of the documents table.
type Store struct {
	*tweak.Store
	watcher *Watcher
}

// Open reads the document in the row keyed key. A missing row yields an
// empty document that is inserted on the first write.
func Open(ctx context.Context, pool *pgxpool.Pool, key string, codec tweak.Codec, opts ...Option) (*Store, error) {
	w := New(pool, key, opts...)
	s := &Store{
		Store:   tweak.NewStore("postgres:"+w.table+"/"+key, codec, Sink{pool: pool, table: w.table, key: key}),
		watcher: w,
	}
	data, err := fetch(ctx, pool, w.table, key)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("select %s: %w", key, err)
	}
	if err := s.Load(data); err != nil {
		return nil, err
	}
	return s, nil
}

// Follower returns a follower applying every notified change to the row.
func (s *Store) Follower(bindings ...tweak.Refresher) *tweak.Follower {
	return tweak.NewFollower(s.watcher, s.Load, bindings...)
}

var (
	_ tweak.Watcher = (*Watcher)(nil)
	_ tweak.Sink    = Sink{}
)
