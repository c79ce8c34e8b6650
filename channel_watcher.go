package tweak

import "context"

// ChannelWatcher is a Watcher over a channel of documents the host already
// produces.
type ChannelWatcher struct {
	ch   <-chan []byte
	sync bool
}

// NewChannelWatcher creates a ChannelWatcher that relays ch until ch closes
// or the watch context ends.
func NewChannelWatcher(ch <-chan []byte) *ChannelWatcher {
	return &ChannelWatcher{ch: ch}
}

// NewSyncChannelWatcher creates a ChannelWatcher whose Watch hands out ch
// itself. A follower then applies exactly the documents sent before ch is
// closed, regardless of its context.
func NewSyncChannelWatcher(ch <-chan []byte) *ChannelWatcher {
	return &ChannelWatcher{ch: ch, sync: true}
}

func (w *ChannelWatcher) Watch(ctx context.Context) (<-chan []byte, error) {
	if w.sync {
		return w.ch, nil
	}
	out := make(chan []byte)
	go w.relay(ctx, out)
	return out, nil
}

func (w *ChannelWatcher) relay(ctx context.Context, out chan<- []byte) {
	defer close(out)
	for {
		var (
			data []byte
			ok   bool
		)
		select {
		case <-ctx.Done():
			return
		case data, ok = <-w.ch:
		}
		if !ok {
			return
		}
		select {
		case out <- data:
		case <-ctx.Done():
			return
		}
	}
}

var _ Watcher = (*ChannelWatcher)(nil)
