package app

import (
	"encoding/json"
	"sync"

	"github.com/arkavale/gearforge/internal/fitting/store"
)

// wsPeer serializes frame writes to one websocket connection.
type wsPeer struct {
	mu      sync.Mutex
	encoder *json.Encoder
}

func newWSPeer(encoder *json.Encoder) *wsPeer {
	return &wsPeer{encoder: encoder}
}

func (p *wsPeer) writeEvent(event store.ProgressEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.encoder.Encode(event)
}

// progressHub fans fitting progress events out to websocket subscribers.
type progressHub struct {
	mu          sync.Mutex
	subscribers map[*wsPeer]struct{}
}

func newProgressHub() *progressHub {
	return &progressHub{subscribers: make(map[*wsPeer]struct{})}
}

func (h *progressHub) subscribe(peer *wsPeer) {
	h.mu.Lock()
	h.subscribers[peer] = struct{}{}
	h.mu.Unlock()
}

func (h *progressHub) unsubscribe(peer *wsPeer) {
	h.mu.Lock()
	delete(h.subscribers, peer)
	h.mu.Unlock()
}

// broadcast delivers one event to every subscriber. Write failures are
// ignored; a dead peer is dropped when its read loop ends.
func (h *progressHub) broadcast(event store.ProgressEvent) {
	h.mu.Lock()
	peers := make([]*wsPeer, 0, len(h.subscribers))
	for peer := range h.subscribers {
		peers = append(peers, peer)
	}
	h.mu.Unlock()

	for _, peer := range peers {
		_ = peer.writeEvent(event)
	}
}

func (h *progressHub) subscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}
