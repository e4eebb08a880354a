package cluster

import "sync/atomic"

// Holder publishes ClusterMap snapshots to packet tasks. There is a
// single writer (the configuration update path) and many readers; a
// reader loads the pointer once per packet and routes the whole packet
// against that snapshot. No lock is ever held across packet routing.
type Holder struct {
	ptr atomic.Pointer[ClusterMap]
}

// NewHolder returns a holder primed with an empty snapshot so readers
// never observe nil.
func NewHolder() *Holder {
	h := &Holder{}
	h.ptr.Store(New())
	return h
}

// Load returns the current snapshot. The caller must treat it as
// read-only and must not mix it with a later snapshot within a single
// routing decision.
func (h *Holder) Load() *ClusterMap {
	return h.ptr.Load()
}

// Store publishes a fully built snapshot. The map must not be mutated
// after this call.
func (h *Holder) Store(m *ClusterMap) {
	h.ptr.Store(m)
}

// Modify applies f to a copy of the current snapshot, rebuilds the
// token indices and publishes the result. Packets already in flight
// keep routing against the snapshot they loaded.
func (h *Holder) Modify(f func(*ClusterMap)) {
	next := h.Load().clone()
	f(next)
	next.BuildTokenMaps()
	h.Store(next)
}
