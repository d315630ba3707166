package listing

import "sync"

// Change event types, matching what subscribers receive on the wire.
const (
	EventInsert = "INSERT"
	EventUpdate = "UPDATE"
	EventDelete = "DELETE"
)

// Event is one change to the posts collection. Seq is assigned by the feed
// and is strictly increasing.
type Event struct {
	Type string `json:"type"`
	Seq  uint64 `json:"seq"`
	Row  Barang `json:"row"`
}

// View is a replicated in-memory copy of the posts collection, newest first.
// It converges under out-of-order delivery: events at or below the snapshot
// watermark are discarded, an insert for a known id is applied once, an
// update or delete for an unknown id is a no-op.
type View struct {
	mu    sync.RWMutex
	items []Barang
	seq   uint64
}

func NewView() *View {
	return &View{}
}

// LoadSnapshot replaces the view contents. Rows are expected newest first.
// The watermark guards against events that predate the snapshot.
func (v *View) LoadSnapshot(rows []Barang, seq uint64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.items = make([]Barang, len(rows))
	copy(v.items, rows)
	v.seq = seq
}

// Apply merges one event into the view. Returns false when the event was
// stale or did not change anything.
func (v *View) Apply(ev Event) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if ev.Seq != 0 && ev.Seq <= v.seq {
		return false
	}
	if ev.Seq != 0 {
		v.seq = ev.Seq
	}

	switch ev.Type {
	case EventInsert:
		if v.indexOf(ev.Row.ID) >= 0 {
			return false
		}
		v.items = append([]Barang{ev.Row}, v.items...)
		return true
	case EventUpdate:
		i := v.indexOf(ev.Row.ID)
		if i < 0 {
			return false
		}
		v.items[i] = ev.Row
		return true
	case EventDelete:
		i := v.indexOf(ev.Row.ID)
		if i < 0 {
			return false
		}
		v.items = append(v.items[:i], v.items[i+1:]...)
		return true
	}
	return false
}

// Snapshot returns a copy of the current items and the watermark.
func (v *View) Snapshot() ([]Barang, uint64) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]Barang, len(v.items))
	copy(out, v.items)
	return out, v.seq
}

func (v *View) indexOf(id string) int {
	for i := range v.items {
		if v.items[i].ID == id {
			return i
		}
	}
	return -1
}
