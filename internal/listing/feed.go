package listing

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/lmirsal/binershare/internal/db"
)

// Feed owns the live view of the posts collection and pushes change events
// to websocket subscribers. Mutating handlers publish through it so the view
// and the stream stay in step with what was persisted.
type Feed struct {
	mu   sync.Mutex
	seq  uint64
	view *View
	hub  *hub
	log  *zap.Logger
}

// Live is the process-wide feed, initialized from main.
var Live = &Feed{view: NewView(), hub: newHub(), log: zap.NewNop()}

// InitFeed loads the current posts collection into the live view.
func InitFeed(log *zap.Logger) error {
	Live.log = log

	rows, err := db.Conn.Query(context.Background(),
		`SELECT id, owner_id, nama, kategori, status, donatur, reputasi, deskripsi, created_at
		 FROM posts ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return err
	}
	defer rows.Close()

	var items []Barang
	for rows.Next() {
		var b Barang
		if err := rows.Scan(&b.ID, &b.OwnerID, &b.Nama, &b.Kategori, &b.Status, &b.Donatur, &b.Reputasi, &b.Deskripsi, &b.CreatedAt); err != nil {
			return err
		}
		items = append(items, b)
	}

	Live.mu.Lock()
	defer Live.mu.Unlock()
	Live.view.LoadSnapshot(items, Live.seq)
	log.Info("listing feed initialized", zap.Int("posts", len(items)))
	return nil
}

// Publish stamps the event with the next sequence number, merges it into the
// live view and broadcasts it to subscribers. Stamp, merge and broadcast stay
// under one lock so events reach the view in sequence order; otherwise a
// lower-seq insert applied after a higher one is discarded by the watermark
// and the post never appears.
func (f *Feed) Publish(eventType string, row Barang) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.seq++
	ev := Event{Type: eventType, Seq: f.seq, Row: row}
	f.view.Apply(ev)
	f.hub.broadcast(ev)
}

// Snapshot returns the current live view, newest first.
func (f *Feed) Snapshot() ([]Barang, uint64) {
	return f.view.Snapshot()
}
