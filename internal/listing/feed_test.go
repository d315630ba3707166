package listing

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestFeed() *Feed {
	return &Feed{view: NewView(), hub: newHub(), log: zap.NewNop()}
}

func TestPublishAppliesInSequenceOrder(t *testing.T) {
	f := newTestFeed()

	f.Publish(EventInsert, barang("a", "Kalkulus", KategoriBuku))
	f.Publish(EventInsert, barang("b", "Jas Lab", KategoriPerlengkapan))

	items, seq := f.Snapshot()
	require.Equal(t, []string{"b", "a"}, ids(items))
	require.Equal(t, uint64(2), seq)
}

func TestPublishConcurrentInsertsAllAppear(t *testing.T) {
	f := newTestFeed()

	const n = 100
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			f.Publish(EventInsert, barang(fmt.Sprintf("id-%d", i), "Barang", KategoriAlat))
		}(i)
	}
	wg.Wait()

	// Every insert must land exactly once; none may be lost to a stale
	// watermark from a racing publish.
	items, seq := f.Snapshot()
	require.Len(t, items, n)
	require.Equal(t, uint64(n), seq)

	seen := make(map[string]bool, n)
	for _, b := range items {
		require.False(t, seen[b.ID], "duplicate id %s", b.ID)
		seen[b.ID] = true
	}
}

func TestPublishUpdateAndDeleteKeepViewConverged(t *testing.T) {
	f := newTestFeed()

	f.Publish(EventInsert, barang("a", "Kalkulus", KategoriBuku))
	f.Publish(EventInsert, barang("b", "Jas Lab", KategoriPerlengkapan))
	f.Publish(EventUpdate, barang("a", "Kalkulus Lanjut", KategoriBuku))
	f.Publish(EventDelete, Barang{ID: "b"})

	items, seq := f.Snapshot()
	require.Equal(t, []string{"a"}, ids(items))
	require.Equal(t, "Kalkulus Lanjut", items[0].Nama)
	require.Equal(t, uint64(4), seq)
}
