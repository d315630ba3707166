package listing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func barang(id, nama, kategori string) Barang {
	return Barang{ID: id, Nama: nama, Kategori: kategori}
}

func ids(items []Barang) []string {
	out := make([]string, len(items))
	for i, b := range items {
		out[i] = b.ID
	}
	return out
}

func TestViewInsertPrependsOnce(t *testing.T) {
	v := NewView()
	v.LoadSnapshot([]Barang{barang("b", "Jas Lab", "Perlengkapan"), barang("a", "Kalkulus", "Buku")}, 0)

	require.True(t, v.Apply(Event{Type: EventInsert, Seq: 1, Row: barang("c", "Kalkulator", "Elektronik")}))
	items, _ := v.Snapshot()
	require.Equal(t, []string{"c", "b", "a"}, ids(items))

	// Redelivery of the same insert is a no-op.
	require.False(t, v.Apply(Event{Type: EventInsert, Seq: 2, Row: barang("c", "Kalkulator", "Elektronik")}))
	items, _ = v.Snapshot()
	require.Equal(t, []string{"c", "b", "a"}, ids(items))
}

func TestViewUpdateReplacesInPlace(t *testing.T) {
	v := NewView()
	v.LoadSnapshot([]Barang{barang("c", "Kalkulator", "Elektronik"), barang("b", "Jas Lab", "Perlengkapan"), barang("a", "Kalkulus", "Buku")}, 0)

	updated := barang("b", "Jas Lab Ukuran M", "Perlengkapan")
	require.True(t, v.Apply(Event{Type: EventUpdate, Seq: 1, Row: updated}))

	items, _ := v.Snapshot()
	require.Equal(t, []string{"c", "b", "a"}, ids(items), "order must not change")
	require.Equal(t, "Jas Lab Ukuran M", items[1].Nama)
}

func TestViewUpdateForAbsentIDIsIgnored(t *testing.T) {
	v := NewView()
	v.LoadSnapshot([]Barang{barang("a", "Kalkulus", "Buku")}, 0)

	require.False(t, v.Apply(Event{Type: EventUpdate, Seq: 1, Row: barang("zz", "Hantu", "Alat")}))
	items, _ := v.Snapshot()
	require.Equal(t, []string{"a"}, ids(items))
}

func TestViewDeleteAbsentIsNoop(t *testing.T) {
	v := NewView()
	v.LoadSnapshot([]Barang{barang("a", "Kalkulus", "Buku")}, 0)

	require.False(t, v.Apply(Event{Type: EventDelete, Seq: 1, Row: barang("zz", "", "")}))
	items, _ := v.Snapshot()
	require.Equal(t, []string{"a"}, ids(items))

	require.True(t, v.Apply(Event{Type: EventDelete, Seq: 2, Row: barang("a", "", "")}))
	items, _ = v.Snapshot()
	require.Empty(t, items)
}

func TestViewDiscardsEventsBehindWatermark(t *testing.T) {
	v := NewView()
	v.LoadSnapshot([]Barang{barang("a", "Kalkulus", "Buku")}, 5)

	// An event that predates the snapshot must not be applied.
	require.False(t, v.Apply(Event{Type: EventInsert, Seq: 3, Row: barang("old", "Basi", "Buku")}))
	items, seq := v.Snapshot()
	require.Equal(t, []string{"a"}, ids(items))
	require.Equal(t, uint64(5), seq)

	require.True(t, v.Apply(Event{Type: EventInsert, Seq: 6, Row: barang("new", "Baru", "Buku")}))
	items, seq = v.Snapshot()
	require.Equal(t, []string{"new", "a"}, ids(items))
	require.Equal(t, uint64(6), seq)
}

func TestFilterByKategori(t *testing.T) {
	items := []Barang{
		barang("1", "Kalkulus", KategoriBuku),
		barang("2", "Jas Lab", KategoriPerlengkapan),
		barang("3", "Fisika Dasar", KategoriBuku),
		barang("4", "Multimeter", KategoriAlat),
	}

	tests := []struct {
		name     string
		kategori string
		want     []string
	}{
		{"Semua returns everything in order", KategoriSemua, []string{"1", "2", "3", "4"}},
		{"empty behaves like Semua", "", []string{"1", "2", "3", "4"}},
		{"Buku keeps relative order", KategoriBuku, []string{"1", "3"}},
		{"Elektronik matches nothing", KategoriElektronik, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterByKategori(items, tt.kategori)
			require.Equal(t, tt.want, append([]string{}, ids(got)...))
		})
	}
}
