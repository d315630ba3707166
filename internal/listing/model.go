package listing

import "time"

// Kategori values accepted for posts. KategoriSemua is the filter sentinel.
const (
	KategoriSemua        = "Semua"
	KategoriBuku         = "Buku"
	KategoriPerlengkapan = "Perlengkapan"
	KategoriElektronik   = "Elektronik"
	KategoriAlat         = "Alat"
)

// Status holds the offer kind of a post.
const (
	StatusPinjam = "Pinjam"
	StatusTukar  = "Tukar"
	StatusDonasi = "Donasi"
)

// Barang represents an item offered by a user.
type Barang struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Nama      string    `json:"nama"`
	Kategori  string    `json:"kategori"`
	Status    string    `json:"status"`
	Donatur   string    `json:"donatur"`
	Reputasi  int       `json:"reputasi"`
	Deskripsi *string   `json:"deskripsi,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func validKategori(k string) bool {
	switch k {
	case KategoriBuku, KategoriPerlengkapan, KategoriElektronik, KategoriAlat:
		return true
	}
	return false
}

func validStatus(s string) bool {
	switch s {
	case StatusPinjam, StatusTukar, StatusDonasi:
		return true
	}
	return false
}

// FilterByKategori keeps items of the given kategori, preserving relative order.
// KategoriSemua (and the empty string) return the input unchanged.
func FilterByKategori(items []Barang, kategori string) []Barang {
	if kategori == "" || kategori == KategoriSemua {
		return items
	}
	out := make([]Barang, 0, len(items))
	for _, b := range items {
		if b.Kategori == kategori {
			out = append(out, b)
		}
	}
	return out
}
