package transaction

import "time"

// Transaction statuses. Menunggu is initial; Ditolak, Dibatalkan and Selesai
// are terminal.
const (
	StatusMenunggu   = "Menunggu"
	StatusDisetujui  = "Disetujui"
	StatusDitolak    = "Ditolak"
	StatusDibatalkan = "Dibatalkan"
	StatusSelesai    = "Selesai"
)

// Transaction kinds, copied from the listing's offer kind at creation.
const (
	TipePinjam = "Pinjam"
	TipeTukar  = "Tukar"
	TipeDonasi = "Donasi"
)

// Transaksi is a single request against a post. NamaBarang is a snapshot so
// history survives listing edits and deletion.
type Transaksi struct {
	ID         string    `json:"id"`
	PostID     string    `json:"post_id"`
	PemilikID  string    `json:"pemilik_id"`
	PeminjamID string    `json:"peminjam_id"`
	Tipe       string    `json:"tipe"`
	Status     string    `json:"status"`
	NamaBarang string    `json:"nama_barang"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// DeriveTipe maps a post's offer kind to the transaction kind.
func DeriveTipe(postStatus string) string {
	switch postStatus {
	case TipeTukar:
		return TipeTukar
	case TipeDonasi:
		return TipeDonasi
	default:
		return TipePinjam
	}
}
