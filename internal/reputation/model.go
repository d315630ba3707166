package reputation

import "time"

// Skor bounds and the fixed entry written when a transaction completes.
const (
	SkorMin = 0
	SkorMax = 100

	SkorSelesai    = 95
	CatatanSelesai = "Transaksi selesai dengan baik."

	// Shown before a user has received any rating.
	DefaultSkor   = 90
	LabelBelumAda = "Belum ada penilaian"
)

// ReputasiLog is one peer-submitted trust score tied to a completed transaction.
type ReputasiLog struct {
	ID            string    `json:"id"`
	TransaksiID   string    `json:"transaksi_id"`
	FromProfileID string    `json:"from_profile_id"`
	ToProfileID   string    `json:"to_profile_id"`
	Skor          int       `json:"skor"`
	Catatan       *string   `json:"catatan,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Ringkasan is the derived aggregate for one user.
type Ringkasan struct {
	Rata2 int    `json:"rata2"`
	Total int    `json:"total"`
	Label string `json:"label"`
}
