package alerts

import "time"

// Task type constants
const (
	TaskPermintaanMasuk     = "email:permintaan_masuk"
	TaskPermintaanDisetujui = "email:permintaan_disetujui"
	TaskPermintaanDitolak   = "email:permintaan_ditolak"
	TaskTransaksiSelesai    = "email:transaksi_selesai"
)

// Common envelope for email-like notifications
type EmailEnvelope struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// TransaksiNotifPayload carries one lifecycle notification.
type TransaksiNotifPayload struct {
	TransaksiID string        `json:"transaksi_id"`
	NamaBarang  string        `json:"nama_barang"`
	Tipe        string        `json:"tipe"`
	Email       string        `json:"email"`
	Envelope    EmailEnvelope `json:"envelope"`
	SentAt      time.Time     `json:"sent_at"`
}
