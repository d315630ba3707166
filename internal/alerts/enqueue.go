package alerts

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

func enqueueTransaksi(taskType, transaksiID, namaBarang, tipe, email, subject, body string) error {
	if client == nil {
		return fmt.Errorf("alerts not initialized")
	}
	payload := TransaksiNotifPayload{
		TransaksiID: transaksiID,
		NamaBarang:  namaBarang,
		Tipe:        tipe,
		Email:       email,
		Envelope:    EmailEnvelope{To: email, Subject: subject, Body: body},
		SentAt:      time.Now(),
	}
	b, _ := json.Marshal(payload)
	task := asynq.NewTask(taskType, b)
	_, err := client.Enqueue(task, asynq.Queue("emails"))
	return err
}

// EnqueuePermintaanMasuk notifies the owner of a new request against their post.
func EnqueuePermintaanMasuk(transaksiID, namaBarang, tipe, ownerEmail string) error {
	return enqueueTransaksi(TaskPermintaanMasuk, transaksiID, namaBarang, tipe, ownerEmail,
		"Permintaan baru untuk barangmu",
		fmt.Sprintf("Ada permintaan %s baru untuk \"%s\". Buka Konfirmasi Transaksi untuk menyetujui atau menolak.", tipe, namaBarang))
}

// EnqueuePermintaanDisetujui notifies the requester that the owner approved.
func EnqueuePermintaanDisetujui(transaksiID, namaBarang, tipe, requesterEmail string) error {
	return enqueueTransaksi(TaskPermintaanDisetujui, transaksiID, namaBarang, tipe, requesterEmail,
		"Permintaanmu disetujui",
		fmt.Sprintf("Permintaan %s untuk \"%s\" disetujui oleh pemilik.", tipe, namaBarang))
}

// EnqueuePermintaanDitolak notifies the requester that the owner rejected.
func EnqueuePermintaanDitolak(transaksiID, namaBarang, tipe, requesterEmail string) error {
	return enqueueTransaksi(TaskPermintaanDitolak, transaksiID, namaBarang, tipe, requesterEmail,
		"Permintaanmu ditolak",
		fmt.Sprintf("Permintaan %s untuk \"%s\" ditolak oleh pemilik.", tipe, namaBarang))
}

// EnqueueTransaksiSelesai notifies the counterparty that the transaction completed.
func EnqueueTransaksiSelesai(transaksiID, namaBarang, tipe, email string) error {
	return enqueueTransaksi(TaskTransaksiSelesai, transaksiID, namaBarang, tipe, email,
		"Transaksi selesai",
		fmt.Sprintf("Transaksi %s untuk \"%s\" telah selesai. Terima kasih sudah berbagi!", tipe, namaBarang))
}
