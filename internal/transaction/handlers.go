package transaction

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/lmirsal/binershare/internal/alerts"
	"github.com/lmirsal/binershare/internal/apperr"
	"github.com/lmirsal/binershare/internal/db"
	"github.com/lmirsal/binershare/internal/reputation"
)

// =========================
// CreateRequest - requester acts on a post
// =========================
func CreateRequest(c echo.Context) error {
	peminjamID, ok := c.Get("user_id").(string)
	if !ok || peminjamID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req struct {
		PostID string `json:"post_id"`
	}
	if err := c.Bind(&req); err != nil || req.PostID == "" {
		return apperr.JSON(c, apperr.Clone(apperr.ErrValidation, "post_id wajib diisi"))
	}

	ctx := context.Background()

	var pemilikID, namaBarang, postStatus string
	err := db.Conn.QueryRow(ctx,
		`SELECT owner_id, nama, status FROM posts WHERE id = $1`, req.PostID,
	).Scan(&pemilikID, &namaBarang, &postStatus)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.JSON(c, apperr.Clone(apperr.ErrNotFound, "barang tidak ditemukan"))
		}
		return apperr.JSON(c, err)
	}

	if pemilikID == peminjamID {
		return apperr.JSON(c, apperr.Clone(apperr.ErrValidation, "tidak bisa mengajukan permintaan untuk barangmu sendiri"))
	}

	transaksiID := uuid.New().String()
	now := time.Now()
	tipe := DeriveTipe(postStatus)

	_, err = db.Conn.Exec(ctx,
		`INSERT INTO transactions (id, post_id, pemilik_id, peminjam_id, tipe, status, nama_barang, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, 'Menunggu', $6, $7, $7)`,
		transaksiID, req.PostID, pemilikID, peminjamID, tipe, namaBarang, now,
	)
	if err != nil {
		return apperr.JSON(c, apperr.Wrap(err, apperr.ErrPersistence.Code, apperr.ErrPersistence.Status, "gagal membuat permintaan"))
	}

	// Notify owner of the new request (best-effort)
	if email := lookupEmail(ctx, pemilikID); email != "" {
		_ = alerts.EnqueuePermintaanMasuk(transaksiID, namaBarang, tipe, email)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"transaksi_id": transaksiID,
		"message":      "Permintaan berhasil dikirim. Menunggu persetujuan pemilik.",
	})
}

// =========================
// Lifecycle actions
// =========================

// Setujui - owner approves a pending request
func Setujui(c echo.Context) error {
	return applyTransition(c, ActionSetujui)
}

// Tolak - owner rejects a pending request
func Tolak(c echo.Context) error {
	return applyTransition(c, ActionTolak)
}

// Batalkan - requester or owner cancels a pending request
func Batalkan(c echo.Context) error {
	return applyTransition(c, ActionBatalkan)
}

// Selesaikan - either party marks an approved transaction complete. The
// status change and the reputation entry commit together.
func Selesaikan(c echo.Context) error {
	return applyTransition(c, ActionSelesaikan)
}

func applyTransition(c echo.Context, action Action) error {
	uid, ok := c.Get("user_id").(string)
	if !ok || uid == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	transaksiID := c.Param("id")
	if transaksiID == "" {
		return apperr.JSON(c, apperr.Clone(apperr.ErrValidation, "missing transaksi id"))
	}

	ctx := context.Background()

	var t Transaksi
	err := db.Conn.QueryRow(ctx,
		`SELECT id, post_id, pemilik_id, peminjam_id, tipe, status, nama_barang FROM transactions WHERE id = $1`,
		transaksiID,
	).Scan(&t.ID, &t.PostID, &t.PemilikID, &t.PeminjamID, &t.Tipe, &t.Status, &t.NamaBarang)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.JSON(c, apperr.Clone(apperr.ErrNotFound, "transaksi tidak ditemukan"))
		}
		return apperr.JSON(c, err)
	}

	isOwner := uid == t.PemilikID
	isRequester := uid == t.PeminjamID
	if !isOwner && !isRequester {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "bukan peserta transaksi ini"})
	}
	if !AllowedActor(action, isOwner, isRequester) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "aksi ini bukan untukmu"})
	}

	next, err := NextStatus(t.Status, action)
	if err != nil {
		return apperr.JSON(c, err)
	}

	if action == ActionSelesaikan {
		if err := complete(ctx, &t, uid); err != nil {
			return apperr.JSON(c, err)
		}
	} else {
		// Status-conditional update: a concurrent transition makes this a
		// no-op and the caller gets InvalidTransition, never a partial write.
		res, err := db.Conn.Exec(ctx,
			`UPDATE transactions SET status = $3, updated_at = NOW() WHERE id = $1 AND status = $2`,
			t.ID, t.Status, next,
		)
		if err != nil {
			return apperr.JSON(c, err)
		}
		if res.RowsAffected() == 0 {
			return apperr.JSON(c, apperr.ErrInvalidTransition)
		}
	}

	notifyTransition(ctx, &t, action, uid)

	return c.JSON(http.StatusOK, echo.Map{"status": next, "message": "status transaksi diperbarui"})
}

// complete flips Disetujui to Selesai and appends the fixed reputation entry
// from the completing actor to the counterparty in one database transaction.
func complete(ctx context.Context, t *Transaksi, uid string) error {
	counterpart := t.PemilikID
	if uid == t.PemilikID {
		counterpart = t.PeminjamID
	}

	tx, err := db.Conn.Begin(ctx)
	if err != nil {
		return apperr.Wrap(err, apperr.ErrPersistence.Code, apperr.ErrPersistence.Status, "transaction start failed")
	}
	defer tx.Rollback(ctx)

	res, err := tx.Exec(ctx,
		`UPDATE transactions SET status = 'Selesai', updated_at = NOW() WHERE id = $1 AND status = 'Disetujui'`,
		t.ID,
	)
	if err != nil {
		return apperr.Wrap(err, apperr.ErrPersistence.Code, apperr.ErrPersistence.Status, "gagal memperbarui status")
	}
	if res.RowsAffected() == 0 {
		return apperr.ErrInvalidTransition
	}

	catatan := reputation.CatatanSelesai
	if err := reputation.Append(ctx, tx, reputation.ReputasiLog{
		TransaksiID:   t.ID,
		FromProfileID: uid,
		ToProfileID:   counterpart,
		Skor:          reputation.SkorSelesai,
		Catatan:       &catatan,
	}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return apperr.Wrap(err, apperr.ErrPersistence.Code, apperr.ErrPersistence.Status, "commit failed")
	}
	return nil
}

func notifyTransition(ctx context.Context, t *Transaksi, action Action, uid string) {
	switch action {
	case ActionSetujui:
		if email := lookupEmail(ctx, t.PeminjamID); email != "" {
			_ = alerts.EnqueuePermintaanDisetujui(t.ID, t.NamaBarang, t.Tipe, email)
		}
	case ActionTolak:
		if email := lookupEmail(ctx, t.PeminjamID); email != "" {
			_ = alerts.EnqueuePermintaanDitolak(t.ID, t.NamaBarang, t.Tipe, email)
		}
	case ActionSelesaikan:
		counterpart := t.PemilikID
		if uid == t.PemilikID {
			counterpart = t.PeminjamID
		}
		if email := lookupEmail(ctx, counterpart); email != "" {
			_ = alerts.EnqueueTransaksiSelesai(t.ID, t.NamaBarang, t.Tipe, email)
		}
	}
}

func lookupEmail(ctx context.Context, profileID string) string {
	var email string
	_ = db.Conn.QueryRow(ctx, `SELECT email FROM profiles WHERE id = $1`, profileID).Scan(&email)
	return email
}

// =========================
// GetUserTransaksi - all transactions for the caller, newest first
// =========================
func GetUserTransaksi(c echo.Context) error {
	uid, ok := c.Get("user_id").(string)
	if !ok || uid == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	rows, err := db.Conn.Query(context.Background(),
		`SELECT id, post_id, pemilik_id, peminjam_id, tipe, status, nama_barang, created_at, updated_at
		 FROM transactions WHERE peminjam_id = $1 OR pemilik_id = $1 ORDER BY created_at DESC`, uid)
	if err != nil {
		return apperr.JSON(c, err)
	}
	defer rows.Close()

	var items []Transaksi
	for rows.Next() {
		var t Transaksi
		if err := rows.Scan(&t.ID, &t.PostID, &t.PemilikID, &t.PeminjamID, &t.Tipe, &t.Status, &t.NamaBarang, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return apperr.JSON(c, err)
		}
		items = append(items, t)
	}

	return c.JSON(http.StatusOK, echo.Map{"transaksi": items})
}

// =========================
// RiwayatDonasiDiterima - Donasi transactions received by the caller
// =========================
func RiwayatDonasiDiterima(c echo.Context) error {
	uid, ok := c.Get("user_id").(string)
	if !ok || uid == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	statusFilter := c.QueryParam("status")

	query := `SELECT id, post_id, pemilik_id, peminjam_id, tipe, status, nama_barang, created_at, updated_at
	          FROM transactions WHERE peminjam_id = $1 AND tipe = 'Donasi'`
	args := []any{uid}
	if statusFilter != "" && statusFilter != "Semua" {
		query += ` AND status = $2`
		args = append(args, statusFilter)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := db.Conn.Query(context.Background(), query, args...)
	if err != nil {
		return apperr.JSON(c, err)
	}
	defer rows.Close()

	var items []Transaksi
	for rows.Next() {
		var t Transaksi
		if err := rows.Scan(&t.ID, &t.PostID, &t.PemilikID, &t.PeminjamID, &t.Tipe, &t.Status, &t.NamaBarang, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return apperr.JSON(c, err)
		}
		items = append(items, t)
	}

	return c.JSON(http.StatusOK, echo.Map{"donasi_diterima": items})
}
