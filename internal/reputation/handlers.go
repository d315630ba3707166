package reputation

import (
	"context"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/lmirsal/binershare/internal/apperr"
	"github.com/lmirsal/binershare/internal/db"
)

// RiwayatReputasi lists the caller's received ratings, newest first, with the
// derived aggregate.
func RiwayatReputasi(c echo.Context) error {
	uid, ok := c.Get("user_id").(string)
	if !ok || uid == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx := context.Background()

	rows, err := db.Conn.Query(ctx,
		`SELECT id, transaksi_id, from_profile_id, to_profile_id, skor, catatan, created_at
		 FROM reputasi_logs WHERE to_profile_id = $1 ORDER BY created_at DESC`, uid)
	if err != nil {
		return apperr.JSON(c, err)
	}
	defer rows.Close()

	var logs []ReputasiLog
	var skors []int
	for rows.Next() {
		var l ReputasiLog
		if err := rows.Scan(&l.ID, &l.TransaksiID, &l.FromProfileID, &l.ToProfileID, &l.Skor, &l.Catatan, &l.CreatedAt); err != nil {
			return apperr.JSON(c, err)
		}
		logs = append(logs, l)
		skors = append(skors, l.Skor)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"ringkasan": Summarize(skors),
		"logs":      logs,
	})
}

// GetRingkasan returns the aggregate for any user by id.
func GetRingkasan(c echo.Context) error {
	profileID := c.Param("id")
	if profileID == "" {
		return apperr.JSON(c, apperr.Clone(apperr.ErrValidation, "missing profile id"))
	}

	return c.JSON(http.StatusOK, echo.Map{"ringkasan": ScoreFor(context.Background(), profileID)})
}

// CreateReputasi lets a participant of a completed transaction rate the
// counterparty with a custom score.
func CreateReputasi(c echo.Context) error {
	uid, ok := c.Get("user_id").(string)
	if !ok || uid == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	transaksiID := c.Param("id")
	var req struct {
		Skor    int    `json:"skor"`
		Catatan string `json:"catatan"`
	}
	if err := c.Bind(&req); err != nil {
		return apperr.JSON(c, apperr.Clone(apperr.ErrValidation, "invalid request"))
	}

	ctx := context.Background()

	var pemilikID, peminjamID, status string
	err := db.Conn.QueryRow(ctx,
		`SELECT pemilik_id, peminjam_id, status FROM transactions WHERE id = $1`, transaksiID,
	).Scan(&pemilikID, &peminjamID, &status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.JSON(c, apperr.Clone(apperr.ErrNotFound, "transaksi tidak ditemukan"))
		}
		return apperr.JSON(c, err)
	}

	var toProfileID string
	switch uid {
	case pemilikID:
		toProfileID = peminjamID
	case peminjamID:
		toProfileID = pemilikID
	default:
		return c.JSON(http.StatusForbidden, echo.Map{"error": "bukan peserta transaksi ini"})
	}

	if status != "Selesai" {
		return apperr.JSON(c, apperr.Clone(apperr.ErrValidation, "penilaian hanya untuk transaksi yang sudah selesai"))
	}

	entry := ReputasiLog{
		TransaksiID:   transaksiID,
		FromProfileID: uid,
		ToProfileID:   toProfileID,
		Skor:          req.Skor,
	}
	if req.Catatan != "" {
		entry.Catatan = &req.Catatan
	}

	if err := Append(ctx, db.Conn, entry); err != nil {
		return apperr.JSON(c, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"message": "penilaian tersimpan"})
}
