package profile

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/lmirsal/binershare/internal/apperr"
	"github.com/lmirsal/binershare/internal/db"
	"github.com/lmirsal/binershare/internal/reputation"
)

var log = zap.NewNop()

// SetLogger wires the package logger from main.
func SetLogger(l *zap.Logger) {
	log = l
}

// GetPublicProfile serves a profile with its reputation aggregate. Profile
// reads are best-effort: lookup failures fall back to placeholder data so a
// broken profiles row never takes a page down.
func GetPublicProfile(c echo.Context) error {
	profileID := c.Param("id")
	if profileID == "" {
		return apperr.JSON(c, apperr.Clone(apperr.ErrValidation, "missing profile id"))
	}

	ctx := context.Background()

	p := Profile{ID: profileID, Nama: "Pengguna"}
	err := db.Conn.QueryRow(ctx,
		`SELECT id, nama, bio, created_at FROM profiles WHERE id = $1`, profileID,
	).Scan(&p.ID, &p.Nama, &p.Bio, &p.CreatedAt)
	if err != nil {
		log.Warn("load profile failed, serving placeholder",
			zap.String("profile_id", profileID), zap.Error(err))
		p.CreatedAt = time.Now()
	}

	return c.JSON(http.StatusOK, echo.Map{
		"profile":  p,
		"reputasi": reputation.ScoreFor(ctx, profileID),
	})
}

// UpdateProfile lets the caller edit nama and bio.
func UpdateProfile(c echo.Context) error {
	uid, ok := c.Get("user_id").(string)
	if !ok || uid == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req struct {
		Nama *string `json:"nama"`
		Bio  *string `json:"bio"`
	}
	if err := c.Bind(&req); err != nil {
		return apperr.JSON(c, apperr.Clone(apperr.ErrValidation, "invalid request"))
	}
	if req.Nama == nil && req.Bio == nil {
		return apperr.JSON(c, apperr.Clone(apperr.ErrValidation, "tidak ada perubahan"))
	}
	if req.Nama != nil && *req.Nama == "" {
		return apperr.JSON(c, apperr.Clone(apperr.ErrValidation, "nama tidak boleh kosong"))
	}

	res, err := db.Conn.Exec(context.Background(),
		`UPDATE profiles SET nama = COALESCE($2, nama), bio = COALESCE($3, bio) WHERE id = $1`,
		uid, req.Nama, req.Bio,
	)
	if err != nil {
		return apperr.JSON(c, err)
	}
	if res.RowsAffected() == 0 {
		return apperr.JSON(c, apperr.Clone(apperr.ErrNotFound, "profil tidak ditemukan"))
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "profil diperbarui"})
}

// GetStatistik returns the caller's activity counters: total transactions,
// donations given as owner, donations received as requester.
func GetStatistik(c echo.Context) error {
	uid, ok := c.Get("user_id").(string)
	if !ok || uid == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var s Statistik
	err := db.Conn.QueryRow(context.Background(), `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE tipe = 'Donasi' AND pemilik_id = $1),
		       COUNT(*) FILTER (WHERE tipe = 'Donasi' AND peminjam_id = $1)
		FROM transactions
		WHERE peminjam_id = $1 OR pemilik_id = $1`, uid,
	).Scan(&s.Total, &s.Didonasikan, &s.Diterima)
	if err != nil {
		return apperr.JSON(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"statistik": s})
}
