package admin

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lmirsal/binershare/internal/db"
)

// GET /admin/stats
func Stats(c echo.Context) error {
	ctx := context.Background()

	var profiles, posts, transaksi, selesai, reputasi int

	_ = db.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM profiles`).Scan(&profiles)
	_ = db.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM posts`).Scan(&posts)
	_ = db.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&transaksi)
	_ = db.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM transactions WHERE status = 'Selesai'`).Scan(&selesai)
	_ = db.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM reputasi_logs`).Scan(&reputasi)

	return c.JSON(http.StatusOK, echo.Map{
		"profiles":          profiles,
		"posts":             posts,
		"transaksi":         transaksi,
		"transaksi_selesai": selesai,
		"reputasi_logs":     reputasi,
	})
}
