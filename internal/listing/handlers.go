package listing

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/lmirsal/binershare/internal/apperr"
	"github.com/lmirsal/binershare/internal/db"
	"github.com/lmirsal/binershare/internal/reputation"
)

const selectBarang = `SELECT id, owner_id, nama, kategori, status, donatur, reputasi, deskripsi, created_at FROM posts`

type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// donaturName resolves the poster's display name. Only a genuinely missing
// profile is an error; profile reads are otherwise best-effort and fall back
// to a placeholder so a persistence hiccup never blocks posting.
func donaturName(ctx context.Context, q rowQuerier, ownerID string) (string, error) {
	var nama string
	err := q.QueryRow(ctx, `SELECT nama FROM profiles WHERE id = $1`, ownerID).Scan(&nama)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", apperr.Clone(apperr.ErrNotFound, "profil tidak ditemukan")
	}
	if err != nil {
		Live.log.Warn("load donatur failed, using placeholder", zap.Error(err))
		return "Pengguna", nil
	}
	return nama, nil
}

// GetAllBarang returns posts in creation order, optionally filtered by kategori.
// kategori "Semua" (or absent) returns everything.
func GetAllBarang(c echo.Context) error {
	kategori := c.QueryParam("kategori")

	query := selectBarang + ` ORDER BY created_at ASC, id ASC`
	args := []any{}
	if kategori != "" && kategori != KategoriSemua {
		if !validKategori(kategori) {
			return apperr.JSON(c, apperr.Clone(apperr.ErrValidation, "kategori tidak dikenal"))
		}
		query = selectBarang + ` WHERE kategori = $1 ORDER BY created_at ASC, id ASC`
		args = append(args, kategori)
	}

	rows, err := db.Conn.Query(context.Background(), query, args...)
	if err != nil {
		return apperr.JSON(c, apperr.Wrap(err, apperr.ErrPersistence.Code, apperr.ErrPersistence.Status, "gagal memuat daftar barang"))
	}
	defer rows.Close()

	var items []Barang
	for rows.Next() {
		var b Barang
		if err := rows.Scan(&b.ID, &b.OwnerID, &b.Nama, &b.Kategori, &b.Status, &b.Donatur, &b.Reputasi, &b.Deskripsi, &b.CreatedAt); err != nil {
			return apperr.JSON(c, err)
		}
		items = append(items, b)
	}

	return c.JSON(http.StatusOK, echo.Map{"barang": items, "total": len(items)})
}

// GetBarang returns a single post by id.
func GetBarang(c echo.Context) error {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		return apperr.JSON(c, apperr.Clone(apperr.ErrValidation, "id barang tidak valid"))
	}

	var b Barang
	err := db.Conn.QueryRow(context.Background(), selectBarang+` WHERE id = $1`, id).
		Scan(&b.ID, &b.OwnerID, &b.Nama, &b.Kategori, &b.Status, &b.Donatur, &b.Reputasi, &b.Deskripsi, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.JSON(c, apperr.Clone(apperr.ErrNotFound, "barang tidak ditemukan"))
		}
		return apperr.JSON(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"barang": b})
}

// LiveBarang serves the in-memory live view, newest first, with its watermark.
func LiveBarang(c echo.Context) error {
	items, seq := Live.Snapshot()
	items = FilterByKategori(items, c.QueryParam("kategori"))
	return c.JSON(http.StatusOK, echo.Map{"barang": items, "seq": seq})
}

// CreateBarang posts a new item for loan, exchange or donation.
func CreateBarang(c echo.Context) error {
	ownerID, ok := c.Get("user_id").(string)
	if !ok || ownerID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req struct {
		Nama      string `json:"nama"`
		Kategori  string `json:"kategori"`
		Status    string `json:"status"`
		Deskripsi string `json:"deskripsi"`
	}
	if err := c.Bind(&req); err != nil {
		return apperr.JSON(c, apperr.Clone(apperr.ErrValidation, "invalid request"))
	}
	if req.Nama == "" || !validKategori(req.Kategori) || !validStatus(req.Status) {
		return apperr.JSON(c, apperr.Clone(apperr.ErrValidation, "nama, kategori dan status (Pinjam/Tukar/Donasi) wajib diisi"))
	}

	ctx := context.Background()

	donatur, err := donaturName(ctx, db.Conn, ownerID)
	if err != nil {
		return apperr.JSON(c, err)
	}

	// Reputation snapshot for display; recomputed only when posting.
	ringkasan := reputation.ScoreFor(ctx, ownerID)

	b := Barang{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Nama:      req.Nama,
		Kategori:  req.Kategori,
		Status:    req.Status,
		Donatur:   donatur,
		Reputasi:  ringkasan.Rata2,
		CreatedAt: time.Now(),
	}
	if req.Deskripsi != "" {
		b.Deskripsi = &req.Deskripsi
	}

	_, err = db.Conn.Exec(ctx,
		`INSERT INTO posts (id, owner_id, nama, kategori, status, donatur, reputasi, deskripsi, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		b.ID, b.OwnerID, b.Nama, b.Kategori, b.Status, b.Donatur, b.Reputasi, b.Deskripsi, b.CreatedAt,
	)
	if err != nil {
		return apperr.JSON(c, apperr.Wrap(err, apperr.ErrPersistence.Code, apperr.ErrPersistence.Status, "gagal menyimpan barang"))
	}

	Live.Publish(EventInsert, b)

	return c.JSON(http.StatusCreated, echo.Map{"barang_id": b.ID, "message": "barang berhasil diposting"})
}

// UpdateBarang lets the owner edit deskripsi and status of a post.
func UpdateBarang(c echo.Context) error {
	ownerID, ok := c.Get("user_id").(string)
	if !ok || ownerID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	id := c.Param("id")
	var req struct {
		Status    *string `json:"status"`
		Deskripsi *string `json:"deskripsi"`
	}
	if err := c.Bind(&req); err != nil {
		return apperr.JSON(c, apperr.Clone(apperr.ErrValidation, "invalid request"))
	}
	if req.Status == nil && req.Deskripsi == nil {
		return apperr.JSON(c, apperr.Clone(apperr.ErrValidation, "tidak ada perubahan"))
	}
	if req.Status != nil && !validStatus(*req.Status) {
		return apperr.JSON(c, apperr.Clone(apperr.ErrValidation, "status harus Pinjam, Tukar atau Donasi"))
	}

	ctx := context.Background()

	var b Barang
	err := db.Conn.QueryRow(ctx, `
		UPDATE posts SET
			status = COALESCE($3, status),
			deskripsi = COALESCE($4, deskripsi)
		WHERE id = $1 AND owner_id = $2
		RETURNING id, owner_id, nama, kategori, status, donatur, reputasi, deskripsi, created_at`,
		id, ownerID, req.Status, req.Deskripsi,
	).Scan(&b.ID, &b.OwnerID, &b.Nama, &b.Kategori, &b.Status, &b.Donatur, &b.Reputasi, &b.Deskripsi, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.JSON(c, apperr.Clone(apperr.ErrNotFound, "barang tidak ditemukan atau bukan milikmu"))
		}
		return apperr.JSON(c, err)
	}

	Live.Publish(EventUpdate, b)

	return c.JSON(http.StatusOK, echo.Map{"barang": b})
}

// DeleteBarang removes a post. Refused while a non-terminal transaction
// still references it.
func DeleteBarang(c echo.Context) error {
	ownerID, ok := c.Get("user_id").(string)
	if !ok || ownerID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	id := c.Param("id")
	ctx := context.Background()

	var open int
	if err := db.Conn.QueryRow(ctx,
		`SELECT COUNT(*) FROM transactions WHERE post_id = $1 AND status IN ('Menunggu','Disetujui')`,
		id,
	).Scan(&open); err != nil {
		return apperr.JSON(c, err)
	}
	if open > 0 {
		return apperr.JSON(c, apperr.Clone(apperr.ErrConflict, "masih ada transaksi berjalan untuk barang ini"))
	}

	res, err := db.Conn.Exec(ctx, `DELETE FROM posts WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return apperr.JSON(c, err)
	}
	if res.RowsAffected() == 0 {
		return apperr.JSON(c, apperr.Clone(apperr.ErrNotFound, "barang tidak ditemukan atau bukan milikmu"))
	}

	Live.Publish(EventDelete, Barang{ID: id})

	return c.JSON(http.StatusOK, echo.Map{"message": "barang dihapus"})
}

// RiwayatDonasiDiberikan lists the caller's posts offered as Donasi, newest first.
func RiwayatDonasiDiberikan(c echo.Context) error {
	uid, ok := c.Get("user_id").(string)
	if !ok || uid == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	rows, err := db.Conn.Query(context.Background(),
		selectBarang+` WHERE owner_id = $1 AND status = 'Donasi' ORDER BY created_at DESC`, uid)
	if err != nil {
		return apperr.JSON(c, err)
	}
	defer rows.Close()

	var items []Barang
	for rows.Next() {
		var b Barang
		if err := rows.Scan(&b.ID, &b.OwnerID, &b.Nama, &b.Kategori, &b.Status, &b.Donatur, &b.Reputasi, &b.Deskripsi, &b.CreatedAt); err != nil {
			return apperr.JSON(c, err)
		}
		items = append(items, b)
	}

	return c.JSON(http.StatusOK, echo.Map{"donasi_diberikan": items})
}
