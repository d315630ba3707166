package reputation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/lmirsal/binershare/internal/apperr"
	"github.com/lmirsal/binershare/internal/db"
)

// Execer is satisfied by both the pool and an open pgx transaction, so an
// entry can be appended inside the completion transaction.
type Execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// Append writes one immutable ledger entry. At most one entry may exist per
// (transaksi, from, to); a duplicate surfaces as Conflict.
func Append(ctx context.Context, q Execer, entry ReputasiLog) error {
	if entry.Skor < SkorMin || entry.Skor > SkorMax {
		return apperr.Clone(apperr.ErrValidation, fmt.Sprintf("skor harus antara %d dan %d", SkorMin, SkorMax))
	}

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	_, err := q.Exec(ctx,
		`INSERT INTO reputasi_logs (id, transaksi_id, from_profile_id, to_profile_id, skor, catatan, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		entry.ID, entry.TransaksiID, entry.FromProfileID, entry.ToProfileID, entry.Skor, entry.Catatan, entry.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperr.Clone(apperr.ErrConflict, "penilaian untuk transaksi ini sudah ada")
		}
		return apperr.Wrap(err, apperr.ErrPersistence.Code, apperr.ErrPersistence.Status, "gagal menyimpan penilaian")
	}
	return nil
}

// ScoreFor recomputes a user's aggregate from the ledger. Failures fall back
// to the default aggregate so callers that only display it never break.
func ScoreFor(ctx context.Context, profileID string) Ringkasan {
	skors, err := receivedScores(ctx, profileID)
	if err != nil {
		return Summarize(nil)
	}
	return Summarize(skors)
}

func receivedScores(ctx context.Context, profileID string) ([]int, error) {
	rows, err := db.Conn.Query(ctx,
		`SELECT skor FROM reputasi_logs WHERE to_profile_id = $1`, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var skors []int
	for rows.Next() {
		var s int
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		skors = append(skors, s)
	}
	return skors, rows.Err()
}
