package listing

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/lmirsal/binershare/internal/apperr"
)

type fakeRow struct {
	nama string
	err  error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*string) = r.nama
	return nil
}

type fakeRowQuerier struct {
	row fakeRow
}

func (q fakeRowQuerier) QueryRow(_ context.Context, _ string, _ ...any) pgx.Row {
	return q.row
}

func TestDonaturNameResolves(t *testing.T) {
	q := fakeRowQuerier{row: fakeRow{nama: "Budi"}}
	got, err := donaturName(context.Background(), q, "owner-1")
	require.NoError(t, err)
	require.Equal(t, "Budi", got)
}

func TestDonaturNameMissingProfileIsNotFound(t *testing.T) {
	q := fakeRowQuerier{row: fakeRow{err: pgx.ErrNoRows}}
	_, err := donaturName(context.Background(), q, "owner-1")
	require.Error(t, err)
	require.Equal(t, apperr.ErrNotFound.Code, apperr.FromError(err).Code)
}

func TestDonaturNamePersistenceFailureFallsBack(t *testing.T) {
	// Profile reads are best-effort: a transient failure must not be
	// reported as a missing profile, posting proceeds with a placeholder.
	q := fakeRowQuerier{row: fakeRow{err: errors.New("connection refused")}}
	got, err := donaturName(context.Background(), q, "owner-1")
	require.NoError(t, err)
	require.Equal(t, "Pengguna", got)
}
