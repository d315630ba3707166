package reputation

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/lmirsal/binershare/internal/apperr"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name  string
		skors []int
		want  Ringkasan
	}{
		{"no entries defaults to 90", nil, Ringkasan{Rata2: 90, Total: 0, Label: LabelBelumAda}},
		{"mean of 100 and 80", []int{100, 80}, Ringkasan{Rata2: 90, Total: 2, Label: "Baik"}},
		{"single low score", []int{60}, Ringkasan{Rata2: 60, Total: 1, Label: "Perlu Perbaikan"}},
		{"completion score alone", []int{95}, Ringkasan{Rata2: 95, Total: 1, Label: "Sangat Baik"}},
		{"rounds to nearest", []int{80, 81}, Ringkasan{Rata2: 81, Total: 2, Label: "Cukup"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Summarize(tt.skors))
		})
	}
}

func TestLabelThresholds(t *testing.T) {
	tests := []struct {
		rata2 int
		want  string
	}{
		{100, "Sangat Baik"},
		{95, "Sangat Baik"},
		{94, "Baik"},
		{85, "Baik"},
		{84, "Cukup"},
		{75, "Cukup"},
		{74, "Perlu Perbaikan"},
		{0, "Perlu Perbaikan"},
	}

	for _, tt := range tests {
		if got := Label(tt.rata2); got != tt.want {
			t.Fatalf("Label(%d) = %s, want %s", tt.rata2, got, tt.want)
		}
	}
}

type fakeExecer struct {
	calls int
	sql   string
	args  []any
	err   error
}

func (f *fakeExecer) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.calls++
	f.sql = sql
	f.args = args
	return pgconn.NewCommandTag("INSERT 0 1"), f.err
}

func TestAppendRejectsOutOfRangeScore(t *testing.T) {
	fake := &fakeExecer{}

	for _, skor := range []int{-1, 101, 200} {
		err := Append(context.Background(), fake, ReputasiLog{
			TransaksiID:   "t1",
			FromProfileID: "a",
			ToProfileID:   "b",
			Skor:          skor,
		})
		require.Error(t, err)
		require.Equal(t, apperr.ErrValidation.Code, apperr.FromError(err).Code)
	}
	require.Zero(t, fake.calls, "no insert should be attempted for invalid scores")
}

func TestAppendWritesOneEntry(t *testing.T) {
	fake := &fakeExecer{}

	err := Append(context.Background(), fake, ReputasiLog{
		TransaksiID:   "t1",
		FromProfileID: "a",
		ToProfileID:   "b",
		Skor:          SkorSelesai,
	})
	require.NoError(t, err)
	require.Equal(t, 1, fake.calls)
	require.Contains(t, fake.sql, "INSERT INTO reputasi_logs")
	// id, transaksi_id, from, to, skor, catatan, created_at
	require.Len(t, fake.args, 7)
	require.Equal(t, SkorSelesai, fake.args[4])
}

func TestAppendBoundaryScores(t *testing.T) {
	for _, skor := range []int{SkorMin, SkorMax} {
		fake := &fakeExecer{}
		err := Append(context.Background(), fake, ReputasiLog{
			TransaksiID:   "t1",
			FromProfileID: "a",
			ToProfileID:   "b",
			Skor:          skor,
		})
		require.NoError(t, err)
		require.Equal(t, 1, fake.calls)
	}
}
