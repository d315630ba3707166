package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var Conn *pgxpool.Pool

// Init connects to Postgres and bootstraps the schema.
func Init(dsn string, log *zap.Logger) error {
	var err error
	Conn, err = pgxpool.New(context.Background(), dsn)
	if err != nil {
		return err
	}

	if err = Conn.Ping(context.Background()); err != nil {
		return err
	}

	log.Info("connected to postgres")

	ensureProfilesTable(log)
	ensurePostsTable(log)
	ensureTransactionsTable(log)
	ensureReputasiLogsTable(log)

	return nil
}

// Close releases the pool.
func Close() {
	if Conn != nil {
		Conn.Close()
	}
}

func ensureProfilesTable(log *zap.Logger) {
	_, err := Conn.Exec(context.Background(), `
        CREATE TABLE IF NOT EXISTS profiles (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            nama TEXT NOT NULL,
            email TEXT NOT NULL UNIQUE,
            password TEXT NOT NULL,
            bio TEXT NULL,
            role TEXT NOT NULL DEFAULT 'mahasiswa' CHECK (role IN ('mahasiswa','admin')),
            created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
        );
    `)
	if err != nil {
		log.Warn("failed to ensure profiles table", zap.Error(err))
	}
}

func ensurePostsTable(log *zap.Logger) {
	_, err := Conn.Exec(context.Background(), `
        CREATE TABLE IF NOT EXISTS posts (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            owner_id UUID NOT NULL REFERENCES profiles(id),
            nama TEXT NOT NULL,
            kategori TEXT NOT NULL CHECK (kategori IN ('Buku','Perlengkapan','Elektronik','Alat')),
            status TEXT NOT NULL CHECK (status IN ('Pinjam','Tukar','Donasi')),
            donatur TEXT NOT NULL,
            reputasi INTEGER NOT NULL DEFAULT 90,
            deskripsi TEXT NULL,
            created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
        );
        CREATE INDEX IF NOT EXISTS idx_posts_owner ON posts(owner_id);
        CREATE INDEX IF NOT EXISTS idx_posts_kategori ON posts(kategori);
    `)
	if err != nil {
		log.Warn("failed to ensure posts table", zap.Error(err))
	}
}

func ensureTransactionsTable(log *zap.Logger) {
	_, err := Conn.Exec(context.Background(), `
        CREATE TABLE IF NOT EXISTS transactions (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            post_id UUID NOT NULL REFERENCES posts(id),
            pemilik_id UUID NOT NULL REFERENCES profiles(id),
            peminjam_id UUID NOT NULL REFERENCES profiles(id),
            tipe TEXT NOT NULL CHECK (tipe IN ('Pinjam','Tukar','Donasi')),
            status TEXT NOT NULL CHECK (status IN ('Menunggu','Disetujui','Ditolak','Dibatalkan','Selesai')),
            nama_barang TEXT NOT NULL,
            created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
            updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
        );
        CREATE INDEX IF NOT EXISTS idx_transactions_peminjam ON transactions(peminjam_id, created_at);
        CREATE INDEX IF NOT EXISTS idx_transactions_pemilik ON transactions(pemilik_id, created_at);
        CREATE INDEX IF NOT EXISTS idx_transactions_post ON transactions(post_id);
    `)
	if err != nil {
		log.Warn("failed to ensure transactions table", zap.Error(err))
	}
}

func ensureReputasiLogsTable(log *zap.Logger) {
	_, err := Conn.Exec(context.Background(), `
        CREATE TABLE IF NOT EXISTS reputasi_logs (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            transaksi_id UUID NOT NULL REFERENCES transactions(id),
            from_profile_id UUID NOT NULL REFERENCES profiles(id),
            to_profile_id UUID NOT NULL REFERENCES profiles(id),
            skor INTEGER NOT NULL CHECK (skor >= 0 AND skor <= 100),
            catatan TEXT NULL,
            created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
            UNIQUE (transaksi_id, from_profile_id, to_profile_id)
        );
        CREATE INDEX IF NOT EXISTS idx_reputasi_to ON reputasi_logs(to_profile_id, created_at);
    `)
	if err != nil {
		log.Warn("failed to ensure reputasi_logs table", zap.Error(err))
	}
}
