package alerts

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/lmirsal/binershare/internal/config"
)

var (
	client *asynq.Client
	server *asynq.Server
	log    = zap.NewNop()
)

// Init starts the Asynq server and initializes a shared client.
func Init(cfg *config.Config, l *zap.Logger) {
	log = l
	configureMailer(cfg.SMTP)

	opts := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	client = asynq.NewClient(opts)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskPermintaanMasuk, handleTransaksiNotif)
	mux.HandleFunc(TaskPermintaanDisetujui, handleTransaksiNotif)
	mux.HandleFunc(TaskPermintaanDitolak, handleTransaksiNotif)
	mux.HandleFunc(TaskTransaksiSelesai, handleTransaksiNotif)

	server = asynq.NewServer(opts, asynq.Config{
		Concurrency: 5,
		Queues: map[string]int{
			"emails": 10,
		},
	})
	go func() {
		if err := server.Run(mux); err != nil {
			log.Warn("asynq server stopped", zap.Error(err))
		}
	}()

	log.Info("asynq initialized", zap.String("addr", cfg.Redis.Addr))
}

// Close releases client and stops server.
func Close() {
	if client != nil {
		_ = client.Close()
	}
	if server != nil {
		server.Shutdown()
	}
}

func handleTransaksiNotif(_ context.Context, t *asynq.Task) error {
	var p TransaksiNotifPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return err
	}
	if err := sendEmail(p.Email, p.Envelope.Subject, p.Envelope.Body); err != nil {
		log.Warn("notification send failed",
			zap.String("task", t.Type()),
			zap.String("transaksi", p.TransaksiID),
			zap.Error(err))
		return err
	}
	log.Info("notification sent",
		zap.String("task", t.Type()),
		zap.String("transaksi", p.TransaksiID),
		zap.String("to", p.Email))
	return nil
}
