package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/lmirsal/binershare/internal/admin"
	"github.com/lmirsal/binershare/internal/alerts"
	"github.com/lmirsal/binershare/internal/auth"
	"github.com/lmirsal/binershare/internal/config"
	"github.com/lmirsal/binershare/internal/db"
	"github.com/lmirsal/binershare/internal/listing"
	"github.com/lmirsal/binershare/internal/logger"
	mware "github.com/lmirsal/binershare/internal/middleware"
	"github.com/lmirsal/binershare/internal/profile"
	"github.com/lmirsal/binershare/internal/reputation"
	"github.com/lmirsal/binershare/internal/transaction"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zlog, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zlog.Sync()

	// Init subsystems
	if err := db.Init(cfg.Database.DSN(), zlog); err != nil {
		zlog.Fatal("unable to connect to database", zap.Error(err))
	}
	defer db.Close()

	alerts.Init(cfg, zlog)
	defer alerts.Close()

	profile.SetLogger(zlog)

	if err := listing.InitFeed(zlog); err != nil {
		zlog.Fatal("unable to load listing feed", zap.Error(err))
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(logger.EchoMiddleware(zlog))

	// Health and root routes
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok", "service": "binershare"})
	})
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
	e.GET("/ready", func(c echo.Context) error {
		if db.Conn == nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "not_ready", "error": "db not initialized"})
		}
		if err := db.Conn.Ping(context.Background()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "not_ready", "error": "db unreachable"})
		}
		return c.JSON(http.StatusOK, echo.Map{"status": "ready"})
	})

	// Public routes
	// Auth routes with per-IP rate limiting to protect signup/login from abuse
	authGroup := e.Group("/auth")
	authGroup.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(20)))
	authGroup.POST("/signup", auth.Signup)
	authGroup.POST("/login", auth.Login)

	e.GET("/barang", listing.GetAllBarang)
	e.GET("/barang/live", listing.LiveBarang)
	e.GET("/barang/stream", listing.StreamBarang)
	e.GET("/barang/:id", listing.GetBarang)
	e.GET("/profiles/:id", profile.GetPublicProfile)
	e.GET("/profiles/:id/reputasi", reputation.GetRingkasan)

	// Protected routes
	api := e.Group("")
	api.Use(mware.JWTMiddleware)

	api.GET("/auth/me", auth.Me)
	api.PATCH("/profiles/me", profile.UpdateProfile)
	api.GET("/profiles/me/statistik", profile.GetStatistik)

	api.POST("/barang", listing.CreateBarang)
	api.PATCH("/barang/:id", listing.UpdateBarang)
	api.DELETE("/barang/:id", listing.DeleteBarang)

	api.POST("/transaksi", transaction.CreateRequest)
	api.GET("/transaksi", transaction.GetUserTransaksi)
	api.POST("/transaksi/:id/setujui", transaction.Setujui)
	api.POST("/transaksi/:id/tolak", transaction.Tolak)
	api.POST("/transaksi/:id/batalkan", transaction.Batalkan)
	api.POST("/transaksi/:id/selesaikan", transaction.Selesaikan)
	api.POST("/transaksi/:id/reputasi", reputation.CreateReputasi)

	api.GET("/reputasi", reputation.RiwayatReputasi)

	api.GET("/riwayat-donasi/diberikan", listing.RiwayatDonasiDiberikan)
	api.GET("/riwayat-donasi/diterima", transaction.RiwayatDonasiDiterima)

	// Admin routes
	adminGroup := e.Group("/admin")
	adminGroup.Use(mware.JWTMiddleware)
	adminGroup.Use(mware.AdminGuard)
	adminGroup.GET("/stats", admin.Stats)

	addr := fmt.Sprintf(":%d", cfg.Port)
	zlog.Info("server listening", zap.String("addr", addr))
	if err := e.Start(addr); err != nil {
		zlog.Fatal("server error", zap.Error(err))
	}
}
