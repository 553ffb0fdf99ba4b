package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"

	"kompetensi_backend/internals/configs"
	database "kompetensi_backend/internals/databases"
	"kompetensi_backend/internals/databases/migrate"
	"kompetensi_backend/internals/features/help/reaper"
	scheduler "kompetensi_backend/internals/features/users/auth/scheduler"
	helper "kompetensi_backend/internals/helpers"
	"kompetensi_backend/internals/helpers/logger"
	"kompetensi_backend/internals/helpers/storage"
	middlewares "kompetensi_backend/internals/middlewares"
	requestLogger "kompetensi_backend/internals/middlewares/logger"
	routes "kompetensi_backend/internals/route"
	"kompetensi_backend/internals/seeds"
)

func main() {
	started := time.Now()
	configs.LoadEnv()
	cfg := configs.Load()

	log := logger.Init(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	if problems := cfg.Validate(); len(problems) > 0 {
		for _, p := range problems {
			log.Warnf("config: %s", p)
		}
		log.Fatalf(nil, "konfigurasi tidak lengkap (%d masalah)", len(problems))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 🔌 DB connect + pool + warm-up
	db, err := database.ConnectDB(cfg.DB, log)
	if err != nil {
		log.Fatalf(err, "koneksi database gagal")
	}
	database.TunePool(db, log)
	database.WarmUpQueries(db, log)

	if cfg.DB.AutoMigrate {
		if err := migrate.AutoMigrate(db, log); err != nil {
			log.Fatalf(err, "migrasi gagal")
		}
	}
	if cfg.SeedOnStart {
		if err := seeds.RunAllSeeds(ctx, db, cfg.SeedDir, log); err != nil {
			log.Errorf(err, "seed gagal")
		}
	}

	// 🪣 object storage (bantuan)
	store, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		log.Fatalf(err, "inisialisasi storage gagal")
	}
	if err := store.EnsureBucket(ctx); err != nil {
		// upload berikutnya akan mencoba lagi
		log.WarnErr(err, "ensure bucket %s gagal", store.Bucket())
	}

	// ⏱ scheduler setelah DB siap
	if _, err := scheduler.StartBlacklistCleanupScheduler(ctx, db, cfg.BlacklistCleanup, log); err != nil {
		log.Errorf(err, "blacklist cleanup tidak jalan")
	}
	if cfg.Reaper.Enabled {
		if _, err := reaper.New(db, store, cfg.Reaper, log).Start(ctx); err != nil {
			log.Errorf(err, "orphan reaper tidak jalan")
		}
	}

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		ErrorHandler:            helper.ErrorHandler,
		DisableStartupMessage:   true,
		BodyLimit:               (cfg.Help.MaxFileMB + 1) << 20,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
		ReadTimeout:             15 * time.Second,
		WriteTimeout:            30 * time.Second,
		IdleTimeout:             90 * time.Second,
	})

	// ⚙️ middleware dasar + performa
	app.Use(middlewares.RecoveryMiddleware(log))
	app.Use(requestLogger.LoggerMiddleware(log, cfg.RequestTimeout))
	app.Use(middlewares.CorsMiddleware(cfg.CORSOrigins))
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	// ✅ Routes
	routes.SetupRoutes(app, routes.Deps{
		DB:      db,
		Store:   store,
		Config:  cfg,
		Log:     log,
		Started: started,
	})

	go func() {
		log.Infof("✅ Listening on :%s (env=%s, storage=%s)", cfg.Port, cfg.Env, store.Driver())
		if err := app.Listen("0.0.0.0:" + cfg.Port); err != nil {
			log.Errorf(err, "server error")
			stop()
		}
	}()

	// graceful shutdown + tutup pool DB
	<-ctx.Done()
	log.Info("🛑 Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.WarnErr(err, "shutdown fiber")
	}
	database.Close(db)
}
