package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"sweet-shop-api/internal/core/auth"
	"sweet-shop-api/internal/core/cache"
	"sweet-shop-api/internal/core/config"
	"sweet-shop-api/internal/core/database"
	"sweet-shop-api/internal/core/logger"
	"sweet-shop-api/internal/core/server"
	"sweet-shop-api/internal/domain"
	"sweet-shop-api/internal/repo"
	"sweet-shop-api/internal/service"
	"sweet-shop-api/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := newLogger(cfg)
	defer cleanup()

	db := mustOpenDB(cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := db.AutoMigrate(
			&domain.Account{}, &domain.Profile{},
			&domain.Sweet{}, &domain.Purchase{},
		); err != nil {
			log.Fatal("automigrate failed", zap.Error(err))
		}
		log.Info("automigrate done")
	}

	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
	}

	svc := buildServices(cfg, db, jwter, log)
	r := router.NewAPIEngine(log, jwter, svc)

	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	log.Info("store api starting", zap.String("addr", addr))
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("store api start FAILED", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info("store api stopped gracefully")
}

func newLogger(cfg *config.Config) (*zap.Logger, func()) {
	return logger.Build(logger.Options{
		Level: cfg.Log.Level,
		JSON:  cfg.Log.JSON,
		Rotate: logger.FileRotate{
			Enable:     cfg.Log.File.Enable,
			Filename:   cfg.Log.File.Filename,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
}

func buildServices(cfg *config.Config, db *gorm.DB, jwter *auth.JWTer, log *zap.Logger) router.Services {
	var c *cache.Cache
	if cfg.Redis.Addr != "" {
		c = cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	}
	catalogTTL := time.Duration(cfg.Cache.CatalogTTLSec) * time.Second

	accounts := repo.NewAccountRepo(db)
	profiles := repo.NewProfileRepo(db)
	sweets := repo.NewSweetRepo(db)
	purchases := repo.NewPurchaseRepo(db)

	return router.Services{
		Auth:      service.NewAuthService(accounts, profiles, jwter, log),
		Profiles:  service.NewProfileService(profiles, accounts, log),
		Catalog:   service.NewCatalogService(sweets, c, catalogTTL, log),
		Purchases: service.NewPurchaseService(purchases, c, log),
		Orders:    service.NewOrderService(purchases, log),
	}
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}
