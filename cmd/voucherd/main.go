package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/voucherscan/voucher-tracker/internal/classify"
	"github.com/voucherscan/voucher-tracker/internal/common"
	"github.com/voucherscan/voucher-tracker/internal/export"
	"github.com/voucherscan/voucher-tracker/internal/extract"
	"github.com/voucherscan/voucher-tracker/internal/ocr"
	"github.com/voucherscan/voucher-tracker/internal/patterns"
	"github.com/voucherscan/voucher-tracker/internal/repository"
	"github.com/voucherscan/voucher-tracker/internal/server"
	"github.com/voucherscan/voucher-tracker/internal/storage"
)

func main() {
	// Logger
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()
	log := logger.Sugar()

	// Env (.env is optional outside local dev)
	_ = godotenv.Load()
	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	// Context with signal
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// DB pool
	pool, err := repository.NewPool(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
		MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
		DialTimeout:     cfg.Database.DialTimeout,
	}, logger)
	if err != nil {
		log.Fatalf("creating DB pool: %v", err)
	}
	defer pool.Close()

	if err := repository.HealthCheck(ctx, pool, cfg.Database.HealthTimeout); err != nil {
		log.Fatalf("DB health failed: %v", err)
	}
	log.Infow("DB health OK")

	// Classifier trains here, before the server accepts any request.
	lib := patterns.NewLibrary()
	classifier := classify.New(lib)
	pipeline := extract.NewPipeline(lib, classifier, logger)

	detector := ocr.NewDetector(ocr.Config{
		Tesseract:     cfg.OCR.Tesseract,
		TesseractLang: cfg.OCR.TesseractLang,
		TessdataDir:   cfg.OCR.TessdataDir,
		PSM:           cfg.OCR.PSM,
	}, logger)

	bucket := storage.NewBucketClient(storage.Config{
		BaseURL: cfg.Storage.BaseURL,
		APIKey:  cfg.Storage.APIKey,
		Bucket:  cfg.Storage.Bucket,
		Timeout: cfg.Storage.Timeout,
	}, logger)

	repo := repository.NewVoucherRepository(pool, logger)
	exporter := export.NewService(logger)

	svc := server.NewVouchersService(bucket, detector, pipeline, repo, exporter, logger)

	r := gin.New()
	r.Use(gin.Recovery())
	svc.Register(r)

	srv := &http.Server{Addr: cfg.Server.Addr, Handler: r}
	go func() {
		log.Infof("HTTP serving on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http serve: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warnf("shutdown: %v", err)
	}
	log.Info("stopped.")
}
