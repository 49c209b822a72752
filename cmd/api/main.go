package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storekit-backend/config"
	"storekit-backend/internal/delivery/http/middleware"
	v1 "storekit-backend/internal/delivery/http/v1"
	"storekit-backend/internal/domain"
	"storekit-backend/internal/infrastructure/cache"
	"storekit-backend/internal/infrastructure/courier"
	"storekit-backend/internal/infrastructure/crypto"
	"storekit-backend/internal/infrastructure/email"
	"storekit-backend/internal/infrastructure/lock"
	"storekit-backend/internal/infrastructure/messaging"
	"storekit-backend/internal/infrastructure/whatsapp"
	"storekit-backend/internal/repository/postgres"
	"storekit-backend/internal/usecase"
	"storekit-backend/pkg/logger"
	"storekit-backend/pkg/storage"
	"storekit-backend/pkg/utils"

	"github.com/NYTimes/gziphandler"
)

func main() {
	cfg := config.LoadConfig()
	utils.SetSecret(cfg.JWTSecret)

	// Initialize Logger
	logger.Init(cfg.Env, cfg.LogLevel)
	log := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize Database
	pgxPool, err := postgres.NewPgxPool(ctx, cfg, logger.Component("postgres"))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pgxPool.Close()

	// Initialize Repositories
	shippingRepo := postgres.NewShippingRepo(pgxPool)
	storeRepo := postgres.NewStoreRepo(pgxPool)
	cartRepo := postgres.NewCartRepo(pgxPool)
	notificationLogRepo := postgres.NewNotificationLogRepo(pgxPool)

	// Initialize Cache (In-Memory)
	// Default expiration 30m, cleanup every 60m
	memCache := cache.NewMemoryCache(30*time.Minute, 60*time.Minute)

	// --- Notifications ---
	var decrypter domain.CredentialDecrypter
	if cfg.CredentialsEncryptionKey != "" {
		aesCipher, err := crypto.NewAESCipher(cfg.CredentialsEncryptionKey)
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid CREDENTIALS_ENCRYPTION_KEY")
		}
		decrypter = aesCipher
	} else {
		log.Warn().Msg("CREDENTIALS_ENCRYPTION_KEY not set, store-level WhatsApp credentials are ignored")
	}

	msg91 := whatsapp.NewMSG91Client(cfg.MSG91BaseURL, cfg.WhatsAppTemplateLanguage, cfg.HTTPClientTimeout)
	resend := email.NewResendClient(cfg.ResendAPIKey, cfg.ResendBaseURL, cfg.EmailFrom, cfg.HTTPClientTimeout)

	dispatcher := usecase.NewDispatcher(
		storeRepo,
		decrypter,
		memCache,
		msg91,
		resend,
		notificationLogRepo,
		usecase.DispatcherConfig{
			PlatformAuthKey:          cfg.MSG91AuthKey,
			PlatformIntegratedNumber: cfg.MSG91IntegratedNumber,
			CredentialTTL:            cfg.CredentialCacheTTL,
			MaxAttempts:              cfg.NotifyMaxAttempts,
		},
		logger.Component("notification"),
	)

	// --- Abandoned Cart Recovery ---
	recoveryUC := usecase.NewRecoveryUsecase(storeRepo, cartRepo, dispatcher, usecase.RecoveryConfig{
		IdleThreshold: cfg.RecoveryIdleThreshold,
		CartTTL:       cfg.RecoveryCartTTL,
		MinEmailGap:   cfg.RecoveryMinEmailGap,
		MaxEmails:     cfg.RecoveryMaxEmails,
		LockTTL:       cfg.RecoverySweepInterval,
		FrontendURL:   cfg.FrontendURL,
	}, logger.Component("recovery"))

	if cfg.RedisAddr != "" {
		rdb, err := lock.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()
		recoveryUC.WithLocker(lock.NewRedisLocker(rdb))
		log.Info().Str("addr", cfg.RedisAddr).Msg("Recovery sweep lock enabled")
	}

	// --- Order Events (Kafka) ---
	orderNotifier := usecase.NewOrderNotifier(dispatcher, recoveryUC, logger.Component("order_events"))
	var consumer *messaging.OrderEventConsumer
	if len(cfg.KafkaBrokers) > 0 {
		consumer = messaging.NewOrderEventConsumer(cfg.KafkaBrokers, cfg.KafkaOrderTopic, cfg.KafkaGroupID, orderNotifier, logger.Component("kafka"))
		go func() {
			if err := consumer.Run(ctx); err != nil {
				log.Error().Err(err).Msg("Order event consumer exited")
			}
		}()
	} else {
		log.Warn().Msg("KAFKA_BROKERS not set, order notifications are disabled")
	}

	// --- Couriers ---
	courierManager := courier.NewManager(
		courier.NewDelhivery(courier.DelhiveryConfig{
			APIToken:       cfg.DelhiveryAPIToken,
			BaseURL:        cfg.DelhiveryBaseURL,
			PickupLocation: cfg.DelhiveryPickupLocation,
			Timeout:        cfg.HTTPClientTimeout,
		}),
		courier.NewShiprocket(courier.ShiprocketConfig{
			Email:    cfg.ShiprocketEmail,
			Password: cfg.ShiprocketPassword,
			BaseURL:  cfg.ShiprocketBaseURL,
			Timeout:  cfg.HTTPClientTimeout,
		}, memCache),
	)

	// --- Storage Module (R2) ---
	var labelArchiver domain.LabelArchiver
	if cfg.R2Enabled() {
		r2Storage, err := storage.NewR2Storage(
			ctx,
			cfg.R2AccountID,
			cfg.R2AccessKeyID,
			cfg.R2AccessKeySecret,
			cfg.R2BucketName,
			cfg.R2PublicURL,
			cfg.R2UploadTimeout,
		)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize R2 Storage")
		}
		labelArchiver = r2Storage
	}

	fulfillmentUC := usecase.NewFulfillmentUsecase(courierManager, labelArchiver, logger.Component("fulfillment"))
	shippingUC := usecase.NewShippingUsecase(shippingRepo, memCache, cfg.CacheShippingConfigTTL, logger.Component("shipping"))

	// --- Router ---
	mux := v1.NewRouter(v1.Handlers{
		Shipping:   v1.NewShippingHandler(shippingUC),
		Courier:    v1.NewCourierHandler(fulfillmentUC),
		Recovery:   v1.NewRecoveryHandler(recoveryUC),
		Health:     v1.NewHealthHandler(postgres.NewHealthCheck(pgxPool)),
		CronSecret: cfg.CronSecret,
	})

	// In-process sweep; the cron endpoint remains for external schedulers.
	go runRecoverySweep(ctx, recoveryUC, cfg.RecoverySweepInterval)

	// 50 req/s, burst 100, cleanup every minute, TTL 3 minutes
	rateLimiter := middleware.NewRateLimiter(ctx, 50, 100, time.Minute, 3*time.Minute)

	handler := middleware.NewCORSMiddleware(cfg)(mux)
	handler = middleware.RequestLogger(handler)
	handler = rateLimiter.Middleware()(handler)
	handler = gziphandler.GzipHandler(handler)

	addr := fmt.Sprintf(":%s", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()
	logger.ServiceStart("storekit-backend", "dev", cfg.Port)

	<-ctx.Done()
	log.Info().Msg("Server shutting down...")

	rateLimiter.Shutdown()
	if consumer != nil {
		if err := consumer.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close order event consumer")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.ServiceStop("storekit-backend")
}

func runRecoverySweep(ctx context.Context, uc *usecase.RecoveryUsecase, interval time.Duration) {
	if interval <= 0 {
		return
	}
	log := logger.Component("recovery_scheduler")
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := uc.ProcessAbandonedCarts(ctx); err != nil {
				log.Error().Err(err).Msg("recovery sweep failed")
			}
		}
	}
}
