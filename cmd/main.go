package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/resend/resend-go/v2"

	httpctx "github.com/dtroode/autocompany-server/internal/api/http/context"
	"github.com/dtroode/autocompany-server/internal/api/http/handler"
	"github.com/dtroode/autocompany-server/internal/api/http/router"
	httpServer "github.com/dtroode/autocompany-server/internal/api/http/server"
	"github.com/dtroode/autocompany-server/internal/config"
	"github.com/dtroode/autocompany-server/internal/logger"
	"github.com/dtroode/autocompany-server/internal/model"
	"github.com/dtroode/autocompany-server/internal/notify"
	"github.com/dtroode/autocompany-server/internal/password"
	"github.com/dtroode/autocompany-server/internal/repository/postgres"
	"github.com/dtroode/autocompany-server/internal/server"
	"github.com/dtroode/autocompany-server/internal/service"
	"github.com/dtroode/autocompany-server/internal/session"
	storage "github.com/dtroode/autocompany-server/internal/storage/minio"
	"github.com/dtroode/autocompany-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)
	gin.SetMode(cfg.HTTP.GinMode)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	accountRepo := postgres.NewAccountRepository(db)
	stores := router.Stores{
		Companies:   postgres.NewCompanyRepository(db),
		Directors:   postgres.NewDirectorRepository(db),
		Expenses:    postgres.NewExpenseRepository(db),
		Workers:     postgres.NewWorkerRepository(db),
		Clients:     postgres.NewClientRepository(db),
		Cars:        postgres.NewCarRepository(db),
		Admissions:  postgres.NewAdmissionRepository(db),
		Accountants: postgres.NewAccountantRepository(db),
		Drivers:     postgres.NewDriverRepository(db),
		Sellers:     postgres.NewSellerRepository(db),
		Lifeguards:  postgres.NewLifeguardRepository(db),
	}

	sessionStore, closeSessions := newSessionStore(cfg, logger)
	defer closeSessions()

	notifier, stopNotifier := newNotifier(cfg, logger)

	tokenManager, err := token.NewJWT(cfg.JWT.Secret, cfg.JWT.Algorithm, cfg.JWTTTL())
	if err != nil {
		logger.Fatal("failed to create token manager", "error", err)
	}

	authService := service.NewAuth(
		accountRepo,
		sessionStore,
		password.NewBcrypt(cfg.Bcrypt.Cost),
		tokenManager,
		notifier,
		logger,
		service.AuthConfig{
			CodeTTL:        cfg.CodeTTL(),
			StrictDelivery: cfg.Mail.Mode == config.MailModeSync,
		},
	)

	var exportService handler.ExportService
	if cfg.Storage.Enabled {
		exportService = newExportService(ctx, cfg, stores, logger)
	}

	r := router.New(
		authService,
		exportService,
		sessionStore,
		stores,
		httpctx.NewManager(),
		router.Options{
			CORSOrigins:    cfg.HTTP.CORSOrigins,
			RequireAuth:    cfg.HTTP.RequireAuth,
			TrustedProxies: cfg.HTTP.TrustedProxies,
			SecureCookie:   cfg.Session.CookieSecure,
			RateLimitRPS:   cfg.RateLimit.RPS,
			RateLimitBurst: cfg.RateLimit.Burst,
		},
		logger,
	)
	srv := httpServer.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer
	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}
	wg.Wait()

	if err := stopNotifier(shutdownCtx); err != nil {
		logger.Error("error during mail shutdown", "error", err)
	}

	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

func newSessionStore(cfg *config.Config, logger *logger.Logger) (model.SessionStore, func()) {
	if cfg.Session.Backend != config.SessionBackendRedis {
		return session.NewMemoryStore(cfg.Session.IdleTTL), func() {}
	}

	opt, err := redis.ParseURL(cfg.Session.RedisURL)
	if err != nil {
		logger.Fatal("failed to parse session redis url", "error", err)
	}
	client := redis.NewClient(opt)
	return session.NewRedisStore(client, cfg.Session.IdleTTL), func() {
		if err := client.Close(); err != nil {
			logger.Error("failed to close session redis client", "error", err)
		}
	}
}

func newMailSender(cfg *config.Config) model.MailSender {
	if cfg.Mail.Provider == config.MailProviderResend {
		return notify.NewResendSender(resend.NewClient(cfg.Resend.APIKey), cfg.Mail.From)
	}
	return notify.NewSMTPSender(notify.SMTPConfig{
		Host:        cfg.SMTP.Host,
		Port:        cfg.SMTP.Port,
		Username:    cfg.SMTP.Username,
		Password:    cfg.SMTP.Password,
		From:        cfg.Mail.From,
		ImplicitTLS: cfg.SMTP.SSL,
		DialTimeout: cfg.Mail.Timeout,
	})
}

// newNotifier picks the delivery mode. The returned func drains pending deliveries.
func newNotifier(cfg *config.Config, logger *logger.Logger) (model.VerificationNotifier, func(context.Context) error) {
	sender := newMailSender(cfg)

	switch cfg.Mail.Mode {
	case config.MailModeSync:
		return notify.NewInline(sender, cfg.CodeTTL(), cfg.Mail.Timeout), func(context.Context) error { return nil }
	case config.MailModeQueue:
		q, err := notify.NewQueue(notify.QueueConfig{
			RedisURL:    cfg.Mail.QueueRedisURL,
			MaxRetry:    cfg.Mail.QueueMaxRetry,
			Concurrency: cfg.Mail.QueueConcurrency,
			CodeTTL:     cfg.CodeTTL(),
			Timeout:     cfg.Mail.Timeout,
		}, sender, logger)
		if err != nil {
			logger.Fatal("failed to create mail queue", "error", err)
		}
		if err := q.StartWorkers(); err != nil {
			logger.Fatal("failed to start mail queue", "error", err)
		}
		return q, func(context.Context) error { return q.Shutdown() }
	default:
		bg := notify.NewBackground(sender, cfg.CodeTTL(), cfg.Mail.Timeout, logger)
		return bg, bg.Wait
	}
}

func newExportService(ctx context.Context, cfg *config.Config, stores router.Stores, logger *logger.Logger) *service.Export {
	storageClient, err := storage.Connect(ctx, storage.Config{
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Bucket:    cfg.Storage.Bucket,
		UseSSL:    cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to initialize storage client", "error", err)
	}

	return service.NewExport(storageClient, map[string]service.ExportSource{
		"companies":   service.NewTableSource(stores.Companies),
		"directors":   service.NewTableSource(stores.Directors),
		"expanses":    service.NewTableSource(stores.Expenses),
		"workers":     service.NewTableSource(stores.Workers),
		"clients":     service.NewTableSource(stores.Clients),
		"cars":        service.NewTableSource(stores.Cars),
		"admissions":  service.NewTableSource(stores.Admissions),
		"accountants": service.NewTableSource(stores.Accountants),
		"drivers":     service.NewTableSource(stores.Drivers),
		"sellers":     service.NewTableSource(stores.Sellers),
		"lifeguards":  service.NewTableSource(stores.Lifeguards),
	}, logger)
}
