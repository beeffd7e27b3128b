package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"m42hub/internal/authz"
	"m42hub/internal/config"
	"m42hub/internal/handler"
	"m42hub/internal/model"
	"m42hub/internal/pkg"
	"m42hub/internal/repository/mysql"
	"m42hub/internal/repository/redis"
	"m42hub/internal/router"
	"m42hub/internal/service"
	"m42hub/internal/storage"
)

// bootstrap loads config, builds the logger and opens MySQL.
func bootstrap() (*config.Config, *zap.Logger, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	log, err := pkg.NewLogger(cfg.Logger.Level, cfg.Logger.Format)
	if err != nil {
		return nil, nil, nil, err
	}
	db, err := mysql.InitDB(mysql.Options{
		DSN:             cfg.Database.GetDSN(),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        gormLogLevel(cfg.Database.LogLevel),
	})
	if err != nil {
		_ = log.Sync()
		return nil, nil, nil, err
	}
	return cfg, log, db, nil
}

func gormLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer log.Sync()
			if err := mysql.AutoMigrate(db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			log.Info("migration finished")
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert member statuses, permissions and system roles",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer log.Sync()
			if err := mysql.Seed(cmd.Context(), db); err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			log.Info("seed finished")
			return nil
		},
	}
}

func serveCmd() *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "run migrations and seed before serving")
	return cmd
}

func serve(migrate bool) error {
	cfg, log, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if migrate {
		if err := mysql.AutoMigrate(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		if err := mysql.Seed(ctx, db); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}

	rdb, err := redis.NewClient(redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	defer rdb.Close()

	// persistence
	tx := &mysql.TxManager{DB: db}
	projectRepo := &mysql.ProjectRepository{DB: db}
	memberRepo := &mysql.MemberRepository{DB: db}
	userRepo := &mysql.UserRepository{DB: db}
	outboxRepo := &mysql.OutboxRepository{DB: db}
	systemRoleRepo := &mysql.SystemRoleRepository{DB: db}
	roleRepo := &mysql.LookupRepository[model.Role]{DB: db}
	tokens := &redis.TokenRepository{Client: rdb, TTL: cfg.JWT.AccessTTL, RefreshTTL: cfg.JWT.RefreshTTL}

	jwtManager := pkg.NewJWTManager(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	hasher := pkg.BcryptHasher{}

	uploader, err := newUploader(ctx, cfg.Image)
	if err != nil {
		return err
	}

	enforcer, err := authz.NewEnforcer(systemRoleRepo, log)
	if err != nil {
		return err
	}
	if err := enforcer.LoadPolicies(ctx); err != nil {
		return err
	}

	// services
	authSvc := service.NewAuthService(userRepo, systemRoleRepo, hasher, tokens, jwtManager)
	userSvc := service.NewUserService(tx, userRepo, roleRepo, authSvc, hasher, tokens, uploader, log)
	projectSvc := service.NewProjectService(tx, projectRepo, memberRepo)
	memberSvc := service.NewMemberService(tx, memberRepo, projectRepo, outboxRepo)

	sender, closeSender := newSender(cfg, userRepo, projectRepo, log)
	defer closeSender()
	relayer := service.NewOutboxRelayer(outboxRepo, sender, cfg.Outbox.Interval, cfg.Outbox.BatchSize, cfg.Outbox.MaxRetry, log)
	stopRelayer := startRelayer(ctx, relayer)
	// deferred last so it runs before closeSender and rdb.Close
	defer stopRelayer()

	gin.SetMode(cfg.Server.Mode)
	r := router.InitRouter(router.Deps{
		Log:         log,
		Parser:      jwtManager,
		Sessions:    tokens,
		Permissions: enforcer,

		Auth:       handler.NewAuthHandler(authSvc, log),
		User:       handler.NewUserHandler(userSvc, cfg.Image.MaxSize, log),
		Project:    handler.NewProjectHandler(projectSvc, log),
		Member:     handler.NewMemberHandler(memberSvc, log),
		Status:     handler.NewStatusHandler(service.NewLookupService[model.Status](&mysql.LookupRepository[model.Status]{DB: db}), log),
		Complexity: handler.NewComplexityHandler(service.NewLookupService[model.Complexity](&mysql.LookupRepository[model.Complexity]{DB: db}), log),
		Tool:       handler.NewToolHandler(service.NewLookupService[model.Tool](&mysql.LookupRepository[model.Tool]{DB: db}), log),
		Role:       handler.NewRoleHandler(service.NewLookupService[model.Role](roleRepo), log),
		Topic:      handler.NewTopicHandler(service.NewTopicService(mysql.NewTopicRepository(db)), log),

		AuthPerMinute: cfg.RateLimit.AuthPerMinute,
		AuthBurst:     cfg.RateLimit.AuthBurst,
	})

	srv := &http.Server{
		Addr:              cfg.Server.GetAddress(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	}
	log.Info("shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	}
	log.Info("server stopped")
	return nil
}

type runner interface {
	Run(ctx context.Context)
}

// startRelayer runs r in the background. The returned func cancels it and
// blocks until Run has returned.
func startRelayer(ctx context.Context, r runner) func() {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		r.Run(ctx)
	}()
	return func() {
		cancel()
		<-done
	}
}

func newUploader(ctx context.Context, cfg config.ImageConfig) (service.ImageUploader, error) {
	if cfg.Provider == "minio" {
		client, err := storage.NewClient(storage.Config{
			Endpoint:        cfg.Minio.Endpoint,
			AccessKeyID:     cfg.Minio.AccessKeyID,
			SecretAccessKey: cfg.Minio.SecretAccessKey,
			UseSSL:          cfg.Minio.UseSSL,
			Bucket:          cfg.Minio.Bucket,
			PublicURL:       cfg.Minio.PublicURL,
		})
		if err != nil {
			return nil, fmt.Errorf("minio: %w", err)
		}
		if err := client.EnsureBucket(ctx); err != nil {
			return nil, fmt.Errorf("minio bucket: %w", err)
		}
		return client, nil
	}
	return pkg.NewImgBBClient(cfg.ImgBBAPIKey), nil
}

// newSender assembles the outbox delivery chain from the enabled transports.
func newSender(cfg *config.Config, users service.UserStore, projects service.ProjectStore, log *zap.Logger) (service.Sender, func()) {
	senders := []service.Sender{service.LogSender(log)}
	closeFn := func() {}

	if cfg.Kafka.Enabled {
		producer := pkg.NewKafkaProducer(pkg.KafkaConfig{Brokers: cfg.Kafka.Brokers, Topic: cfg.Kafka.Topic})
		senders = append(senders, service.KafkaSender(producer))
		closeFn = func() {
			if err := producer.Close(); err != nil {
				log.Warn("close kafka producer", zap.Error(err))
			}
		}
	}
	if cfg.SMTP.Enabled {
		mail := &service.MailSender{
			SMTP: pkg.SMTPConfig{
				Host:     cfg.SMTP.Host,
				Port:     cfg.SMTP.Port,
				Username: cfg.SMTP.Username,
				Password: cfg.SMTP.Password,
				From:     cfg.SMTP.From,
			},
			Users:    users,
			Projects: projects,
		}
		senders = append(senders, mail.Send)
	}
	return service.ChainSenders(senders...), closeFn
}
