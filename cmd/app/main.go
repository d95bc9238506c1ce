package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sushihentaime/blogsphere/internal/blogservice"
	"github.com/sushihentaime/blogsphere/internal/commentservice"
	"github.com/sushihentaime/blogsphere/internal/common"
	"github.com/sushihentaime/blogsphere/internal/likeservice"
	"github.com/sushihentaime/blogsphere/internal/mailservice"
	"github.com/sushihentaime/blogsphere/internal/publicservice"
	"github.com/sushihentaime/blogsphere/internal/userservice"
)

type application struct {
	config         *Config
	logger         *slog.Logger
	userService    *userservice.UserService
	blogService    *blogservice.BlogService
	commentService *commentservice.CommentService
	likeService    *likeservice.LikeService
	publicService  *publicservice.PublicService
	mailService    *mailservice.MailService
	broker         *common.MessageBroker
	limiter        common.RateLimiter
	metrics        *common.Metrics
	errors         common.ErrorRecorder
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "blogsphere",
		Short:         "BlogSphere blogging platform API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", ".env", "path to the dotenv configuration file")

	root.AddCommand(newServeCommand(&configPath), newMigrateCommand(&configPath))

	return root
}

func newServeCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				slog.Error("failed to load configuration", slog.String("error", err.Error()))
				return err
			}

			logger := newLogger(cfg.Environment)

			if err := run(cmd.Context(), cfg, logger); err != nil {
				logger.Error("server stopped with error", slog.String("error", err.Error()))
				return err
			}
			return nil
		},
	}
}

func newMigrateCommand(configPath *string) *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			logger := newLogger(cfg.Environment)

			if err := common.MigrateUp(cfg.MigrationsPath, cfg.dsn()); err != nil {
				logger.Error("failed to apply migrations", slog.String("error", err.Error()))
				return err
			}
			logger.Info("migrations applied", slog.String("source", cfg.MigrationsPath))
			return nil
		},
	}

	var steps int
	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			logger := newLogger(cfg.Environment)

			if err := common.MigrateDown(cfg.MigrationsPath, cfg.dsn(), steps); err != nil {
				logger.Error("failed to roll back migrations", slog.String("error", err.Error()))
				return err
			}
			logger.Info("migrations rolled back", slog.Int("steps", steps))
			return nil
		},
	}
	downCmd.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")

	migrateCmd.AddCommand(upCmd, downCmd)

	return migrateCmd
}

func newLogger(environment string) *slog.Logger {
	if environment == "production" {
		return slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func run(ctx context.Context, cfg *Config, logger *slog.Logger) error {
	// Initialize the database
	db, err := common.NewDB(cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns, cfg.DBMaxIdleTime)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer common.CloseDB(db)

	app := &application{
		config:         cfg,
		logger:         logger,
		blogService:    blogservice.NewBlogService(db),
		commentService: commentservice.NewCommentService(db),
		likeService:    likeservice.NewLikeService(db),
		publicService:  publicservice.NewPublicService(db),
		metrics:        common.NewMetrics(),
	}

	// The broker is optional; without it registrations are not announced.
	var producer common.MessageProducer
	if cfg.RabbitMQHost != "" {
		URI := fmt.Sprintf("amqp://%s:%s@%s:%s/", cfg.RabbitMQUser, cfg.RabbitMQPassword, cfg.RabbitMQHost, cfg.RabbitMQPort)
		broker, err := common.NewMessageBroker(URI)
		if err != nil {
			return fmt.Errorf("connect to message broker: %w", err)
		}
		defer broker.Close()

		err = common.SetupUserExchange(broker)
		if err != nil {
			return fmt.Errorf("setup user exchange: %w", err)
		}

		app.broker = broker
		app.mailService = mailservice.NewMailService(broker, cfg.MailHost, cfg.MailUser, cfg.MailPassword, cfg.MailSender, cfg.MailPort, cfg.FrontendURL, logger)
		app.mailService.SendWelcomeEmail()
		producer = broker
	} else {
		logger.Warn("RABBITMQ_HOST not set, welcome emails are disabled")
	}

	tokens := userservice.NewTokenMaker(cfg.JWTSecret, cfg.JWTTTL)
	app.userService = userservice.NewUserService(db, producer, tokens, logger)

	// Rate limit counters live in redis when configured so that replicas share them.
	if cfg.RedisURL != "" {
		rdb, err := common.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		defer rdb.Close()
		app.limiter = common.NewRedisRateLimiter(rdb)
	} else {
		app.limiter = common.NewMemoryRateLimiter()
	}

	recorder, err := common.NewFileErrorRecorder(cfg.ErrorLogDir, logger)
	if err != nil {
		return fmt.Errorf("open error log: %w", err)
	}
	app.errors = recorder

	return app.serve()
}
