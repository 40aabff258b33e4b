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

	"github.com/ariebrainware/hospital-records/config"
	"github.com/ariebrainware/hospital-records/endpoint"
	"github.com/ariebrainware/hospital-records/middleware"
	"github.com/ariebrainware/hospital-records/migration"
	"github.com/ariebrainware/hospital-records/seed"
	"github.com/ariebrainware/hospital-records/util"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hospital-records",
		Short: "Hospital records API server",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg := config.LoadConfig()
			util.ConfigureLogger(util.LoggerConfig{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
		},
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(rateLimitCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Apply pending migrations and start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

// withDatabase opens the pool, runs fn and closes the pool again.
func withDatabase(fn func(db *gorm.DB) error) error {
	db, err := config.ConnectDatabase()
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() {
		if err := config.CloseDatabase(db); err != nil {
			log.Error().Err(err).Msg("failed to close database")
		}
	}()
	return fn(db)
}

func newRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORSMiddleware(cfg.CORSOrigins))
	router.Use(middleware.EndpointCallLogger())
	router.Use(middleware.DatabaseMiddleware(db))

	endpoint.RegisterRoutes(router, middleware.RateLimiter(middleware.RateLimitConfig{
		Limit:  cfg.RateLimitLimit,
		Window: cfg.RateLimitWindow,
	}))
	return router
}

func runServer() error {
	cfg := config.LoadConfig()

	return withDatabase(func(db *gorm.DB) error {
		if err := migration.Migrate(db); err != nil {
			return err
		}

		if _, err := config.ConnectRedis(); err != nil {
			log.Warn().Err(err).Msg("redis unavailable, rate limiting disabled")
		}
		defer func() {
			if err := config.CloseRedis(); err != nil {
				log.Error().Err(err).Msg("failed to close redis")
			}
		}()

		if cfg.RequestLogPersist {
			util.SetRequestLoggerDB(db)
		}

		gin.SetMode(cfg.GinMode)
		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.AppPort),
			Handler:           newRouter(cfg, db),
			ReadHeaderTimeout: 10 * time.Second,
		}

		serveErr := make(chan error, 1)
		go func() {
			log.Info().Str("addr", srv.Addr).Str("app", cfg.AppName).Msg("starting server")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serveErr <- err
			}
			close(serveErr)
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case err, ok := <-serveErr:
			if ok {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		case sig := <-quit:
			log.Info().Str("signal", sig.String()).Msg("shutting down server")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		log.Info().Msg("server stopped")
		return nil
	})
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(migration.Migrate)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the last applied migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(migration.RollbackLast)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(func(db *gorm.DB) error {
				statuses, err := migration.StatusOf(db)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%-45s %s\n", "ID", "STATUS")
				for _, s := range statuses {
					status := "pending"
					if s.Applied {
						status = "applied"
					}
					fmt.Fprintf(out, "%-45s %s\n", s.ID, status)
				}
				return nil
			})
		},
	})

	return cmd
}

func seedCmd() *cobra.Command {
	var (
		opts    seed.Options
		target  string
		baseURL string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the database with random medics, patients and treatments",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			switch target {
			case "http":
				_, err := seed.Run(ctx, seed.NewHTTPSink(baseURL), opts)
				return err
			case "db":
				return withDatabase(func(db *gorm.DB) error {
					if err := migration.Migrate(db); err != nil {
						return err
					}
					_, err := seed.Run(ctx, seed.DBSink{DB: db}, opts)
					return err
				})
			default:
				return fmt.Errorf("unknown seed target %q, use http or db", target)
			}
		},
	}

	cmd.Flags().IntVar(&opts.Medics, "medics", 100, "Number of medics to create")
	cmd.Flags().IntVar(&opts.Patients, "patients", 1000, "Number of patients to create, each with one treatment")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "Random seed, 0 picks one")
	cmd.Flags().StringVar(&target, "target", "http", "Where to write: http (running API) or db (direct)")
	cmd.Flags().StringVar(&baseURL, "base-url", "http://localhost:8000/", "API base URL for the http target")
	return cmd
}

func rateLimitCmd() *cobra.Command {
	var method, route, ip string

	cmd := &cobra.Command{
		Use:   "ratelimit",
		Short: "Manage write rate limit counters",
	}

	reset := &cobra.Command{
		Use:   "reset",
		Short: "Clear the current window of one client on one route",
		RunE: func(cmd *cobra.Command, args []string) error {
			rdb, err := config.ConnectRedis()
			if err != nil {
				return err
			}
			defer func() {
				if err := config.CloseRedis(); err != nil {
					log.Error().Err(err).Msg("failed to close redis")
				}
			}()

			if err := middleware.ResetRateLimit(cmd.Context(), rdb, strings.ToUpper(method), route, ip); err != nil {
				return err
			}
			log.Info().Str("method", method).Str("route", route).Str("ip", ip).Msg("rate limit reset")
			return nil
		},
	}
	reset.Flags().StringVar(&method, "method", http.MethodPost, "HTTP method of the limited route")
	reset.Flags().StringVar(&route, "route", "", "Route pattern as registered, e.g. /patient/")
	reset.Flags().StringVar(&ip, "ip", "", "Client IP")
	_ = reset.MarkFlagRequired("route")
	_ = reset.MarkFlagRequired("ip")

	cmd.AddCommand(reset)
	return cmd
}
