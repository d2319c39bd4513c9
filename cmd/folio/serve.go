package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Zachkp/folio/internal/config"
	"github.com/Zachkp/folio/internal/contact"
	"github.com/Zachkp/folio/internal/server"
	"github.com/Zachkp/folio/internal/sources"
	"github.com/Zachkp/folio/internal/tracking"
)

const (
	shutdownTimeout = 10 * time.Second
	cleanupInterval = 24 * time.Hour
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the portfolio site",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("port") {
			appConfig.Port = servePort
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return runServe(ctx, appConfig)
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8080, "port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context, cfg config.Config) error {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	data, err := loadDataset(cfg)
	if err != nil {
		return err
	}

	salt, err := tracking.NewSalt()
	if err != nil {
		return err
	}

	var tracker *tracking.Store
	if cfg.DatabasePath != "" {
		tracker, err = tracking.Open(cfg.DatabasePath, salt, logger)
		if err != nil {
			return err
		}
		defer tracker.Close()
		cleanupCtx, cancel := context.WithCancel(ctx)
		cleanupDone := make(chan struct{})
		go func() {
			defer close(cleanupDone)
			runCleanup(cleanupCtx, tracker)
		}()
		defer func() {
			cancel()
			<-cleanupDone
		}()
		logger.Info("visitor tracking enabled with hashed IP addresses", zap.String("db", cfg.DatabasePath))
	}

	client := &http.Client{Timeout: cfg.HTTPTimeout}
	live := sources.NewAggregator(
		sources.NewGitHub(client, "", cfg.GitHubUser, cfg.GitHubToken),
		sources.NewTelegramScraper(client, "", cfg.TelegramChannel, logger),
		sources.NewPyPI(client, "", cfg.PyPIPackage),
		cfg.LiveTTL,
		logger,
	)

	mailer := contact.NewMailer(cfg.SMTP, nil, logger)
	if !mailer.Configured() {
		logger.Warn("SMTP credentials not configured, contact form will reject messages")
	}
	if cfg.Admin.Password == "" {
		logger.Warn("admin password not set, admin area disabled")
	}

	srv, err := server.New(server.Deps{
		Config:  cfg,
		Data:    data,
		Live:    live,
		Tracker: tracker,
		Mailer:  mailer,
		Logger:  logger,
		Salt:    salt,
	})
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving portfolio", zap.String("addr", cfg.Addr()))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

// runCleanup purges expired visitor rows at startup and then daily.
func runCleanup(ctx context.Context, tracker *tracking.Store) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for {
		if _, err := tracker.Cleanup(ctx); err != nil && ctx.Err() == nil {
			logger.Warn("error cleaning up old visitor data", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
