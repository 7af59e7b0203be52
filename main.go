// Command snsclone is a terminal client for the photo-sharing backend. It keeps the
// session token in a local SQLite file, so `snsclone login` once and every later
// command reuses the session until `snsclone logout`.
//
// `snsclone serve` runs an in-memory copy of the backend for local development.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/user/snsclone-go/api"
	"github.com/user/snsclone-go/app"
	"github.com/user/snsclone-go/config"
	"github.com/user/snsclone-go/tokenstore"
)

var (
	// Global flags
	verbose     bool
	metricsFile string

	cfg    *config.AppConfig
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "snsclone",
	Short: "Terminal client for the snsclone photo feed",
	Long: `snsclone signs in to the backend, shows the feed and lets you post,
comment, like and edit your profile.

The backend location and every other setting come from environment variables
(or a .env file in the working directory), e.g. API_BASE_URL and SESSION_DB_PATH.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load .env file. A missing file is fine; variables may be set directly.
		_ = godotenv.Load()

		var err error
		cfg, err = config.LoadConfig()
		if err != nil {
			return err
		}
		logger, err = newLogger(cfg.Log, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")
	rootCmd.PersistentFlags().StringVar(&metricsFile, "metrics-file", "", "write API client metrics to this file (Prometheus text format) on exit")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(registerCmd, loginCmd, logoutCmd)
	rootCmd.AddCommand(feedCmd, postCmd, commentCmd, likeCmd)
	rootCmd.AddCommand(profileCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// newLogger builds a production zap logger writing to stderr at the configured level.
func newLogger(lc *config.LogConfig, verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()

	level, err := zapcore.ParseLevel(lc.Level)
	if err != nil {
		return nil, err
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	switch lc.Format {
	case "json":
	case "console":
		zc.Encoding = "console"
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	default:
		return nil, fmt.Errorf("unknown log format %q", lc.Format)
	}
	return zc.Build()
}

// session is everything a client command needs.
type session struct {
	app     *app.App
	tokens  *tokenstore.SQLiteStore
	metrics *prometheus.Registry
}

// openSession opens the token store and builds the API client and app on top of it.
func openSession(ctx context.Context) (*session, error) {
	tokens, err := tokenstore.OpenSQLite(ctx, cfg.Session, logger)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	client := api.New(cfg.API, tokens,
		api.WithLogger(logger.Named("api")),
		api.WithMetrics(api.NewMetrics(reg)),
	)
	return &session{
		app:     app.New(client, tokens, nil, logger.Named("app")),
		tokens:  tokens,
		metrics: reg,
	}, nil
}

func (s *session) Close() {
	if metricsFile != "" {
		if err := prometheus.WriteToTextfile(metricsFile, s.metrics); err != nil {
			logger.Warn("failed to write metrics", zap.String("path", metricsFile), zap.Error(err))
		}
	}
	if err := s.tokens.Close(); err != nil {
		logger.Warn("failed to close session store", zap.Error(err))
	}
}

// withSession runs fn with an open session and closes it afterwards.
func withSession(cmd *cobra.Command, fn func(ctx context.Context, s *session) error) error {
	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(ctx, s)
}

// requireSignedIn restores the stored session or explains how to get one.
func requireSignedIn(ctx context.Context, a *app.App) error {
	outcome, err := a.Bootstrap(ctx)
	switch {
	case outcome == app.OutcomeSignedOut && err != nil:
		return err
	case outcome == app.OutcomeSignedOut:
		return fmt.Errorf("not signed in, run `snsclone login` first")
	case outcome == app.OutcomeSignInRequired:
		return fmt.Errorf("stored session is no longer valid, run `snsclone login` again: %w", err)
	}
	return err
}
