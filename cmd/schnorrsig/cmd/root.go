package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/canopy-network/canopy/lib/schnorr"
	"github.com/canopy-network/canopy/lib/schnorr/metrics"
)

const (
	appName   = "schnorrsig"
	envPrefix = "SCHNORRSIG"

	flagConfig      = "config"
	flagLogLevel    = "log-level"
	flagMetricsAddr = "metrics-addr"
)

type contextKey struct{}

// env is what every subcommand needs from the root command
type env struct {
	v      *viper.Viper
	logger schnorr.Logger
	audit  schnorr.AuditEventHandler
}

func fromCmd(cmd *cobra.Command) *env {
	if e, ok := cmd.Context().Value(contextKey{}).(*env); ok {
		return e
	}
	return &env{v: viper.New(), logger: schnorr.NopLogger{}, audit: &schnorr.NullAuditHandler{}}
}

// NewRootCmd builds the schnorrsig command tree. Every flag can also be set
// in schnorrsig.yaml or through SCHNORRSIG_<FLAG> environment variables.
func NewRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:           appName,
		Short:         "Schnorr signatures over Schnorr groups and elliptic curves",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			if err := readConfig(v); err != nil {
				return err
			}

			logger, err := newLogger(cmd, v.GetString(flagLogLevel))
			if err != nil {
				return err
			}
			e := &env{v: v, logger: logger, audit: &schnorr.NullAuditHandler{}}

			if addr := v.GetString(flagMetricsAddr); addr != "" {
				e.audit = &metrics.AuditHandler{}
				serveMetrics(cmd.Context(), addr, logger)
			}
			cmd.SetContext(context.WithValue(cmd.Context(), contextKey{}, e))
			return nil
		},
	}
	rootCmd.SetContext(context.Background())

	rootCmd.PersistentFlags().String(flagConfig, "", "Config file (default ./schnorrsig.yaml if present)")
	rootCmd.PersistentFlags().String(flagLogLevel, "info", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String(flagMetricsAddr, "", "Serve prometheus metrics on this address, e.g. :9090")

	rootCmd.AddCommand(
		newCurvesCmd(),
		newParamsCmd(),
		newDemoCmd(),
	)
	return rootCmd
}

func readConfig(v *viper.Viper) error {
	if file := v.GetString(flagConfig); file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(appName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func newLogger(cmd *cobra.Command, level string) (schnorr.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("parse --%s: %w", flagLogLevel, err)
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: lvl})
	return schnorr.NewSlogLogger(slog.New(handler)).With("app", appName), nil
}

// serveMetrics serves /metrics on addr until ctx is done. The returned
// channel is closed once the server has stopped.
func serveMetrics(ctx context.Context, addr string, logger schnorr.Logger) <-chan struct{} {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	done := make(chan struct{})
	go func() {
		defer close(done)
		logger.Info(ctx, "serving metrics", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(ctx, "metrics server stopped", "error", err)
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn(ctx, "metrics server shutdown", "error", err)
		}
	}()
	return done
}
