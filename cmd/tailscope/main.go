package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	clientcmd "github.com/tailscope/tailscope/internal/cmd/client"
	serverrun "github.com/tailscope/tailscope/internal/cmd/server"
	cfgpkg "github.com/tailscope/tailscope/internal/config"
	logpkg "github.com/tailscope/tailscope/pkg/log"
)

func main() {
	// Respect TAILSCOPE_LOG_LEVEL for CLI output as well as server start.
	level := os.Getenv("TAILSCOPE_LOG_LEVEL")
	parsed, err := logpkg.ParseLevel(level)
	if err != nil || level == "" {
		parsed = logpkg.InfoLevel
	}
	logger := logpkg.NewLogger(
		logpkg.WithLevel(parsed),
		logpkg.WithFormatter(&logpkg.TextFormatter{}),
		logpkg.WithOutput(logpkg.NewConsoleOutput()),
	)
	logpkg.RedirectStdLog(logger)

	rootCmd := &cobra.Command{
		Use:   "tailscope",
		Short: "tailscope log monitoring CLI",
		Long:  "tailscope serves and queries log files over HTTP. This CLI manages the server and basic operations.",
	}

	// server start
	serverCmd := &cobra.Command{Use: "server", Short: "Server commands"}
	serverStartCmd := &cobra.Command{
		Use:     "start",
		Short:   "Start the tailscope HTTP server",
		Aliases: []string{"run"},
		RunE: func(cmd *cobra.Command, args []string) error {
			logDir, _ := cmd.Flags().GetString("log-dir")
			httpAddr, _ := cmd.Flags().GetString("http")
			configPath, _ := cmd.Flags().GetString("config")
			logLevel, _ := cmd.Flags().GetString("log-level")
			logFormat, _ := cmd.Flags().GetString("log-format")

			cfg := cfgpkg.Default()
			if configPath != "" {
				var err error
				if cfg, err = cfgpkg.Load(configPath); err != nil {
					return fmt.Errorf("load config: %w", err)
				}
			}
			cfgpkg.FromEnv(&cfg)

			if logLevel != "" {
				_ = os.Setenv("TAILSCOPE_LOG_LEVEL", logLevel)
			}
			if logFormat != "" {
				_ = os.Setenv("TAILSCOPE_LOG_FORMAT", logFormat)
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			if err := serverrun.Run(ctx, serverrun.Options{
				LogDir:   logDir,
				HTTPAddr: httpAddr,
				Config:   cfg,
			}); err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		},
	}
	serverStartCmd.Flags().String("log-dir", "", "Log directory to serve (default: /var/log if present, else ./var/log)")
	serverStartCmd.Flags().String("http", "", "HTTP listen address (default :8080)")
	serverStartCmd.Flags().String("config", os.Getenv("TAILSCOPE_CONFIG"), "Path to a JSON config file")
	serverStartCmd.Flags().String("log-level", os.Getenv("TAILSCOPE_LOG_LEVEL"), "Log level: debug|info|warn|error")
	serverStartCmd.Flags().String("log-format", os.Getenv("TAILSCOPE_LOG_FORMAT"), "Log format: text|json (default text)")
	serverCmd.AddCommand(serverStartCmd)
	rootCmd.AddCommand(serverCmd)

	// client command groups
	rootCmd.AddCommand(clientcmd.NewLogsCommand(apiURL))
	rootCmd.AddCommand(clientcmd.NewServersCommand(apiURL))
	rootCmd.AddCommand(clientcmd.NewAggregateCommand(apiURL))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func apiURL() string {
	if v := os.Getenv("TAILSCOPE_HTTP"); v != "" {
		return v
	}
	return "http://127.0.0.1:8080"
}
