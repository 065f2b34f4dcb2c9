package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"respkv/internal/config"
	"respkv/internal/observability"
	"respkv/internal/server"
)

var (
	configPath  string
	addr        string
	bufferSize  int
	shards      int
	metricsAddr string
	logLevel    string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the RESP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(configPath, cmd.Flags())
		if err != nil {
			return err
		}

		logger, err := observability.InitLogger("respkv", cfg.LogLevel)
		if err != nil {
			return err
		}

		srv, err := server.NewServer(cfg, logger)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger.Info().
			Str("addr", cfg.Addr).
			Int("buffer_size", cfg.BufferSize).
			Int("shards", cfg.Shards).
			Str("metrics_addr", cfg.MetricsAddr).
			Msg("respkv starting")
		return srv.ListenAndServe(ctx)
	},
}

func init() {
	runCmd.Flags().StringVar(&configPath, "config", "", "config file (.toml, .yaml or .yml)")
	runCmd.Flags().StringVar(&addr, "addr", config.DefaultAddr, "server listen address")
	runCmd.Flags().IntVar(&bufferSize, "buffer-size", config.DefaultBufferSize, "bytes per read, i.e. the largest accepted frame")
	runCmd.Flags().IntVar(&shards, "shards", config.DefaultShards, "number of storage lock shards")
	runCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve /metrics on this address, disabled when empty")
	runCmd.Flags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (trace, debug, info, warn, error)")

	rootCmd.AddCommand(runCmd)
}

// loadConfig 先读配置文件，再用显式设置过的 flag 覆盖
func loadConfig(path string, flags *pflag.FlagSet) (config.Config, error) {
	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	if flags.Changed("addr") {
		cfg.Addr = addr
	}
	if flags.Changed("buffer-size") {
		cfg.BufferSize = bufferSize
	}
	if flags.Changed("shards") {
		cfg.Shards = shards
	}
	if flags.Changed("metrics-addr") {
		cfg.MetricsAddr = metricsAddr
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}

	if err := config.Validate(cfg); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
