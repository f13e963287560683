package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/postfmt/ansi"
	"github.com/charmbracelet/postfmt/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Short:   "Serve post formatting over HTTP",
	Long:    paragraph(fmt.Sprintf("\n%s formatted posts and spoiler state over HTTP. Settings are read from the server section of the config file or POSTFMT_SERVER_* variables.", keyword("Serve"))),
	Example: paragraph("postfmt serve\npostfmt serve --addr 127.0.0.1:9000"),
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := serverConfig()
		if err != nil {
			return err
		}

		f, err := newFormatter()
		if err != nil {
			return err
		}

		logger := log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "postfmt",
		})

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return server.New(f, logger, cfg).ListenAndServe(ctx)
	},
}

// serverConfig reads the server settings from viper on top of the defaults.
func serverConfig() (server.Config, error) {
	cfg := server.DefaultConfig()
	if v := viper.GetString("server.addr"); v != "" {
		cfg.Addr = v
	}
	if v := viper.GetDuration("server.read_timeout"); v > 0 {
		cfg.ReadTimeout = v
	}
	if v := viper.GetDuration("server.write_timeout"); v > 0 {
		cfg.WriteTimeout = v
	}
	if v := viper.GetDuration("server.idle_timeout"); v > 0 {
		cfg.IdleTimeout = v
	}
	if v := viper.GetInt64("server.max_body_bytes"); v > 0 {
		cfg.MaxBodyBytes = v
	}
	if v := viper.GetInt("server.width"); v > 0 {
		cfg.Width = v
	}
	if v := viper.GetString("server.style"); v != "" {
		cfg.Style = v
	}
	if _, err := ansi.StyleFor(cfg.Style); err != nil {
		return cfg, fmt.Errorf("invalid server style %q: %w", cfg.Style, err)
	}
	return cfg, nil
}

func init() {
	serveCmd.Flags().String("addr", "", "address to listen on (default :8080)")
	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
	_ = viper.BindEnv("server.addr", "POSTFMT_SERVER_ADDR")
	_ = viper.BindEnv("server.style", "POSTFMT_SERVER_STYLE")
	_ = viper.BindEnv("server.width", "POSTFMT_SERVER_WIDTH")
	_ = viper.BindEnv("server.max_body_bytes", "POSTFMT_SERVER_MAX_BODY_BYTES")
}
