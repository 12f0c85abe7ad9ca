// Package cli implements the adminctl command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tgstore/adminctl"
	"github.com/tgstore/adminctl/cmd/adminctl/cli/config"
)

// Build information set via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Global flags.
var (
	server  string
	token   string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "adminctl",
	Short: "Manage product media for the storefront bot",
	Long: `Adminctl is a CLI for the e-commerce Telegram-bot storefront's admin API.

It uploads product media (an image and/or a video) with live transfer
progress. Transfers run strictly in order; a failed image upload skips
the video and the save must be re-triggered.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&server, "server", "", "Admin API base URL (or ADMINCTL_SERVER)")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "Admin API token (or ADMINCTL_TOKEN)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose debug logging")
	rootCmd.PersistentFlags().String("progress", "auto", "Progress display mode (auto, tty, plain)")
	//nolint:errcheck // flag is defined one line up
	viper.BindPFlag("progress", rootCmd.PersistentFlags().Lookup("progress"))
	rootCmd.Version = version

	cobra.OnInitialize(initConfig)
}

// initConfig wires viper: env vars with the ADMINCTL_ prefix plus an
// optional config file at the XDG config path.
func initConfig() {
	viper.SetEnvPrefix("adminctl")
	viper.AutomaticEnv()

	if dir, err := config.Dir(); err == nil {
		viper.AddConfigPath(dir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		_ = viper.ReadInConfig() // missing config file is fine
	}
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, formatError(err))
	}
	return err
}

// newClient creates an adminctl client with configured options.
func newClient(sink adminctl.Sink) (*adminctl.Client, error) {
	base := server
	if base == "" {
		base = viper.GetString("server")
	}
	if base == "" {
		return nil, errors.New("no server configured (use --server or ADMINCTL_SERVER)")
	}
	tok := token
	if tok == "" {
		tok = viper.GetString("token")
	}

	opts := []adminctl.ClientOption{
		adminctl.WithSink(sink),
	}
	if verbose {
		opts = append(opts, adminctl.WithLogger(
			slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})),
		))
	}
	return adminctl.NewClient(base, tok, opts...)
}

// signalContext returns a context that is canceled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}

// formatError converts adminctl errors to user-friendly messages.
func formatError(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, adminctl.ErrUnauthorized):
		return "Error: authentication failed (check your admin token)"
	case errors.Is(err, adminctl.ErrNotFound):
		return "Error: product not found"
	case errors.Is(err, adminctl.ErrUnsupportedMedia):
		return fmt.Sprintf("Error: %v", err)
	case errors.Is(err, adminctl.ErrSuperseded):
		return "Error: upload superseded by a newer job"
	case errors.Is(err, context.Canceled):
		return "Error: operation canceled"
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}
