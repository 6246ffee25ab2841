package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/personavault/vaultshell/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, app.ErrInvocationFailed) {
			fmt.Fprintf(os.Stderr, "vaultshell: %v\n", err)
		}
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var opts app.Options

	root := &cobra.Command{
		Use:           "vaultshell",
		Short:         "Show the PersonaVault backend greeting",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Out = cmd.OutOrStdout()
			return app.Run(cmd.Context(), opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.config/vaultshell/config.toml)")
	flags.StringVar(&opts.BackendURL, "backend", "", "backend URL or host:port (overrides backend_url)")
	flags.StringVar(&opts.LogLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&opts.PrefsPath, "prefs", "", "preferences file (default ~/.config/vaultshell/prefs.toml)")

	root.AddCommand(newInvokeCmd(&opts), newLogsCmd(&opts))
	return root
}

func newInvokeCmd(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "invoke",
		Short: "Call the backend once and print the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Out = cmd.OutOrStdout()
			_, err := app.Invoke(cmd.Context(), *opts)
			return err
		},
	}
}

func newLogsCmd(opts *app.Options) *cobra.Command {
	var lines int
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the end of the diagnostic log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Out = cmd.OutOrStdout()
			return app.Logs(*opts, lines)
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "number of lines to show (0 for all)")
	return cmd
}
