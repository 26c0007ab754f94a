// Package main is the entry point for Hackatime Wrapped.
// It loads configuration, starts the service manager and runs either the
// Bubble Tea program or one of the headless subcommands.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/j-veylop/hackatime-wrapped/internal/app"
	"github.com/j-veylop/hackatime-wrapped/internal/config"
	"github.com/j-veylop/hackatime-wrapped/internal/logger"
	"github.com/j-veylop/hackatime-wrapped/internal/services"
	"github.com/j-veylop/hackatime-wrapped/internal/ui/screens/deck"
	"github.com/j-veylop/hackatime-wrapped/internal/ui/screens/loading"
	"github.com/j-veylop/hackatime-wrapped/internal/ui/screens/login"
	"github.com/j-veylop/hackatime-wrapped/internal/version"
)

var summaryFormat string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "wrapped [user-id]",
		Short:         "Your Hackatime year in review, in the terminal",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runTUICmd,
	}

	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newSummaryCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <user-id>",
		Short: "Collect a year and write the summary image",
		Args:  cobra.ExactArgs(1),
		RunE:  runExportCmd,
	}
}

func newSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary <user-id>",
		Short: "Collect a year and print the summary as YAML or JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runSummaryCmd,
	}
	cmd.Flags().StringVarP(&summaryFormat, "format", "f", "yaml", "output format (yaml or json)")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Info())
		},
	}
}

// setup loads configuration, points the logger at the log file and starts
// the service manager. The returned cleanup closes both.
func setup() (*config.Config, *services.Manager, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logFile, err := logger.Init(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, nil, nil, err
	}
	logger.Info("starting", "version", version.Info(), "config", cfg.ConfigPath)

	svcManager, err := services.NewManager(cfg)
	if err != nil {
		_ = logFile.Close()
		return nil, nil, nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	cleanup := func() {
		if closeErr := svcManager.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: error closing services: %v\n", closeErr)
		}
		_ = logFile.Close()
	}
	return cfg, svcManager, cleanup, nil
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func runTUICmd(_ *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("stdout is not a terminal; use `wrapped export <user-id>` or `wrapped summary <user-id>` instead")
	}

	cfg, svcManager, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := signalContext()
	defer cancel()

	userID := cfg.UserID
	if len(args) == 1 {
		userID = args[0]
	}

	state := app.NewState(userID)
	model := app.NewModel(ctx, svcManager, state)
	model.SetScreen(app.ScreenLogin, login.New(state))
	model.SetScreen(app.ScreenLoading, loading.New(state))
	model.SetScreen(app.ScreenDeck, deck.New(state, cfg))
	if len(args) == 1 {
		model.AutoStart(userID)
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer (full terminal)
		tea.WithMouseCellMotion(), // Mouse drags navigate slides
		tea.WithContext(ctx),
	)

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}

func runExportCmd(cmd *cobra.Command, args []string) error {
	_, svcManager, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := signalContext()
	defer cancel()

	session, err := collect(ctx, svcManager, args[0], cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	path, err := svcManager.ExportSummary(session)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

func runSummaryCmd(cmd *cobra.Command, args []string) error {
	if summaryFormat != "yaml" && summaryFormat != "json" {
		return fmt.Errorf("unknown format %q (want yaml or json)", summaryFormat)
	}

	_, svcManager, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := signalContext()
	defer cancel()

	session, err := collect(ctx, svcManager, args[0], cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	return writeSummary(cmd.OutOrStdout(), services.NewSummary(session), summaryFormat)
}

// collect runs a session, printing progress to progressOut when it is a
// terminal.
func collect(ctx context.Context, svcManager *services.Manager, userID string, progressOut io.Writer) (*services.Session, error) {
	ch, _ := svcManager.Subscribe()

	showProgress := isTerminal(progressOut)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for event := range ch {
			if e, ok := event.(services.ProgressEvent); ok && showProgress {
				fmt.Fprintf(progressOut, "\rFetching %d/%d days", e.Done, e.Total)
			}
		}
	}()

	session, err := svcManager.StartSession(ctx, userID)
	svcManager.Unsubscribe(ch)
	<-done
	if showProgress {
		fmt.Fprintln(progressOut)
	}
	return session, err
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
