// Package cli wires the console together behind the icli command.
package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Gold-Bull/icli/internal/config"
	"github.com/Gold-Bull/icli/internal/console"
	"github.com/Gold-Bull/icli/internal/executor"
	"github.com/Gold-Bull/icli/internal/history"
	"github.com/Gold-Bull/icli/internal/logging"
)

// Version is set at build time.
var Version = "dev"

var (
	debug       bool
	historyFile string
	exitMessage string
)

var rootCmd = &cobra.Command{
	Use:           "icli",
	Short:         "Interactive command console",
	Long:          "icli reads commands line by line and dispatches each one through a chain of executors: built-ins first, then the platform shell. Lines ending in \" \\\\\" continue on the next line.",
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runConsole,
}

func init() {
	rootCmd.Flags().BoolVar(&debug, "debug", false, "Enable verbose debug output")
	rootCmd.Flags().StringVar(&historyFile, "history-file", "", "History file path (default ~/.console-history)")
	rootCmd.Flags().StringVar(&exitMessage, "exit-message", "", "Message written to stderr on exit")
	rootCmd.SetVersionTemplate("icli version {{.Version}}\n")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func runConsole(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if historyFile != "" {
		cfg.HistoryFile, err = config.ExpandHome(historyFile)
		if err != nil {
			return err
		}
	}
	if debug {
		cfg.Debug = true
	}

	log := logging.New(os.Stderr, cfg.Debug)

	store := history.NewStore(cfg.HistoryFile, cfg.HistoryLimit)
	if err := store.Load(); err != nil {
		log.Warn().Err(err).Msg("history not loaded")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	builtin := executor.NewBuiltin(os.Stdout, store)
	shell := executor.NewShell(os.Stdout, os.Stderr, log)
	chain := executor.NewDefaultChain(builtin, shell)

	var reader console.LineReader
	if console.IsStdinTTY() {
		reader = console.NewLinerReader(store.Entries(), builtin.Commands())
	} else {
		reader = console.NewScannerReader(os.Stdin, os.Stdout)
	}
	defer reader.Close()

	c := console.New(console.Options{
		Reader:  reader,
		Chain:   chain,
		History: store,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Log:     log,
	})

	runErr := c.Run(ctx, exitMessage)

	// Best-effort save, even when the loop ended with an error.
	if err := store.Save(); err != nil {
		log.Warn().Err(err).Msg("history not saved")
	}
	return runErr
}
