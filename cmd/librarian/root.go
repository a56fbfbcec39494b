package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/FlamingoLogic/chat-markdown-app/internal/config"
	libSvc "github.com/FlamingoLogic/chat-markdown-app/internal/domain/services/library"
	"github.com/FlamingoLogic/chat-markdown-app/internal/repository"
	"github.com/FlamingoLogic/chat-markdown-app/internal/service/library"

	"github.com/spf13/cobra"
)

var (
	configFile string
	verbose    bool

	// set by PersistentPreRunE for every subcommand
	app *librarian
)

// librarian holds what every subcommand needs
type librarian struct {
	cfg       *config.Config
	backend   *repository.Backend
	tree      libSvc.TreeManager
	logger    *slog.Logger
	logCloser io.Closer
}

func (a *librarian) close() {
	if a == nil {
		return
	}
	if a.backend != nil {
		a.backend.Close()
	}
	if a.logCloser != nil {
		a.logCloser.Close()
	}
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "librarian",
	Short: "Operate the document library store",
	Long: `librarian seeds, resets, prints and bulk-imports the document library
using the same configuration and persistence backend as the server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}
		if verbose {
			cfg.LogLevel = "debug"
		} else if cfg.LogLevel == "" {
			cfg.LogLevel = "warn"
		}

		logger, closer, err := config.NewLogger(cfg, os.Stderr, "librarian")
		if err != nil {
			return err
		}

		backend, err := repository.Open(cmd.Context(), cfg, logger)
		if err != nil {
			closer.Close()
			return fmt.Errorf("open %s backend: %w", cfg.Backend, err)
		}

		defaults, err := library.LoadDefaults()
		if err != nil {
			backend.Close()
			closer.Close()
			return err
		}
		tree, err := library.NewTreeManager(backend.Gateway, backend.TxManager, defaults, logger)
		if err != nil {
			backend.Close()
			closer.Close()
			return err
		}

		app = &librarian{cfg: cfg, backend: backend, tree: tree, logger: logger, logCloser: closer}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		app.close()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		app.close()
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML config file (defaults to environment variables)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}
