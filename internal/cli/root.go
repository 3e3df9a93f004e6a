package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/xx-template/xx-cli/internal/branding"
	"github.com/xx-template/xx-cli/internal/config"
	"github.com/xx-template/xx-cli/internal/ui"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var verbose bool

// Set up by the root PersistentPreRunE for every command.
var (
	printer *ui.Printer
	logger  = slog.New(slog.NewTextHandler(io.Discard, nil))
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` scaffolds new projects from a catalog of starter templates.
It clones the template repository, strips its git history, and renames the
project in package.json.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configErr := config.Load()

		printer = ui.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), config.Color())
		if verbose {
			logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
		} else {
			logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		}

		// A broken config file should not block listing or scaffolding;
		// defaults and environment overrides still apply.
		if configErr != nil {
			printer.Error("warning: %v (using defaults)", configErr)
		}
		logger.Debug("configuration loaded",
			"file", config.FilePath(),
			config.KeyCloneMethod, config.CloneMethod(),
			config.KeyCloneDepth, config.CloneDepth())
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging on stderr")
}

// reportedError marks an error whose message has already been shown to the
// user, so Execute only needs to turn it into a non-zero exit.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	return &reportedError{err: err}
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	rootCmd.Version = version

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		var re *reportedError
		if !errors.As(err, &re) {
			fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		}
	}
	return err
}
