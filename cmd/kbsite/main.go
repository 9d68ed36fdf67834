// cmd/kbsite/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"kbsite/internal/builder"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	exitOK         = 0
	exitSetup      = 1
	exitIncomplete = 2

	// rootSearchDepth bounds how many directories are checked when walking up
	// from the binary or the working directory.
	rootSearchDepth = 5
)

// app holds the global flag values and the logger shared by all commands.
type app struct {
	configFile string
	root       string
	verbose    bool

	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "kbsite",
		Short: "Build a static business site from structured data files",
		Long: `kbsite turns a repository of JSON, YAML and markdown business records
(organization, services, reviews, FAQs, help articles, locations, awards)
into eight static HTML pages ready for GitHub Pages.

Run without a command to build.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(a.verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
		RunE: a.runBuild,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&a.configFile, "config", "c", "", "Config file (default: kbsite.yaml in the repository root)")
	pf.StringVarP(&a.root, "root", "r", "", "Repository root (default: discovered from the binary or working directory)")
	pf.StringP("output", "o", "", "Output directory (default: the repository root)")
	pf.String("repository", "", "owner/name slug used for raw file links and the fallback site name (or set GITHUB_REPOSITORY)")
	pf.String("branch", "main", "Branch used in raw file links")
	pf.String("help-renderer", "lines", `Help article renderer: "lines" or "markdown"`)
	pf.String("theme-color", "#2c3e50", "Value of the theme-color meta tag")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		a.buildCmd(),
		a.watchCmd(),
		a.newCmd(),
		a.addCmd(),
	)
	return rootCmd
}

// newLogger writes human-readable logs to stderr, at debug level when verbose.
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.DisableStacktrace = true
	cfg.Sampling = nil
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

// exitCode maps a command error to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, builder.ErrBuildIncomplete):
		return exitIncomplete
	default:
		return exitSetup
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "kbsite:", err)
	}
	os.Exit(exitCode(err))
}
