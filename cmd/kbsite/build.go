// cmd/kbsite/build.go
package main

import (
	"errors"
	"fmt"
	"kbsite/internal/builder"
	"kbsite/internal/config"
	"kbsite/internal/records"
	"kbsite/internal/util"
	"kbsite/internal/watch"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) buildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Generate all pages once",
		Long: `Generate index, about, services, awards, testimonials, faqs, help and
contact pages plus a .nojekyll marker.

Exits with status 2 when some pages failed; the others are still written.`,
		Args: cobra.NoArgs,
		RunE: a.runBuild,
	}
}

func (a *app) watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Build, then rebuild whenever a data file changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}
			rebuild := func() error {
				_, err := a.build(cfg)
				return err
			}
			if err := rebuild(); err != nil && !errors.Is(err, builder.ErrBuildIncomplete) {
				return err
			}
			dirs := watch.Dirs(cfg.Root)
			if len(dirs) == 0 {
				return fmt.Errorf("no data folders found under %s", cfg.Root)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Watching for changes. Press Ctrl+C to stop.")
			return watch.Run(cmd.Context(), dirs, rebuild, a.logger)
		},
	}
}

func (a *app) runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := a.loadConfig(cmd)
	if err != nil {
		return err
	}
	report, err := a.build(cfg)
	if err != nil && !errors.Is(err, builder.ErrBuildIncomplete) {
		return err
	}

	out := cmd.OutOrStdout()
	written := len(report.Pages) - len(report.Failed())
	fmt.Fprintf(out, "Generated %d of %d pages in %s\n", written, len(report.Pages), cfg.Output)
	for _, p := range report.Failed() {
		fmt.Fprintf(out, "  failed: %s: %v\n", p.File, p.Err)
	}
	return err
}

func (a *app) build(cfg config.SiteConfig) (builder.Report, error) {
	return builder.Build(builder.Options{
		Root:   cfg.Root,
		Output: cfg.Output,
		Site:   cfg,
		Logger: a.logger,
	})
}

// loadConfig discovers the repository root and resolves the configuration
// against it. Relative output paths are taken relative to the root.
func (a *app) loadConfig(cmd *cobra.Command) (config.SiteConfig, error) {
	root, err := a.discoverRoot()
	if err != nil {
		return config.SiteConfig{}, err
	}
	cfg, err := config.Load(a.configFile, root, cmd.Flags())
	if err != nil {
		return config.SiteConfig{}, err
	}
	if !filepath.IsAbs(cfg.Output) {
		cfg.Output = filepath.Join(cfg.Root, cfg.Output)
	}
	a.logger.Debug("resolved configuration",
		zap.String("root", cfg.Root),
		zap.String("output", cfg.Output),
		zap.String("repository", cfg.Repository),
		zap.String("help_renderer", cfg.HelpRenderer))
	return cfg, nil
}

// discoverRoot returns the explicit --root, else the first directory holding a
// marker folder found walking up from the binary and then from the working
// directory, else the working directory.
func (a *app) discoverRoot() (string, error) {
	if a.root != "" {
		abs, err := filepath.Abs(a.root)
		if err != nil {
			return "", fmt.Errorf("invalid --root: %w", err)
		}
		if !util.IsDir(abs) {
			return "", fmt.Errorf("root %s is not a directory", abs)
		}
		return abs, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("could not determine working directory: %w", err)
	}
	if root, ok := records.FindRoot([]string{util.ExecutableDir(), cwd}, rootSearchDepth); ok {
		a.logger.Debug("discovered repository root", zap.String("root", root))
		return root, nil
	}
	a.logger.Warn("no data folders found, using working directory", zap.String("root", cwd))
	return cwd, nil
}
