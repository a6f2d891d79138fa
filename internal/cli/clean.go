package cli

import (
	"fmt"

	"github.com/pacsweep/pacsweep/internal/action"
	"github.com/pacsweep/pacsweep/internal/catalog"
	"github.com/pacsweep/pacsweep/internal/config"
	"github.com/pacsweep/pacsweep/internal/models"
	"github.com/pacsweep/pacsweep/internal/prune"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type cleanOptions struct {
	uninstalled bool
	excess      bool
	del         bool
	keep        int
	cacheDir    string
	dbDir       string
}

// NewCleanCmd creates the clean command
func NewCleanCmd() *cobra.Command {
	var opts cleanOptions

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "List or delete superfluous package archives",
		Long: `Builds a catalog of installed packages and a catalog of cached archives,
then selects cache files to act on. With --uninstalled, archives of
packages not installed at any version are selected. With --excess, old
versions of installed packages beyond the retention count are selected.
At least one selection mode is required.

Selected files are listed one per line unless --delete is set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !opts.uninstalled && !opts.excess {
				return &models.SweepError{
					Type: models.ErrInvalidConfig,
					Err:  fmt.Errorf("at least one of --uninstalled or --excess is required"),
				}
			}

			cfg, err := resolveConfig(cmd, &opts)
			if err != nil {
				return err
			}

			logrus.Debugf("Configuration: %+v", cfg)
			return runClean(cmd, cfg, opts)
		},
	}

	// Selection modes
	cmd.Flags().BoolVarP(&opts.uninstalled, "uninstalled", "u", false, "Select cached archives of packages that are not installed")
	cmd.Flags().BoolVarP(&opts.excess, "excess", "e", false, "Select cached archives exceeding the retention count")

	// Modifiers
	cmd.Flags().BoolVar(&opts.del, "delete", false, "Delete the selected archives instead of listing them")
	cmd.Flags().IntVarP(&opts.keep, "keep", "k", config.DefaultKeep, "Number of versions to retain per installed package")
	cmd.Flags().StringVarP(&opts.cacheDir, "cache-dir", "c", config.DefaultCacheDir, "Path to pacman's package cache")
	cmd.Flags().StringVarP(&opts.dbDir, "db-dir", "d", config.DefaultDBDir, "Path to pacman's installed-package database")

	return cmd
}

// resolveConfig layers flag values over the configuration file over the
// built-in defaults. Only flags the user actually set override the file.
func resolveConfig(cmd *cobra.Command, opts *cleanOptions) (config.Config, error) {
	cfg, err := loadConfigFile(cmd)
	if err != nil {
		return cfg, err
	}

	if cmd.Flags().Changed("keep") {
		cfg.Keep = opts.keep
	}
	if cmd.Flags().Changed("cache-dir") {
		cfg.CacheDir = opts.cacheDir
	}
	if cmd.Flags().Changed("db-dir") {
		cfg.DBDir = opts.dbDir
	}

	if err := config.Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadConfigFile(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		return config.Load(path)
	}
	return config.LoadOptional(config.DefaultPath())
}

func runClean(cmd *cobra.Command, cfg config.Config, opts cleanOptions) error {
	logrus.Infof("Reading package database: %s", cfg.DBDir)
	installed, err := catalog.BuildInstalled(cfg.DBDir)
	if err != nil {
		return err
	}

	logrus.Infof("Scanning package cache: %s", cfg.CacheDir)
	cache, err := catalog.BuildCache(cfg.CacheDir, cfg.Extensions)
	if err != nil {
		return err
	}

	var uninstalled, excess []models.CacheEntry
	if opts.uninstalled {
		uninstalled = prune.Uninstalled(cache, installed)
		logrus.Debugf("Selected %d archives of uninstalled packages", len(uninstalled))
	}
	if opts.excess {
		excess = prune.ExcessOld(cache, installed, cfg.Keep)
		logrus.Debugf("Selected %d archives beyond the retention count", len(excess))
	}

	if !opts.del {
		out := cmd.OutOrStdout()
		action.Print(out, uninstalled)
		action.Print(out, excess)
		return nil
	}

	removed := 0
	if opts.uninstalled {
		n, err := action.Remove(uninstalled)
		removed += n
		if err != nil {
			return err
		}
	}
	if opts.excess {
		ids := make([]models.Identity, len(excess))
		for i, entry := range excess {
			ids[i] = entry.Identity
		}

		n, err := action.Remove(prune.ResolveFiles(ids, cache))
		removed += n
		if err != nil {
			return err
		}
	}

	logrus.Infof("Removed %d files from %s", removed, cfg.CacheDir)
	return nil
}
