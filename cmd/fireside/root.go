package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/firesidecapital/fireside-go/internal/config"
	"github.com/firesidecapital/fireside-go/internal/store"
	"github.com/firesidecapital/fireside-go/pkg/fireside"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	flagConfig string
	flagDB     string
	flagRemote bool
)

var rootCmd = &cobra.Command{
	Use:   "fireside",
	Short: "Personal cash-flow projection and budgeting",
	Long:  "Project your cash flow, check what's safe to spend, and compare budgets against actual spending.",
	RunE:  runProjection,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	defaultDB := filepath.Join(config.Dir(), "snapshot.db")

	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Config file (default $XDG_CONFIG_HOME/fireside/config.toml)")
	rootCmd.PersistentFlags().StringVarP(&flagDB, "db", "d", defaultDB, "Local snapshot database")
	rootCmd.PersistentFlags().BoolVar(&flagRemote, "remote", false, "Read from the hosted backend instead of the local snapshot")
}

func loadConfig() (config.Config, error) {
	if flagConfig != "" {
		return config.LoadFrom(flagConfig)
	}
	return config.Load()
}

// newClient builds the engine client from config and flags. The default
// data source is the local snapshot database; --remote reads straight
// from the hosted backend.
func newClient() (*fireside.Client, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	var source fireside.DataSource
	cleanup := func() {}

	if flagRemote {
		source, err = remoteSource(cfg)
		if err != nil {
			return nil, nil, err
		}
	} else {
		snap, err := store.Open(flagDB)
		if err != nil {
			return nil, nil, errors.Wrap(err, "opening snapshot database")
		}
		cleanup = func() { snap.Close() }
		source = snap
	}

	client, err := fireside.NewClient(&fireside.Options{
		DataSource:     &configSource{DataSource: source, cfg: cfg},
		ProjectionDays: cfg.Projection.Days,
		SafetyBuffer:   cfg.Projection.SafetyBuffer,
	})
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	return client, cleanup, nil
}

func remoteSource(cfg config.Config) (fireside.DataSource, error) {
	if cfg.Backend.URL == "" {
		return nil, errors.New("no backend url configured; set backend.url in " + config.Path())
	}
	return fireside.NewRESTDataSource(cfg.Backend.URL, config.APIKey(cfg), cfg.Backend.Token), nil
}

// configSource overlays config-file values onto the data source's
// settings, so checking balance and budgets can live in config.toml
// when no backend maintains them.
type configSource struct {
	fireside.DataSource
	cfg config.Config
}

func (s *configSource) Settings(ctx context.Context) (*fireside.Settings, error) {
	settings, err := s.DataSource.Settings(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = &fireside.Settings{}
	}

	if s.cfg.Projection.CheckingBalance != 0 && settings.CheckingBalance == 0 {
		settings.CheckingBalance = s.cfg.Projection.CheckingBalance
	}
	if len(s.cfg.Budgets) > 0 && len(settings.CategoryBudgets) == 0 {
		settings.CategoryBudgets = s.cfg.Budgets
	}

	return settings, nil
}
