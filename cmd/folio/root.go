package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Zachkp/folio/internal/config"
	"github.com/Zachkp/folio/internal/content"
	"github.com/Zachkp/folio/internal/logging"
)

var (
	cfgFile string
	verbose bool

	appConfig config.Config
	logger    = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "folio serves a personal portfolio site",
	Long: `folio serves a personal portfolio: biography, stats, projects, skills,
posts and a GitHub contribution graph, plus live data pulled from GitHub,
a Telegram channel and PyPI.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		appConfig = cfg

		l, err := logging.New(cfg.Mode, verbose)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func loadDataset(cfg config.Config) (*content.Dataset, error) {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	ds, err := content.Load(content.Options{
		File: cfg.DataFile,
		Rand: rand.New(rand.NewSource(seed)),
	})
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	return ds, nil
}
