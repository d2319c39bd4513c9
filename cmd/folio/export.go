package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Zachkp/folio/internal/staticapi"
)

var exportDir string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the static JSON API to a directory",
	Long: `The export command renders every /api document (stats, projects, skills,
videos, posts, articles, github-activity, contributions) to <name>.json so the
site can be hosted without running folio.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := loadDataset(appConfig)
		if err != nil {
			return err
		}
		paths, err := staticapi.Write(exportDir, data)
		if err != nil {
			return err
		}
		for _, p := range paths {
			logger.Info("generated", zap.String("file", p))
		}
		cmd.Printf("Static API generation complete: %d files in %s\n", len(paths), exportDir)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportDir, "out", "o", "dist/public/api", "output directory")
	rootCmd.AddCommand(exportCmd)
}
