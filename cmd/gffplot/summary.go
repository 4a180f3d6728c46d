package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ARU-life-sciences/gffplot/internal/annotation"
	"github.com/ARU-life-sciences/gffplot/internal/duckdb"
	"github.com/ARU-life-sciences/gffplot/internal/output"
)

func newSummaryCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "summary <in.gff>",
		Short: "Print per-sequence feature counts",
		Long: `Normalize a GFF3 file and print, for every sequence, the number of features,
the largest end coordinate and the strand breakdown.`,
		Example: `  gffplot summary mito.gff3`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := loadStore(args[0], g.logger)
			if err != nil {
				return err
			}

			db, err := duckdb.Open("")
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.WriteStore(store); err != nil {
				return fmt.Errorf("load features: %w", err)
			}
			sums, err := db.Summaries()
			if err != nil {
				return err
			}

			w := output.NewTabWriter(cmd.OutOrStdout())
			if err := w.WriteHeader(); err != nil {
				return fmt.Errorf("write header: %w", err)
			}
			for _, s := range sums {
				if err := w.Write(s); err != nil {
					return fmt.Errorf("write summary: %w", err)
				}
			}
			return w.Flush()
		},
	}
}

func newExportCmd(g *globalOptions) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "export --db <out.duckdb> <in.gff>",
		Short: "Export normalized features to DuckDB",
		Long: `Normalize a GFF3 file and write its features to the "features" table of a
DuckDB database, replacing any features exported before. The source file is
recorded in the "inputs" table.`,
		Example: `  gffplot export --db annotations.duckdb mito.gff3`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbPath == "" {
				return errors.New("--db is required")
			}
			store, err := loadStore(args[0], g.logger)
			if err != nil {
				return err
			}
			return exportStore(dbPath, args[0], store, g.logger)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "Output DuckDB file")
	return cmd
}

// exportStore replaces the features in the database at dbPath with store.
func exportStore(dbPath, input string, store *annotation.Store, logger *zap.Logger) error {
	db, err := duckdb.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.ClearFeatures(); err != nil {
		return fmt.Errorf("clear features: %w", err)
	}
	if err := db.WriteStore(store); err != nil {
		return fmt.Errorf("export features: %w", err)
	}

	if input != "-" {
		fp, err := duckdb.StatFile(input)
		if err != nil {
			return fmt.Errorf("stat input: %w", err)
		}
		if err := db.RecordInput(fp, store.FeatureCount()); err != nil {
			return err
		}
	}

	logger.Info("exported features",
		zap.String("db", db.Path()),
		zap.Int("sequences", store.Len()),
		zap.Int("features", store.FeatureCount()))
	return nil
}
