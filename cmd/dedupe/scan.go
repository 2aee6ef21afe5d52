package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"contact-dedupe/internal/config"
	"contact-dedupe/internal/contact"
	"contact-dedupe/internal/db"
	"contact-dedupe/internal/matching"
	"contact-dedupe/internal/report"
	"contact-dedupe/internal/service"

	"github.com/spf13/cobra"
)

const (
	sourceFile     = "file"
	sourcePostgres = "postgres"

	formatTable = "table"
	formatJSON  = "json"
	formatLog   = "log"
)

type scanOptions struct {
	source  string
	format  string
	workers int
}

func newScanCmd() *cobra.Command {
	opts := scanOptions{}

	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Score every contact pair and print likely duplicates",
		Long: "Reads contacts from an .xlsx or .csv file (INPUT_PATH when no path is given) " +
			"or from the Postgres contacts table, and prints every pair scoring at least 0.5.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			path := cfg.Input.Path
			if len(args) == 1 {
				path = args[0]
			}
			return runScan(cmd.Context(), cmd.OutOrStdout(), cfg, opts, path)
		},
	}

	cmd.Flags().StringVar(&opts.source, "source", sourceFile, "contact source: file or postgres")
	cmd.Flags().StringVar(&opts.format, "format", formatTable, "output format: table, json or log")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "parallel scan workers (default MATCH_WORKERS)")

	return cmd
}

func runScan(ctx context.Context, out io.Writer, cfg *config.Config, opts scanOptions, path string) error {
	switch opts.format {
	case formatTable, formatJSON, formatLog:
	default:
		return fmt.Errorf("unknown output format %q", opts.format)
	}

	workers := cfg.Matching.Workers
	if opts.workers > 0 {
		workers = opts.workers
	}
	svc := service.NewDedupeService(matching.NewEngine(workers))

	var run service.Run
	var err error
	switch opts.source {
	case sourceFile:
		run, err = svc.RunFrom(ctx, contact.FileSource{Path: path})
	case sourcePostgres:
		if cfg.Database.URL == "" {
			return errors.New("DATABASE_URL is required for the postgres source")
		}
		database, dbErr := db.NewDatabase(ctx, cfg.Database)
		if dbErr != nil {
			return dbErr
		}
		defer database.Close()
		run, err = svc.RunFrom(ctx, contact.NewPostgresSource(database.Pool, cfg.Database.Table))
	default:
		return fmt.Errorf("unknown contact source %q", opts.source)
	}
	if err != nil {
		return err
	}

	switch opts.format {
	case formatJSON:
		return report.WriteJSON(out, run.Document())
	case formatLog:
		report.LogTable(run.Results)
		return nil
	default:
		return report.WriteTable(out, run.Results)
	}
}
