package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"ordersnf/internal/config"
	"ordersnf/internal/export"
	"ordersnf/internal/importer"
	"ordersnf/internal/loader"
	"ordersnf/internal/metrics"
	"ordersnf/internal/records"
	"ordersnf/internal/schema"
	"ordersnf/internal/skiplog"
	"ordersnf/internal/storage"
	"ordersnf/internal/transformer/builtin"
)

// run executes one import: load and clean the source, export it, recreate the
// store schema and load the entities and orders. The first error aborts the
// run; whatever was written before it stays in the store.
func run(ctx context.Context, cfg *config.Config, runID string) (sum importer.Summary, err error) {
	job := cfg.Job

	var t *records.Table
	if err := step(job, "load", func() error {
		hm, err := loader.LoadHeaderMap(cfg.HeaderMap)
		if err != nil {
			return err
		}
		var st loader.Stats
		t, st, err = loader.Load(cfg.Input, loader.Options{HeaderMap: hm, Parser: cfg.ParserOptions()})
		if err != nil {
			return err
		}
		metrics.RecordRow(job, metrics.KindDuplicates, int64(st.Duplicates))
		return builtin.Normalize{Fields: builtin.ModelFields}.Apply(t)
	}); err != nil {
		return sum, err
	}

	if cfg.CSVOut != "" {
		if err := step(job, "export", func() error {
			if err := export.WriteFile(cfg.CSVOut, t); err != nil {
				return err
			}
			log.Printf("export: rows=%d path=%s", t.Len(), cfg.CSVOut)
			return nil
		}); err != nil {
			return sum, err
		}
	}

	var repo storage.Repository
	if err := step(job, "schema", func() error {
		var err error
		repo, err = storage.New(ctx, storage.Config{Kind: cfg.DBDriver, DSN: cfg.DSN, Fresh: true})
		if err != nil {
			return err
		}
		return storage.ResetSchema(ctx, cfg.DBDriver, repo, schema.Tables())
	}); err != nil {
		if repo != nil {
			repo.Close()
		}
		return sum, err
	}
	defer repo.Close()

	var skips *skiplog.Log
	if cfg.Skipped != "" {
		if skips, err = skiplog.Create(cfg.Skipped, runID); err != nil {
			return sum, err
		}
		defer func() {
			if cerr := skips.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
	}

	im := importer.New(repo, importer.Options{Job: job, Verbose: cfg.Verbose, Skips: skips})
	return im.Run(ctx, t)
}

// step runs fn and records its outcome and duration under name.
func step(job, name string, fn func() error) error {
	start := time.Now()
	err := fn()
	metrics.RecordStep(job, name, err, time.Since(start))
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
