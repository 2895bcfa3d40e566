// Command viewdb prints the tables of the normalized orders store.
//
// Without -table it shows a numbered menu and reads the selection from stdin:
//
//	viewdb -dsn orders_normalized.db
//	viewdb -db_driver postgres -dsn postgres://... -table orders
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"ordersnf/internal/browser"
	"ordersnf/internal/storage"

	// register all backends with the storage factory.
	_ "ordersnf/internal/storage/all"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Getenv, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "viewdb: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, getenv func(string) string, in io.Reader, out io.Writer) error {
	fs := flag.NewFlagSet("viewdb", flag.ContinueOnError)
	driver := fs.String("db_driver", envOr(getenv, "DB_DRIVER", "sqlite"), "Database driver: sqlite, postgres, mssql or mysql")
	dsn := fs.String("dsn", envOr(getenv, "DB_DSN", "orders_normalized.db"), "Database DSN; for sqlite the database file")
	table := fs.String("table", "", "Print this table and exit instead of prompting")
	if err := fs.Parse(args); err != nil {
		return err
	}

	repo, err := storage.New(ctx, storage.Config{Kind: *driver, DSN: *dsn})
	if err != nil {
		return err
	}
	defer repo.Close()

	if *table != "" {
		return browser.Dump(ctx, repo, out, *table)
	}
	return browser.Run(ctx, repo, in, out)
}

func envOr(getenv func(string) string, k, d string) string {
	if v := getenv(k); v != "" {
		return v
	}
	return d
}
