// Command migrate applies the Spanner DDL under migrations/ to a database,
// typically the emulator during local development:
//
//	SPANNER_EMULATOR_HOST=localhost:9010 \
//	SPANNER_DATABASE=projects/test-project/instances/emulator-instance/databases/test-db \
//	go run ./cmd/migrate --create
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	database "cloud.google.com/go/spanner/admin/database/apiv1"
	databasepb "cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	"github.com/spf13/cobra"

	"github.com/murkotick/financial-catalog-service/internal/pkg/logging"
)

type options struct {
	database string
	dir      string
	create   bool
	dryRun   bool
	timeout  time.Duration
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := options{}
	cmd := &cobra.Command{
		Use:           "migrate",
		Short:         "Apply the catalog schema to a Spanner database",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.database, "database", os.Getenv("SPANNER_DATABASE"), "database path (projects/P/instances/I/databases/D)")
	cmd.Flags().StringVar(&opts.dir, "dir", "migrations", "directory holding *.sql files")
	cmd.Flags().BoolVar(&opts.create, "create", false, "create the database with the schema instead of updating it")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "print the statements without applying them")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 2*time.Minute, "overall deadline")
	return cmd
}

func run(ctx context.Context, opts options) error {
	if opts.database == "" {
		return fmt.Errorf("--database or SPANNER_DATABASE is required")
	}
	instance, dbID, err := splitDatabase(opts.database)
	if err != nil {
		return err
	}
	stmts, err := readDDLDir(opts.dir)
	if err != nil {
		return fmt.Errorf("read DDL: %w", err)
	}
	if len(stmts) == 0 {
		return fmt.Errorf("no DDL statements found in %s", opts.dir)
	}

	if opts.dryRun {
		for _, s := range stmts {
			fmt.Printf("%s;\n\n", s)
		}
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()

	admin, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("database admin client: %w", err)
	}
	defer admin.Close()

	if opts.create {
		op, err := admin.CreateDatabase(ctx, &databasepb.CreateDatabaseRequest{
			Parent:          instance,
			CreateStatement: "CREATE DATABASE `" + dbID + "`",
			ExtraStatements: stmts,
		})
		if err != nil {
			return fmt.Errorf("create database: %w", err)
		}
		if _, err := op.Wait(ctx); err != nil {
			return fmt.Errorf("create database wait: %w", err)
		}
		logging.Info("database created", "database", opts.database, "statements", len(stmts))
		return nil
	}

	op, err := admin.UpdateDatabaseDdl(ctx, &databasepb.UpdateDatabaseDdlRequest{
		Database:   opts.database,
		Statements: stmts,
	})
	if err != nil {
		return fmt.Errorf("update ddl: %w", err)
	}
	if err := op.Wait(ctx); err != nil {
		return fmt.Errorf("update ddl wait: %w", err)
	}
	logging.Info("schema applied", "database", opts.database, "statements", len(stmts))
	return nil
}
