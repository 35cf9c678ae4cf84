package cli

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	auditkafka "firledger/internal/audit/kafka"
	auditpg "firledger/internal/audit/postgres"
)

var (
	topicPartitions  int32
	topicReplication int16
)

type schemaOwner interface {
	EnsureSchema(ctx context.Context) error
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the backend schema and the audit topic",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		a := &app{logger: log}
		defer a.close()

		store, db, err := a.openStore(ctx, cfg)
		if err != nil {
			return err
		}
		if owner, ok := store.(schemaOwner); ok {
			if err := owner.EnsureSchema(ctx); err != nil {
				return fmt.Errorf("ledger schema: %w", err)
			}
		}
		if err := migrateAudit(ctx, db); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s backend ready\n", cfg.Backend)
		return nil
	},
}

func init() {
	migrateCmd.Flags().Int32Var(&topicPartitions, "partitions", 3, "audit topic partitions")
	migrateCmd.Flags().Int16Var(&topicReplication, "replication-factor", 1, "audit topic replication factor")
	rootCmd.AddCommand(migrateCmd)
}

func migrateAudit(ctx context.Context, db *sql.DB) error {
	if db != nil {
		if err := auditpg.New(db).EnsureSchema(ctx); err != nil {
			return fmt.Errorf("audit schema: %w", err)
		}
	}
	if !cfg.Kafka.Enabled() {
		return nil
	}
	sink, err := auditkafka.New(cfg.Kafka)
	if err != nil {
		return err
	}
	defer sink.Close()
	if err := sink.EnsureTopic(ctx, topicPartitions, topicReplication); err != nil {
		return fmt.Errorf("audit topic: %w", err)
	}
	return nil
}
