package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tobiasmd/maestro/internal/config"
	"github.com/tobiasmd/maestro/internal/trace"
)

var traceLimit int

var traceCmd = &cobra.Command{
	Use:   "trace",
	Short: "Show recent trace records from the trace database",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if cfg.Trace.DB == "" {
			return fmt.Errorf("no trace database configured (set trace.db in config)")
		}

		store, err := trace.OpenStore(cfg.Trace.DB)
		if err != nil {
			return err
		}
		defer store.Close()

		records, err := store.Recent(context.Background(), traceLimit)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		for _, rec := range records {
			entry := map[string]any{
				"id": rec.ID,
				"ts": rec.TS,
			}
			for k, v := range rec.Fields {
				entry[k] = v
			}
			if err := enc.Encode(entry); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	traceCmd.Flags().IntVar(&traceLimit, "limit", 20, "Maximum number of records to show")
}
