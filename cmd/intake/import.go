package main

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alfredjeanlab/intake/internal/client"
	"github.com/alfredjeanlab/intake/internal/model"
	intakesync "github.com/alfredjeanlab/intake/internal/sync"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file | - | s3://bucket/key>",
	Short: "Replay a JSONL export into the server",
	Long: `Read an export written by the sync scheduler and log every event it
contains. Events keep their ids, so importing the same export twice leaves
the store unchanged. Each batch is saved all or nothing.`,
	GroupID: "consumption",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		batchSize, _ := cmd.Flags().GetInt("batch-size")
		if batchSize <= 0 {
			return fmt.Errorf("--batch-size must be positive")
		}

		data, err := readExport(cmd, args[0])
		if err != nil {
			return err
		}
		hdr, evts, err := intakesync.ReadJSONL(bytes.NewReader(data))
		if err != nil {
			return err
		}

		saved, err := importEvents(cmd.Context(), intakeClient, evts, batchSize)
		if err != nil {
			return fmt.Errorf("imported %d of %d events: %w", saved, len(evts), err)
		}

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"exported_at": hdr.Timestamp.Format(time.RFC3339),
				"saved_count": saved,
			})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d event(s) from export of %s\n", saved, hdr.Timestamp.Format(time.RFC3339))
		return nil
	},
}

func readExport(cmd *cobra.Command, src string) ([]byte, error) {
	if !strings.HasPrefix(src, "s3://") {
		return readInput(cmd.InOrStdin(), src)
	}

	bucket, key, err := intakesync.ParseS3URL(src)
	if err != nil {
		return nil, err
	}
	region, _ := cmd.Flags().GetString("s3-region")
	endpoint, _ := cmd.Flags().GetString("s3-endpoint")
	dest, err := intakesync.NewS3Destination(cmd.Context(), bucket, key, region, endpoint)
	if err != nil {
		return nil, err
	}
	return dest.Read(cmd.Context())
}

// importEvents logs evts in batches of at most size and returns how many
// were saved before the first failure.
func importEvents(ctx context.Context, c client.IntakeClient, evts []*model.RawEvent, size int) (int, error) {
	saved := 0
	for start := 0; start < len(evts); start += size {
		end := min(start+size, len(evts))
		resp, err := c.LogConsumption(ctx, evts[start:end])
		if err != nil {
			return saved, err
		}
		saved += resp.SavedCount
	}
	return saved, nil
}

func init() {
	importCmd.Flags().Int("batch-size", 500, "events per log_consumption call")
	importCmd.Flags().String("s3-region", "us-east-1", "region for s3:// sources")
	importCmd.Flags().String("s3-endpoint", "", "custom S3 endpoint (MinIO and similar)")
}
