package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"matchlake/internal/domain"
	"matchlake/internal/h2h"
	"matchlake/internal/storage"
	"matchlake/internal/table"
)

func newMergeCmd() *cobra.Command {
	var (
		kind string
		out  string
	)

	cmd := &cobra.Command{
		Use:   "merge <base.parquet> <delta.parquet>",
		Short: "Merge a delta batch into a base table",
		Long: "Merge an aggregated delta batch into a base table using the " +
			"record kind's strategy (bets: additive, odds: timestamp-arbitrated, " +
			"match_result: replace) and write the consolidated result.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			recordKind := domain.RecordKind(kind)
			policy := h2h.DefaultPolicy()
			strategy, ok := policy.ForKind(recordKind)
			if !ok {
				return fmt.Errorf("unknown record kind %q (want bets, odds, or match_result)", kind)
			}

			base, err := readTable(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			delta, err := readTable(cmd.Context(), args[1])
			if err != nil {
				return err
			}

			merged, err := strategy.Merge(base, delta)
			if err != nil {
				return fmt.Errorf("merge: %w", err)
			}

			data, err := storage.EncodeParquet(merged)
			if err != nil {
				return fmt.Errorf("encode %s: %w", out, err)
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d rows, %d columns)\n", out, merged.NumRows(), merged.NumCols())
			return nil
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "", "record kind: bets, odds, or match_result (required)")
	cmd.Flags().StringVarP(&out, "out", "o", "merged.parquet", "output file")
	_ = cmd.MarkFlagRequired("kind")
	return cmd
}

func readTable(ctx context.Context, path string) (*table.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	t, err := storage.DecodeParquet(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return t, nil
}
