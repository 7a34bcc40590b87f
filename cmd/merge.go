package cmd

import (
	"fmt"
	"time"

	"torrent-combine/core/config"
	"torrent-combine/core/logger"
	"torrent-combine/core/merge"
	"torrent-combine/core/scan"
	"torrent-combine/feature/combine"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	replaceFlag bool
	dryRunFlag  bool
	workersFlag int
	keyModeFlag string
	minSizeFlag int64
)

// mergeCmd represents the merge command
var mergeCmd = &cobra.Command{
	Use:   "merge <root>",
	Short: "Merge partial copies found under a directory tree",
	Long: `Walks the tree, groups files that look like copies of the same payload,
and synthesizes the most complete version of each group by combining the
regions every copy managed to fetch. Unfetched regions are zero-filled in
each copy, so copies of one payload never disagree on a non-zero byte;
groups that do are reported and left untouched.

By default the merged content is written to a sidecar file next to each
incomplete copy. Use --replace to overwrite the copies in place.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		startTime := time.Now()

		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		applyMergeFlags(cmd, cfg)

		if !cfg.Scan.IsValidKeyMode() {
			return fmt.Errorf("unknown key mode %q (want %s or %s)", cfg.Scan.KeyMode, scan.KeyNameSize, scan.KeySize)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		logg = logger.WithRunID(logg)

		root := args[0]
		logg.Info("Scanning for candidate files...",
			zap.String("root", root),
			zap.Int64("min_size", cfg.Scan.MinSize),
			zap.String("key_mode", cfg.Scan.KeyMode))

		candidates, err := scan.Collect(root, cfg.Scan.MinSize, logg)
		if err != nil {
			return fmt.Errorf("scan failed: %w", err)
		}
		groups := scan.Mergeable(scan.GroupBy(candidates, cfg.Scan.KeyMode))

		logg.Info("Discovery finished",
			zap.Int("candidates", len(candidates)),
			zap.Int("groups", len(groups)))

		svc := combine.NewService(merge.NewEngine(cfg.Merge.ChunkSize), logg, combine.Options{
			Replace: cfg.Merge.Replace,
			DryRun:  dryRunFlag,
			Workers: cfg.Merge.Workers,
		})
		sum := svc.Run(ctx, groups)

		executionTime := time.Since(startTime)

		// Always display metrics
		fmt.Println("\n=== Merge Summary ===")
		fmt.Printf("Groups Processed: %d\n", sum.Processed)
		fmt.Printf("Merged: %d\n", sum.Merged)
		fmt.Printf("Already Complete: %d\n", sum.Skipped)
		fmt.Printf("Conflicts: %d\n", sum.Failed)
		fmt.Printf("Errors: %d\n", sum.Errors)
		fmt.Printf("Members Updated: %d\n", sum.Updated)
		if sum.Sidecars > 0 {
			fmt.Printf("Sidecars Written: %d\n", sum.Sidecars)
		}
		fmt.Printf("Data Streamed: %s\n", humanize.IBytes(uint64(sum.Bytes)))
		fmt.Printf("Execution Time: %s\n", executionTime.String())
		if dryRunFlag {
			fmt.Println("\nDry run: nothing was written.")
		}

		logg.Info("Merge run completed",
			zap.Int64("processed", sum.Processed),
			zap.Int64("merged", sum.Merged),
			zap.Int64("skipped", sum.Skipped),
			zap.Int64("conflicts", sum.Failed),
			zap.Int64("errors", sum.Errors),
			zap.Int64("members_updated", sum.Updated),
			zap.Int64("bytes", sum.Bytes),
			zap.Duration("execution_time", executionTime),
		)

		return nil
	},
}

func init() {
	RootCmd.AddCommand(mergeCmd)

	mergeCmd.Flags().BoolVar(&replaceFlag, "replace", false, "Overwrite incomplete copies in place instead of writing sidecar files")
	mergeCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Classify and report groups without writing anything")
	mergeCmd.Flags().IntVar(&workersFlag, "workers", 0, "Concurrent group workers (0 = one per CPU)")
	mergeCmd.Flags().StringVar(&keyModeFlag, "key", "", "Group key mode: name-size or size")
	mergeCmd.Flags().Int64Var(&minSizeFlag, "min-size", 0, "Minimum candidate file size in bytes")
}

// applyMergeFlags lets explicit flags win over environment configuration.
func applyMergeFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("replace") {
		cfg.Merge.Replace = replaceFlag
	}
	if cmd.Flags().Changed("workers") {
		cfg.Merge.Workers = workersFlag
	}
	if cmd.Flags().Changed("key") {
		cfg.Scan.KeyMode = keyModeFlag
	}
	if cmd.Flags().Changed("min-size") {
		cfg.Scan.MinSize = minSizeFlag
	}
}
