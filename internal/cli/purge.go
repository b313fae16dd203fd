package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runlogd/runlog/pkg/runlog"
)

var (
	purgeDir    string
	purgeModule string
	purgeKeep   int
	purgeDryRun bool
)

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Run one retention pass over a log directory",
	Long: `Run one retention pass: delete the oldest log files beyond the keep
count. With --module only that module's files are considered; otherwise
every .log file in the directory is.`,
	RunE: runPurge,
}

func init() {
	rootCmd.AddCommand(purgeCmd)

	purgeCmd.Flags().StringVar(&purgeDir, "dir", "", "log directory (default from config)")
	purgeCmd.Flags().StringVar(&purgeModule, "module", "", "restrict the pass to this module's files")
	purgeCmd.Flags().IntVar(&purgeKeep, "keep", -1, "number of files to keep (default from config)")
	purgeCmd.Flags().BoolVar(&purgeDryRun, "dry-run", false, "list deletion candidates without removing them")
}

func runPurge(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	dir := purgeDir
	if dir == "" {
		dir = cfg.Logging.Dir
	}
	keep := purgeKeep
	if keep < 0 {
		keep = cfg.Logging.Keep
	}

	sel := runlog.GlobalSelector()
	if purgeModule != "" {
		sel = runlog.ScopedSelector(purgeModule)
	}

	if purgeDryRun {
		paths := runlog.Plan(dir, sel, keep)
		if len(paths) == 0 {
			fmt.Println("Nothing to delete")
			return nil
		}
		for _, path := range paths {
			fmt.Printf("Would delete: %s\n", path)
		}
		return nil
	}

	results := runlog.Purge(dir, sel, keep)
	if len(results) == 0 {
		fmt.Println("Nothing to delete")
		return nil
	}

	for _, res := range results {
		if res.Deleted {
			fmt.Printf("Deleted: %s\n", res.Path)
		} else {
			fmt.Printf("Skipped: %s (%v)\n", res.Path, res.Reason)
		}
	}
	fmt.Printf("Deleted %d of %d candidate(s)\n", len(runlog.Deleted(results)), len(results))

	return nil
}
