package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/runlogd/runlog/pkg/runlog"
)

var (
	sessionsDir    string
	sessionsModule string
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List log files with their retention sort keys",
	Long: `List the log files a retention pass would consider, oldest first,
with the sort key each file would be ordered by.`,
	RunE: runSessions,
}

func init() {
	rootCmd.AddCommand(sessionsCmd)

	sessionsCmd.Flags().StringVar(&sessionsDir, "dir", "", "log directory (default from config)")
	sessionsCmd.Flags().StringVar(&sessionsModule, "module", "", "restrict the listing to this module's files")
}

func runSessions(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	dir := sessionsDir
	if dir == "" {
		dir = cfg.Logging.Dir
	}

	sel := runlog.GlobalSelector()
	if sessionsModule != "" {
		sel = runlog.ScopedSelector(sessionsModule)
	}

	files := runlog.ListLogs(dir, sel)
	if len(files) == 0 {
		fmt.Println("No log files found")
		return nil
	}

	for _, lf := range files {
		source := "mtime"
		if lf.Stamped {
			source = "stamp"
		}
		age := formatDuration(time.Since(lf.SortKey))
		fmt.Printf("%s  %s  %s  age %s\n", lf.SortKey.Format("2006-01-02 15:04:05"), source, lf.Path, age)
	}
	fmt.Printf("%d file(s)\n", len(files))

	return nil
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%dm%ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm%ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
