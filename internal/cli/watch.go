package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/runlogd/runlog/internal/scheduler"
	"github.com/runlogd/runlog/pkg/runlog"
)

var watchModule string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch a log directory and enforce retention continuously",
	Long: `Watch the configured log directory and run a retention pass whenever
new log files appear. A periodic schedule and a Prometheus endpoint can
be enabled in the configuration.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVar(&watchModule, "module", "", "restrict retention to this module's files")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	session, err := runlog.Open(cfg.Logging.Options("runlog"))
	if err != nil {
		return err
	}
	defer session.Close()
	logger := session.Logger()

	var metrics *runlog.Metrics
	var metricsSrv *http.Server
	if cfg.Metrics.Enabled {
		metrics = runlog.NewMetrics()
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		metricsSrv = &http.Server{Addr: cfg.Metrics.Listen, Handler: mux}

		go func() {
			logger.Info().Str("listen", cfg.Metrics.Listen).Msg("metrics endpoint started")
			if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error().Err(err).Msg("metrics endpoint failed")
			}
		}()
	}

	watcher, err := runlog.NewWatcher(runlog.WatcherConfig{
		Dir:      cfg.Logging.Dir,
		Module:   watchModule,
		Keep:     session.Keep(),
		Debounce: time.Duration(cfg.Watch.DebounceMs) * time.Millisecond,
		Logger:   session.Component("watch"),
		Metrics:  metrics,
	})
	if err != nil {
		return err
	}
	if err := watcher.Start(); err != nil {
		return err
	}
	defer watcher.Stop()

	if cfg.Schedule.Enabled {
		sel := runlog.GlobalSelector()
		if watchModule != "" {
			sel = runlog.ScopedSelector(watchModule)
		}

		svc, err := scheduler.NewService(cfg.Schedule.ScheduleSpec(), func() {
			results := runlog.Purge(cfg.Logging.Dir, sel, session.Keep())
			if metrics != nil {
				metrics.ObservePurge(results)
			}
			if deleted := runlog.Deleted(results); len(deleted) > 0 {
				logger.Info().
					Int("count", len(deleted)).
					Strs("paths", deleted).
					Msg("scheduled purge deleted old logs")
			}
		}, session.Component("schedule"))
		if err != nil {
			return err
		}
		svc.Start()
		defer svc.Stop()
	}

	logger.Info().Str("dir", cfg.Logging.Dir).Msg("watching log directory")

	// Block until interrupted
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	fmt.Println("Shutting down...")
	if metricsSrv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metricsSrv.Shutdown(ctx); err != nil {
			logger.Warn().Err(err).Msg("metrics endpoint shutdown failed")
		}
	}

	return nil
}
