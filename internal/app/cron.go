package app

import (
	"context"
	"fmt"

	"github.com/plenumwatch/core/internal/config"
	pkgcron "github.com/plenumwatch/core/internal/pkg/cron"
	"go.uber.org/zap"
)

// registerCronJobs registers the two scheduled pipelines. Both run once
// at startup so a fresh deployment has data without waiting a full
// interval.
func registerCronJobs(sched *pkgcron.Scheduler, svcs *services, cfg *config.AppConfig, logger *zap.Logger) {
	cronLogger := logger.Named("CronService")

	sched.Register(pkgcron.Job{
		Name:        "collect_content",
		Description: "Fetch new plenary sessions and tweets from upstream sources",
		Interval:    cfg.CollectionInterval(),
		RunOnStart:  true,
		Fn: func(ctx context.Context) error {
			result, err := svcs.collector.RunCollection(ctx)
			if err != nil {
				cronLogger.Warn("collection run failed", zap.Error(err))
				return err
			}
			cronLogger.Info("collection run finished",
				zap.Int("new_sessions", result.NewSessions),
				zap.Int("new_tweets", result.NewTweets))
			return nil
		},
	})

	sched.Register(pkgcron.Job{
		Name:        "analyze_content",
		Description: "Run topic extraction and mention detection over unanalyzed content",
		Interval:    cfg.AnalysisInterval(),
		RunOnStart:  true,
		Fn: func(ctx context.Context) error {
			result, err := svcs.analyzer.RunAnalysis(ctx)
			if err != nil {
				cronLogger.Warn("analysis run failed", zap.Error(err))
				return err
			}
			cronLogger.Info("analysis run finished",
				zap.Int("analyzed_sessions", result.AnalyzedSessions),
				zap.Int("analyzed_tweets", result.AnalyzedTweets),
				zap.Int("failures", len(result.Failures)))
			if len(result.Failures) > 0 {
				return fmt.Errorf("%d items failed analysis", len(result.Failures))
			}
			return nil
		},
	})
}
