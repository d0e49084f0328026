package checker

import (
	"context"
	"sync"
	"time"

	"github.com/bxxf/flight-schema/internal/capture"
	"github.com/bxxf/flight-schema/internal/config"
	"github.com/bxxf/flight-schema/internal/mapper"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Notifier interface {
	NotifyDrift(ctx context.Context, key string, cause error) error
}

type Report struct {
	Checked int
	Drifted []string
}

// Checker periodically decodes every stored capture again and reports the
// ones the current models reject.
type Checker struct {
	captures *capture.Service
	notifier Notifier
	logger   *zap.Logger
	interval time.Duration

	cancel context.CancelFunc
	done   sync.WaitGroup
}

func NewChecker(captures *capture.Service, notifier Notifier, config config.Config, logger *zap.Logger) *Checker {
	return &Checker{
		captures: captures,
		notifier: notifier,
		logger:   logger,
		interval: config.CheckInterval,
	}
}

func (c *Checker) RunOnce(ctx context.Context) Report {
	var report Report
	for _, family := range []capture.Family{capture.FamilySearch, capture.FamilyExtras} {
		keys, err := c.captures.List(ctx, family)
		if err != nil {
			c.logger.Error("Failed to list captures", zap.String("family", string(family)), zap.Error(err))
			continue
		}
		for _, key := range keys {
			c.handleKey(ctx, key, &report)
		}
	}
	return report
}

func (c *Checker) handleKey(ctx context.Context, key string, report *Report) {
	err := c.captures.Revalidate(ctx, key)
	switch {
	case err == nil:
		report.Checked++
	case mapper.IsSchema(err), mapper.IsSyntax(err):
		report.Checked++
		report.Drifted = append(report.Drifted, key)
		c.logger.Warn("Capture no longer decodes", zap.String("key", key), zap.Error(err))
		if err := c.notifier.NotifyDrift(ctx, key, err); err != nil {
			c.logger.Error("Failed to notify drift", zap.String("key", key), zap.Error(err))
		}
	default:
		// Expired between listing and loading, or the store is unavailable.
		c.logger.Info("Skipping capture", zap.String("key", key), zap.Error(err))
	}
}

func (c *Checker) periodicallyCheck(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			report := c.RunOnce(ctx)
			c.logger.Debug("Capture check finished", zap.Int("checked", report.Checked), zap.Int("drifted", len(report.Drifted)))
		}
	}
}

func RegisterCheckerHooks(lc fx.Lifecycle, checker *Checker) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			ctx, cancel := context.WithCancel(context.Background())
			checker.cancel = cancel
			checker.done.Add(1)
			go func() {
				defer checker.done.Done()
				checker.periodicallyCheck(ctx)
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			if checker.cancel != nil {
				checker.cancel()
			}
			checker.done.Wait()
			return nil
		},
	})
}
