// Package scheduler runs recurring background jobs on gocron.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"

	"indicator_backend/internal/platform/logger"
)

// Job is a unit of scheduled work. The context is canceled when the run times out.
type Job func(ctx context.Context) error

// Tokyo は日次ジョブの基準タイムゾーンです。
var Tokyo = loadLocation("Asia/Tokyo")

func loadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.FixedZone("JST", 9*60*60)
	}
	return loc
}

// Daily は毎日 at ("HH:MM", loc) に job を実行するスケジューラーを返します。
// 前回の実行が終わっていない場合、次の実行は待たされます。
// 返されたスケジューラーは未起動です。StartAsync か StartBlocking で開始してください。
func Daily(ctx context.Context, name, at string, loc *time.Location, timeout time.Duration, job Job) (*gocron.Scheduler, error) {
	s := gocron.NewScheduler(loc)
	s.SingletonModeAll()

	_, err := s.Every(1).Day().At(at).Tag(name).Do(func() {
		run(ctx, name, timeout, job)
	})
	if err != nil {
		return nil, fmt.Errorf("schedule %s at %s: %w", name, at, err)
	}
	return s, nil
}

func run(ctx context.Context, name string, timeout time.Duration, job Job) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	logger.L().Info().Str("job", name).Msg("scheduled job started")
	if err := job(ctx); err != nil {
		logger.L().Error().Err(err).Str("job", name).Dur("elapsed", time.Since(start)).Msg("scheduled job failed")
		return
	}
	logger.L().Info().Str("job", name).Dur("elapsed", time.Since(start)).Msg("scheduled job finished")
}
