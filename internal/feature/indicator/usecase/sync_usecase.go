package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	shared "indicator_backend/internal/domain/entity"
	"indicator_backend/internal/feature/indicator/domain/entity"
	"indicator_backend/internal/platform/logger"
	"indicator_backend/internal/shared/ratelimiter"
)

// ReferenceDataRepository は外部APIから指標の参照データを取得するインターフェイスです。
type ReferenceDataRepository interface {
	ListReferenceData(ctx context.Context, indicatorType shared.IndicatorType) ([]entity.Indicator, error)
}

// SyncUsecase は外部の参照データを取得し、カタログへ反映するユースケースです。
type SyncUsecase struct {
	reference   ReferenceDataRepository
	repo        IndicatorRepository
	limiter     ratelimiter.Limiter
	concurrency int
}

// NewSyncUsecase は新しい SyncUsecase を作成します。concurrency が1未満なら1になります。
func NewSyncUsecase(reference ReferenceDataRepository, repo IndicatorRepository, limiter ratelimiter.Limiter, concurrency int) *SyncUsecase {
	return &SyncUsecase{
		reference:   reference,
		repo:        repo,
		limiter:     limiter,
		concurrency: max(concurrency, 1),
	}
}

// syncOne fetches one indicator type and upserts it. It returns the number of rows written.
func (su *SyncUsecase) syncOne(ctx context.Context, t shared.IndicatorType) (int, error) {
	if err := su.limiter.Wait(ctx); err != nil {
		return 0, err
	}
	rows, err := su.reference.ListReferenceData(ctx, t)
	if err != nil {
		return 0, err
	}
	for i := range rows {
		rows[i].IndicatorType = t
	}
	if err := su.repo.UpsertBatch(ctx, rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}

// SyncAll は全ての市場指標タイプの参照データを並行して同期します。
// 1つのタイプが失敗しても他のタイプの同期は続行し、失敗はまとめて返します。
func (su *SyncUsecase) SyncAll(ctx context.Context) error {
	var (
		mu   sync.Mutex
		errs []error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(su.concurrency)

	for _, t := range shared.MarketIndicatorTypes {
		g.Go(func() error {
			n, err := su.syncOne(gctx, t)
			if err != nil {
				logger.L().Error().Err(err).Str("indicator_type", string(t)).Msg("failed to sync indicator catalog")
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", t, err))
				mu.Unlock()
				return nil
			}
			logger.L().Info().Str("indicator_type", string(t)).Int("count", n).Msg("indicator catalog synced")
			return nil
		})
	}
	_ = g.Wait()

	if len(errs) > 0 {
		return fmt.Errorf("indicator catalog sync incomplete: %w", errors.Join(errs...))
	}
	return nil
}
