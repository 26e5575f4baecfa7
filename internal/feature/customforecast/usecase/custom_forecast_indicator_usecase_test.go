package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	shared "indicator_backend/internal/domain/entity"
	"indicator_backend/internal/domain/rule"
	"indicator_backend/internal/feature/customforecast/domain/entity"
	"indicator_backend/internal/feature/customforecast/usecase"
)

// mockRepository はCustomForecastIndicatorRepositoryのモック実装です。
type mockRepository struct {
	items       map[uuid.UUID]entity.Snapshot
	updateCalls int
	CreateErr   error
	FindErr     error
}

func newMockRepository() *mockRepository {
	return &mockRepository{items: map[uuid.UUID]entity.Snapshot{}}
}

func (r *mockRepository) Create(_ context.Context, _ uint, f *entity.CustomForecastIndicator) (uuid.UUID, error) {
	if r.CreateErr != nil {
		return uuid.Nil, r.CreateErr
	}
	s := f.Snapshot()
	s.ID = uuid.New()
	r.items[s.ID] = s
	return s.ID, nil
}

func (r *mockRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.CustomForecastIndicator, error) {
	if r.FindErr != nil {
		return nil, r.FindErr
	}
	s, ok := r.items[id]
	if !ok {
		return nil, usecase.ErrCustomForecastIndicatorNotFound
	}
	return entity.Reconstruct(s)
}

func (r *mockRepository) ListByMember(_ context.Context, _ uint) ([]*entity.CustomForecastIndicator, error) {
	out := make([]*entity.CustomForecastIndicator, 0, len(r.items))
	for _, s := range r.items {
		f, err := entity.Reconstruct(s)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func (r *mockRepository) Update(_ context.Context, f *entity.CustomForecastIndicator) error {
	r.updateCalls++
	r.items[f.ID()] = f.Snapshot()
	return nil
}

func (r *mockRepository) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.items[id]; !ok {
		return usecase.ErrCustomForecastIndicatorNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *mockRepository) Transaction(_ context.Context, fn func(repo usecase.CustomForecastIndicatorRepository) error) error {
	return fn(r)
}

// mockLookup は登録済みの id のみ解決できるIndicatorLookupのモック実装です。
type mockLookup struct {
	known map[string]bool
}

func (m *mockLookup) FindIndicator(_ context.Context, id string, t shared.IndicatorType) (shared.IndicatorInfo, error) {
	if !m.known[id] {
		return shared.IndicatorInfo{}, shared.ErrIndicatorNotFound
	}
	return shared.IndicatorInfo{ID: id, Symbol: "SYM-" + id, IndicatorType: t, Name: id, Exchange: "NASDAQ"}, nil
}

func newLookup(ids ...string) *mockLookup {
	m := &mockLookup{known: map[string]bool{}}
	for _, id := range ids {
		m.known[id] = true
	}
	return m
}

func TestCustomForecastIndicatorUsecase_Create(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		indName    string
		targetType string
		createErr  error
		wantErrIs  error
		violation  bool
	}{
		{name: "success", indName: "forecast", targetType: "stocks"},
		{name: "invalid type", indName: "forecast", targetType: "nope", wantErrIs: shared.ErrInvalidIndicatorType},
		{name: "blank name", indName: " ", targetType: "stocks", violation: true},
		{
			name:       "name conflict",
			indName:    "forecast",
			targetType: "stocks",
			createErr:  usecase.ErrCustomForecastIndicatorNameConflict,
			wantErrIs:  usecase.ErrCustomForecastIndicatorNameConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			repo := newMockRepository()
			repo.CreateErr = tt.createErr
			uc := usecase.NewCustomForecastIndicatorUsecase(repo, newLookup("target"))

			id, err := uc.CreateCustomForecastIndicator(context.Background(), 1, tt.indName, "target", tt.targetType)
			switch {
			case tt.wantErrIs != nil:
				assert.ErrorIs(t, err, tt.wantErrIs)
			case tt.violation:
				assert.True(t, rule.IsViolation(err))
			default:
				require.NoError(t, err)
				assert.Equal(t, "target", repo.items[id].TargetIndicator.ID)
			}
		})
	}

	t.Run("unknown target", func(t *testing.T) {
		t.Parallel()
		uc := usecase.NewCustomForecastIndicatorUsecase(newMockRepository(), newLookup())
		_, err := uc.CreateCustomForecastIndicator(context.Background(), 1, "forecast", "target", "stocks")
		assert.ErrorIs(t, err, shared.ErrIndicatorNotFound)
	})
}

// TestCustomForecastIndicatorUsecase_UpdateSourceIndicatorsInformation は材料指標の解決と更新を検証します。
func TestCustomForecastIndicatorUsecase_UpdateSourceIndicatorsInformation(t *testing.T) {
	t.Parallel()

	setup := func(t *testing.T) (*usecase.CustomForecastIndicatorUsecase, *mockRepository, uuid.UUID) {
		t.Helper()
		repo := newMockRepository()
		uc := usecase.NewCustomForecastIndicatorUsecase(repo, newLookup("target", "s1", "s2"))
		id, err := uc.CreateCustomForecastIndicator(context.Background(), 1, "forecast", "target", "stocks")
		require.NoError(t, err)
		return uc, repo, id
	}

	infos := func(ids ...string) []entity.SourceIndicatorInformation {
		out := make([]entity.SourceIndicatorInformation, 0, len(ids))
		for _, id := range ids {
			out = append(out, entity.SourceIndicatorInformation{
				SourceIndicatorID: id,
				IndicatorType:     shared.IndicatorTypeStocks,
				Weight:            decimal.NewFromInt(50),
			})
		}
		return out
	}

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		uc, repo, id := setup(t)

		require.NoError(t, uc.UpdateSourceIndicatorsInformation(context.Background(), id, infos("s1", "s2")))
		stored := repo.items[id]
		assert.Len(t, stored.SourceIndicatorsInformation, 2)
		assert.Equal(t, []string{"s1", "s2"}, shared.IndicatorInfoIDs(stored.SourceIndicators))
		assert.Equal(t, "SYM-s1", stored.SourceIndicators[0].Symbol)
	})

	t.Run("unknown source", func(t *testing.T) {
		t.Parallel()
		uc, repo, id := setup(t)

		err := uc.UpdateSourceIndicatorsInformation(context.Background(), id, infos("s1", "s9"))
		assert.ErrorIs(t, err, shared.ErrIndicatorNotFound)
		assert.Zero(t, repo.updateCalls)
	})

	t.Run("target as source", func(t *testing.T) {
		t.Parallel()
		uc, repo, id := setup(t)

		err := uc.UpdateSourceIndicatorsInformation(context.Background(), id, infos("target"))
		assert.True(t, rule.IsViolation(err))
		assert.Zero(t, repo.updateCalls)
	})

	t.Run("unknown indicator id", func(t *testing.T) {
		t.Parallel()
		uc, _, _ := setup(t)

		err := uc.UpdateSourceIndicatorsInformation(context.Background(), uuid.New(), infos("s1"))
		assert.ErrorIs(t, err, usecase.ErrCustomForecastIndicatorNotFound)
	})
}

func TestCustomForecastIndicatorUsecase_Exists(t *testing.T) {
	t.Parallel()

	repo := newMockRepository()
	uc := usecase.NewCustomForecastIndicatorUsecase(repo, newLookup("target"))
	ctx := context.Background()

	id, err := uc.CreateCustomForecastIndicator(ctx, 1, "forecast", "target", "stocks")
	require.NoError(t, err)

	ok, err := uc.ExistsCustomForecastIndicator(ctx, id)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = uc.ExistsCustomForecastIndicator(ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, ok)

	dbErr := errors.New("db down")
	repo.FindErr = dbErr
	_, err = uc.ExistsCustomForecastIndicator(ctx, id)
	assert.ErrorIs(t, err, dbErr)
}

func TestCustomForecastIndicatorUsecase_RenameListDelete(t *testing.T) {
	t.Parallel()

	repo := newMockRepository()
	uc := usecase.NewCustomForecastIndicatorUsecase(repo, newLookup("target"))
	ctx := context.Background()

	id, err := uc.CreateCustomForecastIndicator(ctx, 1, "forecast", "target", "stocks")
	require.NoError(t, err)

	require.NoError(t, uc.UpdateCustomForecastIndicatorName(ctx, id, "renamed"))
	got, err := uc.GetCustomForecastIndicator(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Name())

	assert.True(t, rule.IsViolation(uc.UpdateCustomForecastIndicatorName(ctx, id, "")))

	list, err := uc.ListCustomForecastIndicators(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, uc.DeleteCustomForecastIndicator(ctx, id))
	assert.ErrorIs(t, uc.DeleteCustomForecastIndicator(ctx, id), usecase.ErrCustomForecastIndicatorNotFound)
}
